package transform

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MarvStuff/Athlete-Wiki/internal/article"
)

func testPipeline() *Pipeline {
	return &Pipeline{
		SiteURL:       "https://wiki.example.de",
		SiteName:      "Athlete Wiki",
		InjectSEOTags: true,
		InjectNav:     true,
	}
}

func pipelineArticle(markup string) *article.Article {
	a := &article.Article{
		Title:    "Kreatin",
		Date:     "2026-02-10",
		Summary:  "Kurz.",
		Filename: "kreatin.html",
		RawHTML:  markup,
	}
	a.Finalize("kreatin")
	return a
}

func TestApply_FullDocument_AllStagesApplied(t *testing.T) {
	markup := `<html><head><meta charset="utf-8">
<link rel="stylesheet" href="https://fonts.googleapis.com/css2?family=Outfit">
</head><body><p>Inhalt</p></body></html>`

	out, issues := testPipeline().Apply(pipelineArticle(markup))

	require.Empty(t, issues)
	require.NotContains(t, out, "fonts.googleapis.com")
	require.Contains(t, out, "@font-face")
	require.Contains(t, out, "og:title")
	require.Contains(t, out, `id="wiki-nav"`)
}

func TestApply_ComplianceScanRunsAfterFontLocalization(t *testing.T) {
	// The font link alone must not be reported; localization removes it before
	// the scan runs.
	markup := `<html><head><link rel="stylesheet" href="https://fonts.googleapis.com/css2"></head><body></body></html>`

	_, issues := testPipeline().Apply(pipelineArticle(markup))
	require.Empty(t, issues)
}

func TestApply_ExternalScript_Reported(t *testing.T) {
	markup := `<html><body><script src="https://example.com/t.js"></script></body></html>`

	_, issues := testPipeline().Apply(pipelineArticle(markup))
	require.Len(t, issues, 1)
	require.Equal(t, "kreatin.html", issues[0].Document)
}

func TestApply_AnalyticsLoader_NotFlaggedByScan(t *testing.T) {
	p := testPipeline()
	p.AnalyticsToken = "tok"

	out, issues := p.Apply(pipelineArticle(`<html><body><p>x</p></body></html>`))
	require.Empty(t, issues)
	require.Contains(t, out, "beacon.min.js")
}

func TestApply_RunTwice_StableOutput(t *testing.T) {
	markup := `<html><head><meta charset="utf-8"></head><body><p>x</p></body></html>`
	p := testPipeline()

	first, _ := p.Apply(pipelineArticle(markup))
	second, _ := p.Apply(pipelineArticle(first))

	require.Equal(t, 1, strings.Count(second, "og:title"))
	require.Equal(t, 1, strings.Count(second, `id="wiki-nav"`))
	// One style block total; it carries several @font-face rules, so count a
	// URL that appears exactly once per block.
	require.Equal(t, 1, strings.Count(second, "dm-serif-display-regular.woff2"))
}

func TestApply_StagesDisabled_OnlyFontsLocalized(t *testing.T) {
	p := &Pipeline{SiteURL: "https://wiki.example.de", SiteName: "Athlete Wiki"}

	out, _ := p.Apply(pipelineArticle(`<html><head><meta charset="utf-8"></head><body></body></html>`))
	require.Contains(t, out, "@font-face")
	require.NotContains(t, out, "og:title")
	require.NotContains(t, out, "wiki-nav")
}
