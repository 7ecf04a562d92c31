package build

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MarvStuff/Athlete-Wiki/internal/article"
	"github.com/MarvStuff/Athlete-Wiki/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	base := t.TempDir()
	cfg, err := config.Load(filepath.Join(base, "no-config.yaml"))
	require.NoError(t, err)

	cfg.Site.URL = "https://wiki.example.de"
	cfg.Build.PagesDir = filepath.Join(base, "pages")
	cfg.Build.TemplatesDir = filepath.Join(base, "templates")
	cfg.Build.StaticDir = filepath.Join(base, "static")
	cfg.Build.OutputDir = filepath.Join(base, "public")
	cfg.Build.SearchLib = filepath.Join(base, "assets", "fuse.min.js")

	require.NoError(t, os.MkdirAll(cfg.Build.PagesDir, 0o755))
	require.NoError(t, os.MkdirAll(cfg.Build.TemplatesDir, 0o755))
	for _, name := range []string{"startseite.html", "404.html", "impressum.html", "datenschutz.html"} {
		content := "<html><body><h1>{{siteName}}</h1><p>{{count}}</p></body></html>"
		require.NoError(t, os.WriteFile(filepath.Join(cfg.Build.TemplatesDir, name), []byte(content), 0o644))
	}
	return cfg
}

func writeArticle(t *testing.T, cfg *config.Config, filename, metaBlock, body string) {
	t.Helper()
	markup := "<html><head><meta charset=\"utf-8\"></head><body>" + body + "</body></html>"
	if metaBlock != "" {
		markup = "<!--\n" + metaBlock + "\n-->\n" + markup
	}
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Build.PagesDir, filename), []byte(markup), 0o644))
}

func TestBuild_TypicalSite_AllArtifactsProduced(t *testing.T) {
	cfg := testConfig(t)
	for i := 1; i <= 8; i++ {
		writeArticle(t, cfg, fmt.Sprintf("artikel%d.html", i),
			fmt.Sprintf("title: Artikel %d\ndate: 2026-02-%02d\ncategory: training", i, i),
			fmt.Sprintf("<p>Inhalt von Artikel %d.</p>", i))
	}
	writeArticle(t, cfg, "entwurf.html", "title: Entwurf\nstatus: draft", "<p>Unfertig.</p>")

	rep, err := New(cfg).Build()
	require.NoError(t, err)
	require.Equal(t, 9, rep.Scanned)
	require.Equal(t, 8, rep.Published)
	require.Equal(t, 1, rep.Drafts)
	require.Equal(t, 0, rep.Errors)

	for _, name := range []string{"index.json", "index.html", "404.html", "impressum.html", "datenschutz.html", "sitemap.xml", "robots.txt"} {
		_, err := os.Stat(filepath.Join(cfg.Build.OutputDir, name))
		require.NoError(t, err, name)
	}

	pages, err := os.ReadDir(filepath.Join(cfg.Build.OutputDir, "pages"))
	require.NoError(t, err)
	require.Len(t, pages, 8)
}

func TestBuild_Index_SortedByDateDescendingWithoutInternalFields(t *testing.T) {
	cfg := testConfig(t)
	writeArticle(t, cfg, "quelldatei-alt.html", "title: Alt\ndate: 2025-01-01", "<p>Alter Text.</p>")
	writeArticle(t, cfg, "quelldatei-neu.html", "title: Neu\ndate: 2026-02-10", "<p>Neuer Text.</p>")

	_, err := New(cfg).Build()
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(cfg.Build.OutputDir, "index.json"))
	require.NoError(t, err)
	// Source filenames are internal only and never reach the index.
	require.NotContains(t, string(raw), "quelldatei")

	var entries []article.Article
	require.NoError(t, json.Unmarshal(raw, &entries))
	require.Len(t, entries, 2)
	require.Equal(t, "Neu", entries[0].Title)
	require.Equal(t, "Alt", entries[1].Title)
	require.Equal(t, "/pages/neu.html", entries[0].URL)
}

func TestBuild_ArticlePages_PipelineApplied(t *testing.T) {
	cfg := testConfig(t)
	writeArticle(t, cfg, "a.html", "title: Test\ndate: 2026-01-01", "<p>Text.</p>")

	_, err := New(cfg).Build()
	require.NoError(t, err)

	page, err := os.ReadFile(filepath.Join(cfg.Build.OutputDir, "pages", "test.html"))
	require.NoError(t, err)
	require.Contains(t, string(page), "og:title")
	require.Contains(t, string(page), `id="wiki-nav"`)
	require.Contains(t, string(page), "@font-face")
}

func TestBuild_SlugCollision_SuffixedAndWarned(t *testing.T) {
	cfg := testConfig(t)
	writeArticle(t, cfg, "a.html", "title: Kreatin\ndate: 2026-01-01", "<p>A.</p>")
	writeArticle(t, cfg, "b.html", "title: Kreatin\ndate: 2026-01-02", "<p>B.</p>")

	rep, err := New(cfg).Build()
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(cfg.Build.OutputDir, "pages", "kreatin.html"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(cfg.Build.OutputDir, "pages", "kreatin2.html"))
	require.NoError(t, err)

	var found bool
	for _, w := range rep.Warnings {
		if strings.Contains(w, "slug collision") {
			found = true
		}
	}
	require.True(t, found)
}

func TestBuild_DefectiveFiles_CountedAsErrorsButBuildSucceeds(t *testing.T) {
	cfg := testConfig(t)
	writeArticle(t, cfg, "gut.html", "title: Gut\ndate: 2026-01-01", "<p>Ok.</p>")
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Build.PagesDir, "leer.html"), nil, 0o644))
	big := strings.Repeat("x", MaxFileSize+1)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Build.PagesDir, "riesig.html"), []byte(big), 0o644))

	rep, err := New(cfg).Build()
	require.NoError(t, err)
	require.Equal(t, 3, rep.Scanned)
	require.Equal(t, 1, rep.Published)
	require.Equal(t, 2, rep.Errors)
}

func TestBuild_NonHTMLFile_WarnedNotCounted(t *testing.T) {
	cfg := testConfig(t)
	writeArticle(t, cfg, "gut.html", "title: Gut\ndate: 2026-01-01", "<p>Ok.</p>")
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Build.PagesDir, "notizen.txt"), []byte("memo"), 0o644))

	rep, err := New(cfg).Build()
	require.NoError(t, err)
	require.Equal(t, 1, rep.Scanned)
	require.Equal(t, 0, rep.Errors)

	var found bool
	for _, w := range rep.Warnings {
		if strings.Contains(w, "notizen.txt") {
			found = true
		}
	}
	require.True(t, found)
}

func TestBuild_MissingTemplate_FatalBeforeOutputTouched(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.Remove(filepath.Join(cfg.Build.TemplatesDir, "impressum.html")))

	marker := filepath.Join(cfg.Build.OutputDir, "vorher.txt")
	require.NoError(t, os.MkdirAll(cfg.Build.OutputDir, 0o755))
	require.NoError(t, os.WriteFile(marker, []byte("alt"), 0o644))

	_, err := New(cfg).Build()
	require.Error(t, err)

	// The previous output survives a fatal abort.
	_, statErr := os.Stat(marker)
	require.NoError(t, statErr)
}

func TestBuild_EmptyPagesDir_ValidEmptySite(t *testing.T) {
	cfg := testConfig(t)

	rep, err := New(cfg).Build()
	require.NoError(t, err)
	require.Equal(t, 0, rep.Published)

	raw, err := os.ReadFile(filepath.Join(cfg.Build.OutputDir, "index.json"))
	require.NoError(t, err)
	require.JSONEq(t, "[]", string(raw))
}

func TestBuild_DraftsEnabled_DraftPublished(t *testing.T) {
	cfg := testConfig(t)
	cfg.Build.Drafts = true
	writeArticle(t, cfg, "entwurf.html", "title: Entwurf\nstatus: draft", "<p>Unfertig.</p>")

	rep, err := New(cfg).Build()
	require.NoError(t, err)
	require.Equal(t, 1, rep.Published)
	require.Equal(t, 0, rep.Drafts)
}

func TestValidate_CleanArticles_Passes(t *testing.T) {
	cfg := testConfig(t)
	writeArticle(t, cfg, "a.html", "title: Sauber\ndate: 2026-01-01", "<p>Ok.</p>")

	rep, ok, err := New(cfg).Validate()
	require.NoError(t, err)
	require.True(t, ok)
	require.Empty(t, rep.Issues)

	// Validation must not produce any output.
	_, statErr := os.Stat(cfg.Build.OutputDir)
	require.True(t, os.IsNotExist(statErr))
}

func TestValidate_ExternalResource_Fails(t *testing.T) {
	cfg := testConfig(t)
	writeArticle(t, cfg, "a.html", "title: Unsauber\ndate: 2026-01-01",
		`<p>x</p><script src="https://cdn.jsdelivr.net/npm/fuse.js"></script>`)

	rep, ok, err := New(cfg).Validate()
	require.NoError(t, err)
	require.False(t, ok)
	require.NotEmpty(t, rep.Issues)
}
