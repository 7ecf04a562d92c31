package transform

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckExternalResources_CleanDocument_NoIssues(t *testing.T) {
	markup := `<html><head><script src="/fuse.min.js"></script><script src="./local.js"></script></head><body><p>ok</p></body></html>`
	require.Empty(t, CheckExternalResources(markup, "clean.html"))
}

func TestCheckExternalResources_DisallowedHosts_OneIssuePerHost(t *testing.T) {
	markup := `<html><head>
<link href="https://fonts.googleapis.com/css2?family=Outfit">
<link href="https://fonts.gstatic.com/s/outfit.woff2">
<script src="https://cdn.jsdelivr.net/npm/fuse.js"></script>
</head></html>`

	issues := CheckExternalResources(markup, "doc.html")

	var refs []string
	for _, issue := range issues {
		require.Equal(t, "doc.html", issue.Document)
		refs = append(refs, issue.Reference)
	}
	require.Contains(t, refs, "still contains fonts.googleapis.com reference")
	require.Contains(t, refs, "still contains fonts.gstatic.com reference")
	require.Contains(t, refs, "still contains cdn.jsdelivr.net reference")
}

func TestCheckExternalResources_HostInInlineCSS_Detected(t *testing.T) {
	markup := `<html><head><style>@import url('https://fonts.googleapis.com/css2');</style></head></html>`

	issues := CheckExternalResources(markup, "doc.html")
	require.Len(t, issues, 1)
}

func TestCheckExternalResources_ExternalScript_Flagged(t *testing.T) {
	markup := `<html><body><script src="https://example.com/tracker.js"></script></body></html>`

	issues := CheckExternalResources(markup, "doc.html")
	require.Len(t, issues, 1)
	require.Equal(t, "external script: https://example.com/tracker.js", issues[0].Reference)
}

func TestCheckExternalResources_InlineScript_NotFlagged(t *testing.T) {
	markup := `<html><body><script>console.log("lokal");</script></body></html>`
	require.Empty(t, CheckExternalResources(markup, "doc.html"))
}
