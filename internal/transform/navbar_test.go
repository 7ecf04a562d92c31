package transform

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInjectNavbar_InsertedAtBodyStart(t *testing.T) {
	root, err := parseDoc(`<html><head></head><body><h1>Artikel</h1></body></html>`)
	require.NoError(t, err)

	InjectNavbar(root, "")
	out, err := renderDoc(root)
	require.NoError(t, err)

	require.Contains(t, out, `id="wiki-nav"`)
	require.Contains(t, out, "← Übersicht")
	require.Contains(t, out, "Impressum")
	require.Contains(t, out, "Datenschutz")
	require.Contains(t, out, "Link kopieren")
	require.Less(t, strings.Index(out, "wiki-nav"), strings.Index(out, "<h1>"))
}

func TestInjectNavbar_NoToken_NoAnalyticsScript(t *testing.T) {
	root, err := parseDoc(`<html><body></body></html>`)
	require.NoError(t, err)

	InjectNavbar(root, "")
	out, err := renderDoc(root)
	require.NoError(t, err)
	require.NotContains(t, out, "cloudflareinsights")
}

func TestInjectNavbar_WithToken_AnalyticsScriptAppended(t *testing.T) {
	root, err := parseDoc(`<html><body></body></html>`)
	require.NoError(t, err)

	InjectNavbar(root, "token123")
	out, err := renderDoc(root)
	require.NoError(t, err)

	require.Contains(t, out, "static.cloudflareinsights.com/beacon.min.js")
	require.Contains(t, out, "token123")
	require.Contains(t, out, "defer")
}

func TestInjectNavbar_RunTwice_SingleNavbar(t *testing.T) {
	root, err := parseDoc(`<html><body><p>x</p></body></html>`)
	require.NoError(t, err)

	InjectNavbar(root, "tok")
	InjectNavbar(root, "tok")
	out, err := renderDoc(root)
	require.NoError(t, err)

	require.Equal(t, 1, strings.Count(out, `id="wiki-nav"`))
	require.Equal(t, 1, strings.Count(out, "beacon.min.js"))
}

func TestInjectNavbar_NoBody_LeftUntouched(t *testing.T) {
	// A fragment without body cannot occur after parseDoc, so build the node
	// directly.
	n := elem("div")
	InjectNavbar(n, "")
	require.Nil(t, n.FirstChild)
}
