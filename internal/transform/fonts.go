package transform

import (
	"strings"

	"golang.org/x/net/html"
)

// fontFaceCSS declares the bundled site fonts. It replaces any external font
// service stylesheet so no visitor request ever reaches a font CDN (DSGVO).
const fontFaceCSS = `
@font-face{font-family:'DM Serif Display';font-style:normal;font-weight:400;font-display:swap;src:url('/fonts/dm-serif-display-regular.woff2') format('woff2')}
@font-face{font-family:'Outfit';font-style:normal;font-weight:300;font-display:swap;src:url('/fonts/outfit-300.woff2') format('woff2')}
@font-face{font-family:'Outfit';font-style:normal;font-weight:400;font-display:swap;src:url('/fonts/outfit-400.woff2') format('woff2')}
@font-face{font-family:'Outfit';font-style:normal;font-weight:500;font-display:swap;src:url('/fonts/outfit-500.woff2') format('woff2')}
@font-face{font-family:'Outfit';font-style:normal;font-weight:600;font-display:swap;src:url('/fonts/outfit-600.woff2') format('woff2')}
@font-face{font-family:'Outfit';font-style:normal;font-weight:700;font-display:swap;src:url('/fonts/outfit-700.woff2') format('woff2')}
`

// fontHosts are the external font service domains stripped by localization.
var fontHosts = []string{"fonts.googleapis.com", "fonts.gstatic.com"}

// LocalizeFonts rewrites the tree so all font loading is local:
//
//   - preconnect hints to font service domains are removed,
//   - the first external font stylesheet link is replaced by an inline style
//     block with local @font-face rules, further such links are dropped,
//   - a document with neither an external font link nor existing local
//     @font-face rules gets the style block appended to its head as a safety
//     default.
//
// Running twice is a no-op after the first pass: no external links remain and
// the local rules are detected, so no duplicate style block is injected.
func LocalizeFonts(root *html.Node) {
	replaced := false

	links := collectElements(root, func(n *html.Node) bool {
		if n.Data != "link" {
			return false
		}
		return referencesFontHost(attrVal(n, "href"))
	})
	for _, link := range links {
		if strings.Contains(attrVal(link, "rel"), "preconnect") {
			link.Parent.RemoveChild(link)
			continue
		}
		if !replaced {
			insertAfter(link, fontFaceStyle())
			replaced = true
		}
		link.Parent.RemoveChild(link)
	}

	if replaced || hasLocalFontFace(root) {
		return
	}
	if head := findFirst(root, "head"); head != nil {
		head.AppendChild(fontFaceStyle())
	}
}

func fontFaceStyle() *html.Node {
	style := elem("style")
	style.AppendChild(textNode(fontFaceCSS))
	return style
}

func referencesFontHost(href string) bool {
	lower := strings.ToLower(href)
	for _, host := range fontHosts {
		if strings.Contains(lower, host) {
			return true
		}
	}
	return false
}

// hasLocalFontFace reports whether the document already declares @font-face
// rules pointing at the bundled font directory.
func hasLocalFontFace(root *html.Node) bool {
	styles := collectElements(root, func(n *html.Node) bool { return n.Data == "style" })
	for _, s := range styles {
		text := docText(s)
		if strings.Contains(text, "@font-face") && strings.Contains(text, "/fonts/") {
			return true
		}
	}
	return false
}
