package transform

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// navID marks the injected navigation bar so re-running the stage replaces it
// instead of stacking a second copy.
const navID = "wiki-nav"

const analyticsHost = "static.cloudflareinsights.com"

// navHTML is the fixed site navigation: back-link, legal page links and a
// copy-link control with transient confirmation text.
const navHTML = `<nav id="` + navID + `" style="max-width:1100px;margin:0 auto;padding:16px 30px;display:flex;justify-content:space-between;align-items:center;font-family:'Outfit',sans-serif;font-size:0.85rem">
<a href="/" style="color:#8899aa;text-decoration:none;font-weight:400" aria-label="Zurück zur Übersicht">← Übersicht</a>
<div style="display:flex;gap:12px;align-items:center">
<a href="/impressum.html" style="color:#556677;text-decoration:none;font-size:0.72rem">Impressum</a>
<a href="/datenschutz.html" style="color:#556677;text-decoration:none;font-size:0.72rem">Datenschutz</a>
<button onclick="navigator.clipboard.writeText(location.href).then(()=>{this.textContent='Kopiert!';setTimeout(()=>this.textContent='Link kopieren',2000)})" style="padding:8px 16px;border:1px solid #1e2d3d;border-radius:10px;background:transparent;color:#8899aa;font-family:'Outfit',sans-serif;font-size:0.82rem;cursor:pointer" aria-label="Link dieser Seite kopieren">Link kopieren</button>
</div>
</nav>`

// InjectNavbar inserts the navigation bar immediately after the body opening
// tag. With an analytics token configured, the deferred analytics loader
// script is appended behind the navbar. A document without a body element is
// left untouched.
func InjectNavbar(root *html.Node, analyticsToken string) {
	detach(collectElements(root, func(n *html.Node) bool {
		if n.Data == "nav" && attrVal(n, "id") == navID {
			return true
		}
		return n.Data == "script" && strings.Contains(attrVal(n, "src"), analyticsHost)
	}))

	body := findFirst(root, "body")
	if body == nil {
		return
	}

	nodes, err := parseBodyFragment(navHTML)
	if err != nil {
		return
	}
	if analyticsToken != "" {
		nodes = append(nodes, AnalyticsScript(analyticsToken))
	}

	anchor := body.FirstChild
	for _, n := range nodes {
		if anchor == nil {
			body.AppendChild(n)
		} else {
			body.InsertBefore(n, anchor)
		}
	}
}

// AnalyticsScript builds the deferred Cloudflare Insights loader. The token
// lands in an attribute, so the renderer escapes whatever it contains.
func AnalyticsScript(token string) *html.Node {
	n := elem("script",
		"defer", "",
		"src", "https://"+analyticsHost+"/beacon.min.js",
		"data-cf-beacon", fmt.Sprintf(`{"token":%q}`, token),
	)
	return n
}

func parseBodyFragment(fragment string) ([]*html.Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	return html.ParseFragment(strings.NewReader(fragment), ctx)
}
