package transform

import (
	"encoding/json"
	"strings"

	"golang.org/x/net/html"

	"github.com/MarvStuff/Athlete-Wiki/internal/article"
)

// ldPublisher is the JSON-LD publisher organization.
type ldPublisher struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// ldArticle is the structured-data block injected per article.
type ldArticle struct {
	Context       string      `json:"@context"`
	Type          string      `json:"@type"`
	Headline      string      `json:"headline"`
	DatePublished string      `json:"datePublished"`
	Description   string      `json:"description"`
	URL           string      `json:"url"`
	Publisher     ldPublisher `json:"publisher"`
}

// InjectSEO removes any pre-existing Open Graph tags, generic description
// meta, canonical link and structured-data block, then inserts a fresh set
// immediately after the charset declaration (or at the start of head when no
// charset meta exists). Remove-then-insert keeps the stage idempotent: a
// document can pass through the pipeline on every rebuild without ever
// accumulating duplicates.
func InjectSEO(root *html.Node, a *article.Article, siteURL, siteName string) {
	detach(collectElements(root, isInjectedSEONode))

	head := findFirst(root, "head")
	if head == nil {
		return
	}

	canonical := siteURL + a.URL
	nodes := []*html.Node{
		ogMeta("og:title", a.Title),
		ogMeta("og:description", a.Summary),
		ogMeta("og:type", "article"),
		ogMeta("og:url", canonical),
		ogMeta("og:image", siteURL+"/og-default.png"),
		ogMeta("og:site_name", siteName),
		ogMeta("og:locale", "de_DE"),
		elem("meta", "name", "description", "content", a.Summary),
		elem("link", "rel", "canonical", "href", canonical),
		jsonLD(a, siteURL, siteName),
	}

	anchor := charsetMeta(head)
	for _, n := range nodes {
		if anchor == nil {
			head.InsertBefore(n, head.FirstChild)
		} else {
			insertAfter(anchor, n)
		}
		anchor = n
	}
}

func isInjectedSEONode(n *html.Node) bool {
	switch n.Data {
	case "meta":
		if strings.HasPrefix(attrVal(n, "property"), "og:") {
			return true
		}
		return attrVal(n, "name") == "description"
	case "link":
		return attrVal(n, "rel") == "canonical"
	case "script":
		return attrVal(n, "type") == "application/ld+json"
	}
	return false
}

func ogMeta(property, content string) *html.Node {
	return elem("meta", "property", property, "content", content)
}

func jsonLD(a *article.Article, siteURL, siteName string) *html.Node {
	data := ldArticle{
		Context:       "https://schema.org",
		Type:          "Article",
		Headline:      a.Title,
		DatePublished: a.Date,
		Description:   a.Summary,
		URL:           siteURL + a.URL,
		Publisher:     ldPublisher{Type: "Organization", Name: siteName},
	}
	// json.Marshal escapes <, > and & by default, so the payload can never
	// terminate the surrounding script element early.
	payload, err := json.Marshal(data)
	if err != nil {
		payload = []byte("{}")
	}
	script := elem("script", "type", "application/ld+json")
	script.AppendChild(textNode(string(payload)))
	return script
}

// charsetMeta finds the character-encoding declaration inside head, covering
// both <meta charset=...> and the legacy http-equiv form.
func charsetMeta(head *html.Node) *html.Node {
	for c := head.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "meta" {
			continue
		}
		if hasAttr(c, "charset") {
			return c
		}
		if strings.EqualFold(attrVal(c, "http-equiv"), "content-type") {
			return c
		}
	}
	return nil
}
