// Package content derives the searchable plain text and the summary of an
// article from its markup. Extraction is pure: no file or network access, and
// the input markup is never modified.
package content

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/MarvStuff/Athlete-Wiki/internal/util/sets"
)

const (
	// MaxContentLength caps extracted plain text, counted in runes. No
	// truncation marker is appended; the index is a search corpus, not prose.
	MaxContentLength = 20000

	// summaryLimit is the display cap for derived summaries. Text above the
	// limit is cut to 197 runes plus an ellipsis marker.
	summaryLimit = 200
)

// skipElements are non-content subtrees excluded from text extraction.
var skipElements = sets.New("script", "style", "svg", "noscript", "nav")

// Extract returns the plain text of a document: non-content subtrees removed,
// whitespace runs collapsed to single spaces, trimmed, capped at
// MaxContentLength runes.
func Extract(markup string) string {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return ""
	}

	var b strings.Builder
	collectText(root, &b)

	text := strings.Join(strings.Fields(b.String()), " ")
	return truncateRunes(text, MaxContentLength)
}

// Summary returns the text of the first paragraph element in document order,
// or "" if the document has none. Text longer than 200 runes is cut to 197
// runes and marked with "...".
func Summary(markup string) string {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return ""
	}

	p := firstElement(root, "p")
	if p == nil {
		return ""
	}

	var b strings.Builder
	collectText(p, &b)
	text := strings.TrimSpace(b.String())

	if len([]rune(text)) > summaryLimit {
		return truncateRunes(text, summaryLimit-3) + "..."
	}
	return text
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.ElementNode && skipElements.Has(n.Data) {
		return
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

func firstElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := firstElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
