// Package transform applies the ordered, idempotent rewrite chain to article
// markup: font localization, the external-resource compliance scan, social/SEO
// metadata injection and navigation injection. All rewriting is structured
// manipulation of the parsed document tree; the renderer takes care of
// attribute escaping, so untrusted metadata can never break out of an
// attribute value.
package transform

import (
	"strings"

	"golang.org/x/net/html"
)

// parseDoc parses markup into a normalized document tree. x/net/html always
// produces the full html/head/body skeleton, so later stages can rely on the
// anchor elements existing.
func parseDoc(markup string) (*html.Node, error) {
	return html.Parse(strings.NewReader(markup))
}

// renderDoc serializes the tree back to markup.
func renderDoc(root *html.Node) (string, error) {
	var b strings.Builder
	if err := html.Render(&b, root); err != nil {
		return "", err
	}
	return b.String(), nil
}

// attrVal returns the value of the named attribute, or "".
func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// hasAttr reports whether the attribute is present at all, regardless of value.
func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

// findFirst returns the first element with the given tag in document order.
func findFirst(root *html.Node, tag string) *html.Node {
	var found *html.Node
	walk(root, func(n *html.Node) {
		if found == nil && n.Type == html.ElementNode && n.Data == tag {
			found = n
		}
	})
	return found
}

// collectElements gathers all elements matching pred. Collect-then-mutate
// keeps tree walks safe: removing nodes mid-walk would skip siblings.
func collectElements(root *html.Node, pred func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	walk(root, func(n *html.Node) {
		if n.Type == html.ElementNode && pred(n) {
			out = append(out, n)
		}
	})
	return out
}

func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func detach(nodes []*html.Node) {
	for _, n := range nodes {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}
}

// elem builds an element node with the given attributes (key/value pairs).
func elem(tag string, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

// textNode builds a raw text node. Inside style and script elements the
// renderer emits the text verbatim.
func textNode(data string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: data}
}

// insertAfter places node directly after ref under the same parent.
func insertAfter(ref, node *html.Node) {
	if ref.Parent == nil {
		return
	}
	if ref.NextSibling != nil {
		ref.Parent.InsertBefore(node, ref.NextSibling)
	} else {
		ref.Parent.AppendChild(node)
	}
}

// docText concatenates the text content below n (style and script included).
func docText(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	})
	return b.String()
}
