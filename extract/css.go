// CLAUDE:SUMMARY CSS selector-based base-element selection over a parsed HTML document (goquery).
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Order decides how matches of several selectors are combined.
type Order string

const (
	// OrderSelectors lists every match of the first selector, then the
	// matches of the second one, and so on.
	OrderSelectors Order = "selectors"
	// OrderOccurrence lists matches in document order.
	OrderOccurrence Order = "occurrence"
)

// Bases returns the elements of doc matching selectors, combined according to
// order and capped at limit (0 = no cap). A node is returned at most once.
// Selectors that fail to parse match nothing.
func Bases(doc *html.Node, selectors []string, order Order, limit int) []*html.Node {
	if doc == nil || len(selectors) == 0 {
		return nil
	}
	d := goquery.NewDocumentFromNode(doc)

	if order != OrderSelectors {
		return capNodes(d.Find(strings.Join(selectors, ", ")).Nodes, limit)
	}

	seen := make(map[*html.Node]bool)
	var out []*html.Node
	for _, sel := range selectors {
		for _, n := range d.Find(sel).Nodes {
			if seen[n] {
				continue
			}
			seen[n] = true
			out = append(out, n)
			if limit > 0 && len(out) == limit {
				return out
			}
		}
	}
	return out
}

func capNodes(nodes []*html.Node, limit int) []*html.Node {
	if limit > 0 && len(nodes) > limit {
		return nodes[:limit]
	}
	return nodes
}

// Attr returns the value of an attribute on a node.
func Attr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// HasAttr checks if a node has a specific attribute.
func HasAttr(n *html.Node, key string) bool {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return true
		}
	}
	return false
}
