package extract

import (
	"bytes"
	"html"
	"strings"

	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Body returns the <body> element of a parsed document, or nil.
func Body(doc *nethtml.Node) *nethtml.Node {
	return findFirst(doc, atom.Body)
}

// Title returns the collapsed text of the document <title>, or "".
func Title(doc *nethtml.Node) string {
	t := findFirst(doc, atom.Title)
	if t == nil {
		return ""
	}
	return strings.Join(strings.Fields(collectText(t)), " ")
}

func findFirst(n *nethtml.Node, tag atom.Atom) *nethtml.Node {
	if n == nil {
		return nil
	}
	if n.Type == nethtml.ElementNode && n.DataAtom == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func collectText(n *nethtml.Node) string {
	var sb strings.Builder
	var f func(*nethtml.Node)
	f = func(n *nethtml.Node) {
		if n.Type == nethtml.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(n)
	return sb.String()
}

// Children returns the child nodes of n.
func Children(n *nethtml.Node) []*nethtml.Node {
	var out []*nethtml.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// ElementChildren returns the element children of n.
func ElementChildren(n *nethtml.Node) []*nethtml.Node {
	var out []*nethtml.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == nethtml.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// IsElement reports whether n is an element with the given tag.
func IsElement(n *nethtml.Node, tag atom.Atom) bool {
	return n != nil && n.Type == nethtml.ElementNode && n.DataAtom == tag
}

// OuterHTML renders n and its subtree back to markup.
func OuterHTML(n *nethtml.Node) (string, error) {
	var buf bytes.Buffer
	if err := nethtml.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// OpenTag renders the start tag of n with its attributes, e.g. `<a href="x">`.
func OpenTag(n *nethtml.Node) string {
	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(n.Data)
	for _, a := range n.Attr {
		sb.WriteByte(' ')
		if a.Namespace != "" {
			sb.WriteString(a.Namespace)
			sb.WriteByte(':')
		}
		sb.WriteString(a.Key)
		if a.Val == "" {
			continue
		}
		sb.WriteString(`="`)
		sb.WriteString(html.EscapeString(a.Val))
		sb.WriteByte('"')
	}
	sb.WriteByte('>')
	return sb.String()
}

// CloseTag renders the end tag of n.
func CloseTag(n *nethtml.Node) string {
	return "</" + n.Data + ">"
}
