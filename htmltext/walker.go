package htmltext

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/hazyhaar/htmltext/extract"
	"github.com/hazyhaar/htmltext/layout"
)

// FormatFunc renders one element into the builder. It walks the children it
// wants rendered through w.
type FormatFunc func(n *html.Node, w Walker, b *layout.Builder, fo FormatOptions) error

// Walker is the recursive step handed to formatters.
type Walker interface {
	// Walk renders nodes in order: text goes inline, elements go to the
	// formatter of their selector.
	Walk(nodes []*html.Node, b *layout.Builder) error

	// Options returns the converter options. Treat them as read only.
	Options() *Options

	// Formatter returns a registered formatter, or nil.
	Formatter(name string) FormatFunc
}

// walker carries the state of one conversion.
type walker struct {
	c        *Converter
	b        *layout.Builder
	depth    int
	maxDepth int
}

// start walks the base elements of doc, or its body when none match and
// ReturnDomByDefault is set.
func (w *walker) start(doc *html.Node) error {
	opts := &w.c.opts
	bases := extract.Bases(doc, opts.BaseElements.Selectors, opts.BaseElements.OrderBy, opts.Limits.MaxBaseElements)
	if len(bases) > 0 {
		// Bases sit one level above the body children.
		w.setMaxDepth(1)
		return w.Walk(bases, w.b)
	}
	if !opts.BaseElements.ReturnDomByDefault {
		return nil
	}
	body := extract.Body(doc)
	if body == nil {
		return nil
	}
	w.setMaxDepth(0)
	return w.Walk(extract.Children(body), w.b)
}

func (w *walker) setMaxDepth(offset int) {
	if d := w.c.opts.Limits.MaxDepth; d > 0 {
		w.maxDepth = d + offset
	}
}

func (w *walker) Walk(nodes []*html.Node, b *layout.Builder) error {
	w.depth++
	defer func() { w.depth-- }()

	limits := w.c.opts.Limits
	if w.maxDepth > 0 && w.depth > w.maxDepth {
		w.c.logger.Debug("htmltext: max depth reached", "max_depth", limits.MaxDepth)
		b.AddInline(limits.Ellipsis, false)
		return nil
	}

	truncated := limits.MaxChildNodes > 0 && len(nodes) > limits.MaxChildNodes
	if truncated {
		w.c.logger.Debug("htmltext: max child nodes reached", "nodes", len(nodes), "max_child_nodes", limits.MaxChildNodes)
		nodes = nodes[:limits.MaxChildNodes]
	}

	for _, n := range nodes {
		switch n.Type {
		case html.TextNode:
			b.AddInline(n.Data, false)
		case html.ElementNode:
			if n.DataAtom == atom.Body {
				if err := w.Walk(extract.Children(n), b); err != nil {
					return err
				}
				continue
			}
			entry := w.c.pick(n)
			if entry == nil {
				continue
			}
			if err := w.c.formatters[entry.Format](n, w, b, entry.Options); err != nil {
				return err
			}
		}
	}

	if truncated {
		b.AddInline(limits.Ellipsis, false)
	}
	return nil
}

func (w *walker) Options() *Options { return &w.c.opts }

func (w *walker) Formatter(name string) FormatFunc { return w.c.formatters[name] }
