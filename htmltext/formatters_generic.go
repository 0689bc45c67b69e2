package htmltext

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/hazyhaar/htmltext/extract"
	"github.com/hazyhaar/htmltext/layout"
)

// genericFormatters are the tag-agnostic formatters.
func genericFormatters() map[string]FormatFunc {
	return map[string]FormatFunc{
		"skip":           formatSkip,
		"inline":         formatInline,
		"block":          formatBlock,
		"inlineString":   formatInlineString,
		"blockString":    formatBlockString,
		"inlineTag":      formatInlineTag,
		"blockTag":       formatBlockTag,
		"inlineHtml":     formatInlineHTML,
		"blockHtml":      formatBlockHTML,
		"inlineSurround": formatInlineSurround,
	}
}

// inBlock opens a block with the formatter's leading breaks (default
// leading), runs fill, and closes it with its trailing breaks (default
// trailing).
func inBlock(b *layout.Builder, fo FormatOptions, opts layout.BlockOptions, leading, trailing int, transform func(string) string, fill func() error) error {
	opts.LeadingLineBreaks = intOr(fo.LeadingLineBreaks, leading)
	if err := b.OpenBlock(opts); err != nil {
		return err
	}
	if err := fill(); err != nil {
		return err
	}
	return b.CloseBlock(intOr(fo.TrailingLineBreaks, trailing), transform)
}

func walkChildren(n *html.Node, w Walker, b *layout.Builder) func() error {
	return func() error { return w.Walk(extract.Children(n), b) }
}

func formatSkip(*html.Node, Walker, *layout.Builder, FormatOptions) error { return nil }

func formatInline(n *html.Node, w Walker, b *layout.Builder, _ FormatOptions) error {
	return w.Walk(extract.Children(n), b)
}

func formatBlock(n *html.Node, w Walker, b *layout.Builder, fo FormatOptions) error {
	return inBlock(b, fo, layout.BlockOptions{}, 2, 2, nil, walkChildren(n, w, b))
}

func formatInlineString(_ *html.Node, _ Walker, b *layout.Builder, fo FormatOptions) error {
	b.AddLiteral(fo.String)
	return nil
}

func formatBlockString(_ *html.Node, _ Walker, b *layout.Builder, fo FormatOptions) error {
	return inBlock(b, fo, layout.BlockOptions{}, 2, 2, nil, func() error {
		b.AddLiteral(fo.String)
		return nil
	})
}

// addNoWrap adds a literal that must stay on one line.
func addNoWrap(b *layout.Builder, s string) {
	b.StartNoWrap()
	b.AddLiteral(s)
	b.StopNoWrap()
}

func tagged(n *html.Node, w Walker, b *layout.Builder) func() error {
	return func() error {
		addNoWrap(b, extract.OpenTag(n))
		if err := w.Walk(extract.Children(n), b); err != nil {
			return err
		}
		addNoWrap(b, extract.CloseTag(n))
		return nil
	}
}

func formatInlineTag(n *html.Node, w Walker, b *layout.Builder, _ FormatOptions) error {
	return tagged(n, w, b)()
}

func formatBlockTag(n *html.Node, w Walker, b *layout.Builder, fo FormatOptions) error {
	return inBlock(b, fo, layout.BlockOptions{}, 2, 2, nil, tagged(n, w, b))
}

func outerHTML(n *html.Node, b *layout.Builder) func() error {
	return func() error {
		markup, err := extract.OuterHTML(n)
		if err != nil {
			return fmt.Errorf("render <%s>: %w", n.Data, err)
		}
		addNoWrap(b, markup)
		return nil
	}
}

func formatInlineHTML(n *html.Node, _ Walker, b *layout.Builder, _ FormatOptions) error {
	return outerHTML(n, b)()
}

func formatBlockHTML(n *html.Node, _ Walker, b *layout.Builder, fo FormatOptions) error {
	return inBlock(b, fo, layout.BlockOptions{}, 2, 2, nil, outerHTML(n, b))
}

func formatInlineSurround(n *html.Node, w Walker, b *layout.Builder, fo FormatOptions) error {
	b.AddLiteral(fo.Prefix)
	if err := w.Walk(extract.Children(n), b); err != nil {
		return err
	}
	b.AddLiteral(fo.Suffix)
	return nil
}
