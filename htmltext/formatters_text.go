package htmltext

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hazyhaar/htmltext/extract"
	"github.com/hazyhaar/htmltext/layout"
)

// textFormatters are the formatters of the default selector table.
func textFormatters() map[string]FormatFunc {
	return map[string]FormatFunc{
		"anchor":         formatAnchor,
		"blockquote":     formatBlockquote,
		"dataTable":      formatDataTable,
		"borderedTable":  formatBorderedTable,
		"heading":        formatHeading,
		"horizontalLine": formatHorizontalLine,
		"image":          formatImage,
		"lineBreak":      formatLineBreak,
		"orderedList":    formatOrderedList,
		"paragraph":      formatParagraph,
		"pre":            formatPre,
		"table":          formatTable,
		"unorderedList":  formatUnorderedList,
		"wbr":            formatWbr,
	}
}

// upper returns a fresh uppercasing word transform. A cases.Caser keeps
// state, so each use gets its own.
func upper() func(string) string {
	return cases.Upper(language.Und).String
}

func withBrackets(s string, br *Brackets) string {
	if br == nil {
		return s
	}
	return br.Left + s + br.Right
}

// rewritePath applies PathRewrite, then prefixes root-relative paths with
// BaseURL.
func rewritePath(path string, n *html.Node, fo FormatOptions) string {
	if fo.PathRewrite != nil {
		path = fo.PathRewrite(path, n)
	}
	if strings.HasPrefix(path, "/") && fo.BaseURL != "" {
		return strings.TrimRight(fo.BaseURL, "/") + path
	}
	return path
}

func anchorHref(n *html.Node, fo FormatOptions) string {
	if fo.IgnoreHref {
		return ""
	}
	href := strings.ReplaceAll(extract.Attr(n, "href"), "mailto:", "")
	if href == "" {
		return ""
	}
	if fo.NoAnchorURL && href[0] == '#' {
		return ""
	}
	return rewritePath(href, n, fo)
}

// formatAnchor renders the link text followed by the bracketed target. The
// text is captured word by word so the target can be hidden when it repeats
// the text.
func formatAnchor(n *html.Node, w Walker, b *layout.Builder, fo FormatOptions) error {
	href := anchorHref(n, fo)
	if href == "" {
		return w.Walk(extract.Children(n), b)
	}

	var text strings.Builder
	b.PushWordTransform(func(s string) string {
		text.WriteString(s)
		return s
	})
	err := w.Walk(extract.Children(n), b)
	b.PopWordTransform()
	if err != nil {
		return err
	}

	if fo.HideLinkHrefIfSameAsText && href == text.String() {
		return nil
	}
	if text.Len() == 0 {
		b.AddInline(href, true)
	} else {
		b.AddInline(" "+withBrackets(href, fo.LinkBrackets), true)
	}
	return nil
}

func formatBlockquote(n *html.Node, w Walker, b *layout.Builder, fo FormatOptions) error {
	quote := func(s string) string {
		if fo.TrimEmptyLines {
			s = strings.Trim(s, "\n")
		}
		lines := strings.Split(s, "\n")
		for i, line := range lines {
			lines[i] = "> " + line
		}
		return strings.Join(lines, "\n")
	}
	return inBlock(b, fo, layout.BlockOptions{ReservedLineLength: 2}, 2, 2, quote, walkChildren(n, w, b))
}

func formatHeading(n *html.Node, w Walker, b *layout.Builder, fo FormatOptions) error {
	return inBlock(b, fo, layout.BlockOptions{}, 2, 2, nil, func() error {
		if !fo.Uppercase {
			return w.Walk(extract.Children(n), b)
		}
		b.PushWordTransform(upper())
		defer b.PopWordTransform()
		return w.Walk(extract.Children(n), b)
	})
}

// formatHorizontalLine draws Length dashes, else one line width, else 40.
func formatHorizontalLine(_ *html.Node, w Walker, b *layout.Builder, fo FormatOptions) error {
	length := 40
	if fo.Length != nil {
		length = *fo.Length
	} else if ww := w.Options().Wordwrap; ww > 0 {
		length = ww
	}
	return inBlock(b, fo, layout.BlockOptions{}, 2, 2, nil, func() error {
		b.AddInline(strings.Repeat("-", max(0, length)), false)
		return nil
	})
}

func formatImage(n *html.Node, _ Walker, b *layout.Builder, fo FormatOptions) error {
	text := extract.Attr(n, "alt")
	if src := extract.Attr(n, "src"); src != "" {
		if text != "" {
			text += " "
		}
		text += withBrackets(rewritePath(src, n, fo), fo.LinkBrackets)
	}
	b.AddInline(text, true)
	return nil
}

func formatLineBreak(_ *html.Node, _ Walker, b *layout.Builder, _ FormatOptions) error {
	b.AddLineBreak()
	return nil
}

func formatWbr(_ *html.Node, _ Walker, b *layout.Builder, _ FormatOptions) error {
	b.AddWordBreakOpportunity()
	return nil
}

func formatParagraph(n *html.Node, w Walker, b *layout.Builder, fo FormatOptions) error {
	return inBlock(b, fo, layout.BlockOptions{}, 2, 2, nil, walkChildren(n, w, b))
}

func formatPre(n *html.Node, w Walker, b *layout.Builder, fo FormatOptions) error {
	return inBlock(b, fo, layout.BlockOptions{IsPre: true}, 2, 2, nil, walkChildren(n, w, b))
}

// formatTable renders a table as a plain block; see dataTable for columns.
func formatTable(n *html.Node, w Walker, b *layout.Builder, fo FormatOptions) error {
	return inBlock(b, fo, layout.BlockOptions{}, 1, 1, nil, walkChildren(n, w, b))
}

// --- lists ---

func formatUnorderedList(n *html.Node, w Walker, b *layout.Builder, fo FormatOptions) error {
	prefix := fo.ItemPrefix
	if prefix == "" {
		prefix = " * "
	}
	return formatList(n, w, b, fo, func() string { return prefix })
}

func formatOrderedList(n *html.Node, w Walker, b *layout.Builder, fo FormatOptions) error {
	next := 1
	if start, err := strconv.Atoi(strings.TrimSpace(extract.Attr(n, "start"))); err == nil {
		next = start
	}
	index := listIndexFunc(extract.Attr(n, "type"))
	return formatList(n, w, b, fo, func() string {
		prefix := " " + index(next) + ". "
		next++
		return prefix
	})
}

// listIndexFunc returns the marker function for an <ol type>.
func listIndexFunc(olType string) func(int) string {
	switch olType {
	case "a":
		return func(i int) string { return numberToLetterSequence(i, 'a') }
	case "A":
		return func(i int) string { return numberToLetterSequence(i, 'A') }
	case "i":
		return func(i int) string { return strings.ToLower(numberToRoman(i)) }
	case "I":
		return numberToRoman
	default:
		return strconv.Itoa
	}
}

type listEntry struct {
	node   *html.Node
	prefix string
}

// formatList lays out the children of a list. <li> children take the next
// prefix; other non-blank children become unprefixed items. A list nested in
// an <li> gets single line breaks and left-trimmed prefixes.
func formatList(n *html.Node, w Walker, b *layout.Builder, fo FormatOptions, nextPrefix func() string) error {
	if len(extract.ElementChildren(n)) == 0 {
		return nil
	}
	nested := extract.IsElement(n.Parent, atom.Li)

	var (
		entries   []listEntry
		maxPrefix int
	)
	for _, c := range extract.Children(n) {
		switch {
		case c.Type == html.CommentNode:
			continue
		case c.Type == html.TextNode && strings.TrimSpace(c.Data) == "":
			continue
		case !extract.IsElement(c, atom.Li):
			entries = append(entries, listEntry{node: c})
			continue
		}
		prefix := nextPrefix()
		if nested {
			prefix = strings.TrimLeftFunc(prefix, unicode.IsSpace)
		}
		maxPrefix = max(maxPrefix, utf8.RuneCountInString(prefix))
		entries = append(entries, listEntry{node: c, prefix: prefix})
	}

	leading, trailing := intOr(fo.LeadingLineBreaks, 2), intOr(fo.TrailingLineBreaks, 2)
	if nested {
		leading, trailing = 1, 1
	}
	err := b.OpenList(layout.ListOptions{
		MaxPrefixLength:    maxPrefix,
		PrefixAlign:        layout.AlignLeft,
		InterRowLineBreaks: 1,
		LeadingLineBreaks:  leading,
	})
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := b.OpenListItem(e.prefix); err != nil {
			return err
		}
		if err := w.Walk([]*html.Node{e.node}, b); err != nil {
			return err
		}
		if err := b.CloseListItem(); err != nil {
			return err
		}
	}
	return b.CloseList(trailing)
}
