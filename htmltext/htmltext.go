// CLAUDE:SUMMARY Converter entry point: truncation, sanitizing, parsing, base-element selection and the walk into a layout.Builder.
// Package htmltext converts HTML documents to readable, word-wrapped plain
// text.
//
// Each element is matched against a table of CSS selectors; the most
// specific match names a formatter (paragraph, heading, anchor, list,
// table...) which drives a layout.Builder. Headings come out uppercased,
// links as "text [href]", lists with " * " or " 1. " prefixes, blockquotes
// with "> ", and tables as aligned columns.
//
// Usage:
//
//	conv, err := htmltext.New(htmltext.DefaultOptions())
//	if err != nil { ... }
//	text, err := conv.Convert(`<h1>Hello</h1><p>world</p>`)
//	// "HELLO\n\nworld"
//
// A Converter is immutable once built and safe for concurrent use.
package htmltext

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/andybalholm/cascadia"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/hazyhaar/htmltext/extract"
	"github.com/hazyhaar/htmltext/layout"
)

var (
	// ErrUnknownFormat is returned by New when a selector names a format
	// with no registered formatter.
	ErrUnknownFormat = errors.New("htmltext: unknown format")

	// ErrSelector is returned by New when a selector does not parse.
	ErrSelector = errors.New("htmltext: invalid selector")
)

// Result is a conversion with the document title.
type Result struct {
	Text  string `json:"text"`
	Title string `json:"title,omitempty"`
}

// rule is one compiled selector of the table.
type rule struct {
	sel   cascadia.Sel
	entry *Selector
}

// Converter turns HTML into plain text.
type Converter struct {
	opts       Options
	logger     *slog.Logger
	formatters map[string]FormatFunc
	rules      []rule
	layout     layout.Config
	sanitizer  *bluemonday.Policy
}

// New validates opts and compiles the selector table.
func New(opts Options) (*Converter, error) {
	opts.defaults()
	c := &Converter{
		opts:       opts,
		logger:     opts.Logger,
		formatters: mergeFormatters(genericFormatters(), textFormatters(), opts.Formatters),
	}
	c.opts.Selectors = append([]Selector(nil), opts.Selectors...)

	for i := range c.opts.Selectors {
		entry := &c.opts.Selectors[i]
		if _, ok := c.formatters[entry.Format]; !ok {
			c.logger.Warn("htmltext: unknown format", "selector", entry.Selector, "format", entry.Format)
			return nil, fmt.Errorf("%w %q for selector %q", ErrUnknownFormat, entry.Format, entry.Selector)
		}
		group, err := cascadia.ParseGroup(entry.Selector)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrSelector, entry.Selector, err)
		}
		for _, sel := range group {
			c.rules = append(c.rules, rule{sel: sel, entry: entry})
		}
	}

	c.layout = layout.Config{
		Wordwrap:             opts.Wordwrap,
		WhitespaceCharacters: opts.WhitespaceCharacters,
		PreserveNewlines:     opts.PreserveNewlines,
		WrapCharacters:       opts.LongWordSplit.WrapCharacters,
		ForceWrapOnLimit:     opts.LongWordSplit.ForceWrapOnLimit,
		Encode:               encoder(opts.EncodeCharacters),
	}
	if opts.Sanitize {
		c.sanitizer = bluemonday.UGCPolicy()
	}
	return c, nil
}

// Convert converts input with opts (DefaultOptions when nil).
func Convert(input string, opts *Options) (string, error) {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	c, err := New(o)
	if err != nil {
		return "", err
	}
	return c.Convert(input)
}

// Convert returns the plain-text rendering of input.
func (c *Converter) Convert(input string) (string, error) {
	res, err := c.ConvertDocument(input)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// ConvertDocument is Convert plus the document title.
func (c *Converter) ConvertDocument(input string) (*Result, error) {
	input = c.truncate(input)
	if c.sanitizer != nil {
		input = c.sanitizer.Sanitize(input)
	}

	doc, err := parse(input)
	if err != nil {
		return nil, fmt.Errorf("htmltext: parse: %w", err)
	}

	b := layout.New(c.layout)
	w := &walker{c: c, b: b}
	if err := w.start(doc); err != nil {
		return nil, fmt.Errorf("htmltext: convert: %w", err)
	}
	return &Result{Text: b.String(), Title: extract.Title(doc)}, nil
}

// Options returns the options the converter was built with.
func (c *Converter) Options() Options { return c.opts }

// Formats lists the registered formatter names, sorted.
func (c *Converter) Formats() []string {
	names := make([]string, 0, len(c.formatters))
	for name := range c.formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Converter) truncate(input string) string {
	limit := c.opts.Limits.MaxInputLength
	if limit <= 0 || len(input) <= limit {
		return input
	}
	n := utf8.RuneCountInString(input)
	if n <= limit {
		return input
	}
	c.logger.Warn("htmltext: input truncated", "length", n, "limit", limit)
	i := 0
	for pos := range input {
		if i == limit {
			return input[:pos]
		}
		i++
	}
	return input
}

// parse builds the document tree. Input whose content all lands outside
// <body> (a bare <title>, say) is parsed again wrapped in html/body.
func parse(input string) (*html.Node, error) {
	doc, err := html.Parse(strings.NewReader(input))
	if err != nil {
		return nil, err
	}
	if body := extract.Body(doc); body != nil && body.FirstChild == nil && strings.TrimSpace(input) != "" {
		return html.Parse(strings.NewReader("<html><body>" + input + "</body></html>"))
	}
	return doc, nil
}

// pick returns the selector entry for n: highest specificity wins, ties go
// to the entry listed first.
func (c *Converter) pick(n *html.Node) *Selector {
	var (
		best *rule
		spec cascadia.Specificity
	)
	for i := range c.rules {
		r := &c.rules[i]
		if !r.sel.Match(n) {
			continue
		}
		s := r.sel.Specificity()
		if best == nil || spec.Less(s) {
			best, spec = r, s
		}
	}
	if best == nil {
		return nil
	}
	return best.entry
}

func mergeFormatters(sets ...map[string]FormatFunc) map[string]FormatFunc {
	out := make(map[string]FormatFunc)
	for _, set := range sets {
		for name, fn := range set {
			out[name] = fn
		}
	}
	return out
}

// encoder builds the EncodeCharacters replacement. Longer keys are tried
// first so that overlapping keys resolve the same way on every run.
func encoder(chars map[string]string) func(string) string {
	if len(chars) == 0 {
		return nil
	}
	keys := make([]string, 0, len(chars))
	for k := range chars {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, k, chars[k])
	}
	return strings.NewReplacer(pairs...).Replace
}
