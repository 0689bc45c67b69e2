// CLAUDE:SUMMARY Converter options: limits, base elements, selector → formatter table with per-format options, and the default table.
package htmltext

import (
	"fmt"
	"log/slog"

	"golang.org/x/net/html"
	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/htmltext/extract"
	"github.com/hazyhaar/htmltext/layout"
)

// Options configures a Converter. Start from DefaultOptions: the zero value
// disables wrapping and uses the default selector table.
type Options struct {
	// BaseElements chooses the part of the document to convert.
	BaseElements BaseElements `json:"base_elements" yaml:"base_elements"`

	// EncodeCharacters replaces substrings in every word after the word
	// transforms. Text added without word transforms (link targets) is left
	// as is.
	EncodeCharacters map[string]string `json:"encode_characters,omitempty" yaml:"encode_characters"`

	// Formatters adds or overrides formatters by name.
	Formatters map[string]FormatFunc `json:"-" yaml:"-"`

	Limits        Limits        `json:"limits" yaml:"limits"`
	LongWordSplit LongWordSplit `json:"long_word_split" yaml:"long_word_split"`

	// PreserveNewlines keeps "\n" found in text nodes as line breaks.
	PreserveNewlines bool `json:"preserve_newlines" yaml:"preserve_newlines"`

	// Selectors maps CSS selectors to formatters. The most specific matching
	// selector wins; among equals the first one listed.
	Selectors []Selector `json:"selectors" yaml:"-"`

	// WhitespaceCharacters is the alphabet collapsed between words.
	WhitespaceCharacters string `json:"whitespace_characters" yaml:"whitespace_characters"`

	// Wordwrap is the line width. Zero or negative disables wrapping.
	Wordwrap int `json:"wordwrap" yaml:"wordwrap"`

	// Sanitize runs the input through a UGC sanitizing policy before parsing.
	Sanitize bool `json:"sanitize" yaml:"sanitize"`

	// Logger for truncation warnings and limit diagnostics.
	Logger *slog.Logger `json:"-" yaml:"-"`
}

// BaseElements selects the elements conversion starts from.
type BaseElements struct {
	Selectors []string `json:"selectors" yaml:"selectors"`

	// OrderBy is "selectors" (all matches of the first selector, then the
	// second...) or "occurrence" (document order).
	OrderBy extract.Order `json:"order_by" yaml:"order_by"`

	// ReturnDomByDefault converts the whole body when no base element matches.
	ReturnDomByDefault bool `json:"return_dom_by_default" yaml:"return_dom_by_default"`
}

// Limits bounds the work done on large or hostile documents. Zero means
// no limit.
type Limits struct {
	// Ellipsis is inserted where content was dropped by MaxChildNodes or MaxDepth.
	Ellipsis        string `json:"ellipsis" yaml:"ellipsis"`
	MaxBaseElements int    `json:"max_base_elements" yaml:"max_base_elements"`
	MaxChildNodes   int    `json:"max_child_nodes" yaml:"max_child_nodes"`
	MaxDepth        int    `json:"max_depth" yaml:"max_depth"`
	// MaxInputLength truncates the input, in characters, before parsing.
	MaxInputLength int `json:"max_input_length" yaml:"max_input_length"`
}

// LongWordSplit controls how words longer than the line are cut.
type LongWordSplit struct {
	ForceWrapOnLimit bool   `json:"force_wrap_on_limit" yaml:"force_wrap_on_limit"`
	WrapCharacters   string `json:"wrap_characters" yaml:"wrap_characters"`
}

// Selector binds a CSS selector to a formatter.
type Selector struct {
	Selector string        `json:"selector" yaml:"selector"`
	Format   string        `json:"format" yaml:"format"`
	Options  FormatOptions `json:"options" yaml:"options"`
}

// FormatOptions are handed to the formatter of a matching selector. Each
// formatter reads the fields that concern it; nil pointers fall back to the
// formatter's own default.
type FormatOptions struct {
	LeadingLineBreaks  *int `json:"leading_line_breaks,omitempty" yaml:"leading_line_breaks"`
	TrailingLineBreaks *int `json:"trailing_line_breaks,omitempty" yaml:"trailing_line_breaks"`

	// anchor, image
	BaseURL                  string    `json:"base_url,omitempty" yaml:"base_url"`
	HideLinkHrefIfSameAsText bool      `json:"hide_link_href_if_same_as_text,omitempty" yaml:"hide_link_href_if_same_as_text"`
	IgnoreHref               bool      `json:"ignore_href,omitempty" yaml:"ignore_href"`
	LinkBrackets             *Brackets `json:"link_brackets,omitempty" yaml:"link_brackets"`
	NoAnchorURL              bool      `json:"no_anchor_url,omitempty" yaml:"no_anchor_url"`
	// PathRewrite rewrites href/src values before BaseURL is applied.
	PathRewrite func(path string, n *html.Node) string `json:"-" yaml:"-"`

	// unorderedList; empty means " * ".
	ItemPrefix string `json:"item_prefix,omitempty" yaml:"item_prefix"`

	// heading
	Uppercase bool `json:"uppercase,omitempty" yaml:"uppercase"`

	// horizontalLine
	Length *int `json:"length,omitempty" yaml:"length"`

	// blockquote
	TrimEmptyLines bool `json:"trim_empty_lines,omitempty" yaml:"trim_empty_lines"`

	// dataTable, borderedTable
	UppercaseHeaderCells *bool `json:"uppercase_header_cells,omitempty" yaml:"uppercase_header_cells"`
	MaxColumnWidth       int   `json:"max_column_width,omitempty" yaml:"max_column_width"`
	ColSpacing           *int  `json:"col_spacing,omitempty" yaml:"col_spacing"`
	RowSpacing           *int  `json:"row_spacing,omitempty" yaml:"row_spacing"`

	// inlineString, blockString
	String string `json:"string,omitempty" yaml:"string"`
	// inlineSurround
	Prefix string `json:"prefix,omitempty" yaml:"prefix"`
	Suffix string `json:"suffix,omitempty" yaml:"suffix"`

	// Extra carries settings for custom formatters.
	Extra map[string]any `json:"extra,omitempty" yaml:"extra"`
}

// Brackets surround link targets and image sources. A nil *Brackets means
// no brackets.
type Brackets struct {
	Left  string `json:"left" yaml:"left"`
	Right string `json:"right" yaml:"right"`
}

// UnmarshalYAML accepts a two-item sequence (["[", "]"]), a mapping
// ({left, right}) or a boolean (false for no brackets, true for "[" "]").
func (b *Brackets) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var on bool
		if err := value.Decode(&on); err != nil {
			return fmt.Errorf("link_brackets: %w", err)
		}
		*b = Brackets{}
		if on {
			*b = Brackets{Left: "[", Right: "]"}
		}
	case yaml.SequenceNode:
		var pair []string
		if err := value.Decode(&pair); err != nil {
			return fmt.Errorf("link_brackets: %w", err)
		}
		if len(pair) != 2 {
			return fmt.Errorf("link_brackets: want 2 items, got %d", len(pair))
		}
		*b = Brackets{Left: pair[0], Right: pair[1]}
	default:
		type plain Brackets
		var p plain
		if err := value.Decode(&p); err != nil {
			return fmt.Errorf("link_brackets: %w", err)
		}
		*b = Brackets(p)
	}
	return nil
}

// Selector returns the entry for sel, appending an empty one if missing.
// The pointer is valid until the next append to o.Selectors.
func (o *Options) Selector(sel string) *Selector {
	for i := range o.Selectors {
		if o.Selectors[i].Selector == sel {
			return &o.Selectors[i]
		}
	}
	o.Selectors = append(o.Selectors, Selector{Selector: sel})
	return &o.Selectors[len(o.Selectors)-1]
}

func (o *Options) defaults() {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Selectors == nil {
		o.Selectors = DefaultSelectors()
	}
	if o.BaseElements.Selectors == nil {
		o.BaseElements.Selectors = []string{"body"}
	}
	if o.WhitespaceCharacters == "" {
		o.WhitespaceCharacters = layout.DefaultWhitespace
	}
}

// DefaultOptions returns the standard configuration: 80 columns, the whole
// body, and the default selector table.
func DefaultOptions() Options {
	return Options{
		BaseElements: BaseElements{
			Selectors:          []string{"body"},
			OrderBy:            extract.OrderSelectors,
			ReturnDomByDefault: true,
		},
		Limits: Limits{
			Ellipsis:       "...",
			MaxInputLength: 1 << 24,
		},
		Selectors:            DefaultSelectors(),
		WhitespaceCharacters: layout.DefaultWhitespace,
		Wordwrap:             80,
	}
}

// DefaultSelectors returns a fresh copy of the default selector table.
func DefaultSelectors() []Selector {
	block := func(sel string) Selector {
		return Selector{Selector: sel, Format: "block", Options: breaks(1, 1)}
	}
	heading := func(sel string, leading int) Selector {
		o := breaks(leading, 2)
		o.Uppercase = true
		return Selector{Selector: sel, Format: "heading", Options: o}
	}

	anchor := FormatOptions{LinkBrackets: &Brackets{Left: "[", Right: "]"}, NoAnchorURL: true}
	blockquote := breaks(2, 2)
	blockquote.TrimEmptyLines = true
	table := breaks(2, 2)
	table.ColSpacing = intp(3)
	table.RowSpacing = intp(0)
	table.MaxColumnWidth = 60
	table.UppercaseHeaderCells = boolp(true)
	ul := breaks(2, 2)
	ul.ItemPrefix = " * "

	return []Selector{
		{Selector: "*", Format: "inline"},
		{Selector: "a", Format: "anchor", Options: anchor},
		block("article"),
		block("aside"),
		{Selector: "blockquote", Format: "blockquote", Options: blockquote},
		{Selector: "br", Format: "lineBreak"},
		block("div"),
		block("footer"),
		block("form"),
		heading("h1", 3),
		heading("h2", 3),
		heading("h3", 3),
		heading("h4", 2),
		heading("h5", 2),
		heading("h6", 2),
		block("header"),
		{Selector: "hr", Format: "horizontalLine", Options: breaks(2, 2)},
		{Selector: "img", Format: "image", Options: FormatOptions{LinkBrackets: &Brackets{Left: "[", Right: "]"}}},
		block("main"),
		block("nav"),
		{Selector: "ol", Format: "orderedList", Options: breaks(2, 2)},
		{Selector: "p", Format: "paragraph", Options: breaks(2, 2)},
		{Selector: "pre", Format: "pre", Options: breaks(2, 2)},
		{Selector: "script", Format: "skip"},
		block("section"),
		{Selector: "style", Format: "skip"},
		{Selector: "table", Format: "table", Options: table},
		{Selector: "ul", Format: "unorderedList", Options: ul},
		{Selector: "wbr", Format: "wbr"},
	}
}

func breaks(leading, trailing int) FormatOptions {
	return FormatOptions{LeadingLineBreaks: intp(leading), TrailingLineBreaks: intp(trailing)}
}

func intp(n int) *int    { return &n }
func boolp(b bool) *bool { return &b }

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
