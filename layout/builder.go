// CLAUDE:SUMMARY Stack-based block/list/table text builder: the open/close protocol formatters drive to lay out plain text.
// Package layout turns a balanced sequence of open/add/close calls into
// word-wrapped plain text.
//
// A Builder keeps a chain of open scopes (blocks, lists, list items, tables,
// rows, cells). Inline text goes through a whitespace processor into the
// innermost text scope; closing a scope flattens its text and merges it into
// the parent with the requested line breaks around it. Tables are collected
// cell by cell and rendered by a pluggable TableFunc.
//
// Usage:
//
//	b := layout.New(layout.Config{Wordwrap: 80})
//	_ = b.OpenBlock(layout.BlockOptions{LeadingLineBreaks: 2})
//	b.AddInline("Hello   world", false)
//	_ = b.CloseBlock(2, nil)
//	fmt.Println(b.String())
//
// A Builder serves a single conversion and is not safe for concurrent use.
package layout

import "strings"

// Config holds the layout settings of one conversion.
type Config struct {
	// Wordwrap is the line width in characters. Zero or negative means unlimited.
	Wordwrap int `json:"wordwrap" yaml:"wordwrap"`

	// WhitespaceCharacters is the alphabet collapsed between words
	// (default: DefaultWhitespace).
	WhitespaceCharacters string `json:"whitespace_characters" yaml:"whitespace_characters"`

	// PreserveNewlines keeps "\n" in inline text as line breaks.
	PreserveNewlines bool `json:"preserve_newlines" yaml:"preserve_newlines"`

	// WrapCharacters lists the characters a too-long word may be split after,
	// in order of preference.
	WrapCharacters string `json:"wrap_characters" yaml:"wrap_characters"`

	// ForceWrapOnLimit cuts a too-long word at the line limit when no wrap
	// character helps.
	ForceWrapOnLimit bool `json:"force_wrap_on_limit" yaml:"force_wrap_on_limit"`

	// Encode is applied to every word after the word transforms.
	Encode func(string) string `json:"-" yaml:"-"`
}

// BlockOptions configures OpenBlock.
type BlockOptions struct {
	LeadingLineBreaks  int
	ReservedLineLength int
	IsPre              bool
}

// ListOptions configures OpenList.
type ListOptions struct {
	MaxPrefixLength    int
	PrefixAlign        Align
	InterRowLineBreaks int
	LeadingLineBreaks  int
}

// minLineLength is the narrowest width a nested scope may be given.
const minLineLength = 20

type wordTransform struct {
	fn   func(string) string
	next *wordTransform
}

// Builder assembles plain text from open/close calls.
type Builder struct {
	cfg        Config
	ws         *whitespace
	top        *stackItem
	transforms *wordTransform
}

// New creates a Builder with an empty root block.
func New(cfg Config) *Builder {
	return &Builder{
		cfg: cfg,
		ws:  newWhitespace(cfg.WhitespaceCharacters, cfg.PreserveNewlines),
		top: newTextItem(&cfg, KindBlock, nil, 1, 0),
	}
}

// PushWordTransform adds fn on top of the word transform stack. The most
// recently pushed transform runs first.
func (b *Builder) PushWordTransform(fn func(string) string) {
	b.transforms = &wordTransform{fn: fn, next: b.transforms}
}

// PopWordTransform removes and returns the top word transform, or nil.
func (b *Builder) PopWordTransform() func(string) string {
	if b.transforms == nil {
		return nil
	}
	fn := b.transforms.fn
	b.transforms = b.transforms.next
	return fn
}

func (b *Builder) StartNoWrap() { b.top.isNoWrap = true }
func (b *Builder) StopNoWrap()  { b.top.isNoWrap = false }

func (b *Builder) wordTransform() func(string) string {
	chain := b.transforms
	encode := b.cfg.Encode
	switch {
	case chain == nil && encode == nil:
		return nil
	case chain == nil:
		return encode
	}
	return func(s string) string {
		for t := chain; t != nil; t = t.next {
			s = t.fn(s)
		}
		if encode != nil {
			s = encode(s)
		}
		return s
	}
}

// AddLineBreak breaks the current line.
func (b *Builder) AddLineBreak() {
	if !b.top.hasText() {
		return
	}
	if b.top.isPre {
		b.top.raw += "\n"
		return
	}
	b.top.inline.startNewLine(1)
}

// AddWordBreakOpportunity lets the next glued fragment start a new line if it
// does not fit.
func (b *Builder) AddWordBreakOpportunity() {
	if b.top.hasText() {
		b.top.inline.wordBreak = true
	}
}

// AddInline adds text to the current scope, collapsing whitespace and
// wrapping words. noWordTransform bypasses word transforms and encoding.
// Text outside a text scope is ignored.
func (b *Builder) AddInline(str string, noWordTransform bool) {
	item := b.top
	if !item.hasText() {
		return
	}
	if item.isPre {
		item.raw += str
		return
	}
	if str == "" || (item.stashed > 0 && !b.ws.containsWords(str)) {
		return
	}
	if b.cfg.PreserveNewlines {
		if n := b.ws.countNewlinesNoWords(str); n > 0 {
			item.inline.startNewLine(n)
			return
		}
	}
	if item.stashed > 0 {
		item.inline.startNewLine(item.stashed)
	}
	var transform func(string) string
	if !noWordTransform {
		transform = b.wordTransform()
	}
	b.ws.shrinkWrapAdd(str, item.inline, transform, item.isNoWrap)
	item.stashed = 0
}

// AddLiteral adds text that is only broken at "\n": no whitespace
// collapsing, no word transforms.
func (b *Builder) AddLiteral(str string) {
	item := b.top
	if !item.hasText() || str == "" {
		return
	}
	if item.isPre {
		item.raw += str
		return
	}
	if item.stashed > 0 {
		item.inline.startNewLine(item.stashed)
	}
	b.ws.addLiteral(str, item.inline, item.isNoWrap)
	item.stashed = 0
}

// OpenBlock starts a block inside the current text scope.
func (b *Builder) OpenBlock(opts BlockOptions) error {
	parent := b.top
	if !parent.hasText() {
		return &StructuralError{Op: "OpenBlock", Want: "text scope", Got: parent.kind}
	}
	width := max(minLineLength, parent.inline.maxLineLength-opts.ReservedLineLength)
	b.top = newTextItem(&b.cfg, KindBlock, parent, opts.LeadingLineBreaks, width)
	if opts.IsPre {
		b.top.isPre = true
	}
	return nil
}

// CloseBlock finishes the current block and merges its text, passed through
// blockTransform when set, into the parent.
func (b *Builder) CloseBlock(trailingLineBreaks int, blockTransform func(string) string) error {
	block, err := b.pop("CloseBlock", KindBlock)
	if err != nil {
		return err
	}
	text := block.text()
	if blockTransform != nil {
		text = blockTransform(text)
	}
	b.addText(b.top, text, block.leading, max(block.stashed, trailingLineBreaks))
	return nil
}

// OpenList starts a list inside the current text scope.
func (b *Builder) OpenList(opts ListOptions) error {
	parent := b.top
	if !parent.hasText() {
		return &StructuralError{Op: "OpenList", Want: "text scope", Got: parent.kind}
	}
	list := newTextItem(&b.cfg, KindList, parent, opts.LeadingLineBreaks, parent.inline.maxLineLength)
	list.maxPrefixLength = opts.MaxPrefixLength
	list.prefixAlign = opts.PrefixAlign
	list.interRow = opts.InterRowLineBreaks
	b.top = list
	return nil
}

// OpenListItem starts an item of the current list.
func (b *Builder) OpenListItem(prefix string) error {
	list := b.top
	if list.kind != KindList {
		return &StructuralError{Op: "OpenListItem", Want: KindList.String(), Got: list.kind}
	}
	prefixLength := max(runeLen(prefix), list.maxPrefixLength)
	width := max(minLineLength, list.inline.maxLineLength-prefixLength)
	item := newTextItem(&b.cfg, KindListItem, list, list.interRow, width)
	item.prefix = prefix
	b.top = item
	return nil
}

// CloseListItem finishes the current item: the prefix is padded to the
// prefix column and continuation lines are indented under the item text.
func (b *Builder) CloseListItem() error {
	item, err := b.pop("CloseListItem", KindListItem)
	if err != nil {
		return err
	}
	list := b.top
	prefixLength := max(runeLen(item.prefix), list.maxPrefixLength)
	prefix := padRight(item.prefix, prefixLength)
	if list.prefixAlign == AlignRight {
		prefix = padLeft(item.prefix, prefixLength)
	}
	indent := "\n" + padRight("", prefixLength)
	text := prefix + replaceNewlines(item.text(), indent)
	b.addText(list, text, item.leading, max(item.stashed, list.interRow))
	return nil
}

// CloseList finishes the current list and merges it into the parent.
func (b *Builder) CloseList(trailingLineBreaks int) error {
	list, err := b.pop("CloseList", KindList)
	if err != nil {
		return err
	}
	b.addText(b.top, list.text(), list.leading, trailingLineBreaks)
	return nil
}

// OpenTable starts collecting a table inside the current text scope.
func (b *Builder) OpenTable() error {
	if !b.top.hasText() {
		return &StructuralError{Op: "OpenTable", Want: "text scope", Got: b.top.kind}
	}
	b.top = newStackItem(KindTable, b.top)
	return nil
}

func (b *Builder) OpenTableRow() error {
	if b.top.kind != KindTable {
		return &StructuralError{Op: "OpenTableRow", Want: KindTable.String(), Got: b.top.kind}
	}
	b.top = newStackItem(KindTableRow, b.top)
	return nil
}

// OpenTableCell starts a cell wrapping at maxColumnWidth (0 falls back to
// the configured wordwrap).
func (b *Builder) OpenTableCell(maxColumnWidth int) error {
	if b.top.kind != KindTableRow {
		return &StructuralError{Op: "OpenTableCell", Want: KindTableRow.String(), Got: b.top.kind}
	}
	b.top = newTextItem(&b.cfg, KindTableCell, b.top, 0, maxColumnWidth)
	return nil
}

// CloseTableCell finishes the current cell and appends it to its row.
func (b *Builder) CloseTableCell(colspan, rowspan int) error {
	cell, err := b.pop("CloseTableCell", KindTableCell)
	if err != nil {
		return err
	}
	row := b.top
	row.cells = append(row.cells, &TableCell{
		Rowspan: max(1, rowspan),
		Colspan: max(1, colspan),
		Text:    trimNewlines(cell.text()),
	})
	return nil
}

func (b *Builder) CloseTableRow() error {
	row, err := b.pop("CloseTableRow", KindTableRow)
	if err != nil {
		return err
	}
	b.top.rows = append(b.top.rows, row.cells)
	return nil
}

// CloseTable renders the collected rows with print and merges the result
// into the parent. A nil render uses TablePrinter(0, 3).
func (b *Builder) CloseTable(render TableFunc, leadingLineBreaks, trailingLineBreaks int) error {
	table, err := b.pop("CloseTable", KindTable)
	if err != nil {
		return err
	}
	if render == nil {
		render = TablePrinter(0, 3)
	}
	if out := render(table.rows); out != "" {
		b.addText(b.top, out, leadingLineBreaks, trailingLineBreaks)
	}
	return nil
}

// String returns the text of the root block.
func (b *Builder) String() string {
	return b.top.root().text()
}

// pop removes the current scope after checking its kind.
func (b *Builder) pop(op string, want Kind) (*stackItem, error) {
	item := b.top
	if item.kind != want {
		return nil, &StructuralError{Op: op, Want: want.String(), Got: item.kind}
	}
	if item.next == nil {
		return nil, &StructuralError{Op: op, Want: want.String(), Got: item.kind, Root: true}
	}
	b.top = item.next
	return item, nil
}

// addText merges child text into parent. Line breaks owed by the parent and
// wanted by the child are combined with max, never summed. A parent without
// visible text takes the child text as is and defers the breaks to its own
// leading count.
func (b *Builder) addText(parent *stackItem, text string, leading, trailing int) {
	parentText := parent.text()
	breaks := max(parent.stashed, leading)
	parent.inline.clear()
	if !isBlank(parentText) {
		parent.raw = parentText + repeatNewline(breaks) + text
	} else {
		parent.raw = text
		parent.leading = breaks
	}
	parent.stashed = trailing
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }

func trimNewlines(s string) string { return strings.Trim(s, "\n") }

func repeatNewline(n int) string { return strings.Repeat("\n", max(0, n)) }

func replaceNewlines(s, with string) string { return strings.ReplaceAll(s, "\n", with) }
