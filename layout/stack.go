package layout

// Kind identifies the nesting scope a stack item represents.
type Kind int

const (
	KindBlock Kind = iota
	KindList
	KindListItem
	KindTable
	KindTableRow
	KindTableCell
)

func (k Kind) String() string {
	switch k {
	case KindBlock:
		return "block"
	case KindList:
		return "list"
	case KindListItem:
		return "list item"
	case KindTable:
		return "table"
	case KindTableRow:
		return "table row"
	case KindTableCell:
		return "table cell"
	default:
		return "unknown"
	}
}

// Align is the alignment of list item prefixes within the prefix column.
type Align string

const (
	AlignLeft  Align = "left"
	AlignRight Align = "right"
)

// stackItem is one open scope. Blocks, lists, list items and table cells
// carry text (inline != nil); tables and rows only collect cells.
type stackItem struct {
	kind Kind
	next *stackItem

	isPre    bool
	isNoWrap bool

	inline  *inlineText
	raw     string
	stashed int
	leading int

	// lists
	maxPrefixLength int
	prefixAlign     Align
	interRow        int

	// list items
	prefix string

	// tables and rows
	rows  [][]*TableCell
	cells []*TableCell
}

func newStackItem(kind Kind, next *stackItem) *stackItem {
	s := &stackItem{kind: kind, next: next}
	if next != nil {
		s.isPre = next.isPre
		s.isNoWrap = next.isNoWrap
	}
	return s
}

// newTextItem creates a text-bearing item wrapping at maxLineLength.
func newTextItem(cfg *Config, kind Kind, next *stackItem, leading, maxLineLength int) *stackItem {
	s := newStackItem(kind, next)
	s.leading = leading
	s.inline = newInlineText(cfg, maxLineLength)
	return s
}

func (s *stackItem) root() *stackItem {
	for s.next != nil {
		s = s.next
	}
	return s
}

func (s *stackItem) hasText() bool { return s.inline != nil }

// text flattens the item: finalized raw text followed by the inline content.
func (s *stackItem) text() string {
	if s.inline.isEmpty() {
		return s.raw
	}
	return s.raw + s.inline.String()
}
