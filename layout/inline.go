package layout

import (
	"math"
	"strings"
	"unicode/utf8"
)

// inlineText accumulates words into lines no longer than maxLineLength.
// Lengths are counted in runes.
type inlineText struct {
	lines         [][]string
	line          []string
	avail         int
	maxLineLength int

	wrapChars []rune
	forceWrap bool

	wordBreak    bool
	stashedSpace bool
}

// newInlineText returns a builder for the given width. Zero falls back to
// cfg.Wordwrap, and a non-positive Wordwrap means unlimited.
func newInlineText(cfg *Config, maxLineLength int) *inlineText {
	if maxLineLength == 0 {
		maxLineLength = cfg.Wordwrap
		if maxLineLength <= 0 {
			maxLineLength = math.MaxInt
		}
	}
	return &inlineText{
		avail:         maxLineLength,
		maxLineLength: maxLineLength,
		wrapChars:     []rune(cfg.WrapCharacters),
		forceWrap:     cfg.ForceWrapOnLimit,
	}
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }

func (b *inlineText) pushWord(word string, noWrap bool) {
	if b.avail <= 0 && !noWrap {
		b.startNewLine(1)
	}
	lineStart := len(b.line) == 0
	cost := runeLen(word)
	if !lineStart {
		cost++
	}
	if cost <= b.avail || noWrap {
		b.line = append(b.line, word)
		b.avail -= cost
		return
	}

	parts := b.splitLongWord(word)
	if !lineStart {
		b.startNewLine(1)
	}
	for i, part := range parts {
		if i > 0 {
			b.startNewLine(1)
		}
		b.line = append(b.line, part)
		b.avail -= runeLen(part)
	}
}

// popWord removes the last word of the line in progress.
func (b *inlineText) popWord() (string, bool) {
	if len(b.line) == 0 {
		return "", false
	}
	last := b.line[len(b.line)-1]
	b.line = b.line[:len(b.line)-1]
	cost := runeLen(last)
	if len(b.line) > 0 {
		cost++
	}
	b.avail += cost
	return last, true
}

// concatWord glues word onto the last word of the line in progress, unless a
// break opportunity is armed and the word would not fit.
func (b *inlineText) concatWord(word string, noWrap bool) {
	if b.wordBreak && runeLen(word) > b.avail {
		b.pushWord(word, noWrap)
		b.wordBreak = false
		return
	}
	if last, ok := b.popWord(); ok {
		word = last + word
	}
	b.pushWord(word, noWrap)
}

// startNewLine completes the line in progress and adds n-1 empty lines after it.
func (b *inlineText) startNewLine(n int) {
	b.lines = append(b.lines, b.line)
	for i := 1; i < n; i++ {
		b.lines = append(b.lines, nil)
	}
	b.line = nil
	b.avail = b.maxLineLength
}

func (b *inlineText) isEmpty() bool {
	return len(b.lines) == 0 && len(b.line) == 0
}

func (b *inlineText) clear() {
	b.lines = nil
	b.line = nil
	b.avail = b.maxLineLength
}

func (b *inlineText) String() string {
	out := make([]string, 0, len(b.lines)+1)
	for _, words := range b.lines {
		out = append(out, strings.Join(words, " "))
	}
	out = append(out, strings.Join(b.line, " "))
	return strings.Join(out, "\n")
}

// splitLongWord cuts word into pieces of at most maxLineLength runes,
// preferring to cut after the first wrap character (in priority order) found
// looking back from the limit. The priority index only moves forward.
func (b *inlineText) splitLongWord(word string) []string {
	var (
		parts []string
		rs    = []rune(word)
		idx   = 0
	)
	for len(rs) > b.maxLineLength {
		first, rest := rs[:b.maxLineLength], rs[b.maxLineLength:]
		split := -1
		if idx < len(b.wrapChars) {
			split = lastIndexRune(first, b.wrapChars[idx])
		}
		if split > -1 {
			parts = append(parts, string(first[:split+1]))
			rs = rs[split+1:]
			continue
		}
		idx++
		if idx < len(b.wrapChars) {
			continue
		}
		if b.forceWrap {
			parts = append(parts, string(first))
			rs = rest
			if len(rs) > b.maxLineLength {
				continue
			}
		}
		break
	}
	return append(parts, string(rs))
}

func lastIndexRune(rs []rune, r rune) int {
	for i := len(rs) - 1; i >= 0; i-- {
		if rs[i] == r {
			return i
		}
	}
	return -1
}
