package layout

import "strings"

// DefaultWhitespace is the whitespace alphabet used when Config leaves it empty:
// space, tab, CR, LF, form feed and zero-width space.
const DefaultWhitespace = " \t\r\n\f\u200b"

// whitespace tokenizes raw text against an explicit whitespace alphabet.
// With preserveNewlines the newline is removed from the alphabet and
// surfaces as its own token instead of being collapsed.
type whitespace struct {
	set              map[rune]bool
	preserveNewlines bool
}

func newWhitespace(chars string, preserveNewlines bool) *whitespace {
	if chars == "" {
		chars = DefaultWhitespace
	}
	if preserveNewlines {
		chars = strings.ReplaceAll(chars, "\n", "")
	}
	set := make(map[rune]bool, len(chars))
	for _, r := range chars {
		set[r] = true
	}
	return &whitespace{set: set, preserveNewlines: preserveNewlines}
}

func (w *whitespace) isSpace(r rune) bool { return w.set[r] }

func (w *whitespace) leading(text string) bool {
	for _, r := range text {
		return w.isSpace(r)
	}
	return false
}

func (w *whitespace) trailing(text string) bool {
	rs := []rune(text)
	return len(rs) > 0 && w.isSpace(rs[len(rs)-1])
}

// words splits text into maximal runs of non-whitespace. In preserve mode
// every newline is also emitted as a "\n" token.
func (w *whitespace) words(text string) []string {
	var (
		tokens []string
		start  = -1
	)
	for i, r := range text {
		switch {
		case w.preserveNewlines && r == '\n':
			if start >= 0 {
				tokens = append(tokens, text[start:i])
				start = -1
			}
			tokens = append(tokens, "\n")
		case w.isSpace(r):
			if start >= 0 {
				tokens = append(tokens, text[start:i])
				start = -1
			}
		default:
			if start < 0 {
				start = i
			}
		}
	}
	if start >= 0 {
		tokens = append(tokens, text[start:])
	}
	return tokens
}

// literalTokens splits text into "\n" tokens and the runs between them.
func literalTokens(text string) []string {
	var tokens []string
	for text != "" {
		i := strings.IndexByte(text, '\n')
		switch {
		case i < 0:
			tokens = append(tokens, text)
			text = ""
		case i == 0:
			tokens = append(tokens, "\n")
			text = text[1:]
		default:
			tokens = append(tokens, text[:i])
			text = text[i:]
		}
	}
	return tokens
}

// shrinkWrapAdd collapses whitespace in text and feeds the words to b.
// The first word sticks to the previous one unless whitespace separates them.
func (w *whitespace) shrinkWrapAdd(text string, b *inlineText, transform func(string) string, noWrap bool) {
	if text == "" {
		return
	}
	if transform == nil {
		transform = identity
	}
	stashed := b.stashedSpace
	tokens := w.words(text)
	for i, tok := range tokens {
		switch {
		case tok == "\n" && w.preserveNewlines:
			b.startNewLine(1)
		case i == 0 && !stashed && !w.leading(text):
			b.concatWord(transform(tok), noWrap)
		default:
			b.pushWord(transform(tok), noWrap)
		}
	}
	b.stashedSpace = (stashed && len(tokens) == 0) || w.trailing(text)
}

// addLiteral feeds text to b without collapsing anything; only "\n" breaks it.
func (w *whitespace) addLiteral(text string, b *inlineText, noWrap bool) {
	if text == "" {
		return
	}
	stashed := b.stashedSpace
	tokens := literalTokens(text)
	for i, tok := range tokens {
		switch {
		case tok == "\n":
			b.startNewLine(1)
		case i == 0 && !stashed:
			b.concatWord(tok, noWrap)
		default:
			b.pushWord(tok, noWrap)
		}
	}
	b.stashedSpace = stashed && len(tokens) == 0
}

// containsWords reports whether text has anything outside the whitespace alphabet.
func (w *whitespace) containsWords(text string) bool {
	// A lone newline always counts as a word once newlines are preserved.
	if !w.set['\n'] && text == "\n" {
		return true
	}
	for _, r := range text {
		if !w.isSpace(r) {
			return true
		}
	}
	return false
}

// countNewlinesNoWords returns the number of newlines in text, or 0 as soon
// as any word character shows up.
func (w *whitespace) countNewlinesNoWords(text string) int {
	n := 0
	for _, r := range text {
		switch {
		case r == '\n':
			n++
		case !w.isSpace(r):
			return 0
		}
	}
	return n
}

func identity(s string) string { return s }
