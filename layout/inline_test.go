package layout

import (
	"reflect"
	"strings"
	"testing"
)

func newTestInline(width int, wrapChars string, force bool) *inlineText {
	return newInlineText(&Config{Wordwrap: width, WrapCharacters: wrapChars, ForceWrapOnLimit: force}, 0)
}

func TestInline_UnlimitedWidth(t *testing.T) {
	b := newInlineText(&Config{}, 0)
	words := []string{"lorem", "ipsum", "dolor", "sit", "amet"}
	for _, w := range words {
		b.pushWord(w, false)
	}
	if got, want := b.String(), strings.Join(words, " "); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestInline_PushPopRestoresState(t *testing.T) {
	b := newTestInline(20, "", false)
	b.pushWord("abc", false)
	before := b.avail
	b.pushWord("de", false)
	if b.avail != before-3 {
		t.Fatalf("avail after push: got %d, want %d", b.avail, before-3)
	}
	w, ok := b.popWord()
	if !ok || w != "de" {
		t.Fatalf("popWord: got %q, %v", w, ok)
	}
	if b.avail != before {
		t.Errorf("avail after pop: got %d, want %d", b.avail, before)
	}
	if got := b.String(); got != "abc" {
		t.Errorf("got %q, want %q", got, "abc")
	}

	b.popWord()
	if _, ok := b.popWord(); ok {
		t.Error("popWord on empty line should report false")
	}
	if b.avail != 20 {
		t.Errorf("avail on empty line: got %d, want 20", b.avail)
	}
}

func TestInline_WrapsAtWidth(t *testing.T) {
	b := newTestInline(80, "", false)
	for _, w := range strings.Fields("111111111 222222222 333333333 444444444 555555555 666666666 777777777 888888888 999999999") {
		b.pushWord(w, false)
	}
	want := "111111111 222222222 333333333 444444444 555555555 666666666 777777777 888888888\n999999999"
	if got := b.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	for _, line := range b.lines {
		if n := runeLen(strings.Join(line, " ")); n > 80 {
			t.Errorf("completed line has %d chars", n)
		}
	}
}

func TestInline_NoWrapOverflows(t *testing.T) {
	b := newTestInline(20, "", false)
	for _, w := range []string{"aaaaaaaaaa", "bbbbbbbbbb", "cccccccccc"} {
		b.pushWord(w, true)
	}
	if got, want := b.String(), "aaaaaaaaaa bbbbbbbbbb cccccccccc"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if b.avail >= 0 {
		t.Errorf("avail should go negative after a forced overflow, got %d", b.avail)
	}
	b.pushWord("d", false)
	if got, want := b.String(), "aaaaaaaaaa bbbbbbbbbb cccccccccc\nd"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestInline_ConcatWord(t *testing.T) {
	b := newTestInline(20, "", false)
	b.pushWord("foo", false)
	b.concatWord("bar", false)
	if got := b.String(); got != "foobar" {
		t.Errorf("got %q, want %q", got, "foobar")
	}

	b = newTestInline(20, "", false)
	b.concatWord("solo", false)
	if got := b.String(); got != "solo" {
		t.Errorf("concat on empty line: got %q", got)
	}
}

func TestInline_WordBreakOpportunity(t *testing.T) {
	b := newTestInline(20, "", false)
	b.pushWord("aaaaaaaaaaaaaaa", false)
	b.wordBreak = true
	b.concatWord("bbbbbbbbbb", false)
	if got, want := b.String(), "aaaaaaaaaaaaaaa\nbbbbbbbbbb"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if b.wordBreak {
		t.Error("break opportunity should be consumed")
	}

	b = newTestInline(20, "", false)
	b.pushWord("aaaaaaaaaaaaaaa", false)
	b.concatWord("bbbbbbbbbb", false)
	if got, want := b.String(), "aaaaaaaaaaaaaaabbbbbbbbbb"; got != want {
		t.Errorf("without opportunity: got %q, want %q", got, want)
	}
}

func TestInline_StartNewLine(t *testing.T) {
	b := newTestInline(20, "", false)
	b.pushWord("a", false)
	b.startNewLine(3)
	b.pushWord("b", false)
	if got, want := b.String(), "a\n\n\nb"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	b.clear()
	if !b.isEmpty() || b.avail != 20 {
		t.Errorf("clear: empty=%v avail=%d", b.isEmpty(), b.avail)
	}
}

func TestInline_SplitLongWord(t *testing.T) {
	cases := []struct {
		name      string
		wrapChars string
		force     bool
		word      string
		want      []string
	}{
		{"fits", "/", false, "short", []string{"short"}},
		{"first priority", "/-", false, "aaaa-bbbb/cccc-dddd", []string{"aaaa-bbbb/", "cccc-dddd"}},
		{"falls back to second", "/-", false, "ab-cdefgh/ij-klmnopqrs", []string{"ab-cdefgh/", "ij-", "klmnopqrs"}},
		// Once the search moved to '-', later pieces do not go back to '/'.
		{"priority does not reset", "/-", false, "abcdefg-hijk/lm-nopqrstu", []string{"abcdefg-", "hijk/lm-", "nopqrstu"}},
		{"no split chars", "", false, "abcdefghijklmno", []string{"abcdefghijklmno"}},
		{"no match kept whole", "/", false, "abcdefghijklmno", []string{"abcdefghijklmno"}},
		{"force wrap", "", true, "abcdefghijklmno", []string{"abcdefghij", "klmno"}},
		{"force wrap twice", "/", true, "abcdefghijklmnopqrstuvwxy", []string{"abcdefghij", "klmnopqrst", "uvwxy"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := newTestInline(10, tc.wrapChars, tc.force)
			got := b.splitLongWord(tc.word)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestInline_PushSplitsLongWord(t *testing.T) {
	b := newTestInline(10, "", true)
	b.pushWord("ab", false)
	b.pushWord("abcdefghijklmno", false)
	if got, want := b.String(), "ab\nabcdefghij\nklmno"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestInline_UnsplittableWordOnOwnLine(t *testing.T) {
	b := newTestInline(10, "", false)
	b.pushWord("ab", false)
	b.pushWord("abcdefghijklmno", false)
	b.pushWord("cd", false)
	if got, want := b.String(), "ab\nabcdefghijklmno\ncd"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestInline_CountsRunes(t *testing.T) {
	b := newTestInline(20, "", false)
	b.pushWord("ééééééééé", false) // 9 runes, 18 bytes
	b.pushWord("ñññññññññ", false)
	if got, want := b.String(), "ééééééééé ñññññññññ"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if b.avail != 1 {
		t.Errorf("avail: got %d, want 1", b.avail)
	}
}
