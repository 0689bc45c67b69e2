package layout

import "testing"

func shrinkWrap(ws *whitespace, parts ...string) string {
	b := newInlineText(&Config{}, 0)
	for _, p := range parts {
		ws.shrinkWrapAdd(p, b, nil, false)
	}
	return b.String()
}

func TestShrinkWrapAdd_Collapse(t *testing.T) {
	ws := newWhitespace("", false)
	cases := []struct {
		name  string
		parts []string
		want  string
	}{
		{"adjoining fragments glue", []string{"foo", "bar"}, "foobar"},
		{"leading space separates", []string{"foo", " bar"}, "foo bar"},
		{"trailing space separates", []string{"foo ", "bar"}, "foo bar"},
		{"interior runs collapse", []string{"  a \t\r\n b\f\u200bc  "}, "a b c"},
		{"empty keeps stashed space", []string{"foo ", "", "bar"}, "foo bar"},
		{"whitespace only keeps stashed space", []string{"foo ", "   ", "bar"}, "foo bar"},
		{"newline collapses", []string{"multiple\n spaces"}, "multiple spaces"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := shrinkWrap(ws, tc.parts...); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestShrinkWrapAdd_PreserveNewlines(t *testing.T) {
	ws := newWhitespace("", true)
	cases := []struct {
		name  string
		parts []string
		want  string
	}{
		{"space after newline dropped", []string{"multiple\n spaces"}, "multiple\nspaces"},
		{"leading newline", []string{"\nmultiple\n spaces"}, "\nmultiple\nspaces"},
		{"double newline", []string{"a\n\nb"}, "a\n\nb"},
		{"glue across calls", []string{"foo", "bar\nbaz"}, "foobar\nbaz"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := shrinkWrap(ws, tc.parts...); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestShrinkWrapAdd_Transform(t *testing.T) {
	ws := newWhitespace("", false)
	b := newInlineText(&Config{}, 0)
	ws.shrinkWrapAdd("ab cd", b, func(s string) string { return "<" + s + ">" }, false)
	if got, want := b.String(), "<ab> <cd>"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAddLiteral(t *testing.T) {
	ws := newWhitespace("", false)
	b := newInlineText(&Config{Wordwrap: 20}, 0)
	b.pushWord("x", false)
	ws.addLiteral("a  b\nc   d", b, true)
	if got, want := b.String(), "xa  b\nc   d"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	b = newInlineText(&Config{}, 0)
	b.pushWord("x", false)
	b.stashedSpace = true
	ws.addLiteral("[url]", b, true)
	if got, want := b.String(), "x [url]"; got != want {
		t.Errorf("stashed space: got %q, want %q", got, want)
	}
	if b.stashedSpace {
		t.Error("addLiteral should consume the stashed space")
	}
}

func TestContainsWords(t *testing.T) {
	collapse := newWhitespace("", false)
	preserve := newWhitespace("", true)
	cases := []struct {
		ws   *whitespace
		text string
		want bool
	}{
		{collapse, "", false},
		{collapse, "  \n ", false},
		{collapse, "\n", false},
		{collapse, "\u200b", false},
		{collapse, " a ", true},
		{preserve, "  ", false},
		// Pinned: a lone newline counts as a word when newlines are preserved.
		{preserve, "\n", true},
		{preserve, " \n ", true},
	}
	for _, tc := range cases {
		if got := tc.ws.containsWords(tc.text); got != tc.want {
			t.Errorf("containsWords(%q, preserve=%v) = %v, want %v", tc.text, tc.ws.preserveNewlines, got, tc.want)
		}
	}
}

func TestCountNewlinesNoWords(t *testing.T) {
	ws := newWhitespace("", true)
	cases := []struct {
		text string
		want int
	}{
		{" \n \n ", 2},
		{"\n", 1},
		{"   ", 0},
		{"\n a \n", 0},
		{"a\n\n", 0},
	}
	for _, tc := range cases {
		if got := ws.countNewlinesNoWords(tc.text); got != tc.want {
			t.Errorf("countNewlinesNoWords(%q) = %d, want %d", tc.text, got, tc.want)
		}
	}
}

func TestWhitespace_CustomAlphabet(t *testing.T) {
	ws := newWhitespace(" ", false)
	if got, want := shrinkWrap(ws, "a\tb  c"), "a\tb c"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
