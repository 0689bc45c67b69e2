package htmltext

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func testConverter(t *testing.T) *Converter {
	t.Helper()
	opts := DefaultOptions()
	opts.Logger = discard
	c, err := New(opts)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestConvertEndpoint(t *testing.T) {
	c := testConverter(t)
	ww := 0
	keep := true

	tests := []struct {
		name string
		req  *ConvertRequest
		want string
	}{
		{"text", &ConvertRequest{HTML: "<h1>Hi</h1><p>there</p>"}, "HI\n\nthere"},
		{"no wrap", &ConvertRequest{HTML: strings.Repeat("word ", 30), Wordwrap: &ww}, strings.TrimSpace(strings.Repeat("word ", 30))},
		{"preserve newlines", &ConvertRequest{HTML: "<p>One\nTwo</p>", PreserveNewlines: &keep}, "One\nTwo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := c.ConvertEndpoint()(context.Background(), tt.req)
			if err != nil {
				t.Fatal(err)
			}
			got := resp.(*ConvertResponse)
			if got.Text != tt.want {
				t.Errorf("got %q, want %q", got.Text, tt.want)
			}
			if got.Format != OutputText {
				t.Errorf("format: got %q, want %q", got.Format, OutputText)
			}
		})
	}
}

func TestConvertEndpoint_Markdown(t *testing.T) {
	c := testConverter(t)
	resp, err := c.ConvertEndpoint()(context.Background(), &ConvertRequest{
		HTML:   "<h1>Title</h1><p>Some <strong>bold</strong> text.</p>",
		Format: OutputMarkdown,
	})
	if err != nil {
		t.Fatal(err)
	}
	got := resp.(*ConvertResponse)
	if !strings.Contains(got.Text, "# Title") || !strings.Contains(got.Text, "**bold**") {
		t.Errorf("got %q, want markdown heading and emphasis", got.Text)
	}
	if got.Format != OutputMarkdown {
		t.Errorf("format: got %q, want %q", got.Format, OutputMarkdown)
	}
}

func TestConvertEndpoint_Errors(t *testing.T) {
	c := testConverter(t)
	if _, err := c.ConvertEndpoint()(context.Background(), &ConvertRequest{HTML: "x", Format: "pdf"}); !errors.Is(err, ErrOutputFormat) {
		t.Errorf("got %v, want ErrOutputFormat", err)
	}
	if _, err := c.ConvertEndpoint()(context.Background(), "not a request"); err == nil {
		t.Error("expected an error for a foreign request type")
	}
}

func TestConvertEndpoint_OverridesDoNotLeak(t *testing.T) {
	c := testConverter(t)
	ww := 0
	if _, err := c.ConvertEndpoint()(context.Background(), &ConvertRequest{HTML: "x", Wordwrap: &ww}); err != nil {
		t.Fatal(err)
	}
	if got := c.Options().Wordwrap; got != 80 {
		t.Errorf("wordwrap: got %d, want 80", got)
	}
}

func TestFormatsEndpoint(t *testing.T) {
	c := testConverter(t)
	resp, err := c.FormatsEndpoint()(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	got := resp.(*FormatsResponse)
	if len(got.Formatters) != len(c.Formats()) {
		t.Errorf("got %d formatters, want %d", len(got.Formatters), len(c.Formats()))
	}
	if len(got.Outputs) != 2 || got.Outputs[0] != OutputText || got.Outputs[1] != OutputMarkdown {
		t.Errorf("got outputs %v", got.Outputs)
	}
}
