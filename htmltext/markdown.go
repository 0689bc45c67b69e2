package htmltext

import (
	"fmt"
	"sync"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

var markdownConverter = sync.OnceValue(func() *converter.Converter {
	return converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
})

// Markdown renders input as CommonMark with tables instead of plain text.
// Truncation and sanitizing apply as for Convert; selectors and layout
// options do not.
func (c *Converter) Markdown(input string) (string, error) {
	input = c.truncate(input)
	if c.sanitizer != nil {
		input = c.sanitizer.Sanitize(input)
	}
	out, err := markdownConverter().ConvertString(input)
	if err != nil {
		return "", fmt.Errorf("htmltext: markdown: %w", err)
	}
	return out, nil
}
