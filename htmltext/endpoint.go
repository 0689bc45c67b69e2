package htmltext

import (
	"context"
	"errors"
	"fmt"

	"github.com/hazyhaar/htmltext/kit"
)

// Output formats of ConvertRequest.Format.
const (
	OutputText     = "text"
	OutputMarkdown = "markdown"
)

// ErrOutputFormat is returned for a ConvertRequest.Format other than
// OutputText or OutputMarkdown.
var ErrOutputFormat = errors.New("htmltext: unknown output format")

// ConvertRequest is the transport-neutral conversion request.
type ConvertRequest struct {
	HTML             string `json:"html"`
	Wordwrap         *int   `json:"wordwrap,omitempty"`
	PreserveNewlines *bool  `json:"preserve_newlines,omitempty"`
	Format           string `json:"format,omitempty"`
}

// ConvertResponse is the result of a ConvertRequest.
type ConvertResponse struct {
	Text   string `json:"text"`
	Title  string `json:"title,omitempty"`
	Format string `json:"format"`
}

// ConvertEndpoint returns the conversion as a kit.Endpoint taking a
// *ConvertRequest. Per-request overrides build a derived converter.
func (c *Converter) ConvertEndpoint() kit.Endpoint {
	return func(_ context.Context, req any) (any, error) {
		r, ok := req.(*ConvertRequest)
		if !ok {
			return nil, fmt.Errorf("htmltext: convert endpoint: unexpected request %T", req)
		}
		conv, err := c.derive(r)
		if err != nil {
			return nil, err
		}
		switch r.Format {
		case "", OutputText:
			res, err := conv.ConvertDocument(r.HTML)
			if err != nil {
				return nil, err
			}
			return &ConvertResponse{Text: res.Text, Title: res.Title, Format: OutputText}, nil
		case OutputMarkdown:
			md, err := conv.Markdown(r.HTML)
			if err != nil {
				return nil, err
			}
			return &ConvertResponse{Text: md, Format: OutputMarkdown}, nil
		default:
			return nil, fmt.Errorf("%w %q", ErrOutputFormat, r.Format)
		}
	}
}

// FormatsResponse lists what a converter can produce.
type FormatsResponse struct {
	Formatters []string `json:"formatters"`
	Outputs    []string `json:"outputs"`
}

// FormatsEndpoint returns the registered formatter names and output formats.
func (c *Converter) FormatsEndpoint() kit.Endpoint {
	return func(context.Context, any) (any, error) {
		return &FormatsResponse{
			Formatters: c.Formats(),
			Outputs:    []string{OutputText, OutputMarkdown},
		}, nil
	}
}

func (c *Converter) derive(r *ConvertRequest) (*Converter, error) {
	if r.Wordwrap == nil && r.PreserveNewlines == nil {
		return c, nil
	}
	opts := c.opts
	if r.Wordwrap != nil {
		opts.Wordwrap = *r.Wordwrap
	}
	if r.PreserveNewlines != nil {
		opts.PreserveNewlines = *r.PreserveNewlines
	}
	return New(opts)
}
