package htmltext

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/htmltext/kit"
)

// RegisterMCP registers the conversion tools on an MCP server.
func (c *Converter) RegisterMCP(srv *mcp.Server) {
	c.registerConvertTool(srv)
	c.registerFormatsTool(srv)
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

// --- html_to_text ---

func (c *Converter) registerConvertTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "html_to_text",
		Description: "Convert an HTML document to word-wrapped plain text (or Markdown with format=markdown).",
		InputSchema: inputSchema(map[string]any{
			"html":              map[string]any{"type": "string", "description": "HTML document or fragment"},
			"wordwrap":          map[string]any{"type": "integer", "description": "Line width; 0 disables wrapping"},
			"preserve_newlines": map[string]any{"type": "boolean", "description": "Keep newlines found in text"},
			"format":            map[string]any{"type": "string", "enum": []string{OutputText, OutputMarkdown}},
		}, []string{"html"}),
	}
	endpoint := kit.Chain(kit.Logging(c.logger, "html_to_text"), kit.Recover())(c.ConvertEndpoint())
	kit.RegisterMCPTool(srv, tool, endpoint, kit.DecodeJSON[ConvertRequest]())
}

// --- html_to_text_formats ---

func (c *Converter) registerFormatsTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "html_to_text_formats",
		Description: "List the formatter names usable in selector options and the supported output formats.",
		InputSchema: inputSchema(map[string]any{}, nil),
	}
	kit.RegisterMCPTool(srv, tool, c.FormatsEndpoint(), kit.DecodeJSON[struct{}]())
}
