// CLAUDE:SUMMARY MCP tool surface — exposes extraction and header parsing as cavex_* tools.
package measure

import (
	"context"
	"encoding/json"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/cavex/kit"
)

// RegisterMCP registers the extraction tools on an MCP server.
func (e *Extractor) RegisterMCP(srv *mcp.Server) {
	e.registerExtractTool(srv)
	e.registerHeaderTool(srv)
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

// --- extract ---

type extractReq struct {
	Path string `json:"path"`
}

func (e *Extractor) registerExtractTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "cavex_extract",
		Description: "Extract the measurement table and header block from an inspection-report PDF.",
		InputSchema: inputSchema(map[string]any{
			"path": map[string]any{"type": "string", "description": "PDF file path to extract"},
		}, []string{"path"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*extractReq)
		raw, err := os.ReadFile(r.Path)
		if err != nil {
			return nil, err
		}
		return e.ProcessDocument(ctx, raw, r.Path)
	}

	decode := func(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var r extractReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &r}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}

// --- header ---

type headerReq struct {
	Text string `json:"text"`
}

func (e *Extractor) registerHeaderTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "cavex_header",
		Description: "Parse the supplier/part metadata block from first-page report text.",
		InputSchema: inputSchema(map[string]any{
			"text": map[string]any{"type": "string", "description": "First-page plain text"},
		}, []string{"text"}),
	}

	endpoint := func(_ context.Context, req any) (any, error) {
		r := req.(*headerReq)
		return ExtractHeader(r.Text), nil
	}

	decode := func(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var r headerReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &r}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}
