package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/leonardcser/uipath-mcp/internal/elementpath"
	"github.com/leonardcser/uipath-mcp/internal/opaqueid"
)

// PathEncodeHandler returns the MCP tool handler for the "path-encode" tool.
// The path is canonicalized before encoding.
func PathEncodeHandler() func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		value, err := req.RequireString("path")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		path, err := elementpath.Parse(value)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(opaqueid.EncodePath(path)), nil
	}
}

// PathDecodeHandler returns the MCP tool handler for the "path-decode" tool.
func PathDecodeHandler() func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		token, err := req.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		path, err := opaqueid.Decode(token)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(path), nil
	}
}
