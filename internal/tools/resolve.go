package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/leonardcser/uipath-mcp/internal/logger"
	"github.com/leonardcser/uipath-mcp/internal/resolver"
)

// ResolveHandler returns the MCP tool handler for the "ui-resolve" tool.
func ResolveHandler(r *resolver.Resolver, provider resolver.TreeProvider) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if ctx.Err() != nil {
			return mcp.NewToolResultError(ctx.Err().Error()), nil
		}
		path, err := requireElement(req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		res, err := r.Resolve(ctx, path)
		if err != nil {
			logger.Warnf("ui-resolve %s: %v", path, err)
			return mcp.NewToolResultError(err.Error()), nil
		}
		role, err := provider.Role(ctx, res.Element)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		attrs, err := provider.Attributes(ctx, res.Element)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(newElement(res.Path, role, attrs))
	}
}
