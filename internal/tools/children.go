package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/leonardcser/uipath-mcp/internal/opaqueid"
	"github.com/leonardcser/uipath-mcp/internal/resolver"
)

// ChildrenHandler returns the MCP tool handler for the "ui-children" tool.
func ChildrenHandler(r *resolver.Resolver) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if ctx.Err() != nil {
			return mcp.NewToolResultError(ctx.Err().Error()), nil
		}
		path, err := requireElement(req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		parent, err := r.Resolve(ctx, path)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		kids, err := r.Children(ctx, parent)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		out := struct {
			Parent   string    `json:"parent"`
			Children []element `json:"children"`
		}{Parent: opaqueid.EncodePath(parent.Path), Children: make([]element, len(kids))}
		for i, k := range kids {
			out.Children[i] = newElement(k.Path, k.Role, k.Attributes)
		}
		return jsonResult(out)
	}
}
