package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/leonardcser/uipath-mcp/internal/logger"
	"github.com/leonardcser/uipath-mcp/internal/menucache"
)

// MenuCacheHandler returns the MCP tool handler for the "menu-cache" tool.
func MenuCacheHandler(c *menucache.Cache) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		action, err := req.RequireString("action")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		switch action {
		case "stats":
			return jsonResult(c.Statistics())
		case "info":
			return jsonResult(c.Info())
		case "invalidate":
			app, err := req.RequireString("application")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			if !c.Invalidate(app) {
				return mcp.NewToolResultText(fmt.Sprintf("No cached menus for %s", app)), nil
			}
			logger.Infof("Invalidated cached menus of %s", app)
			return mcp.NewToolResultText(fmt.Sprintf("Invalidated cached menus for %s", app)), nil
		case "invalidate-all":
			c.InvalidateAll()
			logger.Infof("Invalidated all cached menus")
			return mcp.NewToolResultText("Invalidated all cached menus"), nil
		case "cleanup":
			n := c.Cleanup()
			return mcp.NewToolResultText(fmt.Sprintf("Removed %d expired entries", n)), nil
		default:
			return mcp.NewToolResultError(fmt.Sprintf("unknown action %q", action)), nil
		}
	}
}
