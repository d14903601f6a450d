package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/leonardcser/uipath-mcp/internal/menu"
	"github.com/leonardcser/uipath-mcp/internal/menucache"
	"github.com/leonardcser/uipath-mcp/internal/opaqueid"
)

// Menu query modes.
const (
	ModeAll     = "all"
	ModeExact   = "exact"
	ModePartial = "partial"
	ModeSuggest = "suggest"
)

type menuItem struct {
	Path string `json:"path"`
	ID   string `json:"id"`
}

type menuResult struct {
	Application   string     `json:"application"`
	Mode          string     `json:"mode"`
	Query         string     `json:"query,omitempty"`
	TotalItems    int        `json:"totalItems"`
	ExploredDepth int        `json:"exploredDepth"`
	Items         []menuItem `json:"items"`
	// Suggestions are offered when an exact or partial query finds nothing.
	Suggestions []string `json:"suggestions,omitempty"`
}

// MenuItemsHandler returns the MCP tool handler for the "menu-items" tool.
// suggestions is the default result limit of the suggest mode.
func MenuItemsHandler(loader *menucache.Loader, suggestions int) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if ctx.Err() != nil {
			return mcp.NewToolResultError(ctx.Err().Error()), nil
		}
		app, err := req.RequireString("application")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		query := req.GetString("query", "")
		mode := req.GetString("mode", "")
		if mode == "" {
			mode = ModePartial
			if query == "" {
				mode = ModeAll
			}
		}
		limit := req.GetInt("limit", 0)

		load := loader.Load
		if req.GetBool("refresh", false) {
			load = loader.Refresh
		}
		h, err := load(ctx, app)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		res := menuResult{
			Application:   app,
			Mode:          mode,
			Query:         query,
			TotalItems:    h.TotalItems,
			ExploredDepth: h.ExploredDepth,
		}
		var paths []string
		switch mode {
		case ModeAll:
			paths = h.AllPaths()
		case ModeExact:
			paths = menu.FindMatches(query, h)
		case ModePartial:
			paths = menu.FindPartialMatches(query, h)
		case ModeSuggest:
			if limit <= 0 {
				limit = suggestions
			}
			paths = menu.SuggestSimilar(query, h, limit)
		default:
			return mcp.NewToolResultError(fmt.Sprintf("unknown mode %q", mode)), nil
		}
		if limit > 0 && len(paths) > limit {
			paths = paths[:limit]
		}
		if len(paths) == 0 && (mode == ModeExact || mode == ModePartial) {
			res.Suggestions = menu.SuggestSimilar(query, h, suggestions)
		}

		res.Items = make([]menuItem, 0, len(paths))
		for _, p := range paths {
			ep, err := menu.ElementPath(app, p)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			res.Items = append(res.Items, menuItem{Path: p, ID: opaqueid.EncodePath(ep)})
		}
		return jsonResult(res)
	}
}
