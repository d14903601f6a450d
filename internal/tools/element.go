package tools

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/leonardcser/uipath-mcp/internal/elementpath"
	"github.com/leonardcser/uipath-mcp/internal/opaqueid"
)

// element is the JSON shape of a located element. Paths only leave the
// server as opaque ids; path-decode turns one back into its path.
type element struct {
	ID         string            `json:"id"`
	Role       string            `json:"role"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

func newElement(path elementpath.Path, role string, attrs map[string]string) element {
	return element{
		ID:         opaqueid.EncodePath(path),
		Role:       role,
		Attributes: attrs,
	}
}

// requireElement reads the "element" argument.
func requireElement(req mcp.CallToolRequest) (elementpath.Path, error) {
	value, err := req.RequireString("element")
	if err != nil {
		return elementpath.Path{}, err
	}
	return opaqueid.ParseAny(value)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
