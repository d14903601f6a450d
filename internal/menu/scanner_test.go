package menu_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonardcser/uipath-mcp/internal/menu"
	"github.com/leonardcser/uipath-mcp/internal/resolver"
	"github.com/leonardcser/uipath-mcp/internal/snapshot"
)

const editorID = "com.example.editor"

func el(role, title string, children ...*snapshot.Node) *snapshot.Node {
	n := &snapshot.Node{Role: role, Children: children}
	if title != "" {
		n.Attributes = map[string]string{"AXTitle": title}
	}
	return n
}

func editorTree() *snapshot.Node {
	return el("AXApplication", "Editor",
		el("AXWindow", "Untitled",
			el("AXMenuBar", "", el("AXMenuBarItem", "Decoy")),
		),
		el("AXMenuBar", "",
			el("AXMenuBarItem", "File",
				el("AXMenu", "",
					el("AXMenuItem", "New"),
					el("AXMenuItem", ""),
					el("AXMenuItem", "Save"),
					el("AXMenuItem", "Save As..."),
					el("AXMenuItem", "Open Recent",
						el("AXMenu", "",
							el("AXMenuItem", "notes.txt",
								el("AXMenu", "", el("AXMenuItem", "Reveal")),
							),
						),
					),
				),
			),
			el("AXMenuBarItem", "Edit",
				el("AXMenu", "",
					el("AXMenuItem", "Undo"),
					el("AXStaticText", "Not an item"),
					el("AXMenuItem", "Copy"),
				),
			),
			el("AXMenuBarItem", ""),
		),
	)
}

func TestScanner_Scan(t *testing.T) {
	provider := snapshot.NewProvider(snapshot.Static{editorID: editorTree()})
	h, err := menu.NewScanner(provider, menu.WithCacheTimeout(time.Minute)).Scan(context.Background(), editorID)
	require.NoError(t, err)

	assert.Equal(t, editorID, h.Application)
	assert.Equal(t, []string{"File", "Edit"}, h.MenuOrder)
	assert.Equal(t, []string{
		"File > New",
		"File > Save",
		"File > Save As...",
		"File > Open Recent",
		"File > Open Recent > notes.txt",
		"File > Open Recent > notes.txt > Reveal",
	}, h.Menus["File"])
	assert.Equal(t, []string{"Edit > Undo", "Edit > Copy"}, h.Menus["Edit"])
	assert.Equal(t, 8, h.TotalItems)
	assert.Equal(t, 4, h.ExploredDepth)
	assert.Equal(t, time.Minute, h.CacheTimeout)
}

func TestScanner_MaxDepth(t *testing.T) {
	provider := snapshot.NewProvider(snapshot.Static{editorID: editorTree()})
	h, err := menu.NewScanner(provider, menu.WithMaxDepth(2)).Scan(context.Background(), editorID)
	require.NoError(t, err)

	assert.Equal(t, []string{"File > New", "File > Save", "File > Save As...", "File > Open Recent"}, h.Menus["File"])
	assert.Equal(t, 2, h.ExploredDepth)
}

func TestScanner_ScannedPathsResolve(t *testing.T) {
	provider := snapshot.NewProvider(snapshot.Static{editorID: editorTree()})
	h, err := menu.NewScanner(provider).Scan(context.Background(), editorID)
	require.NoError(t, err)

	r := resolver.New(provider)
	for _, p := range h.AllPaths() {
		ep, err := menu.ElementPath(editorID, p)
		require.NoError(t, err, p)
		got, err := r.Resolve(context.Background(), ep)
		require.NoError(t, err, p)
		components, err := menu.ParsePath(p)
		require.NoError(t, err)
		n := got.Element.(*snapshot.Node)
		assert.Equal(t, "AXMenuItem", n.Role)
		assert.Equal(t, components[len(components)-1], n.Attributes["AXTitle"])
	}
}

func TestScanner_NoMenuBar(t *testing.T) {
	provider := snapshot.NewProvider(snapshot.Static{editorID: el("AXApplication", "Editor", el("AXWindow", "Main"))})
	_, err := menu.NewScanner(provider).Scan(context.Background(), editorID)
	assert.ErrorIs(t, err, menu.ErrNoMenuBar)
}

func TestScanner_UnknownApplication(t *testing.T) {
	provider := snapshot.NewProvider(snapshot.Static{})
	_, err := menu.NewScanner(provider).Scan(context.Background(), editorID)
	assert.ErrorIs(t, err, snapshot.ErrNotFound)
}
