// Package menu models an application's menu bar as a flat set of menu paths
// ("File > Save As…") and provides lookup, ranking and scanning over it.
package menu

import (
	"maps"
	"slices"
	"time"
)

// Hierarchy is a snapshot of an application's menu structure. It is
// read-only once built; a rescan produces a new Hierarchy.
type Hierarchy struct {
	Application string `json:"application"`
	// Menus maps a top-level menu title to every item path beneath it.
	Menus map[string][]string `json:"menus"`
	// MenuOrder lists the top-level menus in menu bar order.
	MenuOrder     []string      `json:"menuOrder"`
	TotalItems    int           `json:"totalItems"`
	ExploredDepth int           `json:"exploredDepth"`
	CacheTimeout  time.Duration `json:"cacheTimeout"`
	ScannedAt     time.Time     `json:"scannedAt"`
}

// NewHierarchy builds a Hierarchy. Menus missing from order are appended in
// lexical order; TotalItems is computed from menus.
func NewHierarchy(app string, order []string, menus map[string][]string, depth int, timeout time.Duration) *Hierarchy {
	h := &Hierarchy{
		Application:   app,
		Menus:         make(map[string][]string, len(menus)),
		ExploredDepth: depth,
		CacheTimeout:  timeout,
		ScannedAt:     time.Now(),
	}
	seen := make(map[string]bool, len(order))
	for _, m := range order {
		if _, ok := menus[m]; ok && !seen[m] {
			h.MenuOrder = append(h.MenuOrder, m)
			seen[m] = true
		}
	}
	for _, m := range slices.Sorted(maps.Keys(menus)) {
		if !seen[m] {
			h.MenuOrder = append(h.MenuOrder, m)
		}
	}
	for m, items := range menus {
		h.Menus[m] = slices.Clone(items)
		h.TotalItems += len(items)
	}
	return h
}

// Clone returns a deep copy of h.
func (h *Hierarchy) Clone() *Hierarchy {
	if h == nil {
		return nil
	}
	c := *h
	c.MenuOrder = slices.Clone(h.MenuOrder)
	c.Menus = make(map[string][]string, len(h.Menus))
	for m, items := range h.Menus {
		c.Menus[m] = slices.Clone(items)
	}
	return &c
}

// AllPaths returns every item path, in menu bar order then item order.
func (h *Hierarchy) AllPaths() []string {
	out := make([]string, 0, h.TotalItems)
	for _, m := range h.MenuOrder {
		out = append(out, h.Menus[m]...)
	}
	return out
}
