// Package resolver maps element paths onto a live accessibility tree.
package resolver

import "context"

// Element is an opaque handle to a live element, owned by the TreeProvider.
type Element any

// TreeProvider exposes a live, externally owned element tree. Implementations
// must reflect the current state of the application on every call and must be
// safe to call repeatedly.
//
//go:generate go run go.uber.org/mock/mockgen -source=tree.go -destination=mocks/mock_tree.go -package=mocks
type TreeProvider interface {
	// RootElement returns the application element for appID. An empty appID
	// lets the provider pick (e.g. the frontmost application).
	RootElement(ctx context.Context, appID string) (Element, error)

	// Children returns the direct children of el in display order.
	Children(ctx context.Context, el Element) ([]Element, error)

	// Attributes returns the string attributes of el.
	Attributes(ctx context.Context, el Element) (map[string]string, error)

	// Role returns the role of el.
	Role(ctx context.Context, el Element) (string, error)
}
