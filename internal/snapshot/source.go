package snapshot

import (
	"maps"
	"slices"

	"go.trai.ch/zerr"
)

// Source supplies recorded trees by application id.
// Implementations must be safe for concurrent use by multiple goroutines.
type Source interface {
	Load(appID string) (*Node, error)
	List() ([]string, error)
}

// Static is an in-memory Source. It must not be mutated while in use.
type Static map[string]*Node

// Load returns the tree of appID.
func (s Static) Load(appID string) (*Node, error) {
	n, ok := s[appID]
	if !ok {
		return nil, zerr.With(zerr.Wrap(ErrNotFound, "load snapshot"), "application", appID)
	}
	return n, nil
}

// List returns the recorded ids in lexical order.
func (s Static) List() ([]string, error) {
	return slices.Sorted(maps.Keys(s)), nil
}
