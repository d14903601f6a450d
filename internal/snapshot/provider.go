package snapshot

import (
	"context"
	"fmt"
	"maps"

	"go.trai.ch/zerr"

	"github.com/leonardcser/uipath-mcp/internal/resolver"
)

var (
	// ErrNoApplication is returned when no application id is given and the
	// source does not hold exactly one recording.
	ErrNoApplication = zerr.New("no application selected")
	// ErrForeignElement is returned for elements not produced by this provider.
	ErrForeignElement = zerr.New("element does not belong to snapshot provider")
)

// Provider replays recorded trees as a resolver.TreeProvider. Elements are
// the *Node values of the source's trees. The source is consulted on every
// RootElement call, so new recordings are visible immediately.
type Provider struct {
	source Source
}

var _ resolver.TreeProvider = (*Provider)(nil)

// NewProvider creates a Provider over source.
func NewProvider(source Source) *Provider {
	return &Provider{source: source}
}

// RootElement returns the recorded root of appID. An empty appID selects the
// only recording when there is exactly one.
func (p *Provider) RootElement(ctx context.Context, appID string) (resolver.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if appID == "" {
		ids, err := p.source.List()
		if err != nil {
			return nil, zerr.Wrap(err, "failed to list snapshots")
		}
		if len(ids) != 1 {
			return nil, zerr.With(zerr.Wrap(ErrNoApplication, "root element"), "recordings", len(ids))
		}
		appID = ids[0]
	}
	return p.source.Load(appID)
}

// Children returns the recorded children of el.
func (p *Provider) Children(ctx context.Context, el resolver.Element) ([]resolver.Element, error) {
	n, err := node(el)
	if err != nil {
		return nil, err
	}
	out := make([]resolver.Element, len(n.Children))
	for i, c := range n.Children {
		out[i] = c
	}
	return out, nil
}

// Attributes returns a copy of the recorded attributes of el.
func (p *Provider) Attributes(ctx context.Context, el resolver.Element) (map[string]string, error) {
	n, err := node(el)
	if err != nil {
		return nil, err
	}
	return maps.Clone(n.Attributes), nil
}

// Role returns the recorded role of el.
func (p *Provider) Role(ctx context.Context, el resolver.Element) (string, error) {
	n, err := node(el)
	if err != nil {
		return "", err
	}
	return n.Role, nil
}

func node(el resolver.Element) (*Node, error) {
	n, ok := el.(*Node)
	if !ok || n == nil {
		return nil, zerr.With(zerr.Wrap(ErrForeignElement, "replay"), "type", fmt.Sprintf("%T", el))
	}
	return n, nil
}
