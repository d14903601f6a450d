package resolver

import (
	"context"

	"go.trai.ch/zerr"

	"github.com/leonardcser/uipath-mcp/internal/elementpath"
)

// IdentifyingAttributes are the attributes copied into generated path
// segments when they are present and non-empty.
var IdentifyingAttributes = []string{"AXIdentifier", "AXTitle", "AXDescription"}

// Child is a direct child of a resolved element.
type Child struct {
	Resolved
	Role       string
	Attributes map[string]string
}

// Children lists the direct children of parent with paths that resolve back
// to each child. A child whose segment would also match a sibling gets its
// "#p" position.
func (r *Resolver) Children(ctx context.Context, parent Resolved) ([]Child, error) {
	kids, err := r.provider.Children(ctx, parent.Element)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read element children"), "path", parent.Path.String())
	}

	out := make([]Child, len(kids))
	candidates := make([]elementpath.Candidate, len(kids))
	for i, k := range kids {
		role, err := r.provider.Role(ctx, k)
		if err != nil {
			return nil, zerr.Wrap(err, "failed to read element role")
		}
		attrs, err := r.provider.Attributes(ctx, k)
		if err != nil {
			return nil, zerr.Wrap(err, "failed to read element attributes")
		}
		out[i] = Child{Role: role, Attributes: attrs}
		out[i].Element = k
		candidates[i] = elementpath.Candidate{Role: role, Attributes: identifying(attrs)}
	}

	segs, err := elementpath.DisambiguateSegments(candidates)
	if err != nil {
		return nil, zerr.With(err, "path", parent.Path.String())
	}
	for i := range out {
		if !segs[i].HasIndex() && matchesSibling(segs[i], out, i) {
			segs[i] = segs[i].WithPosition(i + 1)
		}
		out[i].Path = parent.Path.Append(segs[i])
	}
	return out, nil
}

// matchesSibling reports whether seg also matches a child other than skip.
// A segment carrying fewer attributes than its sibling matches it too.
func matchesSibling(seg elementpath.Segment, kids []Child, skip int) bool {
	for j, k := range kids {
		if j != skip && seg.Matches(k.Role, k.Attributes) {
			return true
		}
	}
	return false
}

func identifying(attrs map[string]string) map[string]string {
	var out map[string]string
	for _, k := range IdentifyingAttributes {
		if v := attrs[k]; v != "" {
			if out == nil {
				out = make(map[string]string)
			}
			out[k] = v
		}
	}
	return out
}
