package resolver

import (
	"context"

	"go.trai.ch/zerr"

	"github.com/leonardcser/uipath-mcp/internal/elementpath"
)

// DefaultMaxDepth bounds how many wrapper levels are searched below a matched
// element while looking for the next segment.
const DefaultMaxDepth = 50

var (
	// ErrElementNotFound is returned when no live element satisfies the path.
	ErrElementNotFound = zerr.New("element not found")

	// ErrAmbiguousPath is returned when more than one live element satisfies
	// the path and a unique result was requested.
	ErrAmbiguousPath = zerr.New("ambiguous element path")
)

// Resolved is a live element together with the path that located it.
type Resolved struct {
	Element Element
	Path    elementpath.Path
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMaxDepth sets the per-segment search depth. Values < 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(r *Resolver) {
		if n >= 1 {
			r.maxDepth = n
		}
	}
}

// Resolver locates elements by path. It holds no mutable state, so one
// Resolver can serve concurrent requests.
type Resolver struct {
	provider TreeProvider
	maxDepth int
}

// New creates a Resolver over provider.
func New(provider TreeProvider, opts ...Option) *Resolver {
	r := &Resolver{provider: provider, maxDepth: DefaultMaxDepth}
	for _, o := range opts {
		o(r)
	}
	return r
}

// ApplicationID returns the identifier used to look up the root element for
// path: the first segment's bundleId, then its AXTitle, else "".
func ApplicationID(path elementpath.Path) string {
	first := path.First()
	if id, ok := first.Attribute("bundleId"); ok && id != "" {
		return id
	}
	if title, ok := first.Attribute("AXTitle"); ok {
		return title
	}
	return ""
}

// ResolveString parses s and resolves it.
func (r *Resolver) ResolveString(ctx context.Context, s string) (Resolved, error) {
	path, err := elementpath.Parse(s)
	if err != nil {
		return Resolved{}, err
	}
	return r.Resolve(ctx, path)
}

// Resolve returns the single element path denotes. More than one match is
// reported as ErrAmbiguousPath rather than guessed.
func (r *Resolver) Resolve(ctx context.Context, path elementpath.Path) (Resolved, error) {
	matches, err := r.ResolveAll(ctx, path)
	if err != nil {
		return Resolved{}, err
	}
	if len(matches) > 1 {
		err := zerr.With(zerr.Wrap(ErrAmbiguousPath, "resolve"), "path", path.String())
		return Resolved{}, zerr.With(err, "matches", len(matches))
	}
	return Resolved{Element: matches[0], Path: path}, nil
}

// ResolveAll returns every live element satisfying path, in breadth-first
// order. It never returns an empty slice without an error.
//
// A single segment denotes the application root and must be an AXApplication
// segment; the root is returned without touching its children. Otherwise each
// segment is searched breadth-first below the elements matched by the
// previous one, so structural wrappers absent from the path are skipped at
// any depth.
func (r *Resolver) ResolveAll(ctx context.Context, path elementpath.Path) ([]Element, error) {
	if path.IsZero() {
		return nil, zerr.Wrap(elementpath.ErrEmptyPath, "resolve")
	}
	root, err := r.provider.RootElement(ctx, ApplicationID(path))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to get root element"), "path", path.String())
	}
	if root == nil {
		return nil, notFound(path, 0)
	}

	isApp := path.First().Role() == elementpath.ApplicationRole
	switch {
	case path.Len() == 1 && isApp:
		return []Element{root}, nil
	case path.Len() == 1:
		return nil, notFound(path, 0)
	}
	start := 0
	if isApp {
		start = 1
	}

	parents := []Element{root}
	for i := start; i < path.Len(); i++ {
		var next []Element
		for _, p := range parents {
			found, err := r.search(ctx, p, path.Segment(i))
			if err != nil {
				return nil, zerr.With(err, "path", path.String())
			}
			next = append(next, found...)
		}
		if len(next) == 0 {
			return nil, notFound(path, i)
		}
		parents = next
	}
	return parents, nil
}

// candidate is an element queued for matching, with its 1-based position
// among its live parent's children, which "#p" segments select on.
type candidate struct {
	el  Element
	pos int
}

// search walks the descendants of parent level by level and returns the
// matches found at the shallowest level that has any. A "[k]" index then
// keeps only the k-th of those matches.
func (r *Resolver) search(ctx context.Context, parent Element, seg elementpath.Segment) ([]Element, error) {
	level, err := r.children(ctx, parent)
	if err != nil {
		return nil, err
	}
	for depth := 1; len(level) > 0 && depth <= r.maxDepth; depth++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var matches []Element
		for _, c := range level {
			ok, err := r.matches(ctx, c, seg)
			if err != nil {
				return nil, err
			}
			if ok {
				matches = append(matches, c.el)
			}
		}
		if len(matches) > 0 {
			return nth(matches, seg), nil
		}

		var next []candidate
		for _, c := range level {
			kids, err := r.children(ctx, c.el)
			if err != nil {
				return nil, err
			}
			next = append(next, kids...)
		}
		level = next
	}
	return nil, nil
}

func (r *Resolver) matches(ctx context.Context, c candidate, seg elementpath.Segment) (bool, error) {
	if seg.IsPosition() && seg.Index() != c.pos {
		return false, nil
	}
	role, err := r.provider.Role(ctx, c.el)
	if err != nil {
		return false, zerr.Wrap(err, "failed to read element role")
	}
	if role != seg.Role() {
		return false, nil
	}
	attrs, err := r.provider.Attributes(ctx, c.el)
	if err != nil {
		return false, zerr.Wrap(err, "failed to read element attributes")
	}
	return seg.Matches(role, attrs), nil
}

// nth applies a sibling index to the matches of one frontier level. An index
// past the last match selects nothing.
func nth(matches []Element, seg elementpath.Segment) []Element {
	if !seg.HasIndex() || seg.IsPosition() {
		return matches
	}
	k := seg.Index()
	if k > len(matches) {
		return nil
	}
	return matches[k-1 : k]
}

func (r *Resolver) children(ctx context.Context, el Element) ([]candidate, error) {
	kids, err := r.provider.Children(ctx, el)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read element children")
	}
	out := make([]candidate, len(kids))
	for i, k := range kids {
		out[i] = candidate{el: k, pos: i + 1}
	}
	return out, nil
}

func notFound(path elementpath.Path, segment int) error {
	err := zerr.With(zerr.Wrap(ErrElementNotFound, "resolve"), "path", path.String())
	return zerr.With(err, "segment", segment)
}
