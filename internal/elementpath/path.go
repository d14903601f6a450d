// Package elementpath implements the element path language used to address
// accessibility elements: parsing, canonical serialization and positional
// disambiguation of sibling segments.
package elementpath

import (
	"slices"
	"strings"
)

// Scheme prefixes every element path.
const Scheme = "macos://ui/"

// Path is an ordered, non-empty sequence of segments. The zero value is not a
// valid path; obtain one from Parse or New. Paths are immutable.
type Path struct {
	segs []Segment
}

// New builds a path from segments.
func New(segs ...Segment) (Path, error) {
	if len(segs) == 0 {
		return Path{}, emptyError(Scheme)
	}
	for i, s := range segs {
		if s.role == "" {
			return Path{}, segmentError(Scheme, i, "empty role")
		}
	}
	return Path{segs: slices.Clone(segs)}, nil
}

// Len returns the number of segments.
func (p Path) Len() int { return len(p.segs) }

// IsZero reports whether p is the zero Path.
func (p Path) IsZero() bool { return len(p.segs) == 0 }

// Segment returns the i-th segment.
func (p Path) Segment(i int) Segment { return p.segs[i] }

// Segments returns a copy of the segments.
func (p Path) Segments() []Segment { return slices.Clone(p.segs) }

// First returns the first segment.
func (p Path) First() Segment { return p.segs[0] }

// Last returns the final segment.
func (p Path) Last() Segment { return p.segs[len(p.segs)-1] }

// Parent returns the path without its last segment. ok is false for
// single-segment paths.
func (p Path) Parent() (parent Path, ok bool) {
	if len(p.segs) < 2 {
		return Path{}, false
	}
	return Path{segs: slices.Clone(p.segs[:len(p.segs)-1])}, true
}

// Append returns a new path with segs added at the end. p is not modified.
func (p Path) Append(segs ...Segment) Path {
	out := make([]Segment, 0, len(p.segs)+len(segs))
	out = append(out, p.segs...)
	out = append(out, segs...)
	return Path{segs: out}
}

// IsApplicationRoot reports whether p consists of exactly one application segment.
func (p Path) IsApplicationRoot() bool {
	return len(p.segs) == 1 && p.segs[0].role == ApplicationRole
}

// Equal reports whether both paths have identical segments.
func (p Path) Equal(o Path) bool {
	return slices.EqualFunc(p.segs, o.segs, Segment.Equal)
}

// String returns the canonical form of p.
func (p Path) String() string {
	var sb strings.Builder
	sb.WriteString(Scheme)
	for i, s := range p.segs {
		if i > 0 {
			sb.WriteByte('/')
		}
		sb.WriteString(s.String())
	}
	return sb.String()
}
