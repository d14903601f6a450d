package elementpath

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// ApplicationRole is the role of the element at the root of an application tree.
const ApplicationRole = "AXApplication"

// Segment is one level of an element path: a role, the attributes an element
// must carry, and an optional 1-based index. The index comes in two forms:
// "[k]" selects the k-th sibling matching role and attributes, "#p" selects
// the sibling at absolute position p among all children. Segments are values;
// none of the methods mutate the receiver.
type Segment struct {
	role     string
	attrs    map[string]string
	index    int
	position bool
}

// NewSegment builds a segment without an index. The attribute map is copied.
func NewSegment(role string, attrs map[string]string) (Segment, error) {
	if role == "" {
		return Segment{}, zerr.Wrap(ErrMalformedSegment, "empty role")
	}
	s := Segment{role: role}
	if len(attrs) > 0 {
		s.attrs = maps.Clone(attrs)
	}
	return s, nil
}

// MustSegment is like NewSegment but panics on error.
func MustSegment(role string, attrs map[string]string) Segment {
	s, err := NewSegment(role, attrs)
	if err != nil {
		panic(err)
	}
	return s
}

// Role returns the segment's role label.
func (s Segment) Role() string { return s.role }

// Index returns the positional index, or 0 when the segment has none.
func (s Segment) Index() int { return s.index }

// HasIndex reports whether the segment carries an index of either form.
func (s Segment) HasIndex() bool { return s.index > 0 }

// IsPosition reports whether the index is an absolute "#p" position.
func (s Segment) IsPosition() bool { return s.index > 0 && s.position }

// Attributes returns a copy of the segment's attributes.
func (s Segment) Attributes() map[string]string {
	return maps.Clone(s.attrs)
}

// Attribute returns a single attribute value.
func (s Segment) Attribute(key string) (string, bool) {
	v, ok := s.attrs[key]
	return v, ok
}

// WithIndex returns a copy of s selecting the n-th matching sibling.
// n <= 0 clears the index.
func (s Segment) WithIndex(n int) Segment {
	s.index = max(n, 0)
	s.position = false
	return s
}

// WithPosition returns a copy of s selecting the child at absolute position
// n. n <= 0 clears the index.
func (s Segment) WithPosition(n int) Segment {
	s.index = max(n, 0)
	s.position = s.index > 0
	return s
}

// Base returns s without its index.
func (s Segment) Base() Segment { return s.WithIndex(0) }

// BaseEqual reports whether role and attributes match, ignoring the index.
func (s Segment) BaseEqual(o Segment) bool {
	return s.role == o.role && maps.Equal(s.attrs, o.attrs)
}

// Equal reports whether s and o are identical, index and its form included.
func (s Segment) Equal(o Segment) bool {
	return s.BaseEqual(o) && s.index == o.index && s.IsPosition() == o.IsPosition()
}

// Matches reports whether a live element with the given role and attributes
// satisfies the segment. Every segment attribute must be present with the
// same value; extra live attributes are ignored. The index is not considered.
func (s Segment) Matches(role string, attrs map[string]string) bool {
	if s.role != role {
		return false
	}
	for k, want := range s.attrs {
		got, ok := attrs[k]
		if !ok || got != want {
			return false
		}
	}
	return true
}

// String returns the canonical form: role, "#p" for a position, attribute
// clauses sorted by key, then "[k]" for a sibling index.
func (s Segment) String() string {
	var sb strings.Builder
	sb.WriteString(s.role)
	if s.IsPosition() {
		sb.WriteByte('#')
		sb.WriteString(strconv.Itoa(s.index))
	}
	writeAttrs(&sb, s.attrs)
	if s.index > 0 && !s.position {
		sb.WriteByte('[')
		sb.WriteString(strconv.Itoa(s.index))
		sb.WriteByte(']')
	}
	return sb.String()
}

func writeAttrs(sb *strings.Builder, attrs map[string]string) {
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		sb.WriteString(`[@`)
		sb.WriteString(k)
		sb.WriteString(`="`)
		sb.WriteString(escapeValue(attrs[k]))
		sb.WriteString(`"]`)
	}
}

func escapeValue(v string) string {
	if !strings.ContainsAny(v, `"\`) {
		return v
	}
	var sb strings.Builder
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c == '"' || c == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(c)
	}
	return sb.String()
}
