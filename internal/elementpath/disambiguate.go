package elementpath

import (
	"strconv"
	"strings"
)

// Candidate is a sibling element reduced to what appears in its path segment.
type Candidate struct {
	Role       string
	Attributes map[string]string
}

func (c Candidate) base() string {
	var sb strings.Builder
	sb.WriteString(c.Role)
	writeAttrs(&sb, c.Attributes)
	return sb.String()
}

// Disambiguate returns one segment string per candidate, in order. Candidates
// whose base form is unique among the siblings get no index; the others get
// "#p" after the role, p being the candidate's 1-based position in the list.
func Disambiguate(candidates []Candidate) []string {
	positions := positionalIndexes(candidates)
	out := make([]string, len(candidates))
	for i, c := range candidates {
		if positions[i] == 0 {
			out[i] = c.base()
			continue
		}
		var sb strings.Builder
		sb.WriteString(c.Role)
		sb.WriteByte('#')
		sb.WriteString(strconv.Itoa(positions[i]))
		writeAttrs(&sb, c.Attributes)
		out[i] = sb.String()
	}
	return out
}

// DisambiguateSegments makes the same decision as Disambiguate but returns
// segments, ready to be appended to a parent path.
func DisambiguateSegments(candidates []Candidate) ([]Segment, error) {
	positions := positionalIndexes(candidates)
	out := make([]Segment, len(candidates))
	for i, c := range candidates {
		seg, err := NewSegment(c.Role, c.Attributes)
		if err != nil {
			return nil, segmentError(c.base(), i, "empty role")
		}
		out[i] = seg.WithPosition(positions[i])
	}
	return out, nil
}

// positionalIndexes returns, per candidate, 0 when its base form is unique and
// its 1-based position otherwise.
func positionalIndexes(candidates []Candidate) []int {
	bases := make([]string, len(candidates))
	counts := make(map[string]int, len(candidates))
	for i, c := range candidates {
		bases[i] = c.base()
		counts[bases[i]]++
	}
	out := make([]int, len(candidates))
	for i := range candidates {
		if counts[bases[i]] > 1 {
			out[i] = i + 1
		}
	}
	return out
}
