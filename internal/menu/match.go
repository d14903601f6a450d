package menu

import (
	"cmp"
	"slices"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Match tiers, strongest first.
const (
	tierExact = iota
	tierPrefix
	tierSubstring
	tierFuzzy
	tierEditDistance
)

// FindMatches returns the paths in h equal to query.
func FindMatches(query string, h *Hierarchy) []string {
	var out []string
	for _, p := range h.AllPaths() {
		if p == query {
			out = append(out, p)
		}
	}
	return out
}

// FindPartialMatches returns the paths in h containing query, ignoring case.
func FindPartialMatches(query string, h *Hierarchy) []string {
	q := strings.ToLower(query)
	var out []string
	for _, p := range h.AllPaths() {
		if strings.Contains(strings.ToLower(p), q) {
			out = append(out, p)
		}
	}
	return out
}

type suggestion struct {
	path string
	tier int
	dist int
}

// SuggestSimilar ranks the paths of h against query and returns at most
// maxSuggestions of them. Exact matches rank above prefix matches, which rank above
// substring matches, then fuzzy subsequence matches, then paths with a
// component within a small edit distance. Ties go to the shorter path.
func SuggestSimilar(query string, h *Hierarchy, maxSuggestions int) []string {
	if maxSuggestions <= 0 || query == "" {
		return nil
	}
	q := strings.ToLower(query)
	threshold := max(2, len([]rune(q))/3)

	var found []suggestion
	for _, p := range h.AllPaths() {
		lp := strings.ToLower(p)
		switch {
		case lp == q:
			found = append(found, suggestion{path: p, tier: tierExact})
		case strings.HasPrefix(lp, q):
			found = append(found, suggestion{path: p, tier: tierPrefix})
		case strings.Contains(lp, q):
			found = append(found, suggestion{path: p, tier: tierSubstring})
		default:
			if d := fuzzy.RankMatchFold(query, p); d >= 0 {
				found = append(found, suggestion{path: p, tier: tierFuzzy, dist: d})
				continue
			}
			if d := componentDistance(q, lp); d <= threshold {
				found = append(found, suggestion{path: p, tier: tierEditDistance, dist: d})
			}
		}
	}

	slices.SortFunc(found, func(a, b suggestion) int {
		return cmp.Or(
			cmp.Compare(a.tier, b.tier),
			cmp.Compare(a.dist, b.dist),
			cmp.Compare(len(a.path), len(b.path)),
			strings.Compare(a.path, b.path),
		)
	})
	if len(found) > maxSuggestions {
		found = found[:maxSuggestions]
	}
	out := make([]string, len(found))
	for i, s := range found {
		out[i] = s.path
	}
	return out
}

// componentDistance is the smallest edit distance between q and any
// component of the lower-cased path lp.
func componentDistance(q, lp string) int {
	best := -1
	for _, c := range strings.Split(lp, Separator) {
		d := fuzzy.LevenshteinDistance(q, c)
		if best < 0 || d < best {
			best = d
		}
	}
	return best
}
