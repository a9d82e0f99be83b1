package routing

import (
	"cmp"
	"slices"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// DefaultMaxSuggestions is how many near-miss paths a resolution error
// carries unless WithMaxSuggestions overrides it.
const DefaultMaxSuggestions = 3

// ClosestMatches ranks candidates by textual similarity to target and
// returns up to n of them, most similar first. Candidates with no
// similarity to the target are dropped, so the result may be shorter than
// n, or empty.
func ClosestMatches(target string, candidates []string, n int) []string {
	if n <= 0 {
		return nil
	}
	type scored struct {
		path  string
		ratio float64
	}
	ranked := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		if r := similarity(target, c); r > 0 {
			ranked = append(ranked, scored{path: c, ratio: r})
		}
	}
	slices.SortStableFunc(ranked, func(a, b scored) int {
		return cmp.Compare(b.ratio, a.ratio)
	})
	n = min(n, len(ranked))
	matches := make([]string, n)
	for i := range n {
		matches[i] = ranked[i].path
	}
	return matches
}

// similarity scores two strings on [0, 1]: 1 for identical strings, 0 when
// every rune of the longer string would need to change.
func similarity(a, b string) float64 {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1
	}
	distance := levenshtein.ComputeDistance(a, b)
	return 1 - float64(distance)/float64(longest)
}
