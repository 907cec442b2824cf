package match

import (
	"sort"
	"strings"
)

// DefaultThreshold is the minimum NameSimilarity for a suggestion.
const DefaultThreshold = 0.5

// MaxSuggestions caps the length of a Suggest result.
const MaxSuggestions = 3

type scored struct {
	name  string
	score float64
}

// Suggest returns up to MaxSuggestions candidates that resemble name,
// best first. Ties keep the candidates' input order. A candidate that
// normalizes to the same string as name, or contains it, always qualifies.
func Suggest(name string, candidates []string) []string {
	return SuggestWithThreshold(name, candidates, DefaultThreshold)
}

// SuggestWithThreshold is Suggest with a caller-supplied cutoff.
func SuggestWithThreshold(name string, candidates []string, threshold float64) []string {
	norm := Normalize(name)
	if norm == "" {
		return nil
	}

	var ranked []scored

	seen := make(map[string]struct{}, len(candidates))

	for _, c := range candidates {
		if _, dup := seen[c]; dup {
			continue
		}

		seen[c] = struct{}{}

		cn := Normalize(c)

		score := Similarity(norm, cn)
		if score < threshold && cn != "" && (strings.Contains(cn, norm) || strings.Contains(norm, cn)) {
			score = threshold
		}

		if score >= threshold {
			ranked = append(ranked, scored{name: c, score: score})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > MaxSuggestions {
		ranked = ranked[:MaxSuggestions]
	}

	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.name
	}

	return out
}
