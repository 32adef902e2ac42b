package render

import (
	"github.com/atinylittleshell/gshmatch/internal/matches"
	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
)

// Suggest ranks every candidate of the cycle against needle by fuzzy score
// and returns at most limit of them. It is meant for the case where prefix
// selection left nothing visible.
func Suggest(m *matches.Matches, needle string, limit int) []string {
	if needle == "" || limit <= 0 {
		return nil
	}

	candidates := make([]string, m.UnfilteredCount())
	for i := range candidates {
		candidates[i] = m.UnfilteredMatch(i)
	}

	found := fuzzy.Find(needle, lo.Uniq(candidates))
	suggestions := lo.Map(found, func(match fuzzy.Match, _ int) string {
		return match.Str
	})
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}
