package cityscout

import (
	"sort"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
)

// maxSuggestInputLen limits query length before Levenshtein comparisons.
const maxSuggestInputLen = 256

// containsBonus is subtracted from the distance when the query appears
// verbatim inside a slug or name.
const containsBonus = 2

// NormalizeSlug turns user input into slug form: trimmed, lowercased, with
// each run of whitespace replaced by a single hyphen.
func NormalizeSlug(s string) string {
	fields := strings.FieldsFunc(toLower(s), unicode.IsSpace)
	return strings.Join(fields, "-")
}

type suggestion struct {
	slug  string
	score int
}

// SuggestSlugs returns up to limit slugs closest to query, best first. It is
// meant for "did you mean" hints after a failed City lookup.
func (s *Store) SuggestSlugs(query string, limit int) []string {
	q := NormalizeSlug(query)
	if q == "" || limit <= 0 {
		return nil
	}
	if runes := []rune(q); len(runes) > maxSuggestInputLen {
		q = string(runes[:maxSuggestInputLen])
	}

	scored := make([]suggestion, 0, len(s.Cities))
	for _, c := range s.Cities {
		slugScore := levenshtein.ComputeDistance(q, c.Slug)
		nameScore := levenshtein.ComputeDistance(q, NormalizeSlug(c.Name+" "+c.State))
		score := min(slugScore, nameScore)
		if strings.Contains(c.Slug, q) || strings.Contains(NormalizeSlug(c.Name), q) {
			score -= containsBonus
		}
		scored = append(scored, suggestion{slug: c.Slug, score: score})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score < scored[j].score
	})

	if limit > len(scored) {
		limit = len(scored)
	}
	out := make([]string, limit)
	for i := range out {
		out[i] = scored[i].slug
	}
	return out
}
