package domain

import (
	"sort"
	"strings"
)

// NormalizeTerm canonicalizes a raw search input for use in both the fetch
// URL and the display filter: surrounding whitespace is trimmed and the term
// is lower-cased. The original client normalized only the network term and
// filtered on the raw input; a single normalized term is used for both here.
func NormalizeTerm(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Project derives the display sequence from a store snapshot and the active
// search term: the subsequence of records whose text contains term as a
// substring, ordered by ascending creation time. An empty term keeps every
// record. Ties on creation time are broken by identity so the result is
// deterministic for identical inputs.
func Project(records []Record, term string) []Record {
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if term == "" || strings.Contains(rec.Text, term) {
			out = append(out, rec)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out
}
