package docent

import (
	"sort"

	"github.com/davidkarpay/library-docent/internal/library"
)

// Result limits enforced across the query surface.
const (
	DefaultLimit = 20
	MaxLimit     = 50
)

// Result pairs an entry with its computed relevance score. The score is
// reported but never persisted.
type Result struct {
	Entry library.Entry `json:"entry"`
	Score float64       `json:"score"`
}

// ClampLimit normalizes a requested result limit: non-positive values fall
// back to the default, values above the cap are clamped to it.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Search runs a free-text query with facet filters over a library snapshot
// and returns ranked results. A query consisting only of stop-length tokens
// behaves like an empty query: every filtered entry matches with a uniform
// score. When the query has real terms, zero-score entries are dropped.
// Ties preserve the snapshot's original order.
func Search(entries []library.Entry, query string, filters Filters, limit int) []Result {
	terms := Tokenize(query, SearchTokenMin)
	limit = ClampLimit(limit)

	var results []Result
	for i := range entries {
		e := &entries[i]
		if !filters.Match(e) {
			continue
		}
		score := Score(e, terms)
		if score <= 0 && len(terms) > 0 {
			continue
		}
		results = append(results, Result{Entry: entries[i], Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}
