package docent

import (
	"fmt"
	"sort"

	"github.com/davidkarpay/library-docent/internal/library"
)

// Recommend returns entries tagged with the given topic, optionally narrowed
// to a difficulty level, ordered by a type-aware comparator: two papers
// compare by upvotes, every other pairing compares by added date. The
// resulting order is not a single global sort key; do not collapse the
// comparator into one.
func Recommend(entries []library.Entry, topic, level string, limit int) ([]library.Entry, error) {
	if topic == "" {
		return nil, fmt.Errorf("%w: topic", ErrMissingParameter)
	}

	filters := Filters{Topic: topic, Difficulty: level}

	var matched []library.Entry
	for i := range entries {
		if filters.Match(&entries[i]) {
			matched = append(matched, entries[i])
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := &matched[i], &matched[j]
		if a.ContentType == library.TypePaper && b.ContentType == library.TypePaper {
			return a.Upvotes > b.Upvotes
		}
		// ISO dates compare lexically; a missing date sorts last.
		return a.AddedDate > b.AddedDate
	})

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}
