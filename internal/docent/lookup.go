package docent

import (
	"fmt"
	"sort"

	"github.com/davidkarpay/library-docent/internal/library"
)

// Lookup finds an entry by identifier, trying each known identifier kind in
// a fixed fallback order: primary ID, arXiv ID, metadata filename, then the
// title-derived slug. The first match wins.
func Lookup(entries []library.Entry, id string) (*library.Entry, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id", ErrMissingParameter)
	}

	for i := range entries {
		if entries[i].ID == id {
			return &entries[i], nil
		}
	}
	for i := range entries {
		if entries[i].ArxivID != "" && entries[i].ArxivID == id {
			return &entries[i], nil
		}
	}
	for i := range entries {
		if entries[i].Filename != "" && entries[i].Filename == id {
			return &entries[i], nil
		}
	}
	for i := range entries {
		if entries[i].Slug() == id {
			return &entries[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// RelatedItem is an entry related to a source item by topic overlap.
type RelatedItem struct {
	Entry          library.Entry `json:"entry"`
	MatchingTopics []string      `json:"matching_topics"`
	Relevance      float64       `json:"relevance"`
}

// Related finds entries sharing topics with the identified entry, ranked by
// the fraction of the source's topics they cover.
func Related(entries []library.Entry, id string, limit int) (*library.Entry, []RelatedItem, error) {
	source, err := Lookup(entries, id)
	if err != nil {
		return nil, nil, err
	}

	sourceTopics := make(map[string]bool, len(source.Facets.Topics))
	for _, t := range source.Facets.Topics {
		sourceTopics[lower(t)] = true
	}

	var related []RelatedItem
	for i := range entries {
		e := &entries[i]
		if e.ID == source.ID {
			continue
		}
		var overlap []string
		for _, t := range e.Facets.Topics {
			if sourceTopics[lower(t)] {
				overlap = append(overlap, lower(t))
			}
		}
		if len(overlap) == 0 {
			continue
		}
		related = append(related, RelatedItem{
			Entry:          entries[i],
			MatchingTopics: overlap,
			Relevance:      float64(len(overlap)) / float64(len(sourceTopics)),
		})
	}

	sort.SliceStable(related, func(i, j int) bool {
		return related[i].Relevance > related[j].Relevance
	})

	if limit > 0 && len(related) > limit {
		related = related[:limit]
	}
	return source, related, nil
}
