package docent

import (
	"sort"
	"time"

	"github.com/davidkarpay/library-docent/internal/library"
)

// DefaultWhatsNewDays is the lookback window when none is requested.
const DefaultWhatsNewDays = 7

// WhatsNew summarizes recently added content.
type WhatsNew struct {
	Since      string          `json:"since"`
	Count      int             `json:"count"`
	Items      []library.Entry `json:"items"`
	ByTopic    map[string]int  `json:"by_topic,omitempty"`
	TypeCounts map[string]int  `json:"type_counts,omitempty"`
}

// RecentlyAdded returns entries added within the last days days, newest
// first, optionally restricted to one content type. Items are hard-capped
// at MaxLimit regardless of how wide the window is; the topic and type
// rollups cover every matching entry, capped or not. The caller supplies
// the clock so the cutoff is testable.
func RecentlyAdded(entries []library.Entry, days int, contentType string, now time.Time) WhatsNew {
	if days <= 0 {
		days = DefaultWhatsNewDays
	}
	cutoff := now.AddDate(0, 0, -days).Format("2006-01-02")
	filters := Filters{Type: contentType}

	out := WhatsNew{
		Since:      cutoff,
		ByTopic:    make(map[string]int),
		TypeCounts: make(map[string]int),
	}

	var recent []library.Entry
	for i := range entries {
		e := &entries[i]
		// ISO dates compare lexically; entries without a date never match.
		if e.AddedDate < cutoff {
			continue
		}
		if !filters.Match(e) {
			continue
		}
		recent = append(recent, entries[i])
		out.TypeCounts[e.ContentType]++
		for _, topic := range e.Facets.Topics {
			out.ByTopic[topic]++
		}
	}

	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].AddedDate > recent[j].AddedDate
	})

	out.Count = len(recent)
	if len(recent) > MaxLimit {
		recent = recent[:MaxLimit]
	}
	out.Items = recent
	return out
}
