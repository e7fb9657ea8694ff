package docent

import (
	"strings"

	"github.com/davidkarpay/library-docent/internal/library"
)

// TypeAll is the sentinel content-type filter that matches every entry.
const TypeAll = "all"

// Filters restricts a result set by facet values. Zero-valued fields impose
// no constraint; a set field must match exactly for the entry to survive.
type Filters struct {
	Type       string `json:"type,omitempty"`
	Topic      string `json:"topic,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Format     string `json:"format,omitempty"`
	Channel    string `json:"channel,omitempty"`
}

// IsZero reports whether no filter field is set.
func (f Filters) IsZero() bool {
	return f == Filters{}
}

// Match reports whether the entry satisfies every set filter. Entries with
// missing metadata simply fail the corresponding predicate; Match never
// errors on partially populated entries.
func (f Filters) Match(e *library.Entry) bool {
	if f.Type != "" && f.Type != TypeAll && e.ContentType != f.Type {
		return false
	}
	if f.Topic != "" && !hasTopic(e, f.Topic) {
		return false
	}
	if f.Difficulty != "" && !strings.EqualFold(e.Facets.Difficulty, f.Difficulty) {
		return false
	}
	if f.Format != "" && !strings.EqualFold(e.Facets.Format, f.Format) {
		return false
	}
	if f.Channel != "" {
		src := e.Source()
		if src == nil || src.Slug != f.Channel {
			return false
		}
	}
	return true
}

// hasTopic reports whether the topic facet contains the given topic.
// Membership, not set equality: a multi-topic entry matches any one of them.
func hasTopic(e *library.Entry, topic string) bool {
	for _, t := range e.Facets.Topics {
		if strings.EqualFold(t, topic) {
			return true
		}
	}
	return false
}
