package docent

import (
	"fmt"
	"strings"

	"github.com/davidkarpay/library-docent/internal/library"
)

// maxSectionMatches caps how many matching sections a search result reports.
const maxSectionMatches = 3

// SectionMatch is a section of an entry that contains a query term, with a
// formatted timestamp and a deep link into the source.
type SectionMatch struct {
	Start        int    `json:"start"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	Timestamp    string `json:"timestamp"`
	TimestampURL string `json:"timestamp_url,omitempty"`
}

// MatchingSections returns up to three sections whose title or description
// contains any of the query terms.
func MatchingSections(e *library.Entry, terms []string) []SectionMatch {
	if len(terms) == 0 || len(e.Sections) == 0 {
		return nil
	}

	var matches []SectionMatch
	for _, sec := range e.Sections {
		combined := strings.ToLower(sec.Title + " " + sec.Description)
		for _, term := range terms {
			if !strings.Contains(combined, term) {
				continue
			}
			m := SectionMatch{
				Start:       sec.Start,
				Title:       sec.Title,
				Description: sec.Description,
				Timestamp:   library.FormatTimestamp(sec.Start),
			}
			if e.URL != "" {
				m.TimestampURL = fmt.Sprintf("%s&t=%ds", e.URL, sec.Start)
			}
			matches = append(matches, m)
			break
		}
		if len(matches) >= maxSectionMatches {
			break
		}
	}
	return matches
}

func lower(s string) string { return strings.ToLower(s) }
