package docent

import (
	"strings"

	"github.com/davidkarpay/library-docent/internal/library"
)

// Field weights for term matches. Title and topic matches are the strongest
// relevance signals; a section-title match is a weak secondary signal and is
// awarded at most once per term no matter how many sections contain it.
const (
	weightTitle    = 3.0
	weightTopics   = 2.5
	weightSource   = 2.0
	weightSummary  = 2.0
	weightAbstract = 2.0
	weightSection  = 1.0

	// emptyQueryScore is returned when there are no query terms, so that a
	// filter-only search matches every entry uniformly.
	emptyQueryScore = 1.0
)

// Minimum token lengths. Learning-path goals use the stricter cutoff so
// short noise tokens do not pollute a curriculum.
const (
	SearchTokenMin = 1
	PathTokenMin   = 2
)

// Tokenize splits a query on whitespace, lower-cases each token, and drops
// tokens of length <= minLen.
func Tokenize(query string, minLen int) []string {
	fields := strings.Fields(strings.ToLower(query))
	terms := fields[:0]
	for _, f := range fields {
		if len(f) > minLen {
			terms = append(terms, f)
		}
	}
	return terms
}

// Score computes the relevance of an entry against a set of lower-cased
// query terms. Scoring is additive across terms and fields, using
// case-insensitive substring containment. Scores are not normalized by
// entry length; absolute values are only meaningful within one corpus.
func Score(e *library.Entry, terms []string) float64 {
	if len(terms) == 0 {
		return emptyQueryScore
	}

	title := strings.ToLower(e.Title)
	topics := strings.ToLower(strings.Join(e.Facets.Topics, " "))
	summary := strings.ToLower(strings.Join(e.Summary, " "))
	abstract := strings.ToLower(e.Abstract)

	var source string
	if src := e.Source(); src != nil {
		source = strings.ToLower(src.Name)
	}

	var score float64
	for _, term := range terms {
		if strings.Contains(title, term) {
			score += weightTitle
		}
		if strings.Contains(topics, term) {
			score += weightTopics
		}
		if source != "" && strings.Contains(source, term) {
			score += weightSource
		}
		if summary != "" && strings.Contains(summary, term) {
			score += weightSummary
		}
		if abstract != "" && strings.Contains(abstract, term) {
			score += weightAbstract
		}
		for _, sec := range e.Sections {
			if strings.Contains(strings.ToLower(sec.Title), term) {
				score += weightSection
				break
			}
		}
	}
	return score
}
