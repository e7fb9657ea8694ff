package docent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidkarpay/library-docent/internal/library"
)

func TestMatchingSections(t *testing.T) {
	t.Parallel()

	entries := testCorpus()
	vid := &entries[0]

	matches := MatchingSections(vid, []string{"attention"})
	require.Len(t, matches, 1)
	assert.Equal(t, "Self-attention mechanism", matches[0].Title)
	assert.Equal(t, 320, matches[0].Start)
	assert.Equal(t, "00:05:20", matches[0].Timestamp)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc123&t=320s", matches[0].TimestampURL)
}

func TestMatchingSectionsDescriptionAlsoMatches(t *testing.T) {
	t.Parallel()

	entries := testCorpus()
	matches := MatchingSections(&entries[0], []string{"weights"})
	require.Len(t, matches, 1)
	assert.Equal(t, "Self-attention mechanism", matches[0].Title)
}

func TestMatchingSectionsCappedAtThree(t *testing.T) {
	t.Parallel()

	e := library.Entry{
		Sections: []library.Section{
			{Start: 0, Title: "Go channels intro"},
			{Start: 60, Title: "Go channels buffering"},
			{Start: 120, Title: "Go channels select"},
			{Start: 180, Title: "Go channels pitfalls"},
		},
	}
	matches := MatchingSections(&e, []string{"channels"})
	assert.Len(t, matches, maxSectionMatches)
}

func TestMatchingSectionsNoTermsNoSections(t *testing.T) {
	t.Parallel()

	entries := testCorpus()
	assert.Nil(t, MatchingSections(&entries[0], nil))

	noSections := library.Entry{Title: "bare"}
	assert.Nil(t, MatchingSections(&noSections, []string{"bare"}))
}

func TestMatchingSectionsOmitsURLWhenEntryHasNone(t *testing.T) {
	t.Parallel()

	e := library.Entry{
		Sections: []library.Section{{Start: 30, Title: "Parsing basics"}},
	}
	matches := MatchingSections(&e, []string{"parsing"})
	require.Len(t, matches, 1)
	assert.Empty(t, matches[0].TimestampURL)
}
