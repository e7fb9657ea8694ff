package docent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidkarpay/library-docent/internal/library"
)

func TestLookupByPrimaryID(t *testing.T) {
	t.Parallel()

	entry, err := Lookup(testCorpus(), "paper-attention")
	require.NoError(t, err)
	assert.Equal(t, "Attention Is All You Need", entry.Title)
}

func TestLookupFallbackOrder(t *testing.T) {
	t.Parallel()

	entries := testCorpus()

	byArxiv, err := Lookup(entries, "1706.03762")
	require.NoError(t, err)
	assert.Equal(t, "paper-attention", byArxiv.ID)

	byFilename, err := Lookup(entries, "attention-is-all-you-need")
	require.NoError(t, err)
	assert.Equal(t, "paper-attention", byFilename.ID)

	bySlug, err := Lookup(entries, "sql-indexing-deep-dive")
	require.NoError(t, err)
	assert.Equal(t, "vid-sql", bySlug.ID)
}

// A primary-ID match wins even when a later entry's alternate identifier
// collides with the requested value.
func TestLookupPrimaryIDWinsOverAlternates(t *testing.T) {
	t.Parallel()

	entries := []library.Entry{
		{ID: "other", Filename: "shared-key"},
		{ID: "shared-key", Title: "The Real One"},
	}
	entry, err := Lookup(entries, "shared-key")
	require.NoError(t, err)
	assert.Equal(t, "The Real One", entry.Title)
}

func TestLookupNotFound(t *testing.T) {
	t.Parallel()

	_, err := Lookup(testCorpus(), "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLookupMissingID(t *testing.T) {
	t.Parallel()

	_, err := Lookup(testCorpus(), "")
	assert.ErrorIs(t, err, ErrMissingParameter)
}

func TestRelatedRankedByTopicOverlap(t *testing.T) {
	t.Parallel()

	source, related, err := Related(testCorpus(), "vid-transformers", 10)
	require.NoError(t, err)
	assert.Equal(t, "vid-transformers", source.ID)
	require.NotEmpty(t, related)

	for _, item := range related {
		assert.NotEqual(t, source.ID, item.Entry.ID, "source is never its own relative")
		assert.NotEmpty(t, item.MatchingTopics)
	}
	for i := 1; i < len(related); i++ {
		assert.GreaterOrEqual(t, related[i-1].Relevance, related[i].Relevance)
	}

	// The SQL video shares no topics and must be absent.
	for _, item := range related {
		assert.NotEqual(t, "vid-sql", item.Entry.ID)
	}
}

func TestRelatedUnknownID(t *testing.T) {
	t.Parallel()

	_, _, err := Related(testCorpus(), "missing", 5)
	assert.ErrorIs(t, err, ErrNotFound)
}
