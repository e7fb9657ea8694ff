package docent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchEmptyQueryReturnsAllInOriginalOrder(t *testing.T) {
	t.Parallel()

	entries := testCorpus()
	results := Search(entries, "", Filters{}, 0)

	require.Len(t, results, len(entries))
	for i, res := range results {
		assert.Equal(t, entries[i].ID, res.Entry.ID, "stable original order at %d", i)
		assert.Equal(t, emptyQueryScore, res.Score)
	}
}

func TestSearchStopLengthTokensBehaveAsEmptyQuery(t *testing.T) {
	t.Parallel()

	entries := testCorpus()
	// Every token has length <= 1, so the query degenerates to empty.
	results := Search(entries, "a b c", Filters{}, 0)
	assert.Len(t, results, len(entries))
}

func TestSearchRanksTitleMatchesFirst(t *testing.T) {
	t.Parallel()

	entries := testCorpus()
	results := Search(entries, "transformer architecture", Filters{}, 0)

	require.NotEmpty(t, results)
	assert.Equal(t, "vid-transformers", results[0].Entry.ID)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestSearchDropsZeroScoresOnlyWithTerms(t *testing.T) {
	t.Parallel()

	entries := testCorpus()

	// With real terms, non-matching entries disappear.
	results := Search(entries, "kubernetes", Filters{}, 0)
	for _, res := range results {
		assert.Greater(t, res.Score, 0.0)
	}
	assert.Less(t, len(results), len(entries))

	// A filter-only browse keeps zero-relevance entries.
	browse := Search(entries, "", Filters{Topic: "databases"}, 0)
	require.Len(t, browse, 1)
	assert.Equal(t, "vid-sql", browse[0].Entry.ID)
}

func TestSearchAppliesFilters(t *testing.T) {
	t.Parallel()

	entries := testCorpus()
	results := Search(entries, "transformer", Filters{Type: "paper"}, 0)

	require.NotEmpty(t, results)
	for _, res := range results {
		assert.Equal(t, "paper", res.Entry.ContentType)
	}
}

func TestSearchUnknownFilterValueYieldsNoMatches(t *testing.T) {
	t.Parallel()

	results := Search(testCorpus(), "transformer", Filters{Topic: "knitting"}, 0)
	assert.Empty(t, results)
}

func TestSearchIdempotent(t *testing.T) {
	t.Parallel()

	entries := testCorpus()
	first := Search(entries, "attention transformer", Filters{}, 0)
	second := Search(entries, "attention transformer", Filters{}, 0)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Entry.ID, second[i].Entry.ID)
		assert.Equal(t, first[i].Score, second[i].Score)
	}
}

func TestClampLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		limit int
		want  int
	}{
		{0, DefaultLimit},
		{-5, DefaultLimit},
		{1, 1},
		{20, 20},
		{50, 50},
		{51, MaxLimit},
		{1000, MaxLimit},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampLimit(tt.limit), "limit %d", tt.limit)
	}
}

func TestSearchLimitBoundaries(t *testing.T) {
	t.Parallel()

	entries := syntheticEntries(60)

	assert.Len(t, Search(entries, "", Filters{}, 0), DefaultLimit)
	assert.Len(t, Search(entries, "", Filters{}, -1), DefaultLimit)
	assert.Len(t, Search(entries, "", Filters{}, 1000), MaxLimit)
	assert.Len(t, Search(entries, "", Filters{}, 5), 5)
}
