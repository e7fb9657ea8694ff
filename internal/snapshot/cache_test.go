package snapshot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidkarpay/library-docent/internal/docent"
	"github.com/davidkarpay/library-docent/internal/library"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	t time.Time
}

func (f *fakeClock) Now() time.Time          { return f.t }
func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func countingFetch(calls *int, lib *library.Library, err error) FetchFunc {
	return func(ctx context.Context) (*library.Library, error) {
		*calls++
		if err != nil {
			return nil, err
		}
		return lib, nil
	}
}

func testLibrary(ids ...string) *library.Library {
	lib := &library.Library{Total: len(ids)}
	for _, id := range ids {
		lib.Entries = append(lib.Entries, library.Entry{ID: id})
	}
	return lib
}

func TestSnapshotFetchesOnceWithinTTL(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{t: time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)}
	var calls int
	c := New(countingFetch(&calls, testLibrary("a"), nil), time.Minute, WithClock(clock.Now))

	for i := 0; i < 5; i++ {
		lib, err := c.Snapshot(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, lib.Total)
	}
	assert.Equal(t, 1, calls, "repeated calls within the TTL reuse the snapshot")
}

func TestSnapshotRefreshesAfterTTL(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{t: time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)}
	var calls int
	c := New(countingFetch(&calls, testLibrary("a"), nil), time.Minute, WithClock(clock.Now))

	_, err := c.Snapshot(context.Background())
	require.NoError(t, err)

	clock.Advance(59 * time.Second)
	_, err = c.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	clock.Advance(2 * time.Second)
	_, err = c.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestSnapshotServesStaleOnRefreshFailure(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{t: time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)}
	calls := 0
	fetch := func(ctx context.Context) (*library.Library, error) {
		calls++
		if calls > 1 {
			return nil, errors.New("upstream down")
		}
		return testLibrary("a", "b"), nil
	}
	c := New(fetch, time.Minute, WithClock(clock.Now))

	lib, err := c.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, lib.Entries, 2)

	clock.Advance(2 * time.Minute)
	stale, err := c.Snapshot(context.Background())
	require.NoError(t, err, "stale snapshot is served when refresh fails")
	assert.Equal(t, lib, stale)
}

func TestSnapshotUnavailableWithoutCache(t *testing.T) {
	t.Parallel()

	var calls int
	c := New(countingFetch(&calls, nil, errors.New("connection refused")), time.Minute)

	_, err := c.Snapshot(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, docent.ErrUnavailable)
}

func TestEntriesImplementsSource(t *testing.T) {
	t.Parallel()

	var calls int
	c := New(countingFetch(&calls, testLibrary("x", "y"), nil), 0)

	var src docent.Source = c
	entries, err := src.Entries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "x", entries[0].ID)
}

func TestNewDefaultsTTL(t *testing.T) {
	t.Parallel()

	c := New(func(ctx context.Context) (*library.Library, error) { return testLibrary(), nil }, -1)
	assert.Equal(t, DefaultTTL, c.ttl)
}
