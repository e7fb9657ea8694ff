// Package snapshot caches the published library index in memory with a
// bounded time-to-live, refreshing it with a blocking fetch when stale.
package snapshot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/davidkarpay/library-docent/internal/docent"
	"github.com/davidkarpay/library-docent/internal/library"
)

// DefaultTTL bounds how long a cached snapshot is served before a refresh.
const DefaultTTL = 5 * time.Minute

// FetchFunc loads a fresh copy of the library index.
type FetchFunc func(ctx context.Context) (*library.Library, error)

// Cache holds one library snapshot and refreshes it when its TTL lapses.
// Concurrent requests arriving during a refresh may each trigger the fetch;
// last writer wins on the cached slot, which is acceptable because the
// fetched document is idempotent. If a refresh fails and a stale snapshot
// exists, the stale copy is served and the failure logged.
type Cache struct {
	fetch FetchFunc
	ttl   time.Duration
	now   func() time.Time
	log   zerolog.Logger

	mu        sync.RWMutex
	lib       *library.Library
	fetchedAt time.Time
}

// Option customizes a Cache.
type Option func(*Cache)

// WithClock injects the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// WithLogger sets the logger used for refresh failures.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Cache) { c.log = log }
}

// New creates a cache around the given fetch function. A non-positive ttl
// falls back to DefaultTTL.
func New(fetch FetchFunc, ttl time.Duration, opts ...Option) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{
		fetch: fetch,
		ttl:   ttl,
		now:   time.Now,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns the cached library, refreshing it first if stale. When
// the refresh fails, a previously cached snapshot is served as-is; with no
// snapshot at all the error wraps docent.ErrUnavailable.
func (c *Cache) Snapshot(ctx context.Context) (*library.Library, error) {
	c.mu.RLock()
	lib, fetchedAt := c.lib, c.fetchedAt
	c.mu.RUnlock()

	if lib != nil && c.now().Sub(fetchedAt) < c.ttl {
		return lib, nil
	}

	fresh, err := c.fetch(ctx)
	if err != nil {
		if lib != nil {
			c.log.Warn().Err(err).Msg("library refresh failed, serving stale snapshot")
			return lib, nil
		}
		return nil, fmt.Errorf("%w: %v", docent.ErrUnavailable, err)
	}

	c.mu.Lock()
	c.lib = fresh
	c.fetchedAt = c.now()
	c.mu.Unlock()

	return fresh, nil
}

// Entries implements docent.Source over the cached snapshot.
func (c *Cache) Entries(ctx context.Context) ([]library.Entry, error) {
	lib, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return lib.Entries, nil
}
