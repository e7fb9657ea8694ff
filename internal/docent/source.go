package docent

import (
	"context"

	"github.com/davidkarpay/library-docent/internal/library"
)

// Source supplies the library snapshot a query evaluates against. The
// index host backs this with its sqlite store of record; the docent host
// backs it with a TTL-cached copy of the published library index.
type Source interface {
	Entries(ctx context.Context) ([]library.Entry, error)
}

// StaticSource is a fixed in-memory snapshot, used by tests and one-shot
// CLI commands.
type StaticSource []library.Entry

// Entries returns the snapshot unchanged.
func (s StaticSource) Entries(context.Context) ([]library.Entry, error) {
	return s, nil
}
