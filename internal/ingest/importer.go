// Package ingest imports a published library index into the index host's
// sqlite store and Bleve index.
package ingest

import (
	"context"
	"crypto/md5"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/davidkarpay/library-docent/internal/index"
	"github.com/davidkarpay/library-docent/internal/library"
	"github.com/davidkarpay/library-docent/internal/storage"
)

// concurrency is the number of entries imported in parallel.
const concurrency = 5

// Importer loads a library index and upserts its entries into storage and
// the search index, skipping entries whose content has not changed.
type Importer struct {
	db  *storage.DB
	idx *index.Index
	log zerolog.Logger

	// Optional directories holding the markdown bodies keyed by entry
	// filename; when present the stripped text is indexed as content.
	TranscriptsDir string
	PapersDir      string
}

// NewImporter creates an importer writing to the given store and index.
func NewImporter(db *storage.DB, idx *index.Index, log zerolog.Logger) *Importer {
	return &Importer{db: db, idx: idx, log: log}
}

// Stats holds import statistics.
type Stats struct {
	Total    int
	New      int
	Updated  int
	Skipped  int
	Errors   int
	Duration time.Duration
}

// Run imports every entry in the library.
func (imp *Importer) Run(ctx context.Context, lib *library.Library) (*Stats, error) {
	start := time.Now()
	stats := &Stats{Total: len(lib.Entries)}

	imp.log.Info().Int("entries", len(lib.Entries)).Msg("starting import")

	entryChan := make(chan *library.Entry, len(lib.Entries))
	for i := range lib.Entries {
		entryChan <- &lib.Entries[i]
	}
	close(entryChan)

	var wg sync.WaitGroup
	var mu sync.Mutex

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for e := range entryChan {
				if ctx.Err() != nil {
					return
				}
				if err := imp.importEntry(e, stats, &mu); err != nil {
					imp.log.Error().Err(err).Str("id", e.ID).Str("title", e.Title).Msg("import failed")
					mu.Lock()
					stats.Errors++
					mu.Unlock()
				}
			}
		}()
	}

	wg.Wait()

	stats.Duration = time.Since(start)
	imp.log.Info().
		Int("new", stats.New).
		Int("updated", stats.Updated).
		Int("skipped", stats.Skipped).
		Int("errors", stats.Errors).
		Dur("duration", stats.Duration).
		Msg("import complete")

	return stats, ctx.Err()
}

func (imp *Importer) importEntry(e *library.Entry, stats *Stats, mu *sync.Mutex) error {
	content := imp.loadContent(e)

	hash := fmt.Sprintf("%x", md5.Sum([]byte(e.Title+content+e.AddedDate)))

	existing, err := imp.db.GetContentHash(e.ID)
	if err != nil {
		return fmt.Errorf("get content hash: %w", err)
	}
	if existing == hash {
		mu.Lock()
		stats.Skipped++
		mu.Unlock()
		return nil
	}

	rec := &storage.Record{
		Entry:       *e,
		Content:     content,
		ContentHash: hash,
		SyncedAt:    time.Now(),
	}

	if err := imp.db.Upsert(rec); err != nil {
		return fmt.Errorf("upsert entry: %w", err)
	}
	if err := imp.idx.IndexRecord(rec); err != nil {
		return fmt.Errorf("index entry: %w", err)
	}

	mu.Lock()
	if existing == "" {
		stats.New++
	} else {
		stats.Updated++
	}
	mu.Unlock()

	imp.log.Debug().Str("id", e.ID).Str("title", e.Title).Msg("imported")
	return nil
}

// loadContent reads the markdown body for an entry if a content directory
// is configured and the file exists. Missing bodies are fine; the entry is
// still searchable by its metadata.
func (imp *Importer) loadContent(e *library.Entry) string {
	name := e.Filename
	if name == "" {
		name = e.Slug()
	}

	var dir string
	if e.ContentType == library.TypePaper {
		dir = imp.PapersDir
	} else {
		dir = imp.TranscriptsDir
	}
	if dir == "" {
		return ""
	}

	raw, err := os.ReadFile(filepath.Join(dir, name+".md"))
	if err != nil {
		return ""
	}
	return PlainText(string(raw))
}
