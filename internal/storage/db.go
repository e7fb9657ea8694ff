// Package storage is the sqlite store of record for the index host. Entries
// are written by the importer and read back whenever the index host needs a
// full library snapshot.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/davidkarpay/library-docent/internal/library"
)

// DB wraps SQLite database operations.
type DB struct {
	db *sql.DB
}

// Open opens or creates a SQLite database.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// WAL mode so the serving path can read while an import runs.
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	store := &DB{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return store, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		id TEXT PRIMARY KEY,
		content_type TEXT NOT NULL,
		title TEXT NOT NULL,
		summary TEXT,
		abstract TEXT,
		topics TEXT,
		difficulty TEXT,
		format TEXT,
		sections TEXT,
		source_kind TEXT,
		source_name TEXT,
		source_slug TEXT,
		url TEXT,
		added_date TEXT,
		published_date TEXT,
		upvotes INTEGER NOT NULL DEFAULT 0,
		arxiv_id TEXT,
		filename TEXT,
		duration_seconds INTEGER NOT NULL DEFAULT 0,
		content TEXT,
		content_hash TEXT NOT NULL DEFAULT '',
		synced_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_content_type ON entries(content_type);
	CREATE INDEX IF NOT EXISTS idx_added_date ON entries(added_date);
	CREATE INDEX IF NOT EXISTS idx_source_slug ON entries(source_slug);
	CREATE INDEX IF NOT EXISTS idx_filename ON entries(filename);
	CREATE INDEX IF NOT EXISTS idx_hash ON entries(content_hash);
	`

	_, err := d.db.Exec(schema)
	return err
}

// Upsert inserts or updates a stored entry.
func (d *DB) Upsert(rec *Record) error {
	row, err := rec.toRow()
	if err != nil {
		return err
	}

	query := `
	INSERT INTO entries (
		id, content_type, title, summary, abstract, topics, difficulty,
		format, sections, source_kind, source_name, source_slug, url,
		added_date, published_date, upvotes, arxiv_id, filename,
		duration_seconds, content, content_hash, synced_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		content_type = excluded.content_type,
		title = excluded.title,
		summary = excluded.summary,
		abstract = excluded.abstract,
		topics = excluded.topics,
		difficulty = excluded.difficulty,
		format = excluded.format,
		sections = excluded.sections,
		source_kind = excluded.source_kind,
		source_name = excluded.source_name,
		source_slug = excluded.source_slug,
		url = excluded.url,
		added_date = excluded.added_date,
		published_date = excluded.published_date,
		upvotes = excluded.upvotes,
		arxiv_id = excluded.arxiv_id,
		filename = excluded.filename,
		duration_seconds = excluded.duration_seconds,
		content = excluded.content,
		content_hash = excluded.content_hash,
		synced_at = excluded.synced_at
	`

	_, err = d.db.Exec(query,
		row.id, row.contentType, row.title, row.summary, row.abstract,
		row.topics, row.difficulty, row.format, row.sections,
		row.sourceKind, row.sourceName, row.sourceSlug, row.url,
		row.addedDate, row.publishedDate, row.upvotes, row.arxivID,
		row.filename, row.durationSeconds, row.content, row.contentHash,
		row.syncedAt,
	)
	return err
}

const selectColumns = `
	id, content_type, title, summary, abstract, topics, difficulty,
	format, sections, source_kind, source_name, source_slug, url,
	added_date, published_date, upvotes, arxiv_id, filename,
	duration_seconds, content, content_hash, synced_at
`

// Get retrieves a stored entry by primary ID. Returns nil when absent.
func (d *DB) Get(id string) (*Record, error) {
	query := "SELECT " + selectColumns + " FROM entries WHERE id = ?"
	rec, err := scanRecord(d.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// List retrieves all stored entries newest first, matching the order the
// site generator writes library.json in.
func (d *DB) List() ([]*Record, error) {
	query := "SELECT " + selectColumns + " FROM entries ORDER BY added_date DESC, id"
	rows, err := d.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Entries returns every stored entry as a library snapshot, newest first.
// It satisfies the docent source interface for the index host.
func (d *DB) Entries(_ context.Context) ([]library.Entry, error) {
	recs, err := d.List()
	if err != nil {
		return nil, err
	}
	entries := make([]library.Entry, 0, len(recs))
	for _, rec := range recs {
		entries = append(entries, rec.Entry)
	}
	return entries, nil
}

// Count returns the total number of stored entries.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&count)
	return count, err
}

// CountByType returns entry counts grouped by content type.
func (d *DB) CountByType() (map[string]int, error) {
	rows, err := d.db.Query("SELECT content_type, COUNT(*) FROM entries GROUP BY content_type")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var contentType string
		var count int
		if err := rows.Scan(&contentType, &count); err != nil {
			return nil, err
		}
		counts[contentType] = count
	}
	return counts, rows.Err()
}

// GetContentHash retrieves just the content hash for an entry, or an empty
// string when the entry is not stored yet.
func (d *DB) GetContentHash(id string) (string, error) {
	var hash string
	err := d.db.QueryRow("SELECT content_hash FROM entries WHERE id = ?", id).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return hash, err
}
