package storage

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/davidkarpay/library-docent/internal/library"
)

// Record is a stored entry plus the bookkeeping the importer maintains:
// the plain-text content used for full-text indexing, its hash for change
// detection, and the import timestamp.
type Record struct {
	Entry library.Entry

	Content     string // plain text stripped from the transcript/paper markdown
	ContentHash string
	SyncedAt    time.Time
}

// row mirrors the entries table; slice- and struct-valued entry fields are
// stored as JSON columns.
type row struct {
	id              string
	contentType     string
	title           string
	summary         []byte
	abstract        string
	topics          []byte
	difficulty      string
	format          string
	sections        []byte
	sourceKind      string
	sourceName      string
	sourceSlug      string
	url             string
	addedDate       string
	publishedDate   string
	upvotes         int
	arxivID         string
	filename        string
	durationSeconds int
	content         string
	contentHash     string
	syncedAt        time.Time
}

func (r *Record) toRow() (*row, error) {
	e := &r.Entry

	summary, err := json.Marshal(e.Summary)
	if err != nil {
		return nil, fmt.Errorf("marshal summary: %w", err)
	}
	topics, err := json.Marshal(e.Facets.Topics)
	if err != nil {
		return nil, fmt.Errorf("marshal topics: %w", err)
	}
	sections, err := json.Marshal(e.Sections)
	if err != nil {
		return nil, fmt.Errorf("marshal sections: %w", err)
	}

	out := &row{
		id:              e.ID,
		contentType:     e.ContentType,
		title:           e.Title,
		summary:         summary,
		abstract:        e.Abstract,
		topics:          topics,
		difficulty:      e.Facets.Difficulty,
		format:          e.Facets.Format,
		sections:        sections,
		url:             e.URL,
		addedDate:       e.AddedDate,
		publishedDate:   e.PublishedDate,
		upvotes:         e.Upvotes,
		arxivID:         e.ArxivID,
		filename:        e.Filename,
		durationSeconds: e.DurationSeconds,
		content:         r.Content,
		contentHash:     r.ContentHash,
		syncedAt:        r.SyncedAt,
	}

	switch {
	case e.Channel != nil:
		out.sourceKind, out.sourceName, out.sourceSlug = "channel", e.Channel.Name, e.Channel.Slug
	case e.Show != nil:
		out.sourceKind, out.sourceName, out.sourceSlug = "show", e.Show.Name, e.Show.Slug
	case e.Blog != nil:
		out.sourceKind, out.sourceName, out.sourceSlug = "blog", e.Blog.Name, e.Blog.Slug
	}

	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*Record, error) {
	var r row
	err := s.Scan(
		&r.id, &r.contentType, &r.title, &r.summary, &r.abstract,
		&r.topics, &r.difficulty, &r.format, &r.sections,
		&r.sourceKind, &r.sourceName, &r.sourceSlug, &r.url,
		&r.addedDate, &r.publishedDate, &r.upvotes, &r.arxivID,
		&r.filename, &r.durationSeconds, &r.content, &r.contentHash,
		&r.syncedAt,
	)
	if err != nil {
		return nil, err
	}

	rec := &Record{
		Entry: library.Entry{
			ID:          r.id,
			ContentType: r.contentType,
			Title:       r.title,
			Abstract:    r.abstract,
			Facets: library.Facets{
				Difficulty: r.difficulty,
				Format:     r.format,
			},
			URL:             r.url,
			AddedDate:       r.addedDate,
			PublishedDate:   r.publishedDate,
			Upvotes:         r.upvotes,
			ArxivID:         r.arxivID,
			Filename:        r.filename,
			DurationSeconds: r.durationSeconds,
		},
		Content:     r.content,
		ContentHash: r.contentHash,
		SyncedAt:    r.syncedAt,
	}

	if len(r.summary) > 0 {
		if err := json.Unmarshal(r.summary, &rec.Entry.Summary); err != nil {
			return nil, fmt.Errorf("unmarshal summary: %w", err)
		}
	}
	if len(r.topics) > 0 {
		if err := json.Unmarshal(r.topics, &rec.Entry.Facets.Topics); err != nil {
			return nil, fmt.Errorf("unmarshal topics: %w", err)
		}
	}
	if len(r.sections) > 0 {
		if err := json.Unmarshal(r.sections, &rec.Entry.Sections); err != nil {
			return nil, fmt.Errorf("unmarshal sections: %w", err)
		}
	}

	if r.sourceKind != "" {
		src := &library.Source{Name: r.sourceName, Slug: r.sourceSlug}
		switch r.sourceKind {
		case "channel":
			rec.Entry.Channel = src
		case "show":
			rec.Entry.Show = src
		case "blog":
			rec.Entry.Blog = src
		}
	}

	return rec, nil
}
