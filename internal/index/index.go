// Package index wraps the Bleve full-text index used by the index host.
// Field boosts mirror the docent scorer's weights so the two deployments
// rank comparably, and facet fields are indexed verbatim so filters behave
// as exact terms rather than analyzed text.
package index

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/davidkarpay/library-docent/internal/docent"
	"github.com/davidkarpay/library-docent/internal/storage"
)

// Index wraps a Bleve search index over library entries.
type Index struct {
	index bleve.Index
}

// IndexedEntry is the document shape stored in the index. Text fields are
// pre-joined; facet fields are duplicated with a keyword analyzer under
// their own names for filtering.
type IndexedEntry struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Summary     string   `json:"summary"`
	Abstract    string   `json:"abstract"`
	Topics      string   `json:"topics"`
	SourceName  string   `json:"source_name"`
	Content     string   `json:"content"`
	TopicsFacet []string `json:"topics_facet"`
	Difficulty  string   `json:"difficulty"`
	Format      string   `json:"format"`
	SourceSlug  string   `json:"source_slug"`
	ContentType string   `json:"content_type"`
	AddedDate   string   `json:"added_date"`
}

// Hit is one index match; the caller resolves the full entry from storage.
type Hit struct {
	ID    string
	Score float64
}

// Open opens or creates a Bleve index at path.
func Open(path string) (*Index, error) {
	idx, err := bleve.Open(path)
	if err == bleve.ErrorIndexPathDoesNotExist {
		idx, err = bleve.New(path, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("create index: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	return &Index{index: idx}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	textField := bleve.NewTextFieldMapping()

	titleField := bleve.NewTextFieldMapping()
	titleField.Analyzer = "en"

	facetField := bleve.NewTextFieldMapping()
	facetField.Analyzer = keyword.Name

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("id", facetField)
	docMapping.AddFieldMappingsAt("title", titleField)
	docMapping.AddFieldMappingsAt("summary", textField)
	docMapping.AddFieldMappingsAt("abstract", textField)
	docMapping.AddFieldMappingsAt("topics", textField)
	docMapping.AddFieldMappingsAt("source_name", textField)
	docMapping.AddFieldMappingsAt("content", textField)
	docMapping.AddFieldMappingsAt("topics_facet", facetField)
	docMapping.AddFieldMappingsAt("difficulty", facetField)
	docMapping.AddFieldMappingsAt("format", facetField)
	docMapping.AddFieldMappingsAt("source_slug", facetField)
	docMapping.AddFieldMappingsAt("content_type", facetField)
	docMapping.AddFieldMappingsAt("added_date", facetField)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.AddDocumentMapping("_default", docMapping)
	return indexMapping
}

// Close closes the index.
func (i *Index) Close() error {
	return i.index.Close()
}

// IndexRecord adds or updates a stored entry in the index.
func (i *Index) IndexRecord(rec *storage.Record) error {
	return i.index.Index(rec.Entry.ID, toIndexed(rec))
}

// Delete removes an entry from the index.
func (i *Index) Delete(id string) error {
	return i.index.Delete(id)
}

func toIndexed(rec *storage.Record) *IndexedEntry {
	e := &rec.Entry
	doc := &IndexedEntry{
		ID:          e.ID,
		Title:       e.Title,
		Summary:     strings.Join(e.Summary, " "),
		Abstract:    e.Abstract,
		Topics:      strings.Join(e.Facets.Topics, " "),
		Content:     rec.Content,
		Difficulty:  strings.ToLower(e.Facets.Difficulty),
		Format:      strings.ToLower(e.Facets.Format),
		ContentType: e.ContentType,
		AddedDate:   e.AddedDate,
	}
	for _, t := range e.Facets.Topics {
		doc.TopicsFacet = append(doc.TopicsFacet, strings.ToLower(t))
	}
	if src := e.Source(); src != nil {
		doc.SourceName = src.Name
		doc.SourceSlug = src.Slug
	}
	return doc
}

// boostedFields mirrors the docent scorer weights, plus a baseline weight
// for transcript/paper body text which only exists on this host.
var boostedFields = []struct {
	name  string
	boost float64
}{
	{"title", 3.0},
	{"topics", 2.5},
	{"source_name", 2.0},
	{"summary", 2.0},
	{"abstract", 2.0},
	{"content", 1.0},
}

// Search runs a full-text query restricted by facet filters and returns
// scored hits. An empty query with filters degenerates to a filtered
// match-all.
func (i *Index) Search(queryStr string, filters docent.Filters, limit int) ([]Hit, error) {
	var textQuery query.Query
	if strings.TrimSpace(queryStr) == "" {
		textQuery = bleve.NewMatchAllQuery()
	} else {
		disjunct := bleve.NewDisjunctionQuery()
		for _, f := range boostedFields {
			mq := bleve.NewMatchQuery(queryStr)
			mq.SetField(f.name)
			mq.SetBoost(f.boost)
			disjunct.AddQuery(mq)
		}
		textQuery = disjunct
	}

	boolean := bleve.NewBooleanQuery()
	boolean.AddMust(textQuery)
	for field, value := range facetTerms(filters) {
		tq := bleve.NewTermQuery(strings.ToLower(value))
		tq.SetField(field)
		boolean.AddMust(tq)
	}

	req := bleve.NewSearchRequestOptions(boolean, docent.ClampLimit(limit), 0, false)
	res, err := i.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, hit := range res.Hits {
		hits = append(hits, Hit{ID: hit.ID, Score: hit.Score})
	}
	return hits, nil
}

func facetTerms(filters docent.Filters) map[string]string {
	terms := make(map[string]string)
	if filters.Type != "" && filters.Type != docent.TypeAll {
		terms["content_type"] = filters.Type
	}
	if filters.Topic != "" {
		terms["topics_facet"] = filters.Topic
	}
	if filters.Difficulty != "" {
		terms["difficulty"] = filters.Difficulty
	}
	if filters.Format != "" {
		terms["format"] = filters.Format
	}
	if filters.Channel != "" {
		terms["source_slug"] = filters.Channel
	}
	return terms
}

// Rebuild reindexes every stored entry in one batch.
func (i *Index) Rebuild(db *storage.DB) (int, error) {
	recs, err := db.List()
	if err != nil {
		return 0, fmt.Errorf("list entries: %w", err)
	}

	batch := i.index.NewBatch()
	for _, rec := range recs {
		if err := batch.Index(rec.Entry.ID, toIndexed(rec)); err != nil {
			return 0, fmt.Errorf("batch index %s: %w", rec.Entry.ID, err)
		}
	}
	if err := i.index.Batch(batch); err != nil {
		return 0, fmt.Errorf("commit batch: %w", err)
	}
	return len(recs), nil
}

// Count returns the number of documents in the index.
func (i *Index) Count() (uint64, error) {
	return i.index.DocCount()
}
