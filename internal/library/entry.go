package library

import (
	"fmt"
	"strings"
)

// Content types known to the library.
const (
	TypeVideo   = "video"
	TypePaper   = "paper"
	TypePodcast = "podcast"
	TypeBlog    = "blog"
)

// Difficulty levels used by the facet classifier.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// Entry is one item in the library: a video transcript, a research paper,
// a podcast episode, or a blog post. Entries are produced by the ingestion
// pipeline and are read-only from this service's point of view.
type Entry struct {
	ID          string   `json:"id"`
	ContentType string   `json:"content_type"`
	Title       string   `json:"title"`
	Summary     []string `json:"summary,omitempty"`
	Abstract    string   `json:"abstract,omitempty"` // papers only
	Facets      Facets   `json:"facets"`

	Sections []Section `json:"sections,omitempty"`

	// Source attribution. At most one of these is set, depending on
	// content type.
	Channel *Source `json:"channel,omitempty"`
	Show    *Source `json:"show,omitempty"`
	Blog    *Source `json:"blog,omitempty"`

	URL             string `json:"url,omitempty"`
	AddedDate       string `json:"added_date,omitempty"`     // ISO date, drives recency
	PublishedDate   string `json:"published_date,omitempty"` // ISO date
	Upvotes         int    `json:"upvotes,omitempty"`        // papers only
	ArxivID         string `json:"arxiv_id,omitempty"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`

	// Filename is the metadata file stem the entry was loaded from.
	Filename string `json:"_filename,omitempty"`
}

// Facets holds the structured classification metadata for an entry.
type Facets struct {
	Topics     []string `json:"topics"`
	Difficulty string   `json:"difficulty,omitempty"`
	Format     string   `json:"format,omitempty"`
}

// Section is a time or structural span within an entry.
type Section struct {
	Start       int    `json:"start"`
	End         int    `json:"end,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Source attributes an entry to a channel, podcast show, or blog.
type Source struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Source returns the entry's attribution regardless of content type,
// or nil if the entry has none.
func (e *Entry) Source() *Source {
	switch {
	case e.Channel != nil:
		return e.Channel
	case e.Show != nil:
		return e.Show
	case e.Blog != nil:
		return e.Blog
	}
	return nil
}

// Slug derives a filesystem-safe identifier from the title: lowercase,
// runs of anything outside [a-z0-9_-] become hyphens, capped at 60 bytes.
func (e *Entry) Slug() string {
	lower := strings.ToLower(e.Title)
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	slug := b.String()
	if len(slug) > 60 {
		slug = slug[:60]
	}
	return slug
}

// FormatDuration renders seconds as a compact human-readable duration.
func FormatDuration(seconds int) string {
	switch {
	case seconds <= 0:
		return "0m"
	case seconds < 60:
		return fmt.Sprintf("%ds", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%dm", seconds/60)
	default:
		return fmt.Sprintf("%dh %dm", seconds/3600, (seconds%3600)/60)
	}
}

// FormatTimestamp renders seconds as an HH:MM:SS timestamp.
func FormatTimestamp(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}
