package library

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// Library is the full content index document (library.json): every entry
// plus the facet and channel rollups the site generator emits alongside it.
type Library struct {
	Entries []Entry `json:"entries"`

	Facets struct {
		Topics       []string `json:"topics"`
		Formats      []string `json:"formats"`
		Difficulties []string `json:"difficulties"`
	} `json:"facets"`

	Channels []ChannelInfo `json:"channels,omitempty"`

	Total        int `json:"total"`
	VideoCount   int `json:"video_count"`
	PaperCount   int `json:"paper_count"`
	PodcastCount int `json:"podcast_count,omitempty"`
	BlogCount    int `json:"blog_count,omitempty"`
}

// ChannelInfo is a channel rollup in the library index.
type ChannelInfo struct {
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Parse decodes a library index document.
func Parse(data []byte) (*Library, error) {
	var lib Library
	if err := json.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("parse library: %w", err)
	}
	return &lib, nil
}

// Load reads and decodes a library index from disk.
func Load(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read library: %w", err)
	}
	return Parse(data)
}
