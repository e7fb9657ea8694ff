package docent

import (
	"fmt"

	"github.com/davidkarpay/library-docent/internal/library"
)

// testCorpus is a small mixed library in "store order" (newest first is not
// guaranteed; ordering matters only for stable-sort assertions).
func testCorpus() []library.Entry {
	return []library.Entry{
		{
			ID:          "vid-transformers",
			ContentType: library.TypeVideo,
			Title:       "Transformer Architecture Explained",
			Summary:     []string{"Attention is the core building block", "Covers encoder and decoder stacks"},
			Facets: library.Facets{
				Topics:     []string{"ai-ml", "deep-learning"},
				Difficulty: library.LevelBeginner,
				Format:     "tutorial",
			},
			Sections: []library.Section{
				{Start: 0, Title: "Introduction"},
				{Start: 320, Title: "Self-attention mechanism", Description: "How attention weights are computed"},
				{Start: 900, Title: "Positional encoding"},
			},
			Channel:         &library.Source{Name: "AI Fundamentals", Slug: "ai-fundamentals"},
			URL:             "https://www.youtube.com/watch?v=abc123",
			AddedDate:       "2026-08-20",
			DurationSeconds: 1460,
		},
		{
			ID:          "paper-attention",
			ContentType: library.TypePaper,
			Title:       "Attention Is All You Need",
			Abstract:    "We propose a new network architecture, the Transformer, based solely on attention mechanisms.",
			Facets: library.Facets{
				Topics:     []string{"ai-ml", "nlp"},
				Difficulty: library.LevelAdvanced,
				Format:     "research",
			},
			AddedDate: "2026-08-10",
			Upvotes:   72,
			ArxivID:   "1706.03762",
			Filename:  "attention-is-all-you-need",
		},
		{
			ID:          "paper-scaling",
			ContentType: library.TypePaper,
			Title:       "Scaling Laws for Neural Language Models",
			Abstract:    "Model performance scales as a power law with compute, data, and parameters.",
			Facets: library.Facets{
				Topics:     []string{"ai-ml"},
				Difficulty: library.LevelAdvanced,
				Format:     "research",
			},
			AddedDate: "2026-08-18",
			Upvotes:   10,
		},
		{
			ID:          "pod-k8s",
			ContentType: library.TypePodcast,
			Title:       "Kubernetes in Production",
			Summary:     []string{"War stories from running clusters at scale"},
			Facets: library.Facets{
				Topics:     []string{"devops", "kubernetes"},
				Difficulty: library.LevelIntermediate,
				Format:     "interview",
			},
			Show:      &library.Source{Name: "Ship It Weekly", Slug: "ship-it-weekly"},
			AddedDate: "2026-08-22",
		},
		{
			ID:          "blog-transformers-scratch",
			ContentType: library.TypeBlog,
			Title:       "Building a Transformer from Scratch",
			Summary:     []string{"Step by step implementation of attention in plain code"},
			Facets: library.Facets{
				Topics:     []string{"ai-ml", "programming"},
				Difficulty: library.LevelIntermediate,
				Format:     "walkthrough",
			},
			Blog:      &library.Source{Name: "Gradient Notes", Slug: "gradient-notes"},
			AddedDate: "2026-08-15",
		},
		{
			ID:          "vid-sql",
			ContentType: library.TypeVideo,
			Title:       "SQL Indexing Deep Dive",
			Summary:     []string{"B-trees and query planners"},
			Facets: library.Facets{
				Topics:     []string{"databases"},
				Difficulty: library.LevelAdvanced,
				Format:     "lecture",
			},
			Channel:   &library.Source{Name: "DB Internals", Slug: "db-internals"},
			AddedDate: "2026-07-01",
		},
	}
}

// syntheticEntries generates n minimal entries for limit-clamping tests.
func syntheticEntries(n int) []library.Entry {
	entries := make([]library.Entry, n)
	for i := range entries {
		entries[i] = library.Entry{
			ID:          fmt.Sprintf("entry-%03d", i),
			ContentType: library.TypeVideo,
			Title:       fmt.Sprintf("Entry %03d", i),
			Facets:      library.Facets{Topics: []string{"misc"}},
			AddedDate:   "2026-08-01",
		}
	}
	return entries
}
