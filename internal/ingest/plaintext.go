package ingest

import (
	"regexp"
	"strings"
)

// Markdown stripping for full-text indexing. The transcripts and paper
// notes are markdown with timestamp spans; the index only wants the prose.
var (
	reHeader    = regexp.MustCompile(`(?m)^#+\s+`)
	reLink      = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	reHTMLTag   = regexp.MustCompile(`<[^>]+>`)
	reEmphasis  = regexp.MustCompile(`\*+([^*]+)\*+`)
	reWhiteRuns = regexp.MustCompile(`\s+`)
)

// PlainText strips markdown formatting down to indexable prose.
func PlainText(markdown string) string {
	text := reHeader.ReplaceAllString(markdown, "")
	text = reLink.ReplaceAllString(text, "$1")
	text = reHTMLTag.ReplaceAllString(text, "")
	text = reEmphasis.ReplaceAllString(text, "$1")
	text = reWhiteRuns.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
