package docent

import (
	"fmt"
	"sort"

	"github.com/davidkarpay/library-docent/internal/library"
)

// maxPerLevel caps how many items each difficulty bucket of a learning
// path may hold.
const maxPerLevel = 5

// PathLevel is one difficulty tier of a learning path.
type PathLevel struct {
	Level string   `json:"level"`
	Items []Result `json:"items"`
}

// pathLevels is the fixed pedagogical ordering of the output: a learner
// reads top to bottom from foundational to advanced, regardless of where
// the highest raw score landed.
var pathLevels = []string{
	library.LevelBeginner,
	library.LevelIntermediate,
	library.LevelAdvanced,
}

// BuildPath synthesizes a beginner-to-advanced curriculum for a free-text
// goal. Entries are scored against the goal's tokens, zero scores dropped,
// and the survivors bucketed by difficulty in score order. Levels with no
// items are omitted. An entry with a missing or unrecognized difficulty is
// bucketed as intermediate.
func BuildPath(entries []library.Entry, goal string) ([]PathLevel, error) {
	if goal == "" {
		return nil, fmt.Errorf("%w: goal", ErrMissingParameter)
	}

	terms := Tokenize(goal, PathTokenMin)

	var scored []Result
	for i := range entries {
		score := Score(&entries[i], terms)
		if score <= 0 {
			continue
		}
		scored = append(scored, Result{Entry: entries[i], Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	buckets := make(map[string][]Result, len(pathLevels))
	for _, r := range scored {
		level := normalizeLevel(r.Entry.Facets.Difficulty)
		if len(buckets[level]) >= maxPerLevel {
			continue
		}
		buckets[level] = append(buckets[level], r)
	}

	var path []PathLevel
	for _, level := range pathLevels {
		if items := buckets[level]; len(items) > 0 {
			path = append(path, PathLevel{Level: level, Items: items})
		}
	}
	return path, nil
}

func normalizeLevel(difficulty string) string {
	switch difficulty {
	case library.LevelBeginner, library.LevelIntermediate, library.LevelAdvanced:
		return difficulty
	}
	return library.LevelIntermediate
}
