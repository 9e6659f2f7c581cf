package analysis

import (
	"sort"

	"github.com/runnerr0/cursorstats/internal/workspace"
)

// Stats aggregates a prompt collection. It is recomputed on demand and
// never persisted.
type Stats struct {
	Count      int
	TotalWords int
	AvgWords   float64
	MaxWords   int
	MinWords   int
	TotalChars int
	AvgChars   float64

	// Timestamps holds the sorted millisecond timestamps of prompts that
	// carried one; TimeDeltas the gaps between consecutive entries.
	Timestamps []int64
	TimeDeltas []int64
}

// ComputeStats derives aggregate statistics from a prompt collection.
// An empty collection yields a zero Stats, not an error.
func ComputeStats(prompts []workspace.Prompt) Stats {
	if len(prompts) == 0 {
		return Stats{}
	}

	stats := Stats{Count: len(prompts), MinWords: -1}

	for _, p := range prompts {
		words := CountWords(p.Text)
		stats.TotalWords += words
		if words > stats.MaxWords {
			stats.MaxWords = words
		}
		if stats.MinWords < 0 || words < stats.MinWords {
			stats.MinWords = words
		}
		stats.TotalChars += len(p.Text)

		if p.Timestamp > 0 {
			stats.Timestamps = append(stats.Timestamps, p.Timestamp)
		}
	}
	if stats.MinWords < 0 {
		stats.MinWords = 0
	}

	stats.AvgWords = float64(stats.TotalWords) / float64(stats.Count)
	stats.AvgChars = float64(stats.TotalChars) / float64(stats.Count)

	sort.Slice(stats.Timestamps, func(i, j int) bool { return stats.Timestamps[i] < stats.Timestamps[j] })
	for i := 1; i < len(stats.Timestamps); i++ {
		stats.TimeDeltas = append(stats.TimeDeltas, stats.Timestamps[i]-stats.Timestamps[i-1])
	}

	return stats
}

// CountCategories tallies category occurrences across a prompt set. A
// prompt carrying several categories increments each.
func CountCategories(prompts []workspace.Prompt) map[Category]int {
	counts := make(map[Category]int)
	for _, p := range prompts {
		for _, c := range Categorize(p.Text) {
			counts[c]++
		}
	}
	return counts
}

// ComplexityScores returns the per-prompt complexity scores in input order.
func ComplexityScores(prompts []workspace.Prompt) []float64 {
	scores := make([]float64, len(prompts))
	for i, p := range prompts {
		scores[i] = ComplexityScore(p.Text)
	}
	return scores
}

// CountCommandTypes tallies prompts per command type label.
func CountCommandTypes(prompts []workspace.Prompt) map[string]int {
	counts := make(map[string]int)
	for _, p := range prompts {
		label := p.CommandType
		if label == "" {
			label = "unknown"
		}
		counts[label]++
	}
	return counts
}
