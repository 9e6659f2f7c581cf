package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/runnerr0/cursorstats/internal/workspace"
)

func TestComputeStats(t *testing.T) {
	prompts := []workspace.Prompt{
		{Text: "one two three", Timestamp: 3000},
		{Text: "four five", Timestamp: 1000},
		{Text: ""},
	}

	stats := ComputeStats(prompts)

	assert.Equal(t, 3, stats.Count)
	assert.Equal(t, 5, stats.TotalWords)
	assert.InDelta(t, 5.0/3.0, stats.AvgWords, 1e-9)
	assert.Equal(t, 3, stats.MaxWords)
	assert.Equal(t, 0, stats.MinWords)
	assert.Equal(t, len("one two three")+len("four five"), stats.TotalChars)

	// Timestamps sorted ascending, zero timestamps excluded.
	assert.Equal(t, []int64{1000, 3000}, stats.Timestamps)
	assert.Equal(t, []int64{2000}, stats.TimeDeltas)
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil)

	assert.Zero(t, stats.Count)
	assert.Zero(t, stats.TotalWords)
	assert.Zero(t, stats.AvgWords)
	assert.Zero(t, stats.MinWords)
	assert.Empty(t, stats.Timestamps)
}

func TestCountCategories(t *testing.T) {
	prompts := []workspace.Prompt{
		{Text: "fix this bug"},    // code + debugging
		{Text: "hello there"},     // general
		{Text: "add the feature"}, // feature
	}

	counts := CountCategories(prompts)

	assert.Equal(t, 1, counts[CategoryCode])
	assert.Equal(t, 1, counts[CategoryDebugging])
	assert.Equal(t, 1, counts[CategoryGeneral])
	assert.Equal(t, 1, counts[CategoryFeature])
}

func TestComplexityScores(t *testing.T) {
	prompts := []workspace.Prompt{{Text: ""}, {Text: "optimize the database query?"}}

	scores := ComplexityScores(prompts)

	assert.Len(t, scores, 2)
	assert.Zero(t, scores[0])
	assert.Greater(t, scores[1], 0.0)
}

func TestCountCommandTypes(t *testing.T) {
	prompts := []workspace.Prompt{
		{Text: "a", CommandType: "4"},
		{Text: "b", CommandType: "4"},
		{Text: "c", CommandType: "chat"},
		{Text: "d"},
	}

	counts := CountCommandTypes(prompts)

	assert.Equal(t, 2, counts["4"])
	assert.Equal(t, 1, counts["chat"])
	assert.Equal(t, 1, counts["unknown"])
}
