package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/cursorstats/internal/analysis"
	"github.com/runnerr0/cursorstats/internal/estimate"
	"github.com/runnerr0/cursorstats/internal/workspace"
)

func render(t *testing.T, d Data) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, d))
	return buf.String()
}

func TestWrite_ZeroPromptsDoesNotCrash(t *testing.T) {
	out := render(t, Data{GeneratedAt: time.Now()})

	assert.Contains(t, out, "Total prompts: 0")
	assert.NotContains(t, out, "NaN")
	assert.NotContains(t, out, "## Prompt Categories")
}

func TestWrite_FullReportSectionOrder(t *testing.T) {
	prompts := []workspace.Prompt{
		{Text: "fix this bug in the parser", Timestamp: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC).UnixMilli()},
		{Text: "explain how does the cache work?", Timestamp: time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC).UnixMilli()},
	}
	stats := analysis.ComputeStats(prompts)
	pe := estimate.EstimatePrompts(prompts, estimate.DefaultParams())
	se := &estimate.SessionEstimate{
		Sessions: []estimate.Session{{
			Start:     time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
			End:       time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
			Duration:  90 * time.Minute,
			FileCount: 4,
		}},
		FileCount:  4,
		TotalHours: 1.5,
	}

	d := Data{
		GeneratedAt: time.Now(),
		Workspaces: []WorkspaceSection{
			{Name: "alpha|project", Stats: stats, Sessions: se.Sessions},
		},
		Overall:         stats,
		Categories:      analysis.CountCategories(prompts),
		Complexity:      analysis.ComplexityScores(prompts),
		PromptEstimate:  &pe,
		SessionEstimate: se,
	}

	out := render(t, d)

	sections := []string{
		"## Overall Statistics",
		"## Time Estimates",
		"### Prompt-Based",
		"### Session-Based",
		"### Method Comparison",
		"## Statistics by Workspace",
		"## Prompt Categories",
		"## Complexity Analysis",
		"## Time Analysis",
		"## Session Timelines",
	}
	last := -1
	for _, section := range sections {
		idx := strings.Index(out, section)
		require.GreaterOrEqual(t, idx, 0, "missing section %q", section)
		assert.Greater(t, idx, last, "section %q out of order", section)
		last = idx
	}

	// Pipe in the workspace name is escaped in the table row.
	assert.Contains(t, out, `alpha\|project`)
	assert.Contains(t, out, "Total prompts: 2")
	assert.Contains(t, out, "Time span: 4 days")
}

func TestWrite_SessionSectionOmittedWithoutData(t *testing.T) {
	prompts := []workspace.Prompt{{Text: "hello there"}}
	pe := estimate.EstimatePrompts(prompts, estimate.DefaultParams())

	d := Data{
		GeneratedAt:    time.Now(),
		Workspaces:     []WorkspaceSection{{Name: "solo", Stats: analysis.ComputeStats(prompts)}},
		Overall:        analysis.ComputeStats(prompts),
		Categories:     analysis.CountCategories(prompts),
		Complexity:     analysis.ComplexityScores(prompts),
		PromptEstimate: &pe,
	}

	out := render(t, d)
	assert.Contains(t, out, "### Prompt-Based")
	assert.NotContains(t, out, "### Session-Based")
	assert.NotContains(t, out, "### Method Comparison")
	assert.NotContains(t, out, "## Session Timelines")
	assert.NotContains(t, out, "## Time Analysis") // fewer than two timestamps
}

func TestWriteDump(t *testing.T) {
	prompts := []workspace.Prompt{
		{Text: "short prompt", CommandType: "4"},
		{Text: strings.Repeat("long ", 50), CommandType: "chat"},
		{Text: "pipes | in | text", CommandType: "unknown"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteDump(&buf, prompts))
	out := buf.String()

	assert.Contains(t, out, "# Cursor Prompts History")
	assert.Contains(t, out, "| 1 | 4 | 2 | short prompt |")
	assert.Contains(t, out, "...")
	assert.Contains(t, out, `pipes \| in \| text`)
	assert.Contains(t, out, "- Total prompts: 3")
}

func TestWriteDump_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDump(&buf, nil))
	assert.Contains(t, buf.String(), "- Total prompts: 0")
}

func TestWriteFullText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFullText(&buf, []workspace.Prompt{{Text: "keep everything", CommandType: "chat"}}))

	out := buf.String()
	assert.Contains(t, out, "Prompt #1 (Type chat):")
	assert.Contains(t, out, "keep everything")
}
