package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/runnerr0/cursorstats/internal/analysis"
	"github.com/runnerr0/cursorstats/internal/estimate"
)

// WorkspaceSection is one workspace's slice of the report.
type WorkspaceSection struct {
	Name     string
	Stats    analysis.Stats
	Sessions []estimate.Session
}

// Data is everything the Markdown report can render. Optional parts are
// pointers or nil-able; each section is emitted only when its data
// exists.
type Data struct {
	GeneratedAt time.Time
	Workspaces  []WorkspaceSection
	Overall     analysis.Stats
	Categories  map[analysis.Category]int
	Complexity  []float64

	PromptEstimate  *estimate.PromptEstimate
	SessionEstimate *estimate.SessionEstimate
}

// Write renders the full analysis report as Markdown. Section order is
// fixed; empty inputs degrade to a minimal report rather than an error.
func Write(w io.Writer, d Data) error {
	bw := &errWriter{w: w}

	bw.printf("# Cursor Prompt Analysis Report\n\n")
	bw.printf("Generated on: %s\n\n", d.GeneratedAt.Format("2006-01-02 15:04:05"))

	writeOverall(bw, d)
	writeEstimates(bw, d)
	writeWorkspaceTable(bw, d)
	writeCategories(bw, d)
	writeComplexity(bw, d)
	writeTimeSpan(bw, d)
	writeSessionTimelines(bw, d)

	return bw.err
}

func writeOverall(bw *errWriter, d Data) {
	bw.printf("## Overall Statistics\n\n")
	bw.printf("- Total workspaces analyzed: %d\n", len(d.Workspaces))
	bw.printf("- Total prompts: %d\n", d.Overall.Count)
	if d.Overall.Count == 0 {
		bw.printf("\n")
		return
	}
	bw.printf("- Total words: %d\n", d.Overall.TotalWords)
	bw.printf("- Average words per prompt: %.1f\n", d.Overall.AvgWords)
	bw.printf("- Longest prompt: %d words\n", d.Overall.MaxWords)
	bw.printf("- Shortest prompt: %d words\n", d.Overall.MinWords)
	bw.printf("- Average characters per prompt: %.1f\n", d.Overall.AvgChars)
	bw.printf("\n")
}

func writeEstimates(bw *errWriter, d Data) {
	if d.PromptEstimate == nil && d.SessionEstimate == nil {
		return
	}
	bw.printf("## Time Estimates\n\n")

	if pe := d.PromptEstimate; pe != nil {
		bw.printf("### Prompt-Based\n\n")
		bw.printf("- Estimated total: %.1f hours\n", pe.TotalHours)
		bw.printf("- Average per prompt: %.1f minutes\n", pe.AvgMinutes)
		bw.printf("- Longest single prompt: %.1f minutes\n", pe.LongestMinutes)
		bw.printf("- Productive days equivalent: %.1f\n", pe.ProductiveDays)
		bw.printf("\n")
	}

	if se := d.SessionEstimate; se != nil {
		bw.printf("### Session-Based\n\n")
		bw.printf("- Sessions detected: %d\n", len(se.Sessions))
		bw.printf("- Files considered: %d\n", se.FileCount)
		bw.printf("- Estimated total: %.1f hours\n", se.TotalHours)
		bw.printf("\n")
	}

	if d.PromptEstimate != nil && d.SessionEstimate != nil {
		delta := d.PromptEstimate.TotalHours - d.SessionEstimate.TotalHours
		if delta < 0 {
			delta = -delta
		}
		avg := (d.PromptEstimate.TotalHours + d.SessionEstimate.TotalHours) / 2
		bw.printf("### Method Comparison\n\n")
		bw.printf("- Difference between methods: %.1f hours\n", delta)
		bw.printf("- Average of both methods: %.1f hours\n", avg)
		bw.printf("\n")
	}
}

func writeWorkspaceTable(bw *errWriter, d Data) {
	if len(d.Workspaces) == 0 {
		return
	}
	bw.printf("## Statistics by Workspace\n\n")
	bw.printf("| Workspace | Prompts | Total Words | Avg Words | Max Words |\n")
	bw.printf("|-----------|---------|-------------|-----------|-----------|\n")
	for _, ws := range d.Workspaces {
		bw.printf("| %s | %d | %d | %.1f | %d |\n",
			escapeCell(ws.Name), ws.Stats.Count, ws.Stats.TotalWords, ws.Stats.AvgWords, ws.Stats.MaxWords)
	}
	bw.printf("\n")
}

func writeCategories(bw *errWriter, d Data) {
	if len(d.Categories) == 0 || d.Overall.Count == 0 {
		return
	}

	type catCount struct {
		Category analysis.Category
		Count    int
	}
	counts := make([]catCount, 0, len(d.Categories))
	for c, n := range d.Categories {
		counts = append(counts, catCount{c, n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Category < counts[j].Category
	})

	bw.printf("## Prompt Categories\n\n")
	for _, cc := range counts {
		pct := float64(cc.Count) / float64(d.Overall.Count) * 100
		bw.printf("- %s: %d prompts (%.1f%%)\n", cc.Category, cc.Count, pct)
	}
	bw.printf("\n")
}

func writeComplexity(bw *errWriter, d Data) {
	if len(d.Complexity) == 0 {
		return
	}

	total, max, min := 0.0, d.Complexity[0], d.Complexity[0]
	for _, s := range d.Complexity {
		total += s
		if s > max {
			max = s
		}
		if s < min {
			min = s
		}
	}

	bw.printf("## Complexity Analysis\n\n")
	bw.printf("- Average complexity score: %.1f/100\n", total/float64(len(d.Complexity)))
	bw.printf("- Highest complexity score: %.1f/100\n", max)
	bw.printf("- Lowest complexity score: %.1f/100\n", min)
	bw.printf("\n")
}

func writeTimeSpan(bw *errWriter, d Data) {
	if len(d.Overall.Timestamps) < 2 {
		return
	}

	first := time.UnixMilli(d.Overall.Timestamps[0])
	last := time.UnixMilli(d.Overall.Timestamps[len(d.Overall.Timestamps)-1])
	days := int(last.Sub(first).Hours() / 24)

	bw.printf("## Time Analysis\n\n")
	bw.printf("- First prompt: %s\n", first.Format("2006-01-02 15:04:05"))
	bw.printf("- Last prompt: %s\n", last.Format("2006-01-02 15:04:05"))
	bw.printf("- Time span: %d days\n", days)
	if days > 0 {
		bw.printf("- Average prompts per day: %.1f\n", float64(len(d.Overall.Timestamps))/float64(days))
	}
	bw.printf("\n")
}

func writeSessionTimelines(bw *errWriter, d Data) {
	any := false
	for _, ws := range d.Workspaces {
		if len(ws.Sessions) > 0 {
			any = true
			break
		}
	}
	if !any {
		return
	}

	bw.printf("## Session Timelines\n\n")
	for _, ws := range d.Workspaces {
		if len(ws.Sessions) == 0 {
			continue
		}
		bw.printf("### %s\n\n", ws.Name)
		for i, s := range ws.Sessions {
			bw.printf("%d. %s → %s (%s, %d files)\n",
				i+1,
				s.Start.Format("2006-01-02 15:04"),
				s.End.Format("15:04"),
				formatDuration(s.Duration),
				s.FileCount)
		}
		bw.printf("\n")
	}
}

// escapeCell keeps Markdown table rows intact when values contain pipes.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// errWriter collects the first write error so section writers stay flat.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
