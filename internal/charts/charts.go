// Package charts renders the analysis aggregates as static PNG files.
// Every chart is generated independently: one failing or lacking data
// never stops the others.
package charts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/runnerr0/cursorstats/internal/analysis"
	"github.com/runnerr0/cursorstats/internal/estimate"
)

// ErrNoData marks a chart skipped for lack of input, distinct from a
// render failure.
var ErrNoData = errors.New("no data for chart")

// Input carries every aggregate the chart set draws from. Missing pieces
// skip the charts that need them.
type Input struct {
	// PromptCounts maps workspace name to prompt count.
	PromptCounts map[string]int
	// Categories maps category label to occurrence count.
	Categories map[analysis.Category]int
	// Complexity holds per-prompt complexity scores.
	Complexity []float64
	// Timestamps holds prompt timestamps in milliseconds.
	Timestamps []int64
	// WorkspaceHours maps workspace name to prompt-estimated hours.
	WorkspaceHours map[string]float64
	// SessionsByWorkspace feeds the session-duration chart.
	SessionsByWorkspace map[string][]estimate.Session
	// PromptHours and SessionHours feed the method-comparison chart;
	// HasSessionEstimate gates it.
	PromptHours        float64
	SessionHours       float64
	HasSessionEstimate bool
}

// Result records one chart's outcome.
type Result struct {
	Name string
	Path string
	Err  error
}

// Skipped reports whether the chart was skipped for lack of data.
func (r Result) Skipped() bool {
	return errors.Is(r.Err, ErrNoData)
}

// Renderer writes charts into a visualizations directory.
type Renderer struct {
	OutputDir string
	Width     int
	Height    int
}

// NewRenderer returns a Renderer writing under outputDir/visualizations.
func NewRenderer(outputDir string, width, height int) *Renderer {
	if width <= 0 {
		width = 1024
	}
	if height <= 0 {
		height = 600
	}
	return &Renderer{
		OutputDir: filepath.Join(outputDir, "visualizations"),
		Width:     width,
		Height:    height,
	}
}

// RenderAll generates every chart and returns one Result per chart,
// successful or not.
func (r *Renderer) RenderAll(in Input) []Result {
	stamp := time.Now().Format("20060102_150405")

	if err := os.MkdirAll(r.OutputDir, 0755); err != nil {
		return []Result{{Name: "visualizations", Err: fmt.Errorf("create output dir: %w", err)}}
	}

	type job struct {
		name   string
		render func(path string) error
	}
	jobs := []job{
		{"prompts_per_workspace", func(p string) error { return r.promptsPerWorkspace(in, p) }},
		{"prompt_categories", func(p string) error { return r.categoryDistribution(in, p) }},
		{"complexity_histogram", func(p string) error { return r.complexityHistogram(in, p) }},
		{"activity_timeline", func(p string) error { return r.activityTimeline(in, p) }},
		{"hours_per_workspace", func(p string) error { return r.hoursPerWorkspace(in, p) }},
		{"time_allocation", func(p string) error { return r.timeAllocation(in, p) }},
		{"session_durations", func(p string) error { return r.sessionDurations(in, p) }},
		{"method_comparison", func(p string) error { return r.methodComparison(in, p) }},
	}

	results := make([]Result, 0, len(jobs))
	for _, j := range jobs {
		path := filepath.Join(r.OutputDir, fmt.Sprintf("%s_%s.png", j.name, stamp))
		res := Result{Name: j.name, Path: path}
		if err := j.render(path); err != nil {
			res.Err = err
			res.Path = ""
		}
		results = append(results, res)
	}
	return results
}

func (r *Renderer) promptsPerWorkspace(in Input, path string) error {
	bars := barsFromCounts(in.PromptCounts)
	if len(bars) == 0 {
		return ErrNoData
	}
	return r.renderBar("Prompts per Workspace", bars, path)
}

func (r *Renderer) categoryDistribution(in Input, path string) error {
	if len(in.Categories) == 0 {
		return ErrNoData
	}
	counts := make(map[string]int, len(in.Categories))
	for c, n := range in.Categories {
		counts[string(c)] = n
	}
	return r.renderBar("Prompt Categories", barsFromCounts(counts), path)
}

func (r *Renderer) complexityHistogram(in Input, path string) error {
	if len(in.Complexity) == 0 {
		return ErrNoData
	}

	const bins = 20
	const binWidth = 100.0 / bins
	histogram := make([]int, bins)
	for _, score := range in.Complexity {
		bin := int(score / binWidth)
		if bin >= bins {
			bin = bins - 1
		}
		histogram[bin]++
	}

	bars := make([]chart.Value, bins)
	for i, n := range histogram {
		bars[i] = chart.Value{
			Label: fmt.Sprintf("%d", int(float64(i)*binWidth)),
			Value: float64(n),
		}
	}
	return r.renderBar("Prompt Complexity Distribution", bars, path)
}

func (r *Renderer) activityTimeline(in Input, path string) error {
	if len(in.Timestamps) < 2 {
		return ErrNoData
	}

	perDay := make(map[time.Time]int)
	for _, ms := range in.Timestamps {
		day := time.UnixMilli(ms).Truncate(24 * time.Hour)
		perDay[day]++
	}

	days := make([]time.Time, 0, len(perDay))
	for day := range perDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	counts := make([]float64, len(days))
	for i, day := range days {
		counts[i] = float64(perDay[day])
	}

	graph := chart.Chart{
		Title:  "Prompt Activity Over Time",
		Width:  r.Width,
		Height: r.Height,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "prompts per day",
				XValues: days,
				YValues: counts,
			},
		},
	}
	return r.renderToFile(path, func(f *os.File) error {
		return graph.Render(chart.PNG, f)
	})
}

func (r *Renderer) hoursPerWorkspace(in Input, path string) error {
	if len(in.WorkspaceHours) == 0 {
		return ErrNoData
	}

	bars := make([]chart.Value, 0, len(in.WorkspaceHours))
	for name, hours := range in.WorkspaceHours {
		bars = append(bars, chart.Value{Label: name, Value: hours})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Label < bars[j].Label })
	return r.renderBar("Estimated Hours per Workspace", bars, path)
}

func (r *Renderer) timeAllocation(in Input, path string) error {
	if len(in.WorkspaceHours) == 0 {
		return ErrNoData
	}

	values := make([]chart.Value, 0, len(in.WorkspaceHours))
	total := 0.0
	for name, hours := range in.WorkspaceHours {
		if hours <= 0 {
			continue
		}
		values = append(values, chart.Value{Label: name, Value: hours})
		total += hours
	}
	if total <= 0 {
		return ErrNoData
	}
	sort.Slice(values, func(i, j int) bool { return values[i].Label < values[j].Label })

	pie := chart.PieChart{
		Title:  "Time Allocation by Workspace",
		Width:  r.Width,
		Height: r.Height,
		Values: values,
	}
	return r.renderToFile(path, func(f *os.File) error {
		return pie.Render(chart.PNG, f)
	})
}

// sessionDurations charts the workspace with the most sessions, one bar
// per session.
func (r *Renderer) sessionDurations(in Input, path string) error {
	var busiest string
	for name, sessions := range in.SessionsByWorkspace {
		if len(sessions) > len(in.SessionsByWorkspace[busiest]) {
			busiest = name
		}
	}
	sessions := in.SessionsByWorkspace[busiest]
	if len(sessions) == 0 {
		return ErrNoData
	}

	ordered := make([]estimate.Session, len(sessions))
	copy(ordered, sessions)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Start.Before(ordered[j].Start) })

	bars := make([]chart.Value, len(ordered))
	for i, s := range ordered {
		bars[i] = chart.Value{
			Label: s.Start.Format("01/02"),
			Value: s.Duration.Minutes(),
		}
	}
	return r.renderBar(fmt.Sprintf("Session Durations: %s", busiest), bars, path)
}

func (r *Renderer) methodComparison(in Input, path string) error {
	if !in.HasSessionEstimate {
		return ErrNoData
	}
	bars := []chart.Value{
		{Label: "prompt-based", Value: in.PromptHours},
		{Label: "session-based", Value: in.SessionHours},
	}
	return r.renderBar("Estimated Hours by Method", bars, path)
}

func (r *Renderer) renderBar(title string, bars []chart.Value, path string) error {
	graph := chart.BarChart{
		Title:    title,
		Width:    r.Width,
		Height:   r.Height,
		BarWidth: barWidthFor(r.Width, len(bars)),
		Bars:     bars,
	}
	return r.renderToFile(path, func(f *os.File) error {
		return graph.Render(chart.PNG, f)
	})
}

func (r *Renderer) renderToFile(path string, render func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := render(f); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("render chart: %w", err)
	}
	return f.Close()
}

func barsFromCounts(counts map[string]int) []chart.Value {
	bars := make([]chart.Value, 0, len(counts))
	for label, n := range counts {
		bars = append(bars, chart.Value{Label: label, Value: float64(n)})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Label < bars[j].Label })
	return bars
}

// barWidthFor keeps bars inside the canvas regardless of count.
func barWidthFor(width, bars int) int {
	if bars == 0 {
		return 40
	}
	w := (width - 100) / (bars * 2)
	if w < 4 {
		return 4
	}
	if w > 60 {
		return 60
	}
	return w
}
