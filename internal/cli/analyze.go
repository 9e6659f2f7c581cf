package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/runnerr0/cursorstats/internal/analysis"
	"github.com/runnerr0/cursorstats/internal/archive"
	"github.com/runnerr0/cursorstats/internal/charts"
	"github.com/runnerr0/cursorstats/internal/config"
	"github.com/runnerr0/cursorstats/internal/estimate"
	"github.com/runnerr0/cursorstats/internal/report"
	"github.com/runnerr0/cursorstats/internal/workspace"
)

// workspaceResult is one workspace's extracted prompts.
type workspaceResult struct {
	Workspace workspace.Workspace
	Prompts   []workspace.Prompt
}

// Execute implements the go-flags Commander interface for AnalyzeCommand.
func (c *AnalyzeCommand) Execute(args []string) error {
	if !c.All && len(c.Workspace) == 0 {
		return fmt.Errorf("select workspaces with --all or --workspace (see the workspaces command)")
	}

	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	storageDir, err := resolveStorageDir(c.StorageDir, cfg)
	if err != nil {
		return err
	}

	workspaces, err := workspace.Discover(storageDir)
	if err != nil {
		return fmt.Errorf("discover workspaces: %w", err)
	}

	selected := workspaces
	if !c.All {
		selected = workspace.Select(workspaces, c.Workspace)
	}
	if len(selected) == 0 {
		return fmt.Errorf("no workspaces matched")
	}

	return c.run(cfg, selected)
}

// run extracts prompts from the selected workspaces and writes every
// requested output. Workspaces that fail to read are reported and
// skipped; only producing no data at all is an error.
func (c *AnalyzeCommand) run(cfg *config.Config, selected []workspace.Workspace) error {
	var results []workspaceResult
	var all []workspace.Prompt

	for _, ws := range selected {
		if !ws.HasDB() {
			verbosef(c.globals, "skipping %s: no state database\n", ws.DisplayName())
			continue
		}

		prompts, err := workspace.ReadPrompts(ws.DBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %s: %v\n", ws.DisplayName(), err)
			continue
		}

		if c.IncludeChats {
			extra, err := c.readChatPrompts(ws)
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: %s: %v\n", ws.DisplayName(), err)
			}
			prompts = append(prompts, extra...)
		}
		verbosef(c.globals, "%s: %d prompts\n", ws.DisplayName(), len(prompts))

		results = append(results, workspaceResult{Workspace: ws, Prompts: prompts})
		all = append(all, prompts...)
	}

	if len(results) == 0 {
		return fmt.Errorf("no workspace could be read")
	}

	outputDir := c.OutputDir
	if outputDir == "" {
		outputDir = cfg.Output.Dir
	}
	outputDir, err := config.ExpandPath(outputDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	data := c.buildReport(cfg, results, all)

	if c.SourceDir != "" {
		est, err := estimate.EstimateSessions(c.SourceDir, sessionParams(cfg))
		if err != nil {
			return fmt.Errorf("session estimate: %w", err)
		}
		data.SessionEstimate = &est
	}

	stamp := data.GeneratedAt.Format("20060102_150405")

	reportPath := filepath.Join(outputDir, fmt.Sprintf("cursor_analysis_%s.md", stamp))
	if err := writeReportFile(reportPath, data); err != nil {
		return err
	}
	fmt.Printf("Report: %s\n", reportPath)

	if c.DumpPrompts {
		if err := c.writeDumps(outputDir, stamp, all); err != nil {
			return err
		}
	}

	if !c.NoCharts {
		c.renderCharts(cfg, outputDir, results, data)
	}

	if c.Archive {
		if err := c.archiveResults(cfg, results); err != nil {
			return err
		}
	}

	fmt.Printf("Analyzed %d workspaces, %d prompts.\n", len(results), len(all))
	return nil
}

// readChatPrompts scans chat-like keys and keeps whatever parses into
// user prompts. Payloads in no recognized shape are skipped silently:
// the broad key patterns match plenty of unrelated state.
func (c *AnalyzeCommand) readChatPrompts(ws workspace.Workspace) ([]workspace.Prompt, error) {
	payloads, err := workspace.ReadChatPayloads(ws.DBPath)
	if err != nil {
		return nil, err
	}

	var prompts []workspace.Prompt
	for _, payload := range payloads {
		parsed, err := workspace.ParsePrompts(payload.Value)
		if err != nil {
			continue
		}
		verbosef(c.globals, "%s: %s: %d prompts\n", ws.DisplayName(), payload.Key, len(parsed))
		prompts = append(prompts, parsed...)
	}
	return prompts, nil
}

// buildReport assembles every aggregate the report renders.
func (c *AnalyzeCommand) buildReport(cfg *config.Config, results []workspaceResult, all []workspace.Prompt) report.Data {
	data := report.Data{
		GeneratedAt: time.Now(),
		Overall:     analysis.ComputeStats(all),
		Categories:  analysis.CountCategories(all),
		Complexity:  analysis.ComplexityScores(all),
	}

	for _, r := range results {
		data.Workspaces = append(data.Workspaces, report.WorkspaceSection{
			Name:  r.Workspace.DisplayName(),
			Stats: analysis.ComputeStats(r.Prompts),
		})
	}

	est := estimate.EstimatePrompts(all, estimateParams(cfg))
	data.PromptEstimate = &est

	return data
}

func writeReportFile(path string, data report.Data) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	if err := report.Write(f, data); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return f.Close()
}

func (c *AnalyzeCommand) writeDumps(outputDir, stamp string, all []workspace.Prompt) error {
	dumpPath := filepath.Join(outputDir, fmt.Sprintf("prompts_table_%s.md", stamp))
	f, err := os.Create(dumpPath)
	if err != nil {
		return fmt.Errorf("create prompt table: %w", err)
	}
	if err := report.WriteDump(f, all); err != nil {
		f.Close()
		return fmt.Errorf("write prompt table: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("Prompt table: %s\n", dumpPath)

	fullPath := filepath.Join(outputDir, fmt.Sprintf("prompts_full_%s.txt", stamp))
	f, err = os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("create full prompt dump: %w", err)
	}
	if err := report.WriteFullText(f, all); err != nil {
		f.Close()
		return fmt.Errorf("write full prompt dump: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("Full prompts: %s\n", fullPath)

	return nil
}

// renderCharts draws the chart set. Chart failures are reported but
// never fail the analyze run.
func (c *AnalyzeCommand) renderCharts(cfg *config.Config, outputDir string, results []workspaceResult, data report.Data) {
	in := charts.Input{
		PromptCounts:   make(map[string]int),
		Categories:     data.Categories,
		Complexity:     data.Complexity,
		WorkspaceHours: make(map[string]float64),
	}

	params := estimateParams(cfg)
	for _, r := range results {
		name := r.Workspace.DisplayName()
		in.PromptCounts[name] = len(r.Prompts)
		in.WorkspaceHours[name] = estimate.EstimatePrompts(r.Prompts, params).TotalHours
		for _, p := range r.Prompts {
			if p.Timestamp > 0 {
				in.Timestamps = append(in.Timestamps, p.Timestamp)
			}
		}
	}

	if data.PromptEstimate != nil {
		in.PromptHours = data.PromptEstimate.TotalHours
	}
	if data.SessionEstimate != nil {
		in.SessionHours = data.SessionEstimate.TotalHours
		in.HasSessionEstimate = true
		in.SessionsByWorkspace = map[string][]estimate.Session{
			filepath.Base(c.SourceDir): data.SessionEstimate.Sessions,
		}
	}

	renderer := charts.NewRenderer(outputDir, cfg.Output.ChartWidth, cfg.Output.ChartHeight)
	for _, res := range renderer.RenderAll(in) {
		switch {
		case res.Skipped():
			verbosef(c.globals, "chart %s: skipped (no data)\n", res.Name)
		case res.Err != nil:
			fmt.Fprintf(os.Stderr, "warning: chart %s: %v\n", res.Name, res.Err)
		default:
			fmt.Printf("Chart: %s\n", res.Path)
		}
	}
}

// archiveResults snapshots every workspace's prompts into the archive DB.
func (c *AnalyzeCommand) archiveResults(cfg *config.Config, results []workspaceResult) error {
	store, db, err := openArchiveStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()

	return archiveInto(store, results)
}

// archiveInto writes results through any archive store (used by tests).
func archiveInto(store archive.Store, results []workspaceResult) error {
	ctx := context.Background()

	var total int64
	for _, r := range results {
		written, err := store.SavePrompts(ctx, r.Workspace.DisplayName(), r.Prompts)
		if err != nil {
			return fmt.Errorf("archive %s: %w", r.Workspace.DisplayName(), err)
		}
		total += written
	}

	if err := store.RecordRun(ctx, len(results), int(total)); err != nil {
		return err
	}

	fmt.Printf("Archived %d prompts from %d workspaces.\n", total, len(results))
	return nil
}
