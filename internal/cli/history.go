package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/runnerr0/cursorstats/internal/archive"
)

// historyJSON is the JSON output structure for the history summary.
type historyJSON struct {
	TotalPrompts int64                `json:"total_prompts"`
	TotalRuns    int64                `json:"total_runs"`
	Oldest       string               `json:"oldest,omitempty"`
	Newest       string               `json:"newest,omitempty"`
	Workspaces   []workspaceCountJSON `json:"workspaces"`
}

type workspaceCountJSON struct {
	Workspace string `json:"workspace"`
	Count     int64  `json:"count"`
}

// Execute implements the go-flags Commander interface for HistoryCommand.
func (c *HistoryCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	store, db, err := openArchiveStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()

	return c.executeWithStore(store)
}

// executeWithStore runs history against a provided store (for testing).
func (c *HistoryCommand) executeWithStore(store archive.Store) error {
	ctx := context.Background()

	if c.Workspace != "" {
		return c.printWorkspace(ctx, store)
	}

	stats, err := store.GetStats(ctx)
	if err != nil {
		return fmt.Errorf("get archive stats: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		return printHistoryJSON(stats)
	}
	return printHistoryHuman(stats)
}

func (c *HistoryCommand) printWorkspace(ctx context.Context, store archive.Store) error {
	records, err := store.ListPrompts(ctx, c.Workspace)
	if err != nil {
		return fmt.Errorf("list archived prompts: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	fmt.Printf("Archived prompts for %s: %d\n", c.Workspace, len(records))
	for _, r := range records {
		when := "no timestamp"
		if r.Timestamp > 0 {
			when = time.UnixMilli(r.Timestamp).Local().Format("2006-01-02 15:04")
		}
		fmt.Printf("  [%s] %3d words  %.0f complexity  %s\n", when, r.WordCount, r.Complexity, truncate(r.Text, 60))
	}
	return nil
}

func printHistoryHuman(stats *archive.Stats) error {
	fmt.Println("Prompt Archive")
	fmt.Println("==============")
	fmt.Printf("Prompts:  %d\n", stats.TotalPrompts)
	fmt.Printf("Runs:     %d\n", stats.TotalRuns)

	if stats.OldestTimestamp > 0 {
		fmt.Printf("Oldest:   %s\n", time.UnixMilli(stats.OldestTimestamp).Local().Format("2006-01-02"))
	}
	if stats.NewestTimestamp > 0 {
		fmt.Printf("Newest:   %s\n", time.UnixMilli(stats.NewestTimestamp).Local().Format("2006-01-02"))
	}

	if len(stats.Workspaces) > 0 {
		fmt.Println()
		fmt.Println("By workspace:")
		for _, wc := range stats.Workspaces {
			fmt.Printf("  %-40s %d\n", wc.Workspace, wc.Count)
		}
	}
	return nil
}

func printHistoryJSON(stats *archive.Stats) error {
	out := historyJSON{
		TotalPrompts: stats.TotalPrompts,
		TotalRuns:    stats.TotalRuns,
		Workspaces:   make([]workspaceCountJSON, len(stats.Workspaces)),
	}
	if stats.OldestTimestamp > 0 {
		out.Oldest = time.UnixMilli(stats.OldestTimestamp).UTC().Format(time.RFC3339)
	}
	if stats.NewestTimestamp > 0 {
		out.Newest = time.UnixMilli(stats.NewestTimestamp).UTC().Format(time.RFC3339)
	}
	for i, wc := range stats.Workspaces {
		out.Workspaces[i] = workspaceCountJSON{Workspace: wc.Workspace, Count: wc.Count}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
