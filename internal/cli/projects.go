package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/runnerr0/cursorstats/internal/config"
	"github.com/runnerr0/cursorstats/internal/tracker"
)

// projectJSON is the JSON output structure for one tracked project.
type projectJSON struct {
	Name         string  `json:"name"`
	CreatedAt    string  `json:"created_at"`
	Sessions     int     `json:"sessions"`
	TotalSeconds float64 `json:"total_seconds"`
	Prompts      int     `json:"prompts"`
	TotalWords   int     `json:"total_words"`
	AvgWords     float64 `json:"avg_words"`
}

// Execute implements the go-flags Commander interface for ProjectsCommand.
func (c *ProjectsCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	dataDir := c.DataDir
	if dataDir == "" {
		dataDir = cfg.Tracker.DataDir
	}
	dataDir, err = config.ExpandPath(dataDir)
	if err != nil {
		return err
	}

	store, err := tracker.Open(dataDir)
	if err != nil {
		return err
	}

	return c.executeWithStore(store)
}

// executeWithStore runs projects against a provided store (for testing).
func (c *ProjectsCommand) executeWithStore(store *tracker.Store) error {
	names := store.ProjectNames()
	if c.Name != "" {
		names = []string{c.Name}
	}

	if c.globals != nil && c.globals.JSON {
		out := make([]projectJSON, 0, len(names))
		for _, name := range names {
			p, err := store.Project(name)
			if err != nil {
				return err
			}
			out = append(out, projectJSON{
				Name:         name,
				CreatedAt:    p.CreatedAt.UTC().Format(time.RFC3339),
				Sessions:     len(p.Sessions),
				TotalSeconds: p.TotalTime,
				Prompts:      p.TotalPrompts,
				TotalWords:   p.TotalWordCount,
				AvgWords:     p.AvgWords(),
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if len(names) == 0 {
		fmt.Println("No tracked projects.")
		return nil
	}

	for _, name := range names {
		p, err := store.Project(name)
		if err != nil {
			return err
		}

		hours := p.TotalTime / 3600
		fmt.Printf("%s\n", name)
		fmt.Printf("  created:   %s\n", p.CreatedAt.Local().Format("2006-01-02"))
		fmt.Printf("  sessions:  %d (%s)\n", len(p.Sessions), formatHours(hours))
		fmt.Printf("  prompts:   %d (%d words, %.1f avg)\n", p.TotalPrompts, p.TotalWordCount, p.AvgWords())

		if c.Name != "" {
			for i, s := range p.Sessions {
				fmt.Printf("  %2d. %s - %s  %.0f min\n",
					i+1,
					s.StartTime.Local().Format("2006-01-02 15:04"),
					s.EndTime.Local().Format("15:04"),
					s.DurationSeconds/60,
				)
			}
		}
		fmt.Println()
	}

	return nil
}
