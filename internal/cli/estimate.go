package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/runnerr0/cursorstats/internal/estimate"
)

// sessionJSON is the JSON output structure for one session.
type sessionJSON struct {
	Start       string  `json:"start"`
	End         string  `json:"end"`
	DurationMin float64 `json:"duration_minutes"`
	FileCount   int     `json:"file_count"`
	SingleSave  bool    `json:"single_save"`
}

// estimateJSON is the JSON output structure for the estimate command.
type estimateJSON struct {
	Dir        string        `json:"dir"`
	FileCount  int           `json:"file_count"`
	TotalHours float64       `json:"total_hours"`
	Sessions   []sessionJSON `json:"sessions"`
}

// Execute implements the go-flags Commander interface for EstimateCommand.
func (c *EstimateCommand) Execute(args []string) error {
	if c.Dir == "" {
		return fmt.Errorf("--dir is required for estimate command")
	}

	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	params := sessionParams(cfg)
	if c.IdleGapMin > 0 {
		params.IdleGap = time.Duration(c.IdleGapMin) * time.Minute
	}

	est, err := estimate.EstimateSessions(c.Dir, params)
	if err != nil {
		return fmt.Errorf("estimate sessions: %w", err)
	}

	return c.print(est)
}

func (c *EstimateCommand) print(est estimate.SessionEstimate) error {
	if c.globals != nil && c.globals.JSON {
		out := estimateJSON{
			Dir:        c.Dir,
			FileCount:  est.FileCount,
			TotalHours: est.TotalHours,
			Sessions:   make([]sessionJSON, len(est.Sessions)),
		}
		for i, s := range est.Sessions {
			out.Sessions[i] = sessionJSON{
				Start:       s.Start.Format(time.RFC3339),
				End:         s.End.Format(time.RFC3339),
				DurationMin: s.Duration.Minutes(),
				FileCount:   s.FileCount,
				SingleSave:  s.FileCount < 2,
			}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("Session estimate for %s\n", c.Dir)
	fmt.Printf("Files considered: %d\n", est.FileCount)
	fmt.Printf("Estimated time:   %s\n", formatHours(est.TotalHours))

	if len(est.Sessions) == 0 {
		fmt.Println("No file activity found.")
		return nil
	}

	fmt.Println()
	fmt.Println("Sessions:")
	for i, s := range est.Sessions {
		if s.FileCount < 2 {
			fmt.Printf("  %2d. %s  single save, not counted\n", i+1, s.Start.Format("2006-01-02 15:04"))
			continue
		}
		fmt.Printf("  %2d. %s - %s  %.0f min  (%d files)\n",
			i+1,
			s.Start.Format("2006-01-02 15:04"),
			s.End.Format("15:04"),
			s.Duration.Minutes(),
			s.FileCount,
		)
	}

	return nil
}
