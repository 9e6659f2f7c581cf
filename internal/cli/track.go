package cli

import (
	"github.com/runnerr0/cursorstats/internal/config"
	"github.com/runnerr0/cursorstats/internal/tracker"
)

// Execute implements the go-flags Commander interface for TrackCommand.
func (c *TrackCommand) Execute(args []string) error {
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

	return tracker.Run(store)
}
