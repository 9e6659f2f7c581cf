package cli

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/runnerr0/cursorstats/internal/archive"
	"github.com/runnerr0/cursorstats/internal/config"
	"github.com/runnerr0/cursorstats/internal/estimate"
	"github.com/runnerr0/cursorstats/internal/workspace"
)

// loadConfig resolves the config for a command: an explicit --config path
// must exist, the default path is created with defaults on first use.
func loadConfig(globals *GlobalFlags) (*config.Config, error) {
	if globals != nil && globals.Config != "" {
		path, err := config.ExpandPath(globals.Config)
		if err != nil {
			return nil, err
		}
		return config.Load(path)
	}
	return config.LoadOrCreate()
}

// resolveStorageDir picks the workspaceStorage directory: flag beats
// config beats platform default.
func resolveStorageDir(flagDir string, cfg *config.Config) (string, error) {
	if flagDir != "" {
		return config.ExpandPath(flagDir)
	}
	if cfg.Workspace.StorageDir != "" {
		return config.ExpandPath(cfg.Workspace.StorageDir)
	}
	return workspace.DefaultStorageDir()
}

// openArchiveStore opens the archive database at the configured path,
// running migrations. The caller must close both the store and the db.
func openArchiveStore(cfg *config.Config) (*archive.SQLiteStore, *sql.DB, error) {
	path, err := config.ExpandPath(cfg.Archive.Path)
	if err != nil {
		return nil, nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("create archive directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, nil, fmt.Errorf("open archive database: %w", err)
	}

	runner := archive.NewMigrationRunner(db)
	if err := runner.Run(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	store, err := archive.NewSQLiteStore(db)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("create archive store: %w", err)
	}

	return store, db, nil
}

// estimateParams maps config onto the prompt-estimator knobs.
func estimateParams(cfg *config.Config) estimate.Params {
	return estimate.Params{
		BaseMinutes:        cfg.Estimate.BaseMinutes,
		WritingWordsPerMin: cfg.Estimate.WritingWordsPerMin,
		ThinkingFactor:     cfg.Estimate.ThinkingFactor,
		ReadingWordsPerMin: cfg.Estimate.ReadingWordsPerMin,
		ResponseRatio:      cfg.Estimate.ResponseRatio,
		ProductiveDayHours: cfg.Estimate.ProductiveDayHours,
	}
}

// sessionParams maps config onto the session-estimator knobs.
func sessionParams(cfg *config.Config) estimate.SessionParams {
	return estimate.SessionParams{
		IdleGap:          time.Duration(cfg.Estimate.IdleGapMinutes) * time.Minute,
		Buffer:           time.Duration(cfg.Estimate.SessionBufferMin) * time.Minute,
		Cap:              time.Duration(cfg.Estimate.SessionCapHours) * time.Hour,
		SourceExtensions: cfg.Estimate.SourceExtensions,
	}
}

// formatHours renders fractional hours like "2.4h (144 min)".
func formatHours(hours float64) string {
	return fmt.Sprintf("%.1fh (%.0f min)", hours, hours*60)
}

// verbosef prints only when --verbose is set.
func verbosef(globals *GlobalFlags, format string, args ...any) {
	if globals != nil && globals.Verbose {
		fmt.Printf(format, args...)
	}
}
