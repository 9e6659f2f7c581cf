package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Empty(t, cfg.Workspace.StorageDir)
	assert.Equal(t, "analysis_results", cfg.Output.Dir)
	assert.Equal(t, 1024, cfg.Output.ChartWidth)
	assert.Equal(t, 600, cfg.Output.ChartHeight)
	assert.Equal(t, 5.0, cfg.Estimate.BaseMinutes)
	assert.Equal(t, 20.0, cfg.Estimate.WritingWordsPerMin)
	assert.Equal(t, 1.5, cfg.Estimate.ThinkingFactor)
	assert.Equal(t, 180.0, cfg.Estimate.ReadingWordsPerMin)
	assert.Equal(t, 2.0, cfg.Estimate.ResponseRatio)
	assert.Equal(t, 4.0, cfg.Estimate.ProductiveDayHours)
	assert.Equal(t, 30, cfg.Estimate.IdleGapMinutes)
	assert.Equal(t, 10, cfg.Estimate.SessionBufferMin)
	assert.Equal(t, 8, cfg.Estimate.SessionCapHours)
	assert.Contains(t, cfg.Estimate.SourceExtensions, ".go")
	assert.Contains(t, cfg.Estimate.SourceExtensions, ".py")
	assert.Equal(t, "~/.config/cursorstats/archive.db", cfg.Archive.Path)
	assert.Equal(t, "~/.config/cursorstats/tracker", cfg.Tracker.DataDir)
}

func TestLoadValidYAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	yamlContent := `
workspace:
  storage_dir: /tmp/workspaceStorage
output:
  dir: out
estimate:
  idle_gap_minutes: 45
  base_minutes: 3
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(yamlContent), 0644))

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/workspaceStorage", cfg.Workspace.StorageDir)
	assert.Equal(t, "out", cfg.Output.Dir)
	assert.Equal(t, 45, cfg.Estimate.IdleGapMinutes)
	assert.Equal(t, 3.0, cfg.Estimate.BaseMinutes)

	// Untouched fields keep their defaults.
	assert.Equal(t, 1024, cfg.Output.ChartWidth)
	assert.Equal(t, 8, cfg.Estimate.SessionCapHours)
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidYAMLReturnsError(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("workspace: [unclosed"), 0644))

	_, err := Load(cfgPath)
	assert.Error(t, err)
}

func TestLoadOrCreateAtWritesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "nested", "config.yaml")

	cfg, err := LoadOrCreateAt(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "analysis_results", cfg.Output.Dir)

	// File should now exist and load back identically.
	loaded, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/.config/cursorstats/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "cursorstats", "config.yaml"), got)

	got, err = ExpandPath("/absolute/path")
	require.NoError(t, err)
	assert.Equal(t, "/absolute/path", got)
}
