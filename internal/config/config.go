package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default config file path.
const DefaultConfigPath = "~/.config/cursorstats/config.yaml"

// Config holds all cursorstats configuration.
type Config struct {
	Workspace WorkspaceConfig `yaml:"workspace"`
	Output    OutputConfig    `yaml:"output"`
	Estimate  EstimateConfig  `yaml:"estimate"`
	Archive   ArchiveConfig   `yaml:"archive"`
	Tracker   TrackerConfig   `yaml:"tracker"`
}

type WorkspaceConfig struct {
	// StorageDir overrides the platform-default Cursor workspaceStorage
	// directory. Empty means auto-detect.
	StorageDir string `yaml:"storage_dir"`
}

type OutputConfig struct {
	Dir         string `yaml:"dir"`
	ChartWidth  int    `yaml:"chart_width"`
	ChartHeight int    `yaml:"chart_height"`
}

// EstimateConfig exposes the time-estimation calibration knobs. The
// defaults are fixed calibration parameters, not values derived from data.
type EstimateConfig struct {
	BaseMinutes        float64  `yaml:"base_minutes"`
	WritingWordsPerMin float64  `yaml:"writing_words_per_min"`
	ThinkingFactor     float64  `yaml:"thinking_factor"`
	ReadingWordsPerMin float64  `yaml:"reading_words_per_min"`
	ResponseRatio      float64  `yaml:"response_ratio"`
	ProductiveDayHours float64  `yaml:"productive_day_hours"`
	IdleGapMinutes     int      `yaml:"idle_gap_minutes"`
	SessionBufferMin   int      `yaml:"session_buffer_minutes"`
	SessionCapHours    int      `yaml:"session_cap_hours"`
	SourceExtensions   []string `yaml:"source_extensions"`
}

type ArchiveConfig struct {
	Path string `yaml:"path"`
}

type TrackerConfig struct {
	DataDir string `yaml:"data_dir"`
}

// Load reads a YAML config file at path and merges it with defaults.
// Returns an error if the file cannot be read or contains invalid YAML.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// LoadOrCreate loads the config from the default path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreate() (*Config, error) {
	path, err := ExpandPath(DefaultConfigPath)
	if err != nil {
		return nil, err
	}
	return LoadOrCreateAt(path)
}

// LoadOrCreateAt loads the config from the given path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreateAt(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()

		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating config directory: %w", err)
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("marshaling default config: %w", err)
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}

		return cfg, nil
	}

	return Load(path)
}
