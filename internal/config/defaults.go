package config

// DefaultSourceExtensions is the allow-list used when grouping file
// activity into work sessions. Files with other extensions only count
// when no source-like files exist at all.
func DefaultSourceExtensions() []string {
	return []string{
		".go", ".py", ".js", ".ts", ".jsx", ".tsx",
		".html", ".css", ".scss",
		".c", ".cc", ".cpp", ".h", ".hpp",
		".rs", ".java", ".kt", ".rb", ".php",
		".sql", ".sh", ".yaml", ".yml", ".toml", ".json", ".md",
	}
}

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Workspace: WorkspaceConfig{
			StorageDir: "",
		},
		Output: OutputConfig{
			Dir:         "analysis_results",
			ChartWidth:  1024,
			ChartHeight: 600,
		},
		Estimate: EstimateConfig{
			BaseMinutes:        5,
			WritingWordsPerMin: 20,
			ThinkingFactor:     1.5,
			ReadingWordsPerMin: 180,
			ResponseRatio:      2,
			ProductiveDayHours: 4,
			IdleGapMinutes:     30,
			SessionBufferMin:   10,
			SessionCapHours:    8,
			SourceExtensions:   DefaultSourceExtensions(),
		},
		Archive: ArchiveConfig{
			Path: "~/.config/cursorstats/archive.db",
		},
		Tracker: TrackerConfig{
			DataDir: "~/.config/cursorstats/tracker",
		},
	}
}
