package cli

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable verbose output"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// WorkspacesCommand — list discovered Cursor workspaces.
type WorkspacesCommand struct {
	StorageDir string `long:"storage-dir" description:"Override the Cursor workspaceStorage directory"`

	globals *GlobalFlags
	version string
}

// AnalyzeCommand — extract prompts, compute stats, write report and charts.
type AnalyzeCommand struct {
	All          bool     `long:"all" description:"Analyze every workspace that has a database"`
	Workspace    []string `long:"workspace" description:"Workspace to analyze, by name or 1-based index (repeatable)"`
	StorageDir   string   `long:"storage-dir" description:"Override the Cursor workspaceStorage directory"`
	OutputDir    string   `long:"output-dir" description:"Directory for the report and charts"`
	SourceDir    string   `long:"source-dir" description:"Project directory for the session-based estimate"`
	IncludeChats bool     `long:"include-chats" description:"Also scan chat-like keys for user prompts, not just the prompt history"`
	NoCharts     bool     `long:"no-charts" description:"Skip chart rendering"`
	DumpPrompts  bool     `long:"dump-prompts" description:"Also write the per-prompt table and full prompt texts"`
	Archive      bool     `long:"archive" description:"Snapshot extracted prompts into the local archive database"`

	globals *GlobalFlags
	version string
}

// EstimateCommand — session-based hour estimate for a directory.
type EstimateCommand struct {
	Dir        string `long:"dir" description:"Project directory to estimate (required)"`
	IdleGapMin int    `long:"idle-gap" description:"Minutes of inactivity that ends a session" default:"0"`

	globals *GlobalFlags
	version string
}

// HistoryCommand — show prompt-archive statistics.
type HistoryCommand struct {
	Workspace string `long:"workspace" description:"List archived prompts for one workspace instead of the summary"`

	globals *GlobalFlags
	version string
}

// TrackCommand — open the interactive tracker.
type TrackCommand struct {
	DataDir string `long:"data-dir" description:"Override the tracker data directory"`

	globals *GlobalFlags
	version string
}

// ProjectsCommand — print tracked project statistics.
type ProjectsCommand struct {
	DataDir string `long:"data-dir" description:"Override the tracker data directory"`
	Name    string `long:"name" description:"Show a single project in detail"`

	globals *GlobalFlags
	version string
}
