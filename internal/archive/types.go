package archive

import "time"

// Record is one archived prompt row.
type Record struct {
	ID          int64
	Workspace   string
	Text        string
	Timestamp   int64 // ms epoch, 0 when the source carried none
	CommandType string
	WordCount   int
	Complexity  float64
	CapturedAt  time.Time
}

// WorkspaceCount pairs a workspace name with its archived prompt count.
type WorkspaceCount struct {
	Workspace string
	Count     int64
}

// Stats holds aggregate statistics about the archive database.
type Stats struct {
	TotalPrompts    int64
	TotalRuns       int64
	OldestTimestamp int64
	NewestTimestamp int64
	Workspaces      []WorkspaceCount
}
