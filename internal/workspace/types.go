package workspace

// Prompt is one recorded user input to Cursor's AI assistant. Immutable
// once extracted.
type Prompt struct {
	Text string
	// Timestamp is milliseconds since the Unix epoch; 0 means the source
	// record carried no timestamp.
	Timestamp int64
	// CommandType labels which assistant feature recorded the prompt.
	// "unknown" when the source record carried none.
	CommandType string
}

// Workspace is one project folder tracked by Cursor, identified by the
// hash directory under workspaceStorage.
type Workspace struct {
	Hash   string
	Name   string
	Folder string
	DBPath string // empty when the workspace has no state.vscdb
}

// HasDB reports whether the workspace has a state database to read.
func (w Workspace) HasDB() bool {
	return w.DBPath != ""
}

// DisplayName returns the workspace name, falling back to the hash when
// workspace.json was missing or unreadable.
func (w Workspace) DisplayName() string {
	if w.Name != "" {
		return w.Name
	}
	return w.Hash
}
