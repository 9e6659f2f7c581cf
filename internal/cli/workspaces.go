package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/runnerr0/cursorstats/internal/workspace"
)

// workspaceJSON is the JSON output structure for the workspaces command.
type workspaceJSON struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Hash   string `json:"hash"`
	Folder string `json:"folder,omitempty"`
	HasDB  bool   `json:"has_db"`
}

// Execute implements the go-flags Commander interface for WorkspacesCommand.
func (c *WorkspacesCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	storageDir, err := resolveStorageDir(c.StorageDir, cfg)
	if err != nil {
		return err
	}

	workspaces, err := workspace.Discover(storageDir)
	if err != nil {
		return fmt.Errorf("discover workspaces: %w", err)
	}

	return c.print(storageDir, workspaces)
}

func (c *WorkspacesCommand) print(storageDir string, workspaces []workspace.Workspace) error {
	if c.globals != nil && c.globals.JSON {
		out := make([]workspaceJSON, len(workspaces))
		for i, ws := range workspaces {
			out[i] = workspaceJSON{
				Index:  i + 1,
				Name:   ws.DisplayName(),
				Hash:   ws.Hash,
				Folder: ws.Folder,
				HasDB:  ws.HasDB(),
			}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("Workspace storage: %s\n", storageDir)
	if len(workspaces) == 0 {
		fmt.Println("No workspaces found.")
		return nil
	}

	fmt.Printf("Found %d workspaces:\n\n", len(workspaces))
	for i, ws := range workspaces {
		db := "db"
		if !ws.HasDB() {
			db = "no db"
		}
		fmt.Printf("  %2d. %-40s [%s]\n", i+1, ws.DisplayName(), db)
		verbosef(c.globals, "      hash: %s  folder: %s\n", ws.Hash, ws.Folder)
	}

	return nil
}
