package workspace

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
)

// DefaultStorageDir returns the platform-default Cursor workspaceStorage
// directory.
func DefaultStorageDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		appdata := os.Getenv("APPDATA")
		if appdata == "" {
			return "", fmt.Errorf("APPDATA environment variable not set")
		}
		return filepath.Join(appdata, "Cursor", "User", "workspaceStorage"), nil
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, "Library", "Application Support", "Cursor", "User", "workspaceStorage"), nil
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, ".config", "Cursor", "User", "workspaceStorage"), nil
	}
}

// workspaceJSON is the subset of workspace.json we read.
type workspaceJSON struct {
	Folder string `json:"folder"`
}

// Discover scans storageDir for workspace folders and returns one
// Workspace per hash directory, sorted by name. A missing or unreadable
// workspace.json leaves Name/Folder empty; only a failure to list the
// storage directory itself is an error.
func Discover(storageDir string) ([]Workspace, error) {
	entries, err := os.ReadDir(storageDir)
	if err != nil {
		return nil, fmt.Errorf("reading workspace storage %s: %w", storageDir, err)
	}

	var workspaces []Workspace
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		folderPath := filepath.Join(storageDir, entry.Name())
		ws := Workspace{Hash: entry.Name()}

		if data, err := os.ReadFile(filepath.Join(folderPath, "workspace.json")); err == nil {
			var meta workspaceJSON
			if err := json.Unmarshal(data, &meta); err == nil && meta.Folder != "" {
				if folder, err := decodeFolderURI(meta.Folder); err == nil {
					ws.Folder = folder
					ws.Name = filepath.Base(folder)
				}
			}
		}

		dbPath := filepath.Join(folderPath, "state.vscdb")
		if _, err := os.Stat(dbPath); err == nil {
			ws.DBPath = dbPath
		}

		workspaces = append(workspaces, ws)
	}

	sort.Slice(workspaces, func(i, j int) bool {
		return workspaces[i].DisplayName() < workspaces[j].DisplayName()
	})

	return workspaces, nil
}

// decodeFolderURI converts a workspace.json folder URI like
// "file:///c%3A/Users/me/project" into a filesystem path.
func decodeFolderURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, "file://") {
		return "", fmt.Errorf("unsupported folder URI %q", uri)
	}

	path := strings.TrimPrefix(uri, "file://")
	decoded, err := url.PathUnescape(path)
	if err != nil {
		return "", fmt.Errorf("decoding folder URI %q: %w", uri, err)
	}

	// Windows URIs carry a leading slash before the drive letter.
	if len(decoded) >= 3 && decoded[0] == '/' && decoded[2] == ':' {
		decoded = decoded[1:]
	}

	return decoded, nil
}

// Select filters workspaces by name-or-index selectors, matching the
// original interactive picker's rules: a selector that parses as a
// 1-based index picks that workspace, otherwise the first workspace whose
// name contains the selector (case-insensitive) matches.
func Select(workspaces []Workspace, selectors []string) []Workspace {
	var picked []Workspace
	seen := make(map[string]bool)

	add := func(ws Workspace) {
		if !seen[ws.Hash] {
			seen[ws.Hash] = true
			picked = append(picked, ws)
		}
	}

	for _, sel := range selectors {
		if idx, err := parseIndex(sel); err == nil && idx >= 1 && idx <= len(workspaces) {
			add(workspaces[idx-1])
			continue
		}
		lower := strings.ToLower(sel)
		for _, ws := range workspaces {
			if ws.Name != "" && strings.Contains(strings.ToLower(ws.Name), lower) {
				add(ws)
				break
			}
		}
	}

	return picked
}

func parseIndex(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
