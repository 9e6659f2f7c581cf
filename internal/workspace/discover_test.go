package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeWorkspace creates a hash directory with an optional workspace.json
// and an optional empty state.vscdb.
func writeWorkspace(t *testing.T, storageDir, hash, folderURI string, withDB bool) {
	t.Helper()
	dir := filepath.Join(storageDir, hash)
	require.NoError(t, os.MkdirAll(dir, 0755))

	if folderURI != "" {
		meta := `{"folder":"` + folderURI + `"}`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "workspace.json"), []byte(meta), 0644))
	}
	if withDB {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "state.vscdb"), nil, 0644))
	}
}

func TestDiscover(t *testing.T) {
	storageDir := t.TempDir()
	writeWorkspace(t, storageDir, "aaa111", "file:///home/dev/projects/alpha", true)
	writeWorkspace(t, storageDir, "bbb222", "file:///home/dev/projects/beta", false)
	writeWorkspace(t, storageDir, "ccc333", "", true)

	// Loose files in the storage dir are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(storageDir, "stray.txt"), nil, 0644))

	workspaces, err := Discover(storageDir)
	require.NoError(t, err)
	require.Len(t, workspaces, 3)

	byHash := make(map[string]Workspace)
	for _, ws := range workspaces {
		byHash[ws.Hash] = ws
	}

	alpha := byHash["aaa111"]
	assert.Equal(t, "alpha", alpha.Name)
	assert.Equal(t, "/home/dev/projects/alpha", alpha.Folder)
	assert.True(t, alpha.HasDB())

	beta := byHash["bbb222"]
	assert.Equal(t, "beta", beta.Name)
	assert.False(t, beta.HasDB())

	anon := byHash["ccc333"]
	assert.Empty(t, anon.Name)
	assert.Equal(t, "ccc333", anon.DisplayName())
	assert.True(t, anon.HasDB())
}

func TestDiscoverEmptyDir(t *testing.T) {
	workspaces, err := Discover(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, workspaces)
}

func TestDiscoverMissingDirIsError(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
}

func TestDecodeFolderURI(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"file:///home/dev/my%20project", "/home/dev/my project"},
		{"file:///c%3A/Users/dev/proj", "c:/Users/dev/proj"},
		{"file:///home/dev/plain", "/home/dev/plain"},
	}

	for _, tc := range tests {
		got, err := decodeFolderURI(tc.uri)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}

	_, err := decodeFolderURI("vscode-remote://wsl/home")
	assert.Error(t, err)
}

func TestSelect(t *testing.T) {
	workspaces := []Workspace{
		{Hash: "h1", Name: "alpha"},
		{Hash: "h2", Name: "beta"},
		{Hash: "h3", Name: "gamma"},
	}

	// By 1-based index.
	picked := Select(workspaces, []string{"2"})
	require.Len(t, picked, 1)
	assert.Equal(t, "beta", picked[0].Name)

	// By case-insensitive name substring.
	picked = Select(workspaces, []string{"GAM"})
	require.Len(t, picked, 1)
	assert.Equal(t, "gamma", picked[0].Name)

	// Duplicates collapse.
	picked = Select(workspaces, []string{"1", "alpha"})
	require.Len(t, picked, 1)

	// No match selects nothing.
	picked = Select(workspaces, []string{"zeta"})
	assert.Empty(t, picked)
}
