package cli

import (
	"bytes"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// writeTestConfig writes a config file whose output, archive, and
// tracker paths all live under a temp dir, and returns its path.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	content := fmt.Sprintf(
		"output:\n  dir: %s\narchive:\n  path: %s\ntracker:\n  data_dir: %s\n",
		filepath.Join(dir, "out"),
		filepath.Join(dir, "archive.db"),
		filepath.Join(dir, "tracker"),
	)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// writeWorkspaceFixture creates one hash directory under storageDir with
// a workspace.json pointing at folder. When promptsJSON is non-empty a
// state.vscdb is created holding it under the aiService.prompts key.
func writeWorkspaceFixture(t *testing.T, storageDir, hash, folder, promptsJSON string) {
	t.Helper()
	dir := filepath.Join(storageDir, hash)
	require.NoError(t, os.MkdirAll(dir, 0755))

	meta := fmt.Sprintf(`{"folder": "file://%s"}`, folder)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "workspace.json"), []byte(meta), 0644))

	if promptsJSON == "" {
		return
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, "state.vscdb"))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE ItemTable (key TEXT UNIQUE ON CONFLICT REPLACE, value BLOB)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO ItemTable (key, value) VALUES ('aiService.prompts', ?)`, promptsJSON)
	require.NoError(t, err)
}
