package cli

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/cursorstats/internal/archive"
	"github.com/runnerr0/cursorstats/internal/workspace"
)

// openSeededArchive returns an in-memory archive store with two
// workspaces' prompts already saved.
func openSeededArchive(t *testing.T) *archive.SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, archive.NewMigrationRunner(db).Run())

	store, err := archive.NewSQLiteStore(db)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	_, err = store.SavePrompts(ctx, "alpha", []workspace.Prompt{
		{Text: "fix the parser", Timestamp: 1700000000000},
		{Text: "add tests for the cache"},
	})
	require.NoError(t, err)
	_, err = store.SavePrompts(ctx, "beta", []workspace.Prompt{
		{Text: "refactor the config loader", Timestamp: 1700000500000},
	})
	require.NoError(t, err)
	require.NoError(t, store.RecordRun(ctx, 2, 3))

	return store
}

func TestHistoryCommand_Summary(t *testing.T) {
	store := openSeededArchive(t)
	cmd := &HistoryCommand{globals: &GlobalFlags{}}

	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store))
	})

	assert.Contains(t, output, "Prompt Archive")
	assert.Contains(t, output, "Prompts:  3")
	assert.Contains(t, output, "Runs:     1")
	assert.Contains(t, output, "alpha")
	assert.Contains(t, output, "beta")
}

func TestHistoryCommand_Workspace(t *testing.T) {
	store := openSeededArchive(t)
	cmd := &HistoryCommand{Workspace: "alpha", globals: &GlobalFlags{}}

	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store))
	})

	assert.Contains(t, output, "Archived prompts for alpha: 2")
	assert.Contains(t, output, "fix the parser")
	assert.Contains(t, output, "no timestamp")
}

func TestHistoryCommand_EmptyArchive(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, archive.NewMigrationRunner(db).Run())

	store, err := archive.NewSQLiteStore(db)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cmd := &HistoryCommand{globals: &GlobalFlags{}}
	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store))
	})

	assert.Contains(t, output, "Prompts:  0")
}
