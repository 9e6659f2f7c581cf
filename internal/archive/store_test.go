package archive

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/cursorstats/internal/workspace"
)

// openTestStore creates a migrated in-memory Store for testing.
func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	runner := NewMigrationRunner(db)
	require.NoError(t, runner.Run())

	store, err := NewSQLiteStore(db)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestSavePrompts_Roundtrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	prompts := []workspace.Prompt{
		{Text: "fix the parser bug", Timestamp: 1700000200000, CommandType: "4"},
		{Text: "explain the cache", Timestamp: 1700000100000, CommandType: "chat"},
	}

	written, err := store.SavePrompts(ctx, "alpha", prompts)
	require.NoError(t, err)
	assert.Equal(t, int64(2), written)

	records, err := store.ListPrompts(ctx, "alpha")
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Ordered by timestamp ascending.
	assert.Equal(t, "explain the cache", records[0].Text)
	assert.Equal(t, "fix the parser bug", records[1].Text)

	// Scores are derived at write time.
	assert.Equal(t, 4, records[1].WordCount)
	assert.Greater(t, records[1].Complexity, 0.0)
	assert.False(t, records[0].CapturedAt.IsZero())
}

func TestSavePrompts_EmptyIsNoop(t *testing.T) {
	store := openTestStore(t)

	written, err := store.SavePrompts(context.Background(), "alpha", nil)
	require.NoError(t, err)
	assert.Zero(t, written)
}

func TestListPrompts_UnknownWorkspaceIsEmpty(t *testing.T) {
	store := openTestStore(t)

	records, err := store.ListPrompts(context.Background(), "nope")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestGetStats(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.SavePrompts(ctx, "alpha", []workspace.Prompt{
		{Text: "a", Timestamp: 2000},
		{Text: "b", Timestamp: 1000},
		{Text: "no timestamp"},
	})
	require.NoError(t, err)
	_, err = store.SavePrompts(ctx, "beta", []workspace.Prompt{{Text: "c", Timestamp: 3000}})
	require.NoError(t, err)
	require.NoError(t, store.RecordRun(ctx, 2, 4))

	stats, err := store.GetStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats.TotalPrompts)
	assert.Equal(t, int64(1), stats.TotalRuns)
	// Zero timestamps don't pollute the oldest marker.
	assert.Equal(t, int64(1000), stats.OldestTimestamp)
	assert.Equal(t, int64(3000), stats.NewestTimestamp)

	require.Len(t, stats.Workspaces, 2)
	assert.Equal(t, "alpha", stats.Workspaces[0].Workspace)
	assert.Equal(t, int64(3), stats.Workspaces[0].Count)
}

func TestGetStats_EmptyArchive(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetStats(context.Background())
	require.NoError(t, err)

	assert.Zero(t, stats.TotalPrompts)
	assert.Zero(t, stats.TotalRuns)
	assert.Empty(t, stats.Workspaces)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	runner := NewMigrationRunner(db)
	require.NoError(t, runner.Run())
	require.NoError(t, runner.Run())

	var applied int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied))
	assert.Equal(t, 1, applied)
}
