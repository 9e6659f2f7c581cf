package archive

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/runnerr0/cursorstats/internal/analysis"
	"github.com/runnerr0/cursorstats/internal/workspace"
)

// Store defines the interface for archive operations.
type Store interface {
	SavePrompts(ctx context.Context, workspaceName string, prompts []workspace.Prompt) (int64, error)
	RecordRun(ctx context.Context, workspaces, prompts int) error
	ListPrompts(ctx context.Context, workspaceName string) ([]Record, error)
	GetStats(ctx context.Context) (*Stats, error)
	Close() error
}

// SQLiteStore implements Store backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB

	insertPrompt *sql.Stmt
	insertRun    *sql.Stmt
	listPrompts  *sql.Stmt
}

// NewSQLiteStore creates a SQLiteStore from an already-opened and
// migrated database.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}

	if err := s.prepareStatements(); err != nil {
		return nil, fmt.Errorf("prepare statements: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.insertPrompt, err = s.db.Prepare(`
		INSERT INTO prompts (workspace, text, ts, command_type, word_count, complexity)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}

	s.insertRun, err = s.db.Prepare(`
		INSERT INTO runs (workspaces, prompts) VALUES (?, ?)
	`)
	if err != nil {
		return err
	}

	s.listPrompts, err = s.db.Prepare(`
		SELECT id, workspace, text, ts, command_type, word_count, complexity, captured_at
		FROM prompts WHERE workspace = ? ORDER BY ts, id
	`)
	if err != nil {
		return err
	}

	return nil
}

// SavePrompts archives a workspace's prompt collection in one
// transaction, deriving word count and complexity at write time so the
// archive is queryable without re-scoring. Returns the number of rows
// written.
func (s *SQLiteStore) SavePrompts(ctx context.Context, workspaceName string, prompts []workspace.Prompt) (int64, error) {
	if len(prompts) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt := tx.StmtContext(ctx, s.insertPrompt)
	var written int64
	for _, p := range prompts {
		_, err := stmt.ExecContext(ctx,
			workspaceName,
			p.Text,
			p.Timestamp,
			p.CommandType,
			analysis.CountWords(p.Text),
			analysis.ComplexityScore(p.Text),
		)
		if err != nil {
			return 0, fmt.Errorf("insert prompt: %w", err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return written, nil
}

// RecordRun notes one analyze invocation's scope for the history view.
func (s *SQLiteStore) RecordRun(ctx context.Context, workspaces, prompts int) error {
	if _, err := s.insertRun.ExecContext(ctx, workspaces, prompts); err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// ListPrompts returns a workspace's archived prompts ordered by timestamp.
func (s *SQLiteStore) ListPrompts(ctx context.Context, workspaceName string) ([]Record, error) {
	rows, err := s.listPrompts.QueryContext(ctx, workspaceName)
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Workspace, &r.Text, &r.Timestamp, &r.CommandType, &r.WordCount, &r.Complexity, &r.CapturedAt); err != nil {
			return nil, fmt.Errorf("scan prompt: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// GetStats returns aggregate statistics about the archive.
func (s *SQLiteStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(MIN(CASE WHEN ts > 0 THEN ts END), 0),
		       COALESCE(MAX(ts), 0)
		FROM prompts
	`).Scan(&stats.TotalPrompts, &stats.OldestTimestamp, &stats.NewestTimestamp)
	if err != nil {
		return nil, fmt.Errorf("prompt totals: %w", err)
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&stats.TotalRuns); err != nil {
		return nil, fmt.Errorf("run totals: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT workspace, COUNT(*) AS n
		FROM prompts
		GROUP BY workspace
		ORDER BY n DESC, workspace
	`)
	if err != nil {
		return nil, fmt.Errorf("workspace counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var wc WorkspaceCount
		if err := rows.Scan(&wc.Workspace, &wc.Count); err != nil {
			return nil, fmt.Errorf("scan workspace count: %w", err)
		}
		stats.Workspaces = append(stats.Workspaces, wc)
	}
	return stats, rows.Err()
}

// Close releases prepared statements. The caller owns the *sql.DB.
func (s *SQLiteStore) Close() error {
	for _, stmt := range []*sql.Stmt{s.insertPrompt, s.insertRun, s.listPrompts} {
		if stmt != nil {
			stmt.Close()
		}
	}
	return nil
}
