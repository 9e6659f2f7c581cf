package archive

import "database/sql"

// migrateV001 creates the initial archive schema. Every statement uses
// IF NOT EXISTS for idempotency.
func migrateV001(tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS prompts (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			workspace    TEXT NOT NULL,
			text         TEXT NOT NULL,
			ts           INTEGER NOT NULL DEFAULT 0,
			command_type TEXT NOT NULL DEFAULT 'unknown',
			word_count   INTEGER NOT NULL DEFAULT 0,
			complexity   REAL NOT NULL DEFAULT 0,
			captured_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS runs (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			ran_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			workspaces INTEGER NOT NULL DEFAULT 0,
			prompts    INTEGER NOT NULL DEFAULT 0
		)`,

		`CREATE INDEX IF NOT EXISTS idx_prompts_workspace ON prompts(workspace)`,
		`CREATE INDEX IF NOT EXISTS idx_prompts_ts        ON prompts(ts)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ran_at       ON runs(ran_at)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
