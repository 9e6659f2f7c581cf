package workspace

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// promptsKey is the ItemTable key Cursor stores the AI prompt history under.
const promptsKey = "aiService.prompts"

// chatKeyPatterns are the LIKE patterns scanned for chat-style payloads.
// Order matters only for output stability.
var chatKeyPatterns = []string{
	"%chat%",
	"%ai%",
	"%prompt%",
	"%history%",
	"%message%",
}

// ChatPayload is one raw key/value pair pulled from a state database that
// may hold chat data in any of the known shapes.
type ChatPayload struct {
	Key   string
	Value []byte
}

// openReadOnly opens a state.vscdb without taking any locks Cursor might
// contend on.
func openReadOnly(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", "file:"+dbPath+"?mode=ro&immutable=1")
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", dbPath, err)
	}
	return db, nil
}

// ReadPromptsRaw returns the raw JSON payload stored under the prompts
// key. A missing key is expected absence, not an error: it returns
// (nil, nil).
func ReadPromptsRaw(dbPath string) ([]byte, error) {
	db, err := openReadOnly(dbPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var value []byte
	err = db.QueryRow("SELECT value FROM ItemTable WHERE key = ?", promptsKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query prompts from %s: %w", dbPath, err)
	}

	return value, nil
}

// ReadPrompts extracts the prompt history from a state database. No
// stored prompts is expected absence and returns (nil, nil); open, query,
// and parse failures are errors.
func ReadPrompts(dbPath string) ([]Prompt, error) {
	raw, err := ReadPromptsRaw(dbPath)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	prompts, err := ParsePrompts(raw)
	if err != nil {
		return nil, fmt.Errorf("parse prompts from %s: %w", dbPath, err)
	}
	return prompts, nil
}

// ReadChatPayloads scans the state database for keys that look like they
// hold chat data and returns the raw values for shape classification.
// Keys already covered by the prompts key are excluded.
func ReadChatPayloads(dbPath string) ([]ChatPayload, error) {
	db, err := openReadOnly(dbPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	seen := make(map[string]bool)
	var payloads []ChatPayload

	for _, pattern := range chatKeyPatterns {
		rows, err := db.Query("SELECT key, value FROM ItemTable WHERE key LIKE ?", pattern)
		if err != nil {
			return nil, fmt.Errorf("query chat keys from %s: %w", dbPath, err)
		}

		for rows.Next() {
			var key string
			var value []byte
			if err := rows.Scan(&key, &value); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scan chat row from %s: %w", dbPath, err)
			}
			if key == promptsKey || seen[key] {
				continue
			}
			seen[key] = true
			payloads = append(payloads, ChatPayload{Key: key, Value: value})
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("iterate chat rows from %s: %w", dbPath, err)
		}
		rows.Close()
	}

	return payloads, nil
}
