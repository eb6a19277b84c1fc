package audit

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// schema is the audit trail DDL, applied idempotently on Open.
const schema = `
CREATE TABLE IF NOT EXISTS extraction_runs (
    entry_id TEXT PRIMARY KEY,
    timestamp INTEGER NOT NULL,
    request_id TEXT NOT NULL DEFAULT '',
    source TEXT NOT NULL,
    target_hash TEXT NOT NULL,
    extraction_source TEXT NOT NULL DEFAULT '',
    palette_size INTEGER NOT NULL DEFAULT 0,
    status TEXT NOT NULL,
    error_message TEXT NOT NULL DEFAULT '',
    duration_ms INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_runs_timestamp
    ON extraction_runs(timestamp DESC);
CREATE INDEX IF NOT EXISTS idx_runs_status
    ON extraction_runs(status, timestamp DESC);
`

// Open opens (creating directories as needed) the audit database with the
// production pragmas: WAL journaling, busy timeout and NORMAL sync.
func Open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("audit: mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("audit: open %s: %w", path, err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("audit: %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("audit: apply schema: %w", err)
	}
	return db, nil
}

// OpenMemory opens an in-memory audit database with the schema applied.
// Used by tests and by deployments that do not want a durable trail.
func OpenMemory() (*sql.DB, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("audit: open memory db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("audit: apply schema: %w", err)
	}
	return db, nil
}
