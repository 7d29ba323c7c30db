package db

import (
	"database/sql"
	"fmt"
)

// SchemaSQL is the complete schema for a fresh history database.
// It reflects the state after all migrations; keep the two in sync.
// Tests load it through GetSchemaSQL rather than declaring their own tables.
const SchemaSQL = `
-- Saves (one row per completed save run)
CREATE TABLE IF NOT EXISTS saves (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	saved_at TEXT NOT NULL,
	branch TEXT NOT NULL,
	modified INTEGER NOT NULL DEFAULT 0,
	added INTEGER NOT NULL DEFAULT 0,
	deleted INTEGER NOT NULL DEFAULT 0,
	archived TEXT NOT NULL DEFAULT '[]'
);

CREATE INDEX IF NOT EXISTS idx_saves_project_saved_at ON saves(project_id, saved_at);
`

const schemaVersionSQL = `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER PRIMARY KEY,
	applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
)`

// InitSchema creates the schema on a fresh database and migrates an existing one.
func InitSchema(conn *sql.DB) error {
	var tableCount int
	err := conn.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}
	if tableCount > 0 {
		return RunMigrations(conn)
	}

	// Fresh install: create the current schema and mark every migration applied
	if _, err := conn.Exec(SchemaSQL); err != nil {
		return err
	}
	if _, err := conn.Exec(schemaVersionSQL); err != nil {
		return err
	}
	for _, m := range migrations {
		if _, err := conn.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
func GetSchemaSQL() string {
	return SchemaSQL
}
