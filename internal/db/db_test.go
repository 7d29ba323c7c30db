package db

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
)

func schemaVersion(t *testing.T, conn *sql.DB) int {
	t.Helper()
	var v int
	if err := conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&v); err != nil {
		t.Fatalf("failed to read schema version: %v", err)
	}
	return v
}

func TestOpen_FreshDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".projstate", "history.db")

	conn, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer conn.Close()

	if got := schemaVersion(t, conn); got != LatestVersion() {
		t.Errorf("schema version = %d, want %d", got, LatestVersion())
	}
	if _, err := conn.Exec("INSERT INTO saves (id, project_id, saved_at, branch) VALUES ('s1', 'demo', '2026-10-18T00:00:00Z', 'main')"); err != nil {
		t.Errorf("expected saves table to exist: %v", err)
	}
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	first, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := first.Exec("INSERT INTO saves (id, project_id, saved_at, branch) VALUES ('s1', 'demo', '2026-10-18T00:00:00Z', 'main')"); err != nil {
		t.Fatal(err)
	}
	first.Close()

	second, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer second.Close()

	var n int
	if err := second.QueryRow("SELECT COUNT(*) FROM saves").Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("expected existing rows to survive reopen, got %d", n)
	}
}

func TestRunMigrations_UpgradesPartialDatabase(t *testing.T) {
	conn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	conn.SetMaxOpenConns(1)

	// A database that only ever ran the first migration
	tx, err := conn.Begin()
	if err != nil {
		t.Fatal(err)
	}
	if err := migrationV1(tx); err != nil {
		t.Fatal(err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatal(err)
	}
	if _, err := conn.Exec(schemaVersionSQL); err != nil {
		t.Fatal(err)
	}
	if _, err := conn.Exec("INSERT INTO schema_version (version) VALUES (1)"); err != nil {
		t.Fatal(err)
	}

	if err := InitSchema(conn); err != nil {
		t.Fatalf("InitSchema failed: %v", err)
	}
	if got := schemaVersion(t, conn); got != LatestVersion() {
		t.Errorf("schema version = %d, want %d", got, LatestVersion())
	}
	var idx int
	if err := conn.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name='idx_saves_project_saved_at'").Scan(&idx); err != nil {
		t.Fatal(err)
	}
	if idx != 1 {
		t.Error("expected migration 2 to create the index")
	}
}

func TestOpen_WritesGitignore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".projstate")

	conn, err := Open(filepath.Join(dir, "history.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	conn.Close()

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		t.Fatalf("expected .gitignore: %v", err)
	}
	if string(data) != "history.db*\n.gitignore\n" {
		t.Errorf(".gitignore = %q", data)
	}
}

func TestOpen_KeepsExistingGitignore(t *testing.T) {
	dir := t.TempDir()
	ignore := filepath.Join(dir, ".gitignore")
	if err := os.WriteFile(ignore, []byte("*\n"), 0644); err != nil {
		t.Fatal(err)
	}

	conn, err := Open(filepath.Join(dir, "history.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	conn.Close()

	if data, _ := os.ReadFile(ignore); string(data) != "*\n" {
		t.Errorf("expected existing .gitignore kept, got %q", data)
	}
}
