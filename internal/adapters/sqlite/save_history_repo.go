// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/example/projstate/internal/ports/secondary"
)

// SaveHistoryRepository implements secondary.SaveHistoryRepository with SQLite.
type SaveHistoryRepository struct {
	db *sql.DB
}

// NewSaveHistoryRepository creates a new SQLite save history repository.
func NewSaveHistoryRepository(db *sql.DB) *SaveHistoryRepository {
	return &SaveHistoryRepository{db: db}
}

const saveColumns = `id, project_id, saved_at, branch, modified, added, deleted, archived`

// Create persists a new save record.
func (r *SaveHistoryRepository) Create(ctx context.Context, record *secondary.SaveRecord) error {
	archived := record.Archived
	if archived == nil {
		archived = []string{}
	}
	archivedJSON, err := json.Marshal(archived)
	if err != nil {
		return fmt.Errorf("failed to encode archive list: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO saves (`+saveColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.ProjectID,
		record.SavedAt,
		record.Branch,
		record.Modified,
		record.Added,
		record.Deleted,
		string(archivedJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to create save record: %w", err)
	}
	return nil
}

// List returns the most recent saves for a project, newest first.
func (r *SaveHistoryRepository) List(ctx context.Context, projectID string, limit int) ([]*secondary.SaveRecord, error) {
	query := `SELECT ` + saveColumns + ` FROM saves WHERE project_id = ? ORDER BY saved_at DESC, rowid DESC`
	args := []any{projectID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list saves: %w", err)
	}
	defer rows.Close()

	var records []*secondary.SaveRecord
	for rows.Next() {
		record, err := scanSave(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list saves: %w", err)
	}
	return records, nil
}

// Latest returns the newest save for a project, or nil if none exists.
func (r *SaveHistoryRepository) Latest(ctx context.Context, projectID string) (*secondary.SaveRecord, error) {
	records, err := r.List(ctx, projectID, 1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

func scanSave(rows *sql.Rows) (*secondary.SaveRecord, error) {
	var archivedJSON string
	record := &secondary.SaveRecord{}
	err := rows.Scan(&record.ID,
		&record.ProjectID,
		&record.SavedAt,
		&record.Branch,
		&record.Modified,
		&record.Added,
		&record.Deleted,
		&archivedJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to scan save record: %w", err)
	}
	if err := json.Unmarshal([]byte(archivedJSON), &record.Archived); err != nil {
		return nil, fmt.Errorf("failed to decode archive list of save %s: %w", record.ID, err)
	}
	return record, nil
}

// Ensure SaveHistoryRepository implements the interface
var _ secondary.SaveHistoryRepository = (*SaveHistoryRepository)(nil)
