package secondary

import "context"

// SaveRecord is one row of the save history ledger.
type SaveRecord struct {
	ID        string
	SavedAt   string // RFC 3339
	ProjectID string
	Branch    string
	Modified  int
	Added     int
	Deleted   int
	Archived  []string // archive file names created by this save
}

// SaveHistoryRepository defines the secondary port for the save history ledger.
type SaveHistoryRepository interface {
	// Create persists a new save record.
	Create(ctx context.Context, record *SaveRecord) error

	// List returns the most recent saves for a project, newest first.
	// A limit of zero or less returns every save.
	List(ctx context.Context, projectID string, limit int) ([]*SaveRecord, error)

	// Latest returns the newest save for a project, or nil if none exists.
	Latest(ctx context.Context, projectID string) (*SaveRecord, error)
}
