package primary

import "context"

// HistoryService defines the primary port for the save history ledger.
type HistoryService interface {
	// ListSaves returns the most recent saves, newest first.
	ListSaves(ctx context.Context, limit int) ([]*SaveEntry, error)
}

// SaveEntry represents a recorded save at the port boundary.
type SaveEntry struct {
	ID       string
	SavedAt  string
	Branch   string
	Modified int
	Added    int
	Deleted  int
	Archived []string
}
