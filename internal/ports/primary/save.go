// Package primary defines the primary ports (driving adapters) for the application.
package primary

import (
	"context"

	"github.com/example/projstate/internal/models"
)

// SaveService defines the primary port for snapshotting project state.
type SaveService interface {
	// Save collects state, rotates oversized tracked files and rewrites all three.
	Save(ctx context.Context) (*SaveResult, error)
}

// SaveResult describes what a save wrote.
type SaveResult struct {
	ProjectName string
	ProjectType string
	State       models.ProjectState
	Session     FileSummary
	Todo        FileSummary
	Projects    FileSummary
	Archived    []ArchivedFile
	Warnings    []string
	HistoryID   string // empty when history is disabled or could not be written
}

// FileSummary is the post-save size of one tracked file.
type FileSummary struct {
	Name    string
	Lines   int
	Ceiling int
	Rotated bool
}

// ArchivedFile is one archive slot created during a save.
type ArchivedFile struct {
	BaseName    string
	ArchiveName string
	Lines       int
	Malformed   bool // preserved because it could not be parsed, not because it was too long
}
