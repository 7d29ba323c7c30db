package primary

import (
	"context"

	"github.com/example/projstate/internal/models"
)

// LoadService defines the primary port for reading project state back.
type LoadService interface {
	// Load reads the tracked files and live git state without modifying anything.
	Load(ctx context.Context) (*Snapshot, error)
}

// Snapshot is everything the load report shows.
type Snapshot struct {
	ProjectName   string
	ProjectType   string
	Branch        string
	GitStatus     models.GitStatus
	Config        []ConfigMarker
	Stats         models.DirectoryStats
	CurrentFocus  string
	Notes         []string
	ActiveTasks   []Task
	RecentSession string // empty when the log has no session entries
	Project       *ProjectSummary
	LastSave      *SaveEntry
	Warnings      []string
}

// ConfigMarker is one well-known configuration file.
type ConfigMarker struct {
	Label   string
	Present bool
}

// Task is an active task from the task file.
type Task struct {
	Description string
	Priority    string
	InProgress  bool
}

// ProjectSummary is this repository's registry entry.
type ProjectSummary struct {
	Created     string
	LastUpdated string
	GitStatus   *models.GitCounts
}
