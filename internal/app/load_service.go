package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/example/projstate/internal/config"
	"github.com/example/projstate/internal/core/record"
	"github.com/example/projstate/internal/core/registry"
	"github.com/example/projstate/internal/core/session"
	"github.com/example/projstate/internal/core/todo"
	"github.com/example/projstate/internal/ports/primary"
	"github.com/example/projstate/internal/ports/secondary"
)

// RecentSessionLines bounds how much of the latest session entry load reads.
const RecentSessionLines = 30

// LoadServiceImpl implements the LoadService interface.
type LoadServiceImpl struct {
	cfg       *config.Config
	collector *CollectorService
	workspace secondary.WorkspaceAdapter
	history   secondary.SaveHistoryRepository // nil when history is disabled
	logger    *slog.Logger
}

// NewLoadService creates a new LoadService with injected dependencies.
func NewLoadService(
	cfg *config.Config,
	collector *CollectorService,
	workspace secondary.WorkspaceAdapter,
	history secondary.SaveHistoryRepository,
	logger *slog.Logger,
) *LoadServiceImpl {
	return &LoadServiceImpl{
		cfg:       cfg,
		collector: collector,
		workspace: workspace,
		history:   history,
		logger:    logger,
	}
}

// Load reads the tracked files and live git state without modifying anything.
func (s *LoadServiceImpl) Load(ctx context.Context) (*primary.Snapshot, error) {
	snap := &primary.Snapshot{
		ProjectName: s.cfg.ProjectName,
		ProjectType: s.cfg.ProjectType,
		Branch:      s.collector.Branch(ctx),
		GitStatus:   s.collector.Status(ctx),
		Config:      s.collector.ConfigMarkers(ctx),
		Stats:       s.collector.DirectoryStats(ctx),
	}
	docs := s.cfg.DocsPath()

	todoRec, ok, err := s.readRecord(ctx, filepath.Join(docs, todo.FileName), snap)
	if err != nil {
		return nil, err
	}
	if ok {
		progress := todo.Progress(todoRec)
		snap.CurrentFocus = progress.CurrentFocus
		snap.Notes = progress.Notes
		for _, t := range todo.ActiveTasks(todoRec) {
			snap.ActiveTasks = append(snap.ActiveTasks, primary.Task{
				Description: t.Description,
				Priority:    t.Priority,
				InProgress:  t.Status == todo.StatusInProgress,
			})
		}
	}

	content, exists, err := s.workspace.ReadFile(ctx, filepath.Join(docs, session.FileName))
	if err != nil {
		return nil, err
	}
	if exists {
		if section, found := session.LatestSection(string(content), RecentSessionLines); found {
			snap.RecentSession = section
		}
	}

	projects, ok, err := s.readRecord(ctx, filepath.Join(docs, registry.FileName), snap)
	if err != nil {
		return nil, err
	}
	if ok {
		s.loadProject(projects, snap)
	}

	s.loadLastSave(ctx, snap)
	return snap, nil
}

// readRecord reads a JSON tracked file. Malformed content becomes a warning.
func (s *LoadServiceImpl) readRecord(ctx context.Context, path string, snap *primary.Snapshot) (record.Record, bool, error) {
	data, exists, err := s.workspace.ReadFile(ctx, path)
	if err != nil || !exists {
		return record.Record{}, false, err
	}
	rec, err := record.Parse(data)
	if errors.Is(err, record.ErrMalformedInput) {
		snap.Warnings = append(snap.Warnings, fmt.Sprintf("Could not parse %s (%v)", filepath.Base(path), err))
		return record.Record{}, false, nil
	}
	if err != nil {
		return record.Record{}, false, err
	}
	return rec, true, nil
}

func (s *LoadServiceImpl) loadProject(projects record.Record, snap *primary.Snapshot) {
	entry, found := registry.Lookup(projects, s.cfg.ProjectID)
	if !found {
		return
	}
	summary := &primary.ProjectSummary{
		Created:     entry.Created,
		LastUpdated: entry.LastUpdated,
	}
	if entry.HasGitStatus {
		counts := entry.GitStatus
		summary.GitStatus = &counts
	}
	snap.Project = summary
}

func (s *LoadServiceImpl) loadLastSave(ctx context.Context, snap *primary.Snapshot) {
	if s.history == nil {
		return
	}
	latest, err := s.history.Latest(ctx, s.cfg.ProjectID)
	if err != nil {
		s.logger.Warn("could not read save history", "error", err)
		return
	}
	if latest != nil {
		snap.LastSave = recordToSaveEntry(latest)
	}
}

// recordToSaveEntry converts a history row to its port representation.
func recordToSaveEntry(r *secondary.SaveRecord) *primary.SaveEntry {
	savedAt := r.SavedAt
	if t, err := time.Parse(time.RFC3339, r.SavedAt); err == nil {
		savedAt = record.LocaleDateTime(t.Local())
	}
	return &primary.SaveEntry{
		ID:       r.ID,
		SavedAt:  savedAt,
		Branch:   r.Branch,
		Modified: r.Modified,
		Added:    r.Added,
		Deleted:  r.Deleted,
		Archived: r.Archived,
	}
}

// Ensure LoadServiceImpl implements the interface
var _ primary.LoadService = (*LoadServiceImpl)(nil)
