package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/example/projstate/internal/config"
	"github.com/example/projstate/internal/core/effects"
	"github.com/example/projstate/internal/core/registry"
	"github.com/example/projstate/internal/core/save"
	"github.com/example/projstate/internal/core/session"
	"github.com/example/projstate/internal/core/todo"
	"github.com/example/projstate/internal/ports/primary"
	"github.com/example/projstate/internal/ports/secondary"
)

// SaveServiceImpl implements the SaveService interface.
type SaveServiceImpl struct {
	cfg       *config.Config
	collector *CollectorService
	workspace secondary.WorkspaceAdapter
	executor  EffectExecutor
	history   secondary.SaveHistoryRepository // nil when history is disabled
	logger    *slog.Logger
	now       func() time.Time
}

// NewSaveService creates a new SaveService with injected dependencies.
func NewSaveService(
	cfg *config.Config,
	collector *CollectorService,
	workspace secondary.WorkspaceAdapter,
	executor EffectExecutor,
	history secondary.SaveHistoryRepository,
	logger *slog.Logger,
	now func() time.Time,
) *SaveServiceImpl {
	if now == nil {
		now = time.Now
	}
	return &SaveServiceImpl{
		cfg:       cfg,
		collector: collector,
		workspace: workspace,
		executor:  executor,
		history:   history,
		logger:    logger,
		now:       now,
	}
}

// Save collects state, rotates oversized tracked files and rewrites all three.
func (s *SaveServiceImpl) Save(ctx context.Context) (*primary.SaveResult, error) {
	// 1. Gather all data
	state := s.collector.Collect(ctx)
	docs := s.cfg.DocsPath()

	sessionFile, err := s.track(ctx, docs, session.FileName, config.SessionArchiveDir)
	if err != nil {
		return nil, err
	}
	todoFile, err := s.track(ctx, docs, todo.FileName, config.TodoArchiveDir)
	if err != nil {
		return nil, err
	}
	projectsFile, err := s.track(ctx, docs, registry.FileName, config.ProjectsArchiveDir)
	if err != nil {
		return nil, err
	}

	// 2. Generate plan (pure)
	plan, err := save.GeneratePlan(save.PlanInput{
		ProjectID:      s.cfg.ProjectID,
		ProjectName:    s.cfg.ProjectName,
		ProjectType:    s.cfg.ProjectType,
		ProjectRoot:    s.cfg.RootPath,
		DocsDir:        docs,
		SessionCeiling: s.cfg.SessionCeiling,
		JSONCeiling:    s.cfg.JSONCeiling,
		State:          state,
		Now:            state.Timestamp,
		Session:        sessionFile,
		Todo:           todoFile,
		Projects:       projectsFile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to plan save: %w", err)
	}

	// 3. Execute effects
	outcome, err := s.executor.Execute(ctx, plan.Effects)
	if err != nil {
		return nil, fmt.Errorf("failed to save project state: %w", err)
	}

	result := &primary.SaveResult{
		ProjectName: s.cfg.ProjectName,
		ProjectType: s.cfg.ProjectType,
		State:       state,
		Session:     fileSummary(plan.Session),
		Todo:        fileSummary(plan.Todo),
		Projects:    fileSummary(plan.Projects),
		Warnings:    append([]string(nil), plan.Warnings...),
	}
	for _, a := range outcome.Archived {
		result.Archived = append(result.Archived, primary.ArchivedFile{
			BaseName:    a.BaseName,
			ArchiveName: a.ArchiveName,
			Lines:       a.Lines,
			Malformed:   a.Reason == effects.ReasonMalformed,
		})
	}

	// 4. Record the save; the tracked files are already written
	if s.history != nil {
		id, err := s.recordSave(ctx, state.Branch, result)
		if err != nil {
			s.logger.Warn("could not record save history", "error", err)
			result.Warnings = append(result.Warnings, fmt.Sprintf("Save history not recorded: %v", err))
		} else {
			result.HistoryID = id
		}
	}

	return result, nil
}

func (s *SaveServiceImpl) track(ctx context.Context, docs, name, archiveSubdir string) (save.TrackedFile, error) {
	path := filepath.Join(docs, name)
	content, exists, err := s.workspace.ReadFile(ctx, path)
	if err != nil {
		return save.TrackedFile{}, err
	}
	return save.TrackedFile{
		Path:       path,
		ArchiveDir: filepath.Join(docs, archiveSubdir),
		Content:    content,
		Exists:     exists,
	}, nil
}

func (s *SaveServiceImpl) recordSave(ctx context.Context, branch string, result *primary.SaveResult) (string, error) {
	counts := result.State.GitStatus.Counts()
	rec := &secondary.SaveRecord{
		ID:        uuid.NewString(),
		SavedAt:   s.now().UTC().Format(time.RFC3339),
		ProjectID: s.cfg.ProjectID,
		Branch:    branch,
		Modified:  counts.Modified,
		Added:     counts.Added,
		Deleted:   counts.Deleted,
	}
	for _, a := range result.Archived {
		rec.Archived = append(rec.Archived, a.ArchiveName)
	}
	if err := s.history.Create(ctx, rec); err != nil {
		return "", err
	}
	return rec.ID, nil
}

func fileSummary(r save.FileReport) primary.FileSummary {
	return primary.FileSummary{
		Name:    r.BaseName,
		Lines:   r.LinesAfter,
		Ceiling: r.Ceiling,
		Rotated: r.Rotated,
	}
}

// Ensure SaveServiceImpl implements the interface
var _ primary.SaveService = (*SaveServiceImpl)(nil)
