package app

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/example/projstate/internal/config"
	"github.com/example/projstate/internal/models"
	"github.com/example/projstate/internal/ports/primary"
	"github.com/example/projstate/internal/ports/secondary"
)

// markerCheck maps a feature key to the paths that enable it.
type markerCheck struct {
	key   string
	paths []string
}

// saveFeatures are summarized in every session entry, in this order.
var saveFeatures = []markerCheck{
	{"hasGitRepo", []string{".git"}},
	{"hasReadme", []string{"README.md"}},
	{"hasPackageJson", []string{"package.json"}},
	{"hasEnvFile", []string{".env"}},
	{"hasDocker", []string{"Dockerfile", "docker-compose.yml"}},
	{"hasTests", []string{"tests", "test"}},
}

// configMarkers are the configuration files listed by load.
var configMarkers = []struct {
	markerCheck
	label string
}{
	{markerCheck{"hasPackageJson", []string{"package.json"}}, "Node.js project (package.json)"},
	{markerCheck{"hasRequirementsTxt", []string{"requirements.txt"}}, "Python project (requirements.txt)"},
	{markerCheck{"hasDockerfile", []string{"Dockerfile"}}, "Docker configuration"},
	{markerCheck{"hasEnvFile", []string{".env"}}, "Environment variables"},
	{markerCheck{"hasMakefile", []string{"Makefile"}}, "Makefile automation"},
}

// CollectorService gathers ambient project facts. Every query degrades to a
// default on failure; Collect never returns an error.
type CollectorService struct {
	cfg       *config.Config
	git       *GitService
	workspace secondary.WorkspaceAdapter
	logger    *slog.Logger
	now       func() time.Time
}

// NewCollectorService creates a new CollectorService with injected dependencies.
func NewCollectorService(cfg *config.Config, git *GitService, workspace secondary.WorkspaceAdapter, logger *slog.Logger, now func() time.Time) *CollectorService {
	if now == nil {
		now = time.Now
	}
	return &CollectorService{
		cfg:       cfg,
		git:       git,
		workspace: workspace,
		logger:    logger,
		now:       now,
	}
}

// Collect snapshots branch, working tree, recent commits and feature flags.
func (s *CollectorService) Collect(ctx context.Context) models.ProjectState {
	return models.ProjectState{
		ProjectType: s.cfg.ProjectType,
		Branch:      s.Branch(ctx),
		GitStatus:   s.Status(ctx),
		Commits:     s.Commits(ctx),
		Features:    s.Features(ctx),
		Timestamp:   s.now(),
	}
}

// Branch returns the current branch, or DefaultBranch if git cannot tell.
func (s *CollectorService) Branch(ctx context.Context) string {
	branch, err := s.git.GetCurrentBranch(ctx)
	if err != nil {
		s.logger.Debug("branch query failed, using default", "default", DefaultBranch, "error", err)
		return DefaultBranch
	}
	return branch
}

// Status returns working tree changes, or an empty status on failure.
func (s *CollectorService) Status(ctx context.Context) models.GitStatus {
	status, err := s.git.GetStatus(ctx)
	if err != nil {
		s.logger.Debug("status query failed", "error", err)
		return models.GitStatus{}
	}
	return status
}

// Commits returns the configured number of recent commits, or none on failure.
func (s *CollectorService) Commits(ctx context.Context) []models.Commit {
	commits, err := s.git.GetRecentCommits(ctx, s.cfg.CommitLimit)
	if err != nil {
		s.logger.Debug("log query failed", "error", err)
		return nil
	}
	return commits
}

// Features evaluates the session feature flags against the project root.
func (s *CollectorService) Features(ctx context.Context) []models.Feature {
	features := make([]models.Feature, 0, len(saveFeatures))
	for _, check := range saveFeatures {
		features = append(features, models.Feature{Key: check.key, Enabled: s.anyExists(ctx, check.paths)})
	}
	return features
}

// ConfigMarkers reports which well-known configuration files are present.
func (s *CollectorService) ConfigMarkers(ctx context.Context) []primary.ConfigMarker {
	markers := make([]primary.ConfigMarker, 0, len(configMarkers))
	for _, m := range configMarkers {
		markers = append(markers, primary.ConfigMarker{Label: m.label, Present: s.anyExists(ctx, m.paths)})
	}
	return markers
}

// DirectoryStats counts project files, or returns zeros on failure.
func (s *CollectorService) DirectoryStats(ctx context.Context) models.DirectoryStats {
	stats, err := s.workspace.DirectoryStats(ctx, s.cfg.RootPath)
	if err != nil {
		s.logger.Debug("directory scan failed", "error", err)
		return models.DirectoryStats{}
	}
	return stats
}

func (s *CollectorService) anyExists(ctx context.Context, paths []string) bool {
	for _, p := range paths {
		if s.workspace.FileExists(ctx, filepath.Join(s.cfg.RootPath, p)) {
			return true
		}
	}
	return false
}
