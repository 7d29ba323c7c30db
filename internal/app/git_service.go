package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/projstate/internal/models"
	"github.com/example/projstate/internal/ports/secondary"
)

// DefaultBranch is reported when the branch cannot be determined.
const DefaultBranch = "main"

// GitService provides read-only git queries for the project root.
type GitService struct {
	runner   secondary.CommandRunner
	repoPath string
}

// NewGitService creates a new GitService.
func NewGitService(runner secondary.CommandRunner, repoPath string) *GitService {
	return &GitService{runner: runner, repoPath: repoPath}
}

// GetCurrentBranch returns the current branch name.
func (s *GitService) GetCurrentBranch(ctx context.Context) (string, error) {
	output, err := s.runGitCommandOutput(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	branch := strings.TrimSpace(output)
	if branch == "" {
		return "", fmt.Errorf("git returned an empty branch name")
	}
	return branch, nil
}

// GetStatus returns the working tree changes from `git status --porcelain`.
func (s *GitService) GetStatus(ctx context.Context) (models.GitStatus, error) {
	output, err := s.runGitCommandOutput(ctx, "status", "--porcelain")
	if err != nil {
		return models.GitStatus{}, err
	}
	return ParsePorcelain(output), nil
}

// GetRecentCommits returns up to limit commits from `git log --oneline`.
func (s *GitService) GetRecentCommits(ctx context.Context, limit int) ([]models.Commit, error) {
	output, err := s.runGitCommandOutput(ctx, "log", "--oneline", fmt.Sprintf("-%d", limit))
	if err != nil {
		return nil, err
	}
	return ParseOneline(output), nil
}

// ParsePorcelain groups porcelain v1 lines by their trimmed XY code.
// Only exact M, ?? and D codes are grouped; every line counts toward Total.
func ParsePorcelain(output string) models.GitStatus {
	status := models.GitStatus{}
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		status.Total++

		code := line
		path := ""
		if len(line) >= 2 {
			code = line[:2]
		}
		if len(line) > 3 {
			path = strings.TrimSpace(line[3:])
		}

		switch strings.TrimSpace(code) {
		case "M":
			status.Modified = append(status.Modified, path)
		case "??":
			status.Added = append(status.Added, path)
		case "D":
			status.Deleted = append(status.Deleted, path)
		}
	}
	return status
}

// ParseOneline splits `git log --oneline` output into hash and message pairs.
func ParseOneline(output string) []models.Commit {
	var commits []models.Commit
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if line == "" {
			continue
		}
		hash, message, _ := strings.Cut(line, " ")
		commits = append(commits, models.Commit{Hash: hash, Message: message})
	}
	return commits
}

// runGitCommandOutput executes a git command in the project root and returns stdout.
func (s *GitService) runGitCommandOutput(ctx context.Context, args ...string) (string, error) {
	return s.runner.Run(ctx, s.repoPath, "git", args...)
}
