// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/projstate/internal/core/rotation"
	"github.com/example/projstate/internal/models"
	"github.com/example/projstate/internal/ports/secondary"
)

// codeExtensions are the file extensions counted as source code in directory stats.
var codeExtensions = map[string]bool{
	".js": true, ".jsx": true, ".ts": true, ".tsx": true, ".py": true, ".java": true,
	".cpp": true, ".c": true, ".h": true, ".go": true, ".rs": true, ".rb": true,
	".php": true, ".swift": true, ".kt": true, ".scala": true,
}

// WorkspaceAdapter implements secondary.WorkspaceAdapter for filesystem operations.
type WorkspaceAdapter struct {
	now func() time.Time
}

// NewWorkspaceAdapter creates a new filesystem workspace adapter.
// If now is nil, time.Now is used to date archive slots.
func NewWorkspaceAdapter(now func() time.Time) *WorkspaceAdapter {
	if now == nil {
		now = time.Now
	}
	return &WorkspaceAdapter{now: now}
}

// ReadFile reads a file, reporting a missing file as exists=false rather than an error.
func (a *WorkspaceAdapter) ReadFile(ctx context.Context, path string) ([]byte, bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, true, nil
}

// WriteFile replaces a file's content.
func (a *WorkspaceAdapter) WriteFile(ctx context.Context, path string, content []byte, mode uint32) error {
	if err := os.WriteFile(path, content, os.FileMode(mode)); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// FileExists checks whether anything exists at path.
func (a *WorkspaceAdapter) FileExists(ctx context.Context, path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// CreateDirectory creates a directory with all parent directories.
func (a *WorkspaceAdapter) CreateDirectory(ctx context.Context, path string, mode uint32) error {
	if err := os.MkdirAll(path, os.FileMode(mode)); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// ArchiveFile copies path verbatim into the first free {stem}-{YYYYMMDD}-{NN}{ext} slot.
func (a *WorkspaceAdapter) ArchiveFile(ctx context.Context, path, archiveDir, baseName string) (string, error) {
	content, exists, err := a.ReadFile(ctx, path)
	if err != nil || !exists {
		return "", err
	}
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	name, err := rotation.NextArchiveName(baseName, rotation.DateStamp(a.now()), func(candidate string) bool {
		return a.FileExists(ctx, filepath.Join(archiveDir, candidate))
	})
	if err != nil {
		return "", err
	}

	// Archive slots are write-once.
	f, err := os.OpenFile(filepath.Join(archiveDir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create archive %s: %w", name, err)
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write archive %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write archive %s: %w", name, err)
	}
	return name, nil
}

// DirectoryStats counts files under root, skipping dot-directories and node_modules.
func (a *WorkspaceAdapter) DirectoryStats(ctx context.Context, root string) (models.DirectoryStats, error) {
	var stats models.DirectoryStats
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || name == "node_modules") {
				return filepath.SkipDir
			}
			return nil
		}
		stats.TotalFiles++
		if codeExtensions[filepath.Ext(path)] {
			stats.CodeFiles++
		}
		return nil
	})
	if err != nil {
		return models.DirectoryStats{}, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	return stats, nil
}

// Ensure WorkspaceAdapter implements the interface
var _ secondary.WorkspaceAdapter = (*WorkspaceAdapter)(nil)
