// Package secondary defines the secondary ports (driven adapters) for the application.
package secondary

import (
	"context"

	"github.com/example/projstate/internal/models"
)

// WorkspaceAdapter defines the secondary port for filesystem operations on the project tree.
type WorkspaceAdapter interface {
	// File operations
	ReadFile(ctx context.Context, path string) (content []byte, exists bool, err error)
	WriteFile(ctx context.Context, path string, content []byte, mode uint32) error
	FileExists(ctx context.Context, path string) bool

	// Directory operations
	CreateDirectory(ctx context.Context, path string, mode uint32) error
	DirectoryStats(ctx context.Context, root string) (models.DirectoryStats, error)

	// ArchiveFile copies path into the next free dated slot in archiveDir.
	// Returns "" without error when path does not exist.
	ArchiveFile(ctx context.Context, path, archiveDir, baseName string) (string, error)
}
