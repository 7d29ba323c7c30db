package app

import (
	"context"
	"fmt"

	"github.com/example/projstate/internal/config"
	"github.com/example/projstate/internal/ports/primary"
	"github.com/example/projstate/internal/ports/secondary"
)

// HistoryServiceImpl implements the HistoryService interface.
type HistoryServiceImpl struct {
	cfg         *config.Config
	historyRepo secondary.SaveHistoryRepository
}

// NewHistoryService creates a new HistoryService with injected dependencies.
func NewHistoryService(cfg *config.Config, historyRepo secondary.SaveHistoryRepository) *HistoryServiceImpl {
	return &HistoryServiceImpl{
		cfg:         cfg,
		historyRepo: historyRepo,
	}
}

// ListSaves returns the most recent saves for the configured project, newest first.
func (s *HistoryServiceImpl) ListSaves(ctx context.Context, limit int) ([]*primary.SaveEntry, error) {
	records, err := s.historyRepo.List(ctx, s.cfg.ProjectID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list saves: %w", err)
	}

	entries := make([]*primary.SaveEntry, len(records))
	for i, r := range records {
		entries[i] = recordToSaveEntry(r)
	}
	return entries, nil
}

// Ensure HistoryServiceImpl implements the interface
var _ primary.HistoryService = (*HistoryServiceImpl)(nil)
