package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/example/projstate/internal/ports/primary"
)

// HistoryAdapter prints the save history ledger.
type HistoryAdapter struct {
	service primary.HistoryService
	out     io.Writer
}

// NewHistoryAdapter creates a new HistoryAdapter with the given service.
func NewHistoryAdapter(service primary.HistoryService, out io.Writer) *HistoryAdapter {
	return &HistoryAdapter{
		service: service,
		out:     out,
	}
}

// List prints the most recent saves, newest first.
func (a *HistoryAdapter) List(ctx context.Context, limit int) error {
	entries, err := a.service.ListSaves(ctx, limit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No saves recorded")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-24s %-20s %-12s %s\n", "SAVED", "BRANCH", "CHANGES", "ARCHIVED")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, e := range entries {
		changes := fmt.Sprintf("%dM %dA %dD", e.Modified, e.Added, e.Deleted)
		archived := "-"
		if len(e.Archived) > 0 {
			archived = strings.Join(e.Archived, ", ")
		}
		fmt.Fprintf(a.out, "%-24s %-20s %-12s %s\n", e.SavedAt, e.Branch, changes, archived)
	}
	fmt.Fprintln(a.out)

	return nil
}
