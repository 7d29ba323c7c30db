package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/example/projstate/internal/ports/secondary"
)

// Ensure mocks implement their interfaces
var (
	_ secondary.CommandRunner         = (*mockCommandRunner)(nil)
	_ secondary.SaveHistoryRepository = (*mockSaveHistoryRepository)(nil)
)

// mockCommandRunner answers commands from a table keyed by "name arg1 arg2 ...".
type mockCommandRunner struct {
	outputs map[string]string
	errs    map[string]error
	calls   []string
}

func newMockCommandRunner() *mockCommandRunner {
	return &mockCommandRunner{
		outputs: make(map[string]string),
		errs:    make(map[string]error),
	}
}

func (m *mockCommandRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	key := strings.Join(append([]string{name}, args...), " ")
	m.calls = append(m.calls, key)
	if err, ok := m.errs[key]; ok {
		return "", err
	}
	if out, ok := m.outputs[key]; ok {
		return out, nil
	}
	return "", errors.New("unexpected command: " + key)
}

// newGitRunner returns a runner that answers the three collector queries.
func newGitRunner(branch, status, log string) *mockCommandRunner {
	r := newMockCommandRunner()
	r.outputs["git rev-parse --abbrev-ref HEAD"] = branch + "\n"
	r.outputs["git status --porcelain"] = status
	r.outputs["git log --oneline -5"] = log
	return r
}

// mockSaveHistoryRepository is an in-memory save ledger.
type mockSaveHistoryRepository struct {
	mu        sync.Mutex
	records   []*secondary.SaveRecord
	createErr error
	listErr   error
}

func newMockSaveHistoryRepository() *mockSaveHistoryRepository {
	return &mockSaveHistoryRepository{}
}

func (m *mockSaveHistoryRepository) Create(ctx context.Context, record *secondary.SaveRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, record)
	return nil
}

func (m *mockSaveHistoryRepository) List(ctx context.Context, projectID string, limit int) ([]*secondary.SaveRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*secondary.SaveRecord
	for _, r := range m.records {
		if r.ProjectID == projectID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SavedAt > out[j].SavedAt })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockSaveHistoryRepository) Latest(ctx context.Context, projectID string) (*secondary.SaveRecord, error) {
	records, err := m.List(ctx, projectID, 1)
	if err != nil || len(records) == 0 {
		return nil, err
	}
	return records[0], nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
