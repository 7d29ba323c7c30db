package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/example/projstate/internal/models"
	"github.com/example/projstate/internal/ports/primary"
)

func sampleSaveResult() *primary.SaveResult {
	modified := make([]string, 5)
	for i := range modified {
		modified[i] = fmt.Sprintf("file%d.go", i+1)
	}
	return &primary.SaveResult{
		ProjectName: "demo",
		ProjectType: "generic",
		State: models.ProjectState{
			Branch: "feature/x",
			GitStatus: models.GitStatus{
				Modified: modified,
				Added:    []string{"new.go"},
				Total:    6,
			},
			Features:  []models.Feature{{Key: "hasGitRepo", Enabled: true}, {Key: "hasReadme", Enabled: true}, {Key: "hasTests"}},
			Timestamp: time.Date(2026, 10, 18, 15, 4, 5, 0, time.UTC),
		},
		Session:  primary.FileSummary{Name: "session-context.md", Lines: 42, Ceiling: 300},
		Todo:     primary.FileSummary{Name: "todo.json", Lines: 17, Ceiling: 400},
		Projects: primary.FileSummary{Name: "projects.json", Lines: 25, Ceiling: 400},
	}
}

func TestSaveAdapter_Save(t *testing.T) {
	result := sampleSaveResult()
	result.Archived = []primary.ArchivedFile{
		{BaseName: "session-context.md", ArchiveName: "session-context-20261018-01.md", Lines: 312},
		{BaseName: "todo.json", ArchiveName: "todo-20261018-01.json", Lines: 1, Malformed: true},
	}
	result.Warnings = []string{"Could not parse todo.json (malformed input: invalid JSON); starting from defaults"}
	result.HistoryID = "abc-123"

	var out bytes.Buffer
	adapter := NewSaveAdapter(&mockSaveService{saveFn: func(ctx context.Context) (*primary.SaveResult, error) {
		return result, nil
	}}, &out)

	if err := adapter.Save(context.Background()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"📦 Archived session-context.md to session-context-20261018-01.md (312 lines)",
		"📦 Preserved unreadable todo.json as todo-20261018-01.json",
		"⚠️  Could not parse todo.json",
		"✅ Save Complete",
		"📁 Project: demo (generic)",
		"Updated with 6 file changes",
		"🌿 Branch: feature/x",
		"⏰ Time: 3:04:05 PM",
		"Session: 42/300 lines",
		"Todo: 17/400 lines",
		"Projects: 25/400 lines",
		"Features detected: 2",
		"Modified: file1.go, file2.go, file3.go (+2 more)",
		"Added: new.go",
		"Recorded save abc-123",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Deleted:") {
		t.Error("expected no Deleted line for an empty group")
	}
}

func TestSaveAdapter_Save_CleanTree(t *testing.T) {
	result := sampleSaveResult()
	result.State.GitStatus = models.GitStatus{}

	var out bytes.Buffer
	adapter := NewSaveAdapter(&mockSaveService{saveFn: func(ctx context.Context) (*primary.SaveResult, error) {
		return result, nil
	}}, &out)

	if err := adapter.Save(context.Background()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if strings.Contains(out.String(), "Changed Files") {
		t.Error("expected no changed files section for a clean tree")
	}
	if strings.Contains(out.String(), "📦") {
		t.Error("expected no archive notices")
	}
}

func TestSaveAdapter_Save_Error(t *testing.T) {
	var out bytes.Buffer
	adapter := NewSaveAdapter(&mockSaveService{saveFn: func(ctx context.Context) (*primary.SaveResult, error) {
		return nil, errors.New("archive slots exhausted")
	}}, &out)

	if err := adapter.Save(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if out.Len() != 0 {
		t.Errorf("expected no output on failure, got %q", out.String())
	}
}
