package todo

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/example/projstate/internal/core/record"
)

var testNow = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

func testInput() MergeInput {
	return MergeInput{
		ProjectName: "demo",
		ProjectType: "generic",
		Branch:      "main",
		Now:         testNow,
	}
}

func TestBase(t *testing.T) {
	t.Run("missing file uses default", func(t *testing.T) {
		r, err := Base(nil, false, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !r.Get("tasks").IsArray() {
			t.Error("expected tasks array")
		}
		if r.Get("_archive_note").Exists() {
			t.Error("default should not carry an archive note")
		}
	})

	t.Run("rotation uses fresh record", func(t *testing.T) {
		r, err := Base([]byte(`{"tasks":[{"description":"x"}]}`), true, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(r.Get("tasks").Array()) != 0 {
			t.Error("expected tasks to be reset after rotation")
		}
		if !strings.HasPrefix(r.Get("_archive_note").String(), "Previous todos archived") {
			t.Errorf("unexpected note %q", r.Get("_archive_note").String())
		}
	})

	t.Run("malformed prior surfaces error", func(t *testing.T) {
		_, err := Base([]byte(`{"tasks": [`), true, false)
		if !errors.Is(err, record.ErrMalformedInput) {
			t.Fatalf("expected ErrMalformedInput, got %v", err)
		}
	})
}

func TestMerge_DefaultRecord(t *testing.T) {
	r, err := Merge(Default(), testInput())
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	checks := map[string]string{
		"metadata.lastUpdated":    "10/18/2026",
		"metadata.lastSync":       "2026-10-18T09:30:00.000Z",
		"metadata.projectName":    "demo",
		"metadata.projectType":    "generic",
		"metadata.branch":         "main",
		"inProgress.currentFocus": "demo development",
		"_archive_note":           "For archived todos, see ./docs/project/todo-logs/",
	}
	for path, want := range checks {
		if got := r.Get(path).String(); got != want {
			t.Errorf("%s = %q, want %q", path, got, want)
		}
	}

	notes := r.Get("inProgress.notes").Array()
	if len(notes) != 1 || notes[0].String() != "Last save: 10/18/2026, 9:30:00 AM" {
		t.Errorf("unexpected notes: %v", notes)
	}
}

func TestMerge_PreservesUnknownKeysAndTasks(t *testing.T) {
	prior := record.MustParse(`{
  "tasks": [{"description": "Write docs", "priority": "high", "status": "pending"}],
  "metadata": {"owner": "sam", "branch": "old"},
  "inProgress": {"currentFocus": "Refactor", "notes": ["a", "b", "c"]},
  "custom": {"keep": 1}
}`)

	r, err := Merge(prior, testInput())
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	if got := r.Get("metadata.owner").String(); got != "sam" {
		t.Errorf("expected unmentioned metadata to survive, got %q", got)
	}
	if got := r.Get("metadata.branch").String(); got != "main" {
		t.Errorf("expected branch overwritten, got %q", got)
	}
	if got := r.Get("inProgress.currentFocus").String(); got != "Refactor" {
		t.Errorf("expected existing focus kept, got %q", got)
	}
	if got := len(r.Get("inProgress.notes").Array()); got != 1 {
		t.Errorf("expected notes replaced by a single entry, got %d", got)
	}
	if got := r.Get("custom.keep").Int(); got != 1 {
		t.Errorf("expected unknown top-level key preserved, got %d", got)
	}
	if got := r.Get("tasks.0.description").String(); got != "Write docs" {
		t.Errorf("expected tasks passed through, got %q", got)
	}

	out, err := r.Format()
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if strings.Index(string(out), `"tasks"`) > strings.Index(string(out), `"custom"`) {
		t.Error("expected original key order to be kept")
	}
}

func TestMerge_EmptyFocusReplaced(t *testing.T) {
	prior := record.MustParse(`{"tasks": [], "metadata": null, "inProgress": {"currentFocus": ""}}`)

	r, err := Merge(prior, testInput())
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if got := r.Get("inProgress.currentFocus").String(); got != "demo development" {
		t.Errorf("expected default focus, got %q", got)
	}
	if got := r.Get("metadata.branch").String(); got != "main" {
		t.Errorf("expected null metadata to be replaced, got %q", got)
	}
}

func TestMerge_TwiceKeepsTaskCount(t *testing.T) {
	prior := record.MustParse(`{"tasks": [{"description": "one"}, {"description": "two"}], "metadata": {}, "inProgress": {}}`)

	first, err := Merge(prior, testInput())
	if err != nil {
		t.Fatalf("first Merge failed: %v", err)
	}
	second, err := Merge(first, testInput())
	if err != nil {
		t.Fatalf("second Merge failed: %v", err)
	}

	if got := len(second.Get("tasks").Array()); got != 2 {
		t.Errorf("expected 2 tasks, got %d", got)
	}
	if got := len(second.Get("inProgress.notes").Array()); got != 1 {
		t.Errorf("expected 1 note, got %d", got)
	}
	a, _ := first.Format()
	b, _ := second.Format()
	if string(a) != string(b) {
		t.Errorf("expected identical output for identical input:\n%s\n---\n%s", a, b)
	}
}

func TestActiveTasks(t *testing.T) {
	r := record.MustParse(`{"tasks": [
		{"description": "done", "status": "completed"},
		{"description": "doing", "status": "in_progress", "priority": "high"},
		{"title": "titled only", "status": "pending"},
		{"priority": "low"}
	]}`)

	tasks := ActiveTasks(r)
	if len(tasks) != 3 {
		t.Fatalf("expected 3 active tasks, got %d", len(tasks))
	}
	if tasks[0].Description != "doing" || tasks[0].Priority != PriorityHigh || tasks[0].Status != StatusInProgress {
		t.Errorf("unexpected first task: %+v", tasks[0])
	}
	if tasks[1].Description != "titled only" {
		t.Errorf("expected title fallback, got %q", tasks[1].Description)
	}
	if tasks[2].Description != "" {
		t.Errorf("expected empty description, got %q", tasks[2].Description)
	}
}

func TestProgress(t *testing.T) {
	r := record.MustParse(`{"inProgress": {"currentFocus": "Ship it", "notes": ["Last save: now"]}}`)

	p := Progress(r)
	if p.CurrentFocus != "Ship it" {
		t.Errorf("CurrentFocus = %q", p.CurrentFocus)
	}
	if len(p.Notes) != 1 || p.Notes[0] != "Last save: now" {
		t.Errorf("Notes = %v", p.Notes)
	}

	if empty := Progress(record.MustParse(`{}`)); empty.CurrentFocus != "" || len(empty.Notes) != 0 {
		t.Errorf("expected empty progress, got %+v", empty)
	}
}
