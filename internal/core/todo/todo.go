// Package todo merges save metadata into the JSON task record set.
// The task list itself is passed through untouched.
package todo

import (
	"time"

	"github.com/example/projstate/internal/core/record"
)

// FileName is the task file's name inside the project docs directory.
const FileName = "todo.json"

const (
	archiveNote = "For archived todos, see ./docs/project/todo-logs/"
	rotatedNote = "Previous todos archived in ./docs/project/todo-logs/"
)

// Default is the structure used when no task file exists yet.
func Default() record.Record {
	return record.MustParse(`{"tasks": [], "metadata": {}, "inProgress": {}}`)
}

// Fresh is the structure a task file is reset to right after rotation.
func Fresh() record.Record {
	return record.MustParse(`{"metadata": {}, "tasks": [], "inProgress": {}, "_archive_note": "` + rotatedNote + `"}`)
}

// Base picks the record a merge starts from.
// A parse failure is returned as-is so the caller decides how to recover.
func Base(prior []byte, exists, rotated bool) (record.Record, error) {
	switch {
	case rotated:
		return Fresh(), nil
	case !exists:
		return Default(), nil
	default:
		return record.Parse(prior)
	}
}

// MergeInput is the collected state the task merger writes into the record.
type MergeInput struct {
	ProjectName string
	ProjectType string
	Branch      string
	Now         time.Time
}

// Merge overlays save metadata onto base and returns the updated record.
func Merge(base record.Record, in MergeInput) (record.Record, error) {
	r := base.Clone()
	if err := r.EnsureObject("metadata"); err != nil {
		return record.Record{}, err
	}
	metadata := []struct {
		key   string
		value string
	}{
		{"lastUpdated", record.LocaleDate(in.Now)},
		{"lastSync", record.ISO(in.Now)},
		{"projectName", in.ProjectName},
		{"projectType", in.ProjectType},
		{"branch", in.Branch},
	}
	for _, kv := range metadata {
		if err := r.Set("metadata."+kv.key, kv.value); err != nil {
			return record.Record{}, err
		}
	}

	if err := r.EnsureObject("inProgress"); err != nil {
		return record.Record{}, err
	}
	if err := r.Set("inProgress.notes", []string{"Last save: " + record.LocaleDateTime(in.Now)}); err != nil {
		return record.Record{}, err
	}
	if !record.Truthy(r.Get("inProgress.currentFocus")) {
		if err := r.Set("inProgress.currentFocus", in.ProjectName+" development"); err != nil {
			return record.Record{}, err
		}
	}

	if err := r.Set("_archive_note", archiveNote); err != nil {
		return record.Record{}, err
	}
	return r, nil
}

// Task is the load-side view of one task entry.
type Task struct {
	Description string
	Priority    string
	Status      string
}

// Task status and priority values the load summary distinguishes.
const (
	StatusCompleted  = "completed"
	StatusInProgress = "in_progress"
	PriorityHigh     = "high"
	PriorityMedium   = "medium"
)

// InProgress is the load-side view of the in-progress sub-record.
type InProgress struct {
	CurrentFocus string
	Notes        []string
}

// ActiveTasks returns every task whose status is not completed, in file order.
// Entries without a description fall back to their title.
func ActiveTasks(r record.Record) []Task {
	var tasks []Task
	for _, t := range r.Get("tasks").Array() {
		status := t.Get("status").String()
		if status == StatusCompleted {
			continue
		}
		desc := t.Get("description").String()
		if desc == "" {
			desc = t.Get("title").String()
		}
		tasks = append(tasks, Task{
			Description: desc,
			Priority:    t.Get("priority").String(),
			Status:      status,
		})
	}
	return tasks
}

// Progress reads the in-progress sub-record.
func Progress(r record.Record) InProgress {
	var p InProgress
	if focus := r.Get("inProgress.currentFocus"); record.Truthy(focus) {
		p.CurrentFocus = focus.String()
	}
	for _, n := range r.Get("inProgress.notes").Array() {
		p.Notes = append(p.Notes, n.String())
	}
	return p
}
