// Package registry merges the current repository's entry into the JSON project registry.
package registry

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/example/projstate/internal/core/record"
	"github.com/example/projstate/internal/models"
)

// FileName is the registry's name inside the project docs directory.
const FileName = "projects.json"

// RegistryVersion is written into the default metadata block.
const RegistryVersion = "1.0.0"

const (
	archiveNote = "For archived projects, see ./docs/project/projects-logs/"
	rotatedNote = "Previous projects archived in ./docs/project/projects-logs/"
)

// Entry is a single project in the registry.
type Entry struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Type        string           `json:"type"`
	Created     string           `json:"created"`
	LastUpdated string           `json:"lastUpdated"`
	GitStatus   models.GitCounts `json:"gitStatus"`

	HasGitStatus bool `json:"-"` // set by Lookup
}

// Default is the structure used when no registry exists yet.
func Default(projectRoot string) record.Record {
	root, _ := json.Marshal(projectRoot)
	return record.MustParse(`{"projects": [], "metadata": {"version": "` + RegistryVersion + `", "projectRoot": ` + string(root) + `}}`)
}

// Fresh is the structure a registry is reset to right after rotation.
func Fresh() record.Record {
	return record.MustParse(`{"metadata": {}, "projects": [], "_archive_note": "` + rotatedNote + `"}`)
}

// Base picks the record a merge starts from.
// A parse failure is returned as-is so the caller decides how to recover.
func Base(prior []byte, exists, rotated bool, projectRoot string) (record.Record, error) {
	switch {
	case rotated:
		return Fresh(), nil
	case !exists:
		return Default(projectRoot), nil
	default:
		return record.Parse(prior)
	}
}

// MergeInput is the collected state the registry merger writes into the record.
type MergeInput struct {
	ProjectID   string
	ProjectName string
	ProjectType string
	Branch      string
	Counts      models.GitCounts
	Now         time.Time
}

// Merge updates registry metadata and upserts the entry for in.ProjectID.
func Merge(base record.Record, in MergeInput) (record.Record, error) {
	r := base.Clone()
	if err := r.EnsureObject("metadata"); err != nil {
		return record.Record{}, err
	}
	date := record.LocaleDate(in.Now)
	metadata := []struct {
		key   string
		value string
	}{
		{"lastUpdated", date},
		{"lastSync", record.ISO(in.Now)},
		{"projectName", in.ProjectName},
		{"projectType", in.ProjectType},
		{"gitBranch", in.Branch},
	}
	for _, kv := range metadata {
		if err := r.Set("metadata."+kv.key, kv.value); err != nil {
			return record.Record{}, err
		}
	}

	if err := r.EnsureArray("projects"); err != nil {
		return record.Record{}, err
	}
	if idx := FindEntry(r, in.ProjectID); idx >= 0 {
		prefix := "projects." + strconv.Itoa(idx)
		if err := r.Set(prefix+".lastUpdated", date); err != nil {
			return record.Record{}, err
		}
		if err := r.Set(prefix+".gitStatus", in.Counts); err != nil {
			return record.Record{}, err
		}
	} else {
		entry := Entry{
			ID:          in.ProjectID,
			Name:        in.ProjectName,
			Type:        in.ProjectType,
			Created:     date,
			LastUpdated: date,
			GitStatus:   in.Counts,
		}
		if err := r.Set("projects.-1", entry); err != nil {
			return record.Record{}, err
		}
	}

	if err := r.Set("_archive_note", archiveNote); err != nil {
		return record.Record{}, err
	}
	return r, nil
}

// FindEntry returns the index of the first project whose id matches, or -1.
func FindEntry(r record.Record, id string) int {
	for i, p := range r.Get("projects").Array() {
		if p.Get("id").String() == id {
			return i
		}
	}
	return -1
}

// Lookup reads the entry for id. The second result is false if no entry matches.
// Fields that are not strings are rendered as their JSON text.
func Lookup(r record.Record, id string) (*Entry, bool) {
	idx := FindEntry(r, id)
	if idx < 0 {
		return nil, false
	}
	p := r.Get(fmt.Sprintf("projects.%d", idx))
	status := p.Get("gitStatus")
	return &Entry{
		ID:          p.Get("id").String(),
		Name:        p.Get("name").String(),
		Type:        p.Get("type").String(),
		Created:     p.Get("created").String(),
		LastUpdated: p.Get("lastUpdated").String(),
		GitStatus: models.GitCounts{
			Modified: int(status.Get("modified").Int()),
			Added:    int(status.Get("added").Int()),
			Deleted:  int(status.Get("deleted").Int()),
		},
		HasGitStatus: status.IsObject(),
	}, true
}
