// Package models contains domain types for collected project state.
package models

import "time"

// ProjectState is a snapshot of everything the collector gathered for one save.
type ProjectState struct {
	ProjectType string
	Branch      string
	GitStatus   GitStatus
	Commits     []Commit
	Features    []Feature
	Timestamp   time.Time
}

// GitStatus holds working-tree paths grouped by porcelain status code.
type GitStatus struct {
	Modified []string
	Added    []string
	Deleted  []string
	Total    int // every non-blank porcelain line, including codes not grouped above
}

// IsClean reports whether the porcelain output was empty.
func (s GitStatus) IsClean() bool {
	return s.Total == 0
}

// Counts returns the sizes of the grouped path lists.
func (s GitStatus) Counts() GitCounts {
	return GitCounts{
		Modified: len(s.Modified),
		Added:    len(s.Added),
		Deleted:  len(s.Deleted),
	}
}

// GitCounts is the persisted summary of a GitStatus.
type GitCounts struct {
	Modified int `json:"modified"`
	Added    int `json:"added"`
	Deleted  int `json:"deleted"`
}

// Commit is one line of `git log --oneline`.
type Commit struct {
	Hash    string
	Message string
}

// Feature is a marker-file check, keyed by a hasXxx identifier.
type Feature struct {
	Key     string
	Enabled bool
}

// EnabledCount returns how many features are on.
func EnabledCount(features []Feature) int {
	n := 0
	for _, f := range features {
		if f.Enabled {
			n++
		}
	}
	return n
}
