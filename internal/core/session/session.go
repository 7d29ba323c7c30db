// Package session renders and merges the Markdown session-context log.
package session

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/example/projstate/internal/core/record"
	"github.com/example/projstate/internal/models"
)

// FileName is the session log's name inside the project docs directory.
const FileName = "session-context.md"

// Footer closes every session log and points at the archive directory.
const Footer = "\n---\n*For archived sessions, see ./docs/project/session-logs/*"

// MaxListedFiles caps each file list in a section.
const MaxListedFiles = 10

// ToolsVersion is stamped into the preamble.
const ToolsVersion = "1.0.0"

const (
	markEnabled  = "✓"
	markDisabled = "○"
)

// footerPattern matches the footer and anything after it.
var footerPattern = regexp.MustCompile(`(?s)\n---\n\*For archived sessions.*$`)

// MergeInput carries everything needed to produce the next session log.
type MergeInput struct {
	ProjectName string
	State       models.ProjectState
	Prior       string // current file content; ignored when HasPrior is false
	HasPrior    bool
	Rotated     bool
	Now         time.Time
}

// Preamble returns the fixed document header a fresh log starts with.
func Preamble(projectName, projectType string) string {
	return fmt.Sprintf(`# %s Session Context

## Project Overview
Software development project

## Current Status
- Project type: %s
- Save/Load tools version: %s
- Generated by projstate

---
`, projectName, projectType, ToolsVersion)
}

// StripFooter removes the archived-sessions footer so a new section can be appended.
func StripFooter(content string) string {
	return footerPattern.ReplaceAllString(content, "")
}

// Merge returns the full next content of the session log.
func Merge(in MergeInput) string {
	var base string
	if in.Rotated || !in.HasPrior {
		base = Preamble(in.ProjectName, in.State.ProjectType)
	} else {
		base = StripFooter(in.Prior)
	}
	return base + RenderSection(in.State, in.Now) + Footer
}

// RenderSection renders one dated session entry.
func RenderSection(state models.ProjectState, now time.Time) string {
	gs := state.GitStatus
	lines := []string{fmt.Sprintf(`
## Session %s
**Branch**: %s
**Git Status**: %d files changed (%dM, %dA, %dD)
`, record.LocaleDateTime(now), state.Branch, gs.Total, len(gs.Modified), len(gs.Added), len(gs.Deleted))}

	if len(gs.Modified) > 0 {
		lines = append(lines, "### Files Modified:")
		lines = append(lines, fileList(gs.Modified)...)
	}

	if len(gs.Added) > 0 {
		lines = append(lines, "\n### Files Added:")
		lines = append(lines, fileList(gs.Added)...)
	}

	if len(state.Commits) > 0 {
		lines = append(lines, "\n### Recent Commits:")
		for _, c := range state.Commits {
			lines = append(lines, fmt.Sprintf("- %s %s", c.Hash, c.Message))
		}
	}

	lines = append(lines, "\n### Project Features:")
	for _, f := range state.Features {
		mark := markDisabled
		if f.Enabled {
			mark = markEnabled
		}
		lines = append(lines, fmt.Sprintf("  %s %s", mark, HumanizeFeature(f.Key)))
	}

	lines = append(lines, "\n---")
	return strings.Join(lines, "\n")
}

func fileList(paths []string) []string {
	shown := paths
	if len(shown) > MaxListedFiles {
		shown = shown[:MaxListedFiles]
	}
	out := make([]string, 0, len(shown)+1)
	for _, p := range shown {
		out = append(out, "- "+p)
	}
	if extra := len(paths) - MaxListedFiles; extra > 0 {
		out = append(out, fmt.Sprintf("- ... and %d more", extra))
	}
	return out
}

// HumanizeFeature turns hasPackageJson into "Package Json".
func HumanizeFeature(key string) string {
	key = strings.TrimPrefix(key, "has")
	var b strings.Builder
	for _, r := range key {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// LatestSection returns the last "## Session" heading and up to maxLines lines from it.
// The second result is false when the log has no session entries.
func LatestSection(content string, maxLines int) (string, bool) {
	lines := strings.Split(content, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.HasPrefix(lines[i], "## Session ") {
			end := i + maxLines
			if end > len(lines) {
				end = len(lines)
			}
			return strings.Join(lines[i:end], "\n"), true
		}
	}
	return "", false
}

// CountSections returns the number of dated entries in a log.
func CountSections(content string) int {
	n := 0
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "## Session ") {
			n++
		}
	}
	return n
}
