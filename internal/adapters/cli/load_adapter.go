package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/example/projstate/internal/ports/primary"
)

const (
	tasksShown         = 5
	sessionLinesShown  = 10
	unnamedTask        = "Unnamed task"
	priorityHighMark   = "🔴"
	priorityMediumMark = "🟡"
	priorityLowMark    = "⚪"
)

// LoadAdapter reads project state back and prints the load summary.
type LoadAdapter struct {
	service primary.LoadService
	out     io.Writer
}

// NewLoadAdapter creates a new LoadAdapter with the given service.
func NewLoadAdapter(service primary.LoadService, out io.Writer) *LoadAdapter {
	return &LoadAdapter{
		service: service,
		out:     out,
	}
}

// Load reads the tracked files and prints a summary.
func (a *LoadAdapter) Load(ctx context.Context) error {
	snap, err := a.service.Load(ctx)
	if err != nil {
		return err
	}
	a.Report(snap)
	return nil
}

// Report prints every section of the load summary.
func (a *LoadAdapter) Report(snap *primary.Snapshot) {
	w := a.out

	fmt.Fprintf(w, "\n%s\n", rule())
	fmt.Fprintf(w, "  %s %s\n", header(snap.ProjectName, " Project State"), dim("(", snap.ProjectType, ")"))
	fmt.Fprintf(w, "%s\n\n", rule())

	for _, warning := range snap.Warnings {
		fmt.Fprintln(w, yellow("⚠️  "+warning))
	}
	if len(snap.Warnings) > 0 {
		fmt.Fprintln(w)
	}

	a.gitInfo(snap)
	a.configuration(snap)
	a.statistics(snap)
	a.tasks(snap)
	a.recentSession(snap)
	a.projectSummary(snap)
	a.lastSave(snap)

	fmt.Fprintln(w, rule())
	fmt.Fprintln(w, dim("Commands: ")+bold("projstate save")+dim(" to update state | ")+bold("projstate load")+dim(" to refresh"))
	fmt.Fprintf(w, "%s\n\n", rule())
}

func (a *LoadAdapter) gitInfo(snap *primary.Snapshot) {
	w := a.out
	fmt.Fprintln(w, bold("📌 Git Information"))
	fmt.Fprintf(w, "  Branch: %s\n", yellow(snap.Branch))
	if snap.GitStatus.IsClean() {
		fmt.Fprintf(w, "  Changes: %s\n", green("Working tree clean"))
	} else {
		c := snap.GitStatus.Counts()
		fmt.Fprintf(w, "  Changes: %s (%dM, %dA, %dD)\n", red(snap.GitStatus.Total, " files"), c.Modified, c.Added, c.Deleted)
	}
	fmt.Fprintln(w)
}

func (a *LoadAdapter) configuration(snap *primary.Snapshot) {
	w := a.out
	fmt.Fprintln(w, bold("⚙️  Project Configuration"))
	found := false
	for _, m := range snap.Config {
		if m.Present {
			fmt.Fprintf(w, "  %s %s\n", green("✓"), m.Label)
			found = true
		}
	}
	if !found {
		fmt.Fprintf(w, "  %s\n", yellow("No standard configuration files detected"))
	}
	fmt.Fprintln(w)
}

func (a *LoadAdapter) statistics(snap *primary.Snapshot) {
	if snap.Stats.TotalFiles == 0 {
		return
	}
	w := a.out
	fmt.Fprintln(w, bold("📈 Project Statistics"))
	fmt.Fprintf(w, "  Total files: %s\n", cyan(snap.Stats.TotalFiles))
	fmt.Fprintf(w, "  Code files: %s\n\n", cyan(snap.Stats.CodeFiles))
}

func (a *LoadAdapter) tasks(snap *primary.Snapshot) {
	if len(snap.ActiveTasks) == 0 && snap.CurrentFocus == "" {
		return
	}
	w := a.out
	fmt.Fprintln(w, bold("📋 Active Tasks"))
	if snap.CurrentFocus != "" {
		fmt.Fprintf(w, "  %s\n", cyan("Current Focus: ", snap.CurrentFocus))
	}

	for i, task := range snap.ActiveTasks {
		if i == tasksShown {
			fmt.Fprintf(w, "  %s\n", dim(fmt.Sprintf("... and %d more", len(snap.ActiveTasks)-tasksShown)))
			break
		}
		desc := task.Description
		if desc == "" {
			desc = unnamedTask
		}
		status := ""
		if task.InProgress {
			status = yellow(" [IN PROGRESS]")
		}
		fmt.Fprintf(w, "  %s %s%s\n", priorityMark(task.Priority), desc, status)
	}

	if len(snap.Notes) > 0 {
		fmt.Fprintf(w, "  %s\n", dim(snap.Notes[0]))
	}
	fmt.Fprintln(w)
}

func priorityMark(priority string) string {
	switch priority {
	case "high":
		return priorityHighMark
	case "medium":
		return priorityMediumMark
	default:
		return priorityLowMark
	}
}

func (a *LoadAdapter) recentSession(snap *primary.Snapshot) {
	if snap.RecentSession == "" {
		return
	}
	w := a.out
	fmt.Fprintln(w, bold("📝 Recent Session"))
	lines := strings.Split(snap.RecentSession, "\n")
	if len(lines) > sessionLinesShown {
		lines = lines[:sessionLinesShown]
	}
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "### "):
			fmt.Fprintf(w, "  %s\n", yellow(strings.TrimPrefix(line, "### ")))
		case strings.HasPrefix(line, "##"):
			fmt.Fprintf(w, "  %s\n", cyan(line))
		case strings.HasPrefix(line, "**"):
			fmt.Fprintf(w, "  %s\n", dim(line))
		default:
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
	fmt.Fprintln(w)
}

func (a *LoadAdapter) projectSummary(snap *primary.Snapshot) {
	p := snap.Project
	if p == nil {
		return
	}
	w := a.out
	fmt.Fprintln(w, bold("📊 Project Summary"))
	fmt.Fprintf(w, "  Created: %s\n", cyan(orUnknown(p.Created)))
	fmt.Fprintf(w, "  Last Updated: %s\n", cyan(orUnknown(p.LastUpdated)))
	if p.GitStatus != nil {
		fmt.Fprintf(w, "  Git Stats: %dM, %dA, %dD\n", p.GitStatus.Modified, p.GitStatus.Added, p.GitStatus.Deleted)
	}
	fmt.Fprintln(w)
}

func (a *LoadAdapter) lastSave(snap *primary.Snapshot) {
	s := snap.LastSave
	if s == nil {
		return
	}
	w := a.out
	fmt.Fprintln(w, bold("🕘 Last Save"))
	fmt.Fprintf(w, "  %s on %s (%dM, %dA, %dD)\n", cyan(s.SavedAt), yellow(s.Branch), s.Modified, s.Added, s.Deleted)
	if len(s.Archived) > 0 {
		fmt.Fprintf(w, "  Archived: %s\n", strings.Join(s.Archived, ", "))
	}
	fmt.Fprintln(w)
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
