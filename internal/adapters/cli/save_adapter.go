package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/projstate/internal/core/record"
	"github.com/example/projstate/internal/models"
	"github.com/example/projstate/internal/ports/primary"
)

// changedFilesShown is how many paths per category the save report lists.
const changedFilesShown = 3

// SaveAdapter runs a save and prints its confirmation report.
type SaveAdapter struct {
	service primary.SaveService
	out     io.Writer
}

// NewSaveAdapter creates a new SaveAdapter with the given service.
func NewSaveAdapter(service primary.SaveService, out io.Writer) *SaveAdapter {
	return &SaveAdapter{
		service: service,
		out:     out,
	}
}

// Save snapshots project state and reports what was written.
func (a *SaveAdapter) Save(ctx context.Context) error {
	result, err := a.service.Save(ctx)
	if err != nil {
		return err
	}
	a.Report(result)
	return nil
}

// Report prints the confirmation for a completed save.
func (a *SaveAdapter) Report(result *primary.SaveResult) {
	w := a.out
	state := result.State

	fmt.Fprintf(w, "%s\n\n", header("💾 Saving ", result.ProjectName, " state..."))

	for _, arc := range result.Archived {
		if arc.Malformed {
			fmt.Fprintln(w, yellow(fmt.Sprintf("📦 Preserved unreadable %s as %s", arc.BaseName, arc.ArchiveName)))
			continue
		}
		fmt.Fprintln(w, yellow(fmt.Sprintf("📦 Archived %s to %s (%d lines)", arc.BaseName, arc.ArchiveName, arc.Lines)))
	}
	for _, warning := range result.Warnings {
		fmt.Fprintln(w, yellow("⚠️  "+warning))
	}
	if len(result.Archived) > 0 || len(result.Warnings) > 0 {
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, rule())
	fmt.Fprintln(w, green(bold("✅ Save Complete")))
	fmt.Fprintf(w, "%s\n\n", rule())

	fmt.Fprintf(w, "%s %s (%s)\n", bold("📁 Project:"), cyan(result.ProjectName), yellow(result.ProjectType))
	fmt.Fprintf(w, "%s Updated with %d file changes\n", bold("📝 Session Context:"), state.GitStatus.Total)
	fmt.Fprintf(w, "%s Tasks and metadata updated\n", bold("✔️  Todo:"))
	fmt.Fprintf(w, "%s Project status synchronized\n\n", bold("📊 Projects:"))

	fmt.Fprintf(w, "%s %s\n", bold("🌿 Branch:"), yellow(state.Branch))
	fmt.Fprintf(w, "%s %s\n\n", bold("⏰ Time:"), record.LocaleTime(state.Timestamp))

	fmt.Fprintln(w, bold("📏 File Sizes:"))
	for _, f := range []struct {
		label   string
		summary primary.FileSummary
	}{
		{"Session", result.Session},
		{"Todo", result.Todo},
		{"Projects", result.Projects},
	} {
		fmt.Fprintf(w, "  %s: %d/%d lines\n", f.label, f.summary.Lines, f.summary.Ceiling)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, bold("📊 Project Configuration:"))
	fmt.Fprintf(w, "  Features detected: %s\n\n", cyan(models.EnabledCount(state.Features)))

	if !state.GitStatus.IsClean() {
		fmt.Fprintln(w, bold("📄 Changed Files:"))
		for _, group := range []struct {
			label string
			paths []string
		}{
			{"Modified", state.GitStatus.Modified},
			{"Added", state.GitStatus.Added},
			{"Deleted", state.GitStatus.Deleted},
		} {
			if len(group.paths) > 0 {
				fmt.Fprintf(w, "  %s: %s\n", group.label, firstN(group.paths, changedFilesShown))
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, rule())
	if result.HistoryID != "" {
		fmt.Fprintln(w, dim("Recorded save ", result.HistoryID))
	}
}
