// Package save contains pure business logic for planning a save.
package save

import (
	"errors"
	"fmt"
	"time"

	"github.com/example/projstate/internal/core/effects"
	"github.com/example/projstate/internal/core/record"
	"github.com/example/projstate/internal/core/registry"
	"github.com/example/projstate/internal/core/rotation"
	"github.com/example/projstate/internal/core/session"
	"github.com/example/projstate/internal/core/todo"
	"github.com/example/projstate/internal/models"
)

const (
	dirMode  = 0755
	fileMode = 0644
)

// TrackedFile is the pre-fetched state of one tracked file.
type TrackedFile struct {
	Path       string
	ArchiveDir string
	Content    []byte
	Exists     bool
}

// PlanInput contains pre-fetched data for save plan generation.
// All values must be gathered by the caller - no I/O in the planner.
type PlanInput struct {
	ProjectID      string
	ProjectName    string
	ProjectType    string
	ProjectRoot    string
	DocsDir        string
	SessionCeiling int
	JSONCeiling    int

	State models.ProjectState
	Now   time.Time

	Session  TrackedFile
	Todo     TrackedFile
	Projects TrackedFile
}

// FileReport summarizes what the plan does to one tracked file.
type FileReport struct {
	BaseName    string
	LinesBefore int
	LinesAfter  int
	Ceiling     int
	Rotated     bool
}

// Plan is the ordered list of effects for one save plus what to tell the user.
// Effects holds the directory mkdirs followed by one CompositeEffect per tracked file.
type Plan struct {
	Effects  []effects.Effect
	Warnings []string
	Session  FileReport
	Todo     FileReport
	Projects FileReport
}

// GeneratePlan builds the effects that rotate and rewrite all three tracked files.
func GeneratePlan(in PlanInput) (*Plan, error) {
	plan := &Plan{}
	for _, dir := range []string{in.DocsDir, in.Session.ArchiveDir, in.Todo.ArchiveDir, in.Projects.ArchiveDir} {
		plan.Effects = append(plan.Effects, effects.FileEffect{Operation: effects.FileMkdir, Path: dir, Mode: dirMode})
	}

	plan.Session = plan.planSession(in)

	var err error
	plan.Todo, err = plan.planJSON(in.Todo, todo.FileName, in.JSONCeiling, func(rotated bool) (record.Record, error) {
		return todo.Base(in.Todo.Content, in.Todo.Exists, rotated)
	}, todo.Default, func(base record.Record) (record.Record, error) {
		return todo.Merge(base, todo.MergeInput{
			ProjectName: in.ProjectName,
			ProjectType: in.ProjectType,
			Branch:      in.State.Branch,
			Now:         in.Now,
		})
	})
	if err != nil {
		return nil, err
	}

	plan.Projects, err = plan.planJSON(in.Projects, registry.FileName, in.JSONCeiling, func(rotated bool) (record.Record, error) {
		return registry.Base(in.Projects.Content, in.Projects.Exists, rotated, in.ProjectRoot)
	}, func() record.Record {
		return registry.Default(in.ProjectRoot)
	}, func(base record.Record) (record.Record, error) {
		return registry.Merge(base, registry.MergeInput{
			ProjectID:   in.ProjectID,
			ProjectName: in.ProjectName,
			ProjectType: in.ProjectType,
			Branch:      in.State.Branch,
			Counts:      in.State.GitStatus.Counts(),
			Now:         in.Now,
		})
	})
	if err != nil {
		return nil, err
	}

	return plan, nil
}

func (p *Plan) planSession(in PlanInput) FileReport {
	f := in.Session
	report := FileReport{BaseName: session.FileName, Ceiling: in.SessionCeiling}
	if f.Exists {
		report.LinesBefore = rotation.CountLines(f.Content, false)
	}
	report.Rotated = f.Exists && rotation.ShouldRotate(report.LinesBefore, in.SessionCeiling)
	var preserve []effects.Effect
	if report.Rotated {
		preserve = append(preserve, archiveEffect(f, session.FileName, report.LinesBefore, effects.ReasonCeiling))
	}

	content := session.Merge(session.MergeInput{
		ProjectName: in.ProjectName,
		State:       in.State,
		Prior:       string(f.Content),
		HasPrior:    f.Exists,
		Rotated:     report.Rotated,
		Now:         in.Now,
	})
	report.LinesAfter = rotation.CountLines([]byte(content), false)
	p.Effects = append(p.Effects, fileUnit(preserve, writeEffect(f.Path, []byte(content))))
	return report
}

// planJSON runs the shared rotate, load, recover and merge sequence for a JSON record.
func (p *Plan) planJSON(
	f TrackedFile,
	baseName string,
	ceiling int,
	base func(rotated bool) (record.Record, error),
	fallback func() record.Record,
	merge func(record.Record) (record.Record, error),
) (FileReport, error) {
	report := FileReport{BaseName: baseName, Ceiling: ceiling}
	if f.Exists {
		report.LinesBefore = rotation.CountLines(f.Content, true)
	}
	report.Rotated = f.Exists && rotation.ShouldRotate(report.LinesBefore, ceiling)
	var preserve []effects.Effect
	if report.Rotated {
		preserve = append(preserve, archiveEffect(f, baseName, report.LinesBefore, effects.ReasonCeiling))
	}

	start, err := base(report.Rotated)
	if errors.Is(err, record.ErrMalformedInput) {
		p.Warnings = append(p.Warnings, fmt.Sprintf("Could not parse %s (%v); starting from defaults", baseName, err))
		preserve = append(preserve,
			effects.LogEffect{Level: "WARN", Message: "replacing unparseable tracked file", Fields: map[string]any{"file": baseName, "error": err.Error()}},
			archiveEffect(f, baseName, report.LinesBefore, effects.ReasonMalformed),
		)
		start, err = fallback(), nil
	}
	if err != nil {
		return report, fmt.Errorf("failed to load %s: %w", baseName, err)
	}

	merged, err := merge(start)
	if err != nil {
		return report, fmt.Errorf("failed to merge %s: %w", baseName, err)
	}
	content, err := merged.Format()
	if err != nil {
		return report, err
	}
	report.LinesAfter = rotation.CountLines(content, true)
	p.Effects = append(p.Effects, fileUnit(preserve, writeEffect(f.Path, content)))
	return report, nil
}

// fileUnit groups the steps that preserve a tracked file with the write that
// replaces it. The write runs only after every preservation step succeeds.
// A file with nothing to preserve gets a NoEffect in place of the archive.
func fileUnit(preserve []effects.Effect, write effects.FileEffect) effects.CompositeEffect {
	if len(preserve) == 0 {
		preserve = []effects.Effect{effects.NoEffect{}}
	}
	return effects.CompositeEffect{Effects: append(preserve, write)}
}

func archiveEffect(f TrackedFile, baseName string, lines int, reason string) effects.ArchiveEffect {
	return effects.ArchiveEffect{
		SourcePath: f.Path,
		ArchiveDir: f.ArchiveDir,
		BaseName:   baseName,
		Lines:      lines,
		Reason:     reason,
	}
}

func writeEffect(path string, content []byte) effects.FileEffect {
	return effects.FileEffect{Operation: effects.FileWrite, Path: path, Content: content, Mode: fileMode}
}
