// Package app contains the application layer - service implementations and effect execution.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/example/projstate/internal/core/effects"
	"github.com/example/projstate/internal/ports/secondary"
)

// EffectExecutor interprets and executes effects.
// This is the "Imperative Shell" - the only place save I/O happens.
type EffectExecutor interface {
	Execute(ctx context.Context, effs []effects.Effect) (*effects.Outcome, error)
}

// DefaultEffectExecutor implements EffectExecutor against a workspace adapter.
type DefaultEffectExecutor struct {
	workspace secondary.WorkspaceAdapter
	logger    *slog.Logger
}

// NewEffectExecutor creates a new DefaultEffectExecutor.
func NewEffectExecutor(workspace secondary.WorkspaceAdapter, logger *slog.Logger) *DefaultEffectExecutor {
	return &DefaultEffectExecutor{workspace: workspace, logger: logger}
}

// Execute processes a slice of effects in sequence, stopping at the first failure.
// The returned outcome covers every effect that ran, even on error.
func (e *DefaultEffectExecutor) Execute(ctx context.Context, effs []effects.Effect) (*effects.Outcome, error) {
	outcome := &effects.Outcome{}
	err := e.execute(ctx, effs, outcome)
	return outcome, err
}

func (e *DefaultEffectExecutor) execute(ctx context.Context, effs []effects.Effect, outcome *effects.Outcome) error {
	for _, eff := range effs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.executeOne(ctx, eff, outcome); err != nil {
			return fmt.Errorf("failed to execute %s effect: %w", eff.EffectType(), err)
		}
	}
	return nil
}

func (e *DefaultEffectExecutor) executeOne(ctx context.Context, eff effects.Effect, outcome *effects.Outcome) error {
	switch typed := eff.(type) {
	case effects.FileEffect:
		return e.executeFile(ctx, typed)
	case effects.ArchiveEffect:
		return e.executeArchive(ctx, typed, outcome)
	case effects.CompositeEffect:
		return e.execute(ctx, typed.Effects, outcome)
	case effects.NoEffect:
		return nil
	case effects.LogEffect:
		e.executeLog(ctx, typed)
		return nil
	default:
		return fmt.Errorf("unknown effect type: %T", eff)
	}
}

func (e *DefaultEffectExecutor) executeFile(ctx context.Context, eff effects.FileEffect) error {
	switch eff.Operation {
	case effects.FileMkdir:
		return e.workspace.CreateDirectory(ctx, eff.Path, eff.Mode)
	case effects.FileWrite:
		e.logger.Debug("writing tracked file", "path", eff.Path, "bytes", len(eff.Content))
		return e.workspace.WriteFile(ctx, eff.Path, eff.Content, eff.Mode)
	default:
		return fmt.Errorf("unknown file operation: %s", eff.Operation)
	}
}

func (e *DefaultEffectExecutor) executeArchive(ctx context.Context, eff effects.ArchiveEffect, outcome *effects.Outcome) error {
	name, err := e.workspace.ArchiveFile(ctx, eff.SourcePath, eff.ArchiveDir, eff.BaseName)
	if err != nil {
		return fmt.Errorf("failed to archive %s: %w", eff.BaseName, err)
	}
	if name == "" {
		return nil
	}
	e.logger.Info("archived tracked file", "file", eff.BaseName, "archive", name, "lines", eff.Lines, "reason", eff.Reason)
	outcome.Archived = append(outcome.Archived, effects.Archived{
		BaseName:    eff.BaseName,
		ArchiveName: name,
		Lines:       eff.Lines,
		Reason:      eff.Reason,
	})
	return nil
}

func (e *DefaultEffectExecutor) executeLog(ctx context.Context, eff effects.LogEffect) {
	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(eff.Level)); err != nil {
		level = slog.LevelInfo
	}
	attrs := make([]any, 0, len(eff.Fields)*2)
	for k, v := range eff.Fields {
		attrs = append(attrs, k, v)
	}
	e.logger.Log(ctx, level, eff.Message, attrs...)
}

// Ensure DefaultEffectExecutor implements the interface
var _ EffectExecutor = (*DefaultEffectExecutor)(nil)
