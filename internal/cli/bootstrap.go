// Package cli provides CLI commands for the projstate application.
package cli

import (
	gocontext "context"
	"io"
	"log/slog"

	"github.com/fatih/color"

	"github.com/example/projstate/internal/wire"
)

// Setup configures logging, color and dependency wiring for one invocation.
// Should be called once at CLI startup in PersistentPreRun.
func Setup(root string, verbose, noColor bool, stderr io.Writer) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if noColor {
		color.NoColor = true
	}

	wire.Configure(wire.Options{Root: root, Logger: logger})
}

// NewContext creates the context CLI commands run under.
func NewContext() gocontext.Context {
	return gocontext.Background()
}
