// Package wire provides dependency injection for the projstate application.
// It creates singleton services with lazy initialization.
package wire

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	cliadapter "github.com/example/projstate/internal/adapters/cli"
	"github.com/example/projstate/internal/adapters/filesystem"
	"github.com/example/projstate/internal/adapters/shell"
	"github.com/example/projstate/internal/adapters/sqlite"
	"github.com/example/projstate/internal/app"
	"github.com/example/projstate/internal/config"
	"github.com/example/projstate/internal/db"
	"github.com/example/projstate/internal/ports/secondary"
)

// ErrHistoryDisabled is returned by HistoryAdapter when the configuration turns history off.
var ErrHistoryDisabled = errors.New("save history is disabled in .projstate/config.yaml")

// Options select the project and ambient dependencies before first use.
type Options struct {
	Root   string // empty means the nearest .git ancestor of the working directory
	Logger *slog.Logger
	Now    func() time.Time
}

var (
	opts      Options
	cfg       *config.Config
	collector *app.CollectorService
	workspace secondary.WorkspaceAdapter
	logger    *slog.Logger
	initErr   error
	once      sync.Once

	database *sql.DB
)

// Configure sets the options used by the next initialization and discards
// any services built with earlier options.
func Configure(o Options) {
	if database != nil {
		database.Close()
		database = nil
	}
	opts = o
	once = sync.Once{}
}

// Config returns the resolved configuration.
func Config() (*config.Config, error) {
	once.Do(initServices)
	return cfg, initErr
}

// initServices resolves configuration and builds the shared adapters.
// This is called once via sync.Once.
func initServices() {
	logger = opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	root, err := resolveRoot(opts.Root)
	if err != nil {
		initErr = err
		return
	}

	cfg, err = config.LoadConfig(root)
	if err != nil {
		initErr = err
		return
	}
	logger.Debug("resolved project", "root", cfg.RootPath, "id", cfg.ProjectID)

	workspace = filesystem.NewWorkspaceAdapter(opts.Now)
	git := app.NewGitService(shell.NewRunner(), cfg.RootPath)
	collector = app.NewCollectorService(cfg, git, workspace, logger, opts.Now)
}

// resolveRoot uses an explicit root as given and otherwise searches upward
// from the working directory.
func resolveRoot(explicit string) (string, error) {
	if explicit != "" {
		return filepath.Abs(explicit)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return config.FindRoot(wd)
}

// historyRepository opens the history database. With create false a missing
// database yields nil, so read-only commands never create files.
func historyRepository(create bool) (secondary.SaveHistoryRepository, error) {
	if !cfg.HistoryEnabled() {
		return nil, nil
	}
	if database == nil {
		path := cfg.HistoryPath()
		if !create {
			if _, err := os.Stat(path); err != nil {
				return nil, nil
			}
		}
		conn, err := db.Open(path)
		if err != nil {
			return nil, err
		}
		database = conn
	}
	return sqlite.NewSaveHistoryRepository(database), nil
}

// Close releases the history database, if it was opened.
func Close() error {
	if database == nil {
		return nil
	}
	err := database.Close()
	database = nil
	return err
}

// SaveAdapter returns a SaveAdapter writing to out.
// A history database that cannot be opened is logged and skipped.
func SaveAdapter(out io.Writer) (*cliadapter.SaveAdapter, error) {
	if _, err := Config(); err != nil {
		return nil, err
	}
	history, err := historyRepository(true)
	if err != nil {
		logger.Warn("save history unavailable", "path", cfg.HistoryPath(), "error", err)
		history = nil
	}
	executor := app.NewEffectExecutor(workspace, logger)
	service := app.NewSaveService(cfg, collector, workspace, executor, history, logger, opts.Now)
	return cliadapter.NewSaveAdapter(service, out), nil
}

// LoadAdapter returns a LoadAdapter writing to out.
func LoadAdapter(out io.Writer) (*cliadapter.LoadAdapter, error) {
	if _, err := Config(); err != nil {
		return nil, err
	}
	history, err := historyRepository(false)
	if err != nil {
		logger.Warn("save history unavailable", "path", cfg.HistoryPath(), "error", err)
		history = nil
	}
	service := app.NewLoadService(cfg, collector, workspace, history, logger)
	return cliadapter.NewLoadAdapter(service, out), nil
}

// HistoryAdapter returns a HistoryAdapter writing to out.
func HistoryAdapter(out io.Writer) (*cliadapter.HistoryAdapter, error) {
	if _, err := Config(); err != nil {
		return nil, err
	}
	if !cfg.HistoryEnabled() {
		return nil, ErrHistoryDisabled
	}
	history, err := historyRepository(true)
	if err != nil {
		return nil, fmt.Errorf("failed to open save history: %w", err)
	}
	return cliadapter.NewHistoryAdapter(app.NewHistoryService(cfg, history), out), nil
}
