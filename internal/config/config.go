package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults for a repository without a config file.
const (
	DefaultSessionCeiling = 300
	DefaultJSONCeiling    = 400
	DefaultProjectType    = "generic"
	DefaultCommitLimit    = 5
)

// Relative locations of the tracked files and their archive directories.
const (
	DocsDir            = "docs/project"
	SessionArchiveDir  = "session-logs"
	TodoArchiveDir     = "todo-logs"
	ProjectsArchiveDir = "projects-logs"
	StateDir           = ".projstate"
	ConfigFile         = "config.yaml"
	HistoryFile        = "history.db"
)

// Config is passed explicitly into every component.
type Config struct {
	SessionCeiling int    `yaml:"session_ceiling"`
	JSONCeiling    int    `yaml:"json_ceiling"`
	RootPath       string `yaml:"-"`
	ProjectID      string `yaml:"project_id,omitempty"`
	ProjectName    string `yaml:"project_name,omitempty"`
	ProjectType    string `yaml:"project_type,omitempty"`
	CommitLimit    int    `yaml:"commit_limit"`
	History        *bool  `yaml:"history,omitempty"` // nil means enabled
}

// Default returns the configuration for a repository rooted at root.
func Default(root string) *Config {
	name := filepath.Base(root)
	return &Config{
		SessionCeiling: DefaultSessionCeiling,
		JSONCeiling:    DefaultJSONCeiling,
		RootPath:       root,
		ProjectID:      Slug(name),
		ProjectName:    name,
		ProjectType:    DefaultProjectType,
		CommitLimit:    DefaultCommitLimit,
	}
}

// LoadConfig resolves the configuration for root.
// A missing .projstate/config.yaml yields the defaults; a broken one is an error.
func LoadConfig(root string) (*Config, error) {
	cfg := Default(root)

	path := filepath.Join(root, StateDir, ConfigFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.apply(file)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// apply overlays the non-zero fields of file onto c.
func (c *Config) apply(file Config) {
	if file.SessionCeiling != 0 {
		c.SessionCeiling = file.SessionCeiling
	}
	if file.JSONCeiling != 0 {
		c.JSONCeiling = file.JSONCeiling
	}
	if file.ProjectName != "" {
		c.ProjectName = file.ProjectName
		c.ProjectID = Slug(file.ProjectName)
	}
	if file.ProjectID != "" {
		c.ProjectID = file.ProjectID
	}
	if file.ProjectType != "" {
		c.ProjectType = file.ProjectType
	}
	if file.CommitLimit != 0 {
		c.CommitLimit = file.CommitLimit
	}
	if file.History != nil {
		c.History = file.History
	}
}

// Validate rejects configurations that cannot drive a save.
func (c *Config) Validate() error {
	if c.SessionCeiling < 1 {
		return fmt.Errorf("session_ceiling must be positive, got %d", c.SessionCeiling)
	}
	if c.JSONCeiling < 1 {
		return fmt.Errorf("json_ceiling must be positive, got %d", c.JSONCeiling)
	}
	if c.CommitLimit < 1 {
		return fmt.Errorf("commit_limit must be positive, got %d", c.CommitLimit)
	}
	if c.ProjectID == "" {
		return errors.New("project_id must not be empty")
	}
	return nil
}

// HistoryEnabled reports whether saves are recorded in the history database.
func (c *Config) HistoryEnabled() bool {
	return c.History == nil || *c.History
}

// DocsPath returns the directory holding the tracked files.
func (c *Config) DocsPath() string {
	return filepath.Join(c.RootPath, filepath.FromSlash(DocsDir))
}

// HistoryPath returns the history database location.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.RootPath, StateDir, HistoryFile)
}

// Marshal renders the resolved configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	view := struct {
		Root           string `yaml:"root"`
		ProjectID      string `yaml:"project_id"`
		ProjectName    string `yaml:"project_name"`
		ProjectType    string `yaml:"project_type"`
		SessionCeiling int    `yaml:"session_ceiling"`
		JSONCeiling    int    `yaml:"json_ceiling"`
		CommitLimit    int    `yaml:"commit_limit"`
		History        bool   `yaml:"history"`
	}{
		Root:           c.RootPath,
		ProjectID:      c.ProjectID,
		ProjectName:    c.ProjectName,
		ProjectType:    c.ProjectType,
		SessionCeiling: c.SessionCeiling,
		JSONCeiling:    c.JSONCeiling,
		CommitLimit:    c.CommitLimit,
		History:        c.HistoryEnabled(),
	}
	data, err := yaml.Marshal(view)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slug derives a registry id from a project name: duckmath.github.io-main
// becomes duckmath-github-io-main.
func Slug(name string) string {
	return strings.Trim(nonAlnum.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

// FindRoot walks up from dir to the nearest directory containing .git.
// If none is found, dir itself is returned.
func FindRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	for cur := abs; ; {
		if _, err := os.Stat(filepath.Join(cur, ".git")); err == nil {
			return cur, nil
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return abs, nil
		}
		cur = parent
	}
}
