// Package shell runs external commands on behalf of the application.
package shell

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/example/projstate/internal/ports/secondary"
)

// CommandError describes a command that could not be run or exited non-zero.
type CommandError struct {
	Name   string
	Args   []string
	Err    error
	Stderr string
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s %s failed", e.Name, strings.Join(e.Args, " "))
	if e.Stderr != "" {
		msg = fmt.Sprintf("%s: %s", msg, strings.TrimSpace(e.Stderr))
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Runner implements secondary.CommandRunner with os/exec.
// Commands block until they exit or ctx is done.
type Runner struct{}

// NewRunner creates a new Runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes name with args in dir and returns stdout.
func (r *Runner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", &CommandError{Name: name, Args: args, Err: err, Stderr: stderr.String()}
	}
	return stdout.String(), nil
}

// Ensure Runner implements the interface
var _ secondary.CommandRunner = (*Runner)(nil)
