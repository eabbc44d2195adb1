// Package git provides access to git operations via shell commands.
package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/fwojciec/diffinsight"
)

// Compile-time interface verification.
var _ diffinsight.DiffSource = (*Runner)(nil)

// Runner executes git commands via shell.
type Runner struct {
	binary string
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithBinary sets the git executable. Defaults to "git" on PATH.
func WithBinary(path string) RunnerOption {
	return func(r *Runner) {
		r.binary = path
	}
}

// NewRunner creates a new git runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{binary: "git"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Diff returns the output of "git diff" for the repository at repoPath.
// Extra args are passed through, so "--cached" or a revision range work as
// they do on the command line. Colour is always disabled.
func (r *Runner) Diff(ctx context.Context, repoPath string, args ...string) (string, error) {
	full := append([]string{"-C", repoPath, "diff", "--no-color", "--no-ext-diff"}, args...)
	return r.run(ctx, "diff", full)
}

func (r *Runner) run(ctx context.Context, name string, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, r.binary, args...)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("git %s failed: %s", name, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("git %s failed: %w", name, err)
	}
	return string(output), nil
}
