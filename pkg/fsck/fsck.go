// Package fsck shells out to git's own integrity checker. objlink never
// re-verifies object contents itself; it only consumes the pass/fail result
// as a gate around mutation.
package fsck

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/arthur-debert/objlink/pkg/logging"
)

// DefaultArgs are the arguments passed to git fsck when the config does
// not override them.
var DefaultArgs = []string{"--full"}

// Result is the outcome of checking one repository.
type Result struct {
	// Repo is the repository root that was checked
	Repo string

	// Success is true when git fsck exited zero
	Success bool

	// Code is the process exit code, nil when the process failed to start
	Code *int

	// Stderr is the trimmed diagnostic output, empty on success
	Stderr string
}

// Summary aggregates the results of checking several repositories.
type Summary struct {
	Results []Result
}

// Total returns the number of repositories checked.
func (s *Summary) Total() int {
	return len(s.Results)
}

// Failed returns the number of repositories that failed the check.
func (s *Summary) Failed() int {
	failed := 0
	for _, r := range s.Results {
		if !r.Success {
			failed++
		}
	}
	return failed
}

// AllSuccess reports whether every repository passed.
func (s *Summary) AllSuccess() bool {
	return s.Failed() == 0
}

// Checker runs git fsck against repositories.
type Checker struct {
	args []string
}

// New creates a Checker running git fsck with the given arguments, or
// DefaultArgs when none are given.
func New(args []string) *Checker {
	if len(args) == 0 {
		args = DefaultArgs
	}
	return &Checker{args: args}
}

// Run checks a single repository.
func (c *Checker) Run(repo string) Result {
	logger := logging.GetLogger("fsck")

	args := append([]string{"-C", repo, "fsck"}, c.args...)
	cmd := exec.Command("git", args...)

	var stderr strings.Builder
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		logger.Debug().Str("repo", repo).Msg("fsck passed")
		code := 0
		return Result{Repo: repo, Success: true, Code: &code}
	}

	result := Result{
		Repo:   repo,
		Stderr: strings.TrimSpace(stderr.String()),
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		result.Code = &code
	} else {
		// The process never ran (git missing, permission denied, ...)
		result.Stderr = err.Error()
	}

	logger.Warn().Str("repo", repo).Str("stderr", result.Stderr).Msg("fsck failed")
	return result
}

// RunAll checks every repository and aggregates the results.
func (c *Checker) RunAll(repos []string) *Summary {
	summary := &Summary{}
	for _, repo := range repos {
		summary.Results = append(summary.Results, c.Run(repo))
	}
	return summary
}
