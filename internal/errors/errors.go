// Package errors provides sentinel errors and custom error types for the fragref application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrNotARepository indicates that the working directory is not inside a git repository
	ErrNotARepository = errors.New("not a git repository")

	// ErrNotOnBranch indicates that HEAD is not on a branch
	ErrNotOnBranch = errors.New("not on a branch")

	// ErrNoChangelogDir indicates that the changelog directory does not exist
	ErrNoChangelogDir = errors.New("changelog directory not found")

	// ErrUnresolvedFragments indicates that one or more fragments still carry placeholders
	ErrUnresolvedFragments = errors.New("unresolved fragment references")

	// ErrNoPullRequest indicates that no pull request could be found for a fragment
	ErrNoPullRequest = errors.New("no pull request found")
)

// UnresolvedFragmentsError reports fragments whose PR references could not be resolved
type UnresolvedFragmentsError struct {
	Paths []string
}

func (e *UnresolvedFragmentsError) Error() string {
	return fmt.Sprintf("%d fragment(s) with unresolved PR references", len(e.Paths))
}

// Is returns true if the target error is ErrUnresolvedFragments
func (e *UnresolvedFragmentsError) Is(target error) bool {
	return target == ErrUnresolvedFragments
}

// NewUnresolvedFragmentsError creates a new UnresolvedFragmentsError
func NewUnresolvedFragmentsError(paths []string) *UnresolvedFragmentsError {
	return &UnresolvedFragmentsError{Paths: paths}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}
