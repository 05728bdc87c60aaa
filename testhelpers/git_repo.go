// Package testhelpers provides testing utilities for fragref: a temp git
// repository helper with a local bare origin, and a mock GitHub client.
package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// GitRepo represents a git repository created for a test
type GitRepo struct {
	Dir string
}

// NewGitRepo initializes a new git repository in the specified directory
func NewGitRepo(dir string) (*GitRepo, error) {
	cmd := exec.Command("git", "-c", "init.defaultBranch=main", "-c", "core.autocrlf=false", "-c", "core.fileMode=false", "init", dir, "-b", "main")
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to init repo: %w", err)
	}

	repo := &GitRepo{Dir: dir}

	// Configure git user (required for commits)
	if err := repo.RunGitCommand("config", "user.name", "Test User"); err != nil {
		return nil, err
	}
	if err := repo.RunGitCommand("config", "user.email", "test@example.com"); err != nil {
		return nil, err
	}

	return repo, nil
}

// RunGitCommand executes a git command in the repository directory
func (r *GitRepo) RunGitCommand(args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if os.Getenv("DEBUG") == "" {
		cmd.Stdout = nil
		cmd.Stderr = nil
	}
	return cmd.Run()
}

// RunGitCommandAndGetOutput executes a git command and returns trimmed output
func (r *GitRepo) RunGitCommandAndGetOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git command failed: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// WriteFile writes a file relative to the repository root, creating parent
// directories as needed
func (r *GitRepo) WriteFile(relPath, content string) error {
	absPath := filepath.Join(r.Dir, relPath)
	if err := os.MkdirAll(filepath.Dir(absPath), 0750); err != nil {
		return err
	}
	return os.WriteFile(absPath, []byte(content), 0644)
}

// ReadFile reads a file relative to the repository root
func (r *GitRepo) ReadFile(relPath string) (string, error) {
	data, err := os.ReadFile(filepath.Join(r.Dir, relPath))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// CommitAll stages everything and commits with the given message
func (r *GitRepo) CommitAll(message string) error {
	if err := r.RunGitCommand("add", "-A"); err != nil {
		return fmt.Errorf("failed to stage: %w", err)
	}
	if err := r.RunGitCommand("commit", "-m", message); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// AddBareOrigin creates a bare repository at barePath, registers it as the
// "origin" remote, and pushes main so push tests have a real remote to hit.
func (r *GitRepo) AddBareOrigin(barePath string) error {
	cmd := exec.Command("git", "init", "--bare", barePath, "-b", "main")
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to init bare repo: %w", err)
	}

	if err := r.RunGitCommand("remote", "add", "origin", barePath); err != nil {
		return fmt.Errorf("failed to add origin: %w", err)
	}
	if err := r.RunGitCommand("push", "origin", "main"); err != nil {
		return fmt.Errorf("failed to push to origin: %w", err)
	}
	return nil
}

// HeadMessage returns the subject line of the HEAD commit
func (r *GitRepo) HeadMessage() (string, error) {
	return r.RunGitCommandAndGetOutput("log", "-1", "--format=%s")
}

// HeadAuthor returns "Name <email>" for the HEAD commit author
func (r *GitRepo) HeadAuthor() (string, error) {
	return r.RunGitCommandAndGetOutput("log", "-1", "--format=%an <%ae>")
}

// CommitCount returns the number of commits on the current branch
func (r *GitRepo) CommitCount() (int, error) {
	out, err := r.RunGitCommandAndGetOutput("rev-list", "--count", "HEAD")
	if err != nil {
		return 0, err
	}
	var n int
	_, err = fmt.Sscanf(out, "%d", &n)
	return n, err
}
