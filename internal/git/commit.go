package git

import (
	"context"
	"fmt"
	"strings"
)

// Identity is a commit author/committer identity
type Identity struct {
	Name  string
	Email string
}

// Env returns the git author and committer environment for this identity
func (id Identity) Env() []string {
	return []string{
		"GIT_AUTHOR_NAME=" + id.Name,
		"GIT_AUTHOR_EMAIL=" + id.Email,
		"GIT_COMMITTER_NAME=" + id.Name,
		"GIT_COMMITTER_EMAIL=" + id.Email,
	}
}

// CommitAs creates a commit with the given message, attributed to the given
// identity for both author and committer regardless of local git config.
func (r *Repository) CommitAs(ctx context.Context, message string, id Identity) error {
	_, err := r.runner.RunWithEnv(ctx, id.Env(), "commit", "-m", message)
	if err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Push pushes the given branch to the named remote
func (r *Repository) Push(ctx context.Context, remote, branch string) error {
	_, err := r.runner.Run(ctx, "push", remote, branch)
	if err != nil {
		return fmt.Errorf("failed to push %s to %s: %w", branch, remote, err)
	}
	return nil
}

// AddedCommitSHA returns the SHA of the commit that introduced path,
// or an empty string if the file is not yet committed.
func (r *Repository) AddedCommitSHA(ctx context.Context, path string) (string, error) {
	output, err := r.runner.Run(ctx, "log", "--diff-filter=A", "--format=%H", "--", path)
	if err != nil {
		return "", fmt.Errorf("failed to find introducing commit for %s: %w", path, err)
	}
	if output == "" {
		return "", nil
	}
	// Oldest add wins if the file was re-added
	lines := strings.Split(output, "\n")
	return lines[len(lines)-1], nil
}
