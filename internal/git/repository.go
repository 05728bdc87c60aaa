package git

import (
	"fmt"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"

	fragreferrors "fragref.dev/fragref/internal/errors"
)

// Repository wraps a go-git repository for read-side queries,
// alongside an exec runner for mutating operations.
type Repository struct {
	*gogit.Repository
	runner *CommandRunner
	path   string
}

// OpenRepository opens the git repository containing path
func OpenRepository(path string) (*Repository, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := gogit.PlainOpenWithOptions(absPath, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", fragreferrors.ErrNotARepository, absPath)
	}

	// Resolve the true root so relative paths in git output line up
	root := absPath
	if wt, err := repo.Worktree(); err == nil {
		root = wt.Filesystem.Root()
	}

	return &Repository{
		Repository: repo,
		runner:     NewCommandRunner(root),
		path:       root,
	}, nil
}

// Root returns the root directory of the repository
func (r *Repository) Root() string {
	return r.path
}

// Runner returns the exec command runner rooted at the repository
func (r *Repository) Runner() *CommandRunner {
	return r.runner
}

// CurrentBranch returns the current branch name
func (r *Repository) CurrentBranch() (string, error) {
	head, err := r.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}

	if !head.Name().IsBranch() {
		return "", fragreferrors.ErrNotOnBranch
	}

	return head.Name().Short(), nil
}

// RemoteURL returns the first URL of the named remote
func (r *Repository) RemoteURL(name string) (string, error) {
	remote, err := r.Remote(name)
	if err != nil {
		return "", fmt.Errorf("failed to get remote %s: %w", name, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %s has no URL", name)
	}

	return urls[0], nil
}
