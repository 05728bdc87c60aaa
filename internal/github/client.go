// Package github provides a client for interacting with the GitHub API.
package github

import (
	"context"
)

// PullRequestInfo contains information about a pull request.
// This is a simplified struct to avoid coupling to the go-github library.
type PullRequestInfo struct {
	Number  int
	HTMLURL string
	Title   string
	State   string
	Merged  bool
	Head    string
}

// Client is an interface for the GitHub API interactions fragref needs
type Client interface {
	// PullRequestForCommit returns the pull request associated with a commit,
	// preferring a merged PR. Returns nil if the commit has no PR.
	PullRequestForCommit(ctx context.Context, sha string) (*PullRequestInfo, error)

	// PullRequestForBranch returns the pull request whose head is the given
	// branch. Returns nil if no PR exists for the branch.
	PullRequestForBranch(ctx context.Context, branchName string) (*PullRequestInfo, error)

	// OwnerRepo returns the repository owner and name
	OwnerRepo() (owner, repo string)
}
