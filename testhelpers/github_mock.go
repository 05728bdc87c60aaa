package testhelpers

import (
	"context"

	"fragref.dev/fragref/internal/github"
)

// MockGitHubClient implements github.Client with canned responses
type MockGitHubClient struct {
	// PRsByCommit maps commit SHAs to pull requests
	PRsByCommit map[string]*github.PullRequestInfo

	// PRsByBranch maps branch names to pull requests
	PRsByBranch map[string]*github.PullRequestInfo

	// Err is returned by every lookup when set
	Err error

	Owner string
	Repo  string
}

// NewMockGitHubClient creates an empty mock client
func NewMockGitHubClient() *MockGitHubClient {
	return &MockGitHubClient{
		PRsByCommit: make(map[string]*github.PullRequestInfo),
		PRsByBranch: make(map[string]*github.PullRequestInfo),
		Owner:       "testowner",
		Repo:        "testrepo",
	}
}

// PullRequestForCommit returns the canned PR for a commit, or nil
func (m *MockGitHubClient) PullRequestForCommit(_ context.Context, sha string) (*github.PullRequestInfo, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.PRsByCommit[sha], nil
}

// PullRequestForBranch returns the canned PR for a branch, or nil
func (m *MockGitHubClient) PullRequestForBranch(_ context.Context, branchName string) (*github.PullRequestInfo, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.PRsByBranch[branchName], nil
}

// OwnerRepo returns the mock repository owner and name
func (m *MockGitHubClient) OwnerRepo() (string, string) {
	return m.Owner, m.Repo
}
