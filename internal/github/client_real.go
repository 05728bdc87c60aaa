package github

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"
)

// RealClient implements Client using the real GitHub API
type RealClient struct {
	client *github.Client
	owner  string
	repo   string
}

// NewRealClient creates a client for the repository behind remoteURL,
// authenticated with token. GitHub Enterprise hostnames are supported.
func NewRealClient(ctx context.Context, remoteURL, token string) (*RealClient, error) {
	repoInfo, err := ParseRemoteURL(remoteURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse remote URL: %w", err)
	}

	client, err := createClient(ctx, repoInfo.Hostname, token)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}

	return &RealClient{
		client: client,
		owner:  repoInfo.Owner,
		repo:   repoInfo.Repo,
	}, nil
}

// OwnerRepo returns the repository owner and name
func (c *RealClient) OwnerRepo() (string, string) {
	return c.owner, c.repo
}

// PullRequestForCommit returns the pull request associated with a commit,
// preferring a merged PR over open ones. Returns nil if the commit has no PR.
func (c *RealClient) PullRequestForCommit(ctx context.Context, sha string) (*PullRequestInfo, error) {
	prs, _, err := c.client.PullRequests.ListPullRequestsWithCommit(ctx, c.owner, c.repo, sha, &github.ListOptions{
		PerPage: 10,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pull requests for commit %s: %w", sha, err)
	}

	if len(prs) == 0 {
		return nil, nil
	}

	for _, pr := range prs {
		if pr.Merged != nil && *pr.Merged {
			return toPullRequestInfo(pr), nil
		}
		if pr.MergedAt != nil {
			return toPullRequestInfo(pr), nil
		}
	}

	return toPullRequestInfo(prs[0]), nil
}

// PullRequestForBranch returns the pull request whose head is the given branch
func (c *RealClient) PullRequestForBranch(ctx context.Context, branchName string) (*PullRequestInfo, error) {
	prs, _, err := c.client.PullRequests.List(ctx, c.owner, c.repo, &github.PullRequestListOptions{
		Head:  fmt.Sprintf("%s:%s", c.owner, branchName),
		State: "all",
		ListOptions: github.ListOptions{
			PerPage: 1,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pull requests: %w", err)
	}

	if len(prs) == 0 {
		return nil, nil
	}

	return toPullRequestInfo(prs[0]), nil
}

// createClient creates a GitHub client configured for the given hostname.
// Supports both github.com and GitHub Enterprise instances.
func createClient(ctx context.Context, hostname, token string) (*github.Client, error) {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	client := github.NewClient(tc)

	if hostname != "github.com" {
		// GitHub Enterprise API endpoints
		// REST API: https://hostname/api/v3/
		// Upload API: https://hostname/api/uploads/
		baseURL, err := url.Parse(fmt.Sprintf("https://%s/api/v3/", hostname))
		if err != nil {
			return nil, fmt.Errorf("failed to parse base URL for hostname %s: %w", hostname, err)
		}
		uploadURL, err := url.Parse(fmt.Sprintf("https://%s/api/uploads/", hostname))
		if err != nil {
			return nil, fmt.Errorf("failed to parse upload URL for hostname %s: %w", hostname, err)
		}

		client.BaseURL = baseURL
		client.UploadURL = uploadURL
	}

	return client, nil
}

// toPullRequestInfo converts a github.PullRequest to PullRequestInfo
func toPullRequestInfo(pr *github.PullRequest) *PullRequestInfo {
	if pr == nil {
		return nil
	}

	info := &PullRequestInfo{}

	if pr.Number != nil {
		info.Number = *pr.Number
	}
	if pr.HTMLURL != nil {
		info.HTMLURL = *pr.HTMLURL
	}
	if pr.Title != nil {
		info.Title = *pr.Title
	}
	if pr.State != nil {
		info.State = *pr.State
	}
	if pr.Merged != nil {
		info.Merged = *pr.Merged
	} else if pr.MergedAt != nil {
		info.Merged = true
	}
	if pr.Head != nil && pr.Head.Ref != nil {
		info.Head = *pr.Head.Ref
	}

	return info
}
