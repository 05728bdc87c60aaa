// Package resolver rewrites placeholder PR references in change fragments,
// using git history to find the commit that introduced each fragment and the
// GitHub API to map that commit to its pull request.
package resolver

import (
	"context"
	"fmt"

	"fragref.dev/fragref/internal/fragment"
	"fragref.dev/fragref/internal/git"
	"fragref.dev/fragref/internal/github"
	"fragref.dev/fragref/internal/output"
)

// Resolution records one rewritten fragment
type Resolution struct {
	Path     string
	PRNumber int
	Refs     int
}

// Result is the outcome of a resolve pass
type Result struct {
	Resolved   []Resolution
	Unresolved []string
}

// Resolver rewrites PR references in change fragments
type Resolver struct {
	repo    *git.Repository
	scanner *fragment.Scanner
	client  github.Client
	splog   *output.Splog
}

// New creates a Resolver
func New(repo *git.Repository, scanner *fragment.Scanner, client github.Client, splog *output.Splog) *Resolver {
	return &Resolver{
		repo:    repo,
		scanner: scanner,
		client:  client,
		splog:   splog,
	}
}

// Resolve rewrites every resolvable placeholder reference in place.
// Fragments whose pull request cannot be determined are reported in
// Result.Unresolved and left untouched; that is not a fatal error,
// the next run retries them.
func (r *Resolver) Resolve(ctx context.Context) (*Result, error) {
	fragments, err := r.scanner.Unresolved()
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, frag := range fragments {
		pr, err := r.lookupPullRequest(ctx, frag.Path)
		if err != nil {
			return nil, err
		}
		if pr == nil {
			r.splog.Warn("no pull request found for %s, leaving placeholder", frag.Path)
			result.Unresolved = append(result.Unresolved, frag.Path)
			continue
		}

		refs, err := r.scanner.Rewrite(frag.Path, pr.Number)
		if err != nil {
			return nil, err
		}

		r.splog.Info("%s: %s", frag.Path, output.ColorRef(fmt.Sprintf("#%d", pr.Number)))
		result.Resolved = append(result.Resolved, Resolution{
			Path:     frag.Path,
			PRNumber: pr.Number,
			Refs:     refs,
		})
	}

	return result, nil
}

// lookupPullRequest finds the PR for a fragment: first by the commit that
// introduced the file, then by the current branch as a fallback for fragments
// not yet merged through a PR the commit API knows about.
func (r *Resolver) lookupPullRequest(ctx context.Context, path string) (*github.PullRequestInfo, error) {
	sha, err := r.repo.AddedCommitSHA(ctx, path)
	if err != nil {
		return nil, err
	}

	if sha != "" {
		pr, err := r.client.PullRequestForCommit(ctx, sha)
		if err != nil {
			return nil, err
		}
		if pr != nil {
			return pr, nil
		}
	}

	branch, err := r.repo.CurrentBranch()
	if err != nil {
		// Detached HEAD on CI checkouts is normal; just give up on the fallback
		return nil, nil //nolint:nilerr
	}

	return r.client.PullRequestForBranch(ctx, branch)
}
