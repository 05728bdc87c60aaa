// Package actions implements the operations behind the fragref commands.
package actions

import (
	"context"
	"fmt"

	"fragref.dev/fragref/internal/config"
	"fragref.dev/fragref/internal/git"
	"fragref.dev/fragref/internal/output"
	"fragref.dev/fragref/internal/resolver"
)

// UpdateOptions contains options for the update action
type UpdateOptions struct {
	// DryRun resolves references but skips commit and push
	DryRun bool

	// NoPush commits without pushing
	NoPush bool

	// Confirm is called before pushing when set; returning false aborts the
	// push (but keeps the commit). The CLI wires an interactive prompt here
	// for terminal runs and leaves it nil on CI.
	Confirm func() (bool, error)
}

// UpdateAction runs the full pipeline: resolve PR references in the changelog
// directory, then commit and push if and only if anything changed.
func UpdateAction(ctx context.Context, opts UpdateOptions, repo *git.Repository, cfg *config.Config, res *resolver.Resolver, splog *output.Splog) error {
	if _, err := res.Resolve(ctx); err != nil {
		return fmt.Errorf("failed to resolve PR references: %w", err)
	}

	changed, err := repo.HasChanges(ctx, cfg.ChangelogDir)
	if err != nil {
		return err
	}
	if !changed {
		splog.Info("no changes to commit")
		return nil
	}

	if opts.DryRun {
		paths, err := repo.ChangedPaths(ctx, cfg.ChangelogDir)
		if err != nil {
			return err
		}
		splog.Info("dry run, would commit %d file(s):", len(paths))
		for _, p := range paths {
			splog.Info("  %s", output.ColorResolved(p))
		}
		return nil
	}

	if err := repo.StageDir(ctx, cfg.ChangelogDir); err != nil {
		return err
	}

	name, email := cfg.Identity()
	if err := repo.CommitAs(ctx, cfg.CommitMessage, git.Identity{Name: name, Email: email}); err != nil {
		return err
	}
	splog.Info("committed: %s", cfg.CommitMessage)

	if opts.NoPush {
		return nil
	}

	if opts.Confirm != nil {
		ok, err := opts.Confirm()
		if err != nil {
			return err
		}
		if !ok {
			splog.Info("push skipped")
			return nil
		}
	}

	branch, err := repo.CurrentBranch()
	if err != nil {
		return err
	}

	if err := repo.Push(ctx, cfg.Remote, branch); err != nil {
		return err
	}
	splog.Info("pushed %s to %s", branch, cfg.Remote)

	return nil
}
