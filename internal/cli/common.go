package cli

import (
	"context"
	"fmt"

	"fragref.dev/fragref/internal/config"
	"fragref.dev/fragref/internal/fragment"
	"fragref.dev/fragref/internal/git"
	"fragref.dev/fragref/internal/github"
	"fragref.dev/fragref/internal/output"
	"fragref.dev/fragref/internal/resolver"
)

// runtime bundles the pieces every command needs
type runtime struct {
	repo    *git.Repository
	cfg     *config.Config
	scanner *fragment.Scanner
	splog   *output.Splog
}

// newRuntime opens the repository at the current directory and loads config
func newRuntime(ctx context.Context) (*runtime, error) {
	repo, err := git.OpenRepository(".")
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(ctx, repo.Root())
	if err != nil {
		return nil, err
	}

	splog, err := output.NewSplogWithConfig(cfg.LogFile)
	if err != nil {
		return nil, err
	}

	return &runtime{
		repo:    repo,
		cfg:     cfg,
		scanner: fragment.NewScanner(repo.Root(), cfg.ChangelogDir, cfg.Placeholder),
		splog:   splog,
	}, nil
}

// newResolver builds a resolver backed by the real GitHub client.
// Requires a token (GITHUB_TOKEN) to be configured.
func (rt *runtime) newResolver(ctx context.Context) (*resolver.Resolver, error) {
	if rt.cfg.Token == "" {
		return nil, fmt.Errorf("no GitHub token configured; set GITHUB_TOKEN")
	}

	remoteURL, err := rt.repo.RemoteURL(rt.cfg.Remote)
	if err != nil {
		return nil, err
	}

	client, err := github.NewRealClient(ctx, remoteURL, rt.cfg.Token)
	if err != nil {
		return nil, err
	}

	return resolver.New(rt.repo, rt.scanner, client, rt.splog), nil
}
