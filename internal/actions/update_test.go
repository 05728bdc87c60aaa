package actions

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fragref.dev/fragref/internal/config"
	fragreferrors "fragref.dev/fragref/internal/errors"
	"fragref.dev/fragref/internal/fragment"
	"fragref.dev/fragref/internal/git"
	"fragref.dev/fragref/internal/github"
	"fragref.dev/fragref/internal/output"
	"fragref.dev/fragref/internal/resolver"
	"fragref.dev/fragref/testhelpers"
)

type fixture struct {
	helper   *testhelpers.GitRepo
	repo     *git.Repository
	cfg      *config.Config
	scanner  *fragment.Scanner
	client   *testhelpers.MockGitHubClient
	resolver *resolver.Resolver
	splog    *output.Splog
	out      *bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	helper, err := testhelpers.NewGitRepo(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, helper.WriteFile("README.md", "# test\n"))
	require.NoError(t, helper.CommitAll("initial commit"))

	repo, err := git.OpenRepository(helper.Dir)
	require.NoError(t, err)

	cfg := &config.Config{
		ChangelogDir:  config.DefaultChangelogDir,
		Placeholder:   config.DefaultPlaceholder,
		Remote:        config.DefaultRemote,
		CommitMessage: config.DefaultCommitMessage,
		BotName:       config.DefaultBotName,
		BotEmail:      config.DefaultBotEmail,
	}

	scanner := fragment.NewScanner(repo.Root(), cfg.ChangelogDir, cfg.Placeholder)
	client := testhelpers.NewMockGitHubClient()

	out := &bytes.Buffer{}
	splog := output.NewSplog()
	splog.SetWriter(out)

	return &fixture{
		helper:   helper,
		repo:     repo,
		cfg:      cfg,
		scanner:  scanner,
		client:   client,
		resolver: resolver.New(repo, scanner, client, splog),
		splog:    splog,
		out:      out,
	}
}

// Scenario A: the resolve pass changes nothing, so no commit and no push
func TestUpdateNoChanges(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.helper.WriteFile("changelog.d/entry.rst", "Resolved already (:pr:`3`)\n"))
	require.NoError(t, f.helper.CommitAll("add fragment"))

	before, err := f.helper.CommitCount()
	require.NoError(t, err)

	err = UpdateAction(ctx, UpdateOptions{}, f.repo, f.cfg, f.resolver, f.splog)
	require.NoError(t, err)

	after, err := f.helper.CommitCount()
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Contains(t, f.out.String(), "no changes to commit")
}

// Scenario B: a fragment is rewritten, so exactly one commit with the fixed
// message and identity is created and pushed
func TestUpdateCommitsAndPushes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.helper.WriteFile("changelog.d/entry.rst", "New feature (:pr:`NUMBER`)\n"))
	require.NoError(t, f.helper.CommitAll("add fragment"))

	require.NoError(t, f.helper.AddBareOrigin(filepath.Join(t.TempDir(), "origin.git")))

	sha, err := f.helper.RunGitCommandAndGetOutput("rev-parse", "HEAD")
	require.NoError(t, err)
	f.client.PRsByCommit[sha] = &github.PullRequestInfo{Number: 456, Merged: true}

	before, err := f.helper.CommitCount()
	require.NoError(t, err)

	err = UpdateAction(ctx, UpdateOptions{}, f.repo, f.cfg, f.resolver, f.splog)
	require.NoError(t, err)

	after, err := f.helper.CommitCount()
	require.NoError(t, err)
	assert.Equal(t, before+1, after)

	msg, err := f.helper.HeadMessage()
	require.NoError(t, err)
	assert.Equal(t, "(actions) update PR references", msg)

	author, err := f.helper.HeadAuthor()
	require.NoError(t, err)
	assert.Equal(t, "github-actions bot <41898282+github-actions[bot]@users.noreply.github.com>", author)

	content, err := f.helper.ReadFile("changelog.d/entry.rst")
	require.NoError(t, err)
	assert.Equal(t, "New feature (:pr:`456`)\n", content)

	// Pushed: origin/main matches local main
	local, err := f.helper.RunGitCommandAndGetOutput("rev-parse", "main")
	require.NoError(t, err)
	remote, err := f.helper.RunGitCommandAndGetOutput("rev-parse", "origin/main")
	require.NoError(t, err)
	assert.Equal(t, local, remote)
}

// Scenario C: the push fails, so the action reports an error
func TestUpdatePushFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.helper.WriteFile("changelog.d/entry.rst", "Feature (:pr:`NUMBER`)\n"))
	require.NoError(t, f.helper.CommitAll("add fragment"))

	// Remote points at nothing, so the push is rejected
	require.NoError(t, f.helper.RunGitCommand("remote", "add", "origin", filepath.Join(t.TempDir(), "missing.git")))

	sha, err := f.helper.RunGitCommandAndGetOutput("rev-parse", "HEAD")
	require.NoError(t, err)
	f.client.PRsByCommit[sha] = &github.PullRequestInfo{Number: 9, Merged: true}

	err = UpdateAction(ctx, UpdateOptions{}, f.repo, f.cfg, f.resolver, f.splog)
	require.Error(t, err)

	var cmdErr *fragreferrors.GitCommandError
	assert.True(t, errors.As(err, &cmdErr))
}

func TestUpdateDryRun(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.helper.WriteFile("changelog.d/entry.rst", "Feature (:pr:`NUMBER`)\n"))
	require.NoError(t, f.helper.CommitAll("add fragment"))

	sha, err := f.helper.RunGitCommandAndGetOutput("rev-parse", "HEAD")
	require.NoError(t, err)
	f.client.PRsByCommit[sha] = &github.PullRequestInfo{Number: 11, Merged: true}

	before, err := f.helper.CommitCount()
	require.NoError(t, err)

	err = UpdateAction(ctx, UpdateOptions{DryRun: true}, f.repo, f.cfg, f.resolver, f.splog)
	require.NoError(t, err)

	// The file is rewritten but nothing is committed
	after, err := f.helper.CommitCount()
	require.NoError(t, err)
	assert.Equal(t, before, after)

	content, err := f.helper.ReadFile("changelog.d/entry.rst")
	require.NoError(t, err)
	assert.Equal(t, "Feature (:pr:`11`)\n", content)
	assert.Contains(t, f.out.String(), "dry run")
}

func TestUpdateNoPush(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.helper.WriteFile("changelog.d/entry.rst", "Feature (:pr:`NUMBER`)\n"))
	require.NoError(t, f.helper.CommitAll("add fragment"))

	sha, err := f.helper.RunGitCommandAndGetOutput("rev-parse", "HEAD")
	require.NoError(t, err)
	f.client.PRsByCommit[sha] = &github.PullRequestInfo{Number: 12, Merged: true}

	err = UpdateAction(ctx, UpdateOptions{NoPush: true}, f.repo, f.cfg, f.resolver, f.splog)
	require.NoError(t, err)

	msg, err := f.helper.HeadMessage()
	require.NoError(t, err)
	assert.Equal(t, "(actions) update PR references", msg)
}

func TestUpdateConfirmDeclined(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.helper.WriteFile("changelog.d/entry.rst", "Feature (:pr:`NUMBER`)\n"))
	require.NoError(t, f.helper.CommitAll("add fragment"))

	require.NoError(t, f.helper.AddBareOrigin(filepath.Join(t.TempDir(), "origin.git")))

	sha, err := f.helper.RunGitCommandAndGetOutput("rev-parse", "HEAD")
	require.NoError(t, err)
	f.client.PRsByCommit[sha] = &github.PullRequestInfo{Number: 13, Merged: true}

	opts := UpdateOptions{
		Confirm: func() (bool, error) { return false, nil },
	}
	err = UpdateAction(ctx, opts, f.repo, f.cfg, f.resolver, f.splog)
	require.NoError(t, err)

	// Commit exists locally but was not pushed
	local, err := f.helper.RunGitCommandAndGetOutput("rev-parse", "main")
	require.NoError(t, err)
	remote, err := f.helper.RunGitCommandAndGetOutput("rev-parse", "origin/main")
	require.NoError(t, err)
	assert.NotEqual(t, local, remote)
	assert.Contains(t, f.out.String(), "push skipped")
}

// Unstaged files outside the changelog directory must not be swept into the commit
func TestUpdateStagesOnlyChangelogDir(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.helper.WriteFile("changelog.d/entry.rst", "Feature (:pr:`NUMBER`)\n"))
	require.NoError(t, f.helper.CommitAll("add fragment"))

	require.NoError(t, f.helper.WriteFile("src/code.go", "package code\n"))

	sha, err := f.helper.RunGitCommandAndGetOutput("rev-parse", "HEAD")
	require.NoError(t, err)
	f.client.PRsByCommit[sha] = &github.PullRequestInfo{Number: 14, Merged: true}

	err = UpdateAction(ctx, UpdateOptions{NoPush: true}, f.repo, f.cfg, f.resolver, f.splog)
	require.NoError(t, err)

	out, err := f.helper.RunGitCommandAndGetOutput("show", "--name-only", "--format=", "HEAD")
	require.NoError(t, err)
	assert.Equal(t, "changelog.d/entry.rst", out)
}

func TestStatusAction(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.helper.WriteFile("changelog.d/a.rst", "Pending (:pr:`NUMBER`)\n"))
	require.NoError(t, f.helper.WriteFile("changelog.d/b.rst", "Done (:pr:`8`)\n"))

	err := StatusAction(StatusOptions{}, f.scanner, f.splog)
	require.NoError(t, err)
	assert.Contains(t, f.out.String(), "a.rst")
	assert.Contains(t, f.out.String(), "b.rst")
}

func TestStatusActionCheck(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.helper.WriteFile("changelog.d/a.rst", "Pending (:pr:`NUMBER`)\n"))

	err := StatusAction(StatusOptions{Check: true}, f.scanner, f.splog)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fragreferrors.ErrUnresolvedFragments))

	var unresolvedErr *fragreferrors.UnresolvedFragmentsError
	require.True(t, errors.As(err, &unresolvedErr))
	assert.Len(t, unresolvedErr.Paths, 1)
}

func TestResolveActionNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.helper.WriteFile("changelog.d/a.rst", "Done (:pr:`2`)\n"))
	require.NoError(t, f.helper.CommitAll("add fragment"))

	err := ResolveAction(ctx, f.resolver, f.splog)
	require.NoError(t, err)
	assert.Contains(t, f.out.String(), "nothing to resolve")
}
