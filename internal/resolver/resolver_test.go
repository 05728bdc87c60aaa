package resolver

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fragref.dev/fragref/internal/fragment"
	"fragref.dev/fragref/internal/git"
	"fragref.dev/fragref/internal/github"
	"fragref.dev/fragref/internal/output"
	"fragref.dev/fragref/testhelpers"
)

type fixture struct {
	helper   *testhelpers.GitRepo
	repo     *git.Repository
	scanner  *fragment.Scanner
	client   *testhelpers.MockGitHubClient
	resolver *Resolver
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

	scanner := fragment.NewScanner(repo.Root(), "changelog.d", "NUMBER")
	client := testhelpers.NewMockGitHubClient()

	out := &bytes.Buffer{}
	splog := output.NewSplog()
	splog.SetWriter(out)

	return &fixture{
		helper:   helper,
		repo:     repo,
		scanner:  scanner,
		client:   client,
		resolver: New(repo, scanner, client, splog),
		out:      out,
	}
}

func TestResolveByCommit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.helper.WriteFile("changelog.d/entry.rst", "Added feature (:pr:`NUMBER`)\n"))
	require.NoError(t, f.helper.CommitAll("add fragment"))

	sha, err := f.helper.RunGitCommandAndGetOutput("rev-parse", "HEAD")
	require.NoError(t, err)
	f.client.PRsByCommit[sha] = &github.PullRequestInfo{Number: 321, Merged: true}

	result, err := f.resolver.Resolve(ctx)
	require.NoError(t, err)
	require.Len(t, result.Resolved, 1)
	assert.Empty(t, result.Unresolved)
	assert.Equal(t, 321, result.Resolved[0].PRNumber)
	assert.Equal(t, 1, result.Resolved[0].Refs)

	content, err := f.helper.ReadFile("changelog.d/entry.rst")
	require.NoError(t, err)
	assert.Equal(t, "Added feature (:pr:`321`)\n", content)
}

func TestResolveFallsBackToBranch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// Fragment exists but is not committed yet, so no introducing commit
	require.NoError(t, f.helper.WriteFile("changelog.d/entry.rst", "Fixed bug (#NUMBER)\n"))

	f.client.PRsByBranch["main"] = &github.PullRequestInfo{Number: 77}

	result, err := f.resolver.Resolve(ctx)
	require.NoError(t, err)
	require.Len(t, result.Resolved, 1)
	assert.Equal(t, 77, result.Resolved[0].PRNumber)

	content, err := f.helper.ReadFile("changelog.d/entry.rst")
	require.NoError(t, err)
	assert.Equal(t, "Fixed bug (#77)\n", content)
}

func TestResolveLeavesUnknownFragments(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	original := "Mystery change (:pr:`NUMBER`)\n"
	require.NoError(t, f.helper.WriteFile("changelog.d/entry.rst", original))
	require.NoError(t, f.helper.CommitAll("add fragment"))

	// No PR known for any commit or branch
	result, err := f.resolver.Resolve(ctx)
	require.NoError(t, err)
	assert.Empty(t, result.Resolved)
	require.Len(t, result.Unresolved, 1)

	content, err := f.helper.ReadFile("changelog.d/entry.rst")
	require.NoError(t, err)
	assert.Equal(t, original, content)
}

func TestResolveNothingToDo(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.helper.WriteFile("changelog.d/entry.rst", "Done already (:pr:`5`)\n"))
	require.NoError(t, f.helper.CommitAll("add resolved fragment"))

	result, err := f.resolver.Resolve(ctx)
	require.NoError(t, err)
	assert.Empty(t, result.Resolved)
	assert.Empty(t, result.Unresolved)
}

func TestResolvePropagatesAPIErrors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.helper.WriteFile("changelog.d/entry.rst", "Broken (:pr:`NUMBER`)\n"))
	require.NoError(t, f.helper.CommitAll("add fragment"))

	f.client.Err = errors.New("api unavailable")

	_, err := f.resolver.Resolve(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api unavailable")
}

func TestResolveMultipleFragments(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.helper.WriteFile("changelog.d/a.rst", "First (:pr:`NUMBER`)\n"))
	require.NoError(t, f.helper.CommitAll("add first"))
	shaA, err := f.helper.RunGitCommandAndGetOutput("rev-parse", "HEAD")
	require.NoError(t, err)

	require.NoError(t, f.helper.WriteFile("changelog.d/b.rst", "Second (:pr:`NUMBER`)\n"))
	require.NoError(t, f.helper.CommitAll("add second"))
	shaB, err := f.helper.RunGitCommandAndGetOutput("rev-parse", "HEAD")
	require.NoError(t, err)

	f.client.PRsByCommit[shaA] = &github.PullRequestInfo{Number: 10, Merged: true}
	f.client.PRsByCommit[shaB] = &github.PullRequestInfo{Number: 20, Merged: true}

	result, err := f.resolver.Resolve(ctx)
	require.NoError(t, err)
	require.Len(t, result.Resolved, 2)

	contentA, err := f.helper.ReadFile("changelog.d/a.rst")
	require.NoError(t, err)
	assert.Equal(t, "First (:pr:`10`)\n", contentA)

	contentB, err := f.helper.ReadFile("changelog.d/b.rst")
	require.NoError(t, err)
	assert.Equal(t, "Second (:pr:`20`)\n", contentB)
}
