//go:build unit

package commands_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/cup/internal/diagnostics"
	"github.com/rios0rios0/cup/internal/domain/commands"
	"github.com/rios0rios0/cup/internal/domain/entities"
	domainRepos "github.com/rios0rios0/cup/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/cup/internal/infrastructure/repositories"
	"github.com/rios0rios0/cup/test/domain/commanddoubles"
	"github.com/rios0rios0/cup/test/domain/entitybuilders"
	"github.com/rios0rios0/cup/test/infrastructure/repositorydoubles"
)

const eligibleManifest = `<?xml version="1.0" encoding="utf-8"?>
<packages>
  <package id="Cake.Core" version="0.28.0" targetFramework="net46" />
  <package id="Other.Pkg" version="2.0.0" targetFramework="net46" />
</packages>`

type updateFixture struct {
	githost        *repositorydoubles.SpyGithostRepository
	trees          *repositorydoubles.SpyWorkingTreeRepository
	publisher      *repositorydoubles.SpyPublishRepository
	manifests      *repositorydoubles.StubManifestRepository
	packageManager *repositorydoubles.SpyPackageManagerRepository
	tokens         []string
	settings       *entities.Settings
	command        *commands.UpdateCommand
}

// newUpdateFixture wires the real manifest coordinator over doubles, with one
// eligible manifest in the clone of acme/widgets under /work.
func newUpdateFixture() *updateFixture {
	f := &updateFixture{
		githost:   repositorydoubles.NewSpyGithostRepository("widgets"),
		trees:     repositorydoubles.NewSpyWorkingTreeRepository(),
		publisher: &repositorydoubles.SpyPublishRepository{},
		manifests: repositorydoubles.NewStubManifestRepository(map[string]string{
			manifestPath("src", "Cake.Widgets", "packages.config"): eligibleManifest,
			manifestPath("tools", "packages.config"):               eligibleManifest,
		}),
		packageManager: &repositorydoubles.SpyPackageManagerRepository{},
		settings:       entities.NewSettings(),
	}

	registry := infraRepos.NewProviderRegistry()
	registry.Register("github", func(token string) (domainRepos.GithostRepository, error) {
		f.tokens = append(f.tokens, token)
		return f.githost, nil
	})

	log, _ := logtest.NewNullLogger()
	f.command = commands.NewUpdateCommand(
		registry,
		f.trees,
		f.publisher,
		commands.NewProcessManifestsCommand(f.manifests, f.packageManager),
		diagnostics.New(log),
	)
	return f
}

func (f *updateFixture) execute(request entities.UpdateRequest) entities.WorkflowOutcome {
	return f.command.Execute(context.Background(), f.settings, request)
}

func requestFor(builder *entitybuilders.UpdateRequestBuilder) entities.UpdateRequest {
	return builder.WithWorkingDirectory(workingRoot).BuildUpdateRequest()
}

func TestUpdateCommand_Execute(t *testing.T) {
	t.Parallel()

	t.Run("should fork, update, commit, build, push and open a pull request", func(t *testing.T) {
		t.Parallel()

		// given
		f := newUpdateFixture()
		request := requestFor(entitybuilders.NewUpdateRequestBuilder().WithAllSteps())

		// when
		outcome := f.execute(request)

		// then
		assert.Equal(t, 0, outcome.ExitCode)
		assert.Equal(t, []string{"TOKEN123"}, f.tokens)
		assert.Equal(t, []string{"alice"}, f.githost.LookedUpLogins)
		assert.Equal(t, []entities.RepositoryReference{{Owner: "acme", Name: "widgets"}}, f.githost.ForkedRefs)

		require.Len(t, f.trees.CloneInputs, 1)
		assert.Equal(t, entities.CloneInput{
			URL:      "https://github.com/alice/widgets",
			Path:     repoRoot,
			Username: "alice",
			Token:    "TOKEN123",
		}, f.trees.CloneInputs[0])
		assert.Equal(t, []string{"feature/cake-1.2.3"}, f.trees.Tree.Branches)

		require.Len(t, f.packageManager.Updates, 1)
		assert.Equal(t, "Cake.Core", f.packageManager.Updates[0].Identifier)
		assert.Equal(t, "1.2.3", f.packageManager.Updates[0].Version)

		assert.Equal(t, []string{"branch", "stage", "status", "commit"}, f.trees.Tree.Calls)
		assert.Equal(t, []string{"Updated to Cake 1.2.3."}, f.trees.Tree.CommitMessages)
		assert.Equal(t,
			[]entities.GitIdentity{{Name: "Alice", Email: "alice@example.com"}},
			f.trees.Tree.CommitAuthors,
		)

		assert.Equal(t, []string{repoRoot}, f.publisher.BuiltPaths)
		assert.Equal(t, []string{"feature/cake-1.2.3"}, f.publisher.PushedBranches)

		require.Len(t, f.githost.PRInputs, 1)
		assert.Equal(t, entities.RepositoryReference{Owner: "acme", Name: "widgets"}, f.githost.PRRefs[0])
		assert.Equal(t, "alice:feature/cake-1.2.3", f.githost.PRInputs[0].SourceBranch)
		assert.Equal(t, "develop", f.githost.PRInputs[0].TargetBranch)
		assert.Equal(t, "Update to Cake 1.2.3.", f.githost.PRInputs[0].Title)
		assert.Contains(t, f.githost.PRInputs[0].Description, "not @alice")
	})

	t.Run("should stop after the manifests when commit is not requested", func(t *testing.T) {
		t.Parallel()

		// given
		f := newUpdateFixture()
		request := requestFor(entitybuilders.NewUpdateRequestBuilder().WithPush().WithPullRequest())

		// when
		outcome := f.execute(request)

		// then
		assert.False(t, outcome.Failed())
		assert.Equal(t, []string{"branch"}, f.trees.Tree.Calls)
		assert.Empty(t, f.publisher.BuiltPaths)
		assert.Empty(t, f.githost.PRInputs)
	})

	t.Run("should commit without publishing when push is not requested", func(t *testing.T) {
		t.Parallel()

		// given
		f := newUpdateFixture()
		request := requestFor(entitybuilders.NewUpdateRequestBuilder().WithCommit().WithPullRequest())

		// when
		outcome := f.execute(request)

		// then
		assert.False(t, outcome.Failed())
		assert.Contains(t, f.trees.Tree.Calls, "commit")
		assert.Empty(t, f.publisher.BuiltPaths)
		assert.Empty(t, f.publisher.PushedBranches)
		assert.Empty(t, f.githost.PRInputs)
	})

	t.Run("should push without a pull request when it is not requested", func(t *testing.T) {
		t.Parallel()

		// given
		f := newUpdateFixture()
		request := requestFor(entitybuilders.NewUpdateRequestBuilder().WithCommit().WithPush())

		// when
		outcome := f.execute(request)

		// then
		assert.False(t, outcome.Failed())
		assert.Equal(t, []string{"feature/cake-1.2.3"}, f.publisher.PushedBranches)
		assert.Empty(t, f.githost.PRInputs)
	})

	t.Run("should exit before any side effect for an invalid version", func(t *testing.T) {
		t.Parallel()

		for _, version := range []string{"", "1", "1.2.x", "v1.2.3", "1.2.3-beta", "1..3", " 1.2.3"} {
			// given
			f := newUpdateFixture()
			request := requestFor(entitybuilders.NewUpdateRequestBuilder().WithVersion(version).WithAllSteps())

			// when
			outcome := f.execute(request)

			// then
			assert.Equal(t, 1, outcome.ExitCode, "version %q", version)
			assert.Equal(t, "The provided version is not valid.", outcome.Message)
			assert.Empty(t, f.tokens)
			assert.Empty(t, f.githost.LookedUpLogins)
			assert.Empty(t, f.trees.PreparedNames)
			assert.Empty(t, f.githost.ForkedRefs)
		}
	})

	t.Run("should exit before any side effect for a malformed repository", func(t *testing.T) {
		t.Parallel()

		for _, repository := range []string{"widgets", "acme/", "/widgets", "acme/widgets/extra"} {
			// given
			f := newUpdateFixture()
			request := requestFor(entitybuilders.NewUpdateRequestBuilder().WithRepository(repository))

			// when
			outcome := f.execute(request)

			// then
			assert.True(t, outcome.Failed(), "repository %q", repository)
			assert.Contains(t, outcome.Message, "Could not parse repository")
			assert.Empty(t, f.githost.ForkedRefs)
		}
	})

	t.Run("should fail when the primary email cannot be resolved", func(t *testing.T) {
		t.Parallel()

		// given
		f := newUpdateFixture()
		f.githost.EmailErr = errors.New("no primary email")
		request := requestFor(entitybuilders.NewUpdateRequestBuilder())

		// when
		outcome := f.execute(request)

		// then
		assert.Equal(t, entities.Failure("Could not resolve email for user."), outcome)
		assert.Empty(t, f.trees.PreparedNames)
		assert.Empty(t, f.githost.ForkedRefs)
	})

	t.Run("should fail when the user profile cannot be read", func(t *testing.T) {
		t.Parallel()

		// given
		f := newUpdateFixture()
		f.githost.DisplayNameErr = errors.New("401 Bad credentials")
		request := requestFor(entitybuilders.NewUpdateRequestBuilder())

		// when
		outcome := f.execute(request)

		// then
		assert.True(t, outcome.Failed())
		assert.Zero(t, f.githost.EmailCallCnt)
		assert.Empty(t, f.githost.ForkedRefs)
	})

	t.Run("should fail without forking or cloning when the destination is populated", func(t *testing.T) {
		t.Parallel()

		// given
		f := newUpdateFixture()
		f.trees.PrepareErr = fmt.Errorf("%s: %w", repoRoot, domainRepos.ErrDestinationNotEmpty)
		request := requestFor(entitybuilders.NewUpdateRequestBuilder().WithAllSteps())

		// when
		outcome := f.execute(request)

		// then
		assert.Equal(t,
			entities.Failure("Repository '"+repoRoot+"' already exist on disk. Remove it and try again."),
			outcome,
		)
		assert.Equal(t, []string{"widgets"}, f.trees.PreparedNames)
		assert.Empty(t, f.githost.ForkedRefs)
		assert.Empty(t, f.trees.CloneInputs)
	})

	t.Run("should fail when the fork cannot be created", func(t *testing.T) {
		t.Parallel()

		// given
		f := newUpdateFixture()
		f.githost.ForkErr = errors.New("403 forbidden")
		request := requestFor(entitybuilders.NewUpdateRequestBuilder())

		// when
		outcome := f.execute(request)

		// then
		assert.Equal(t, entities.Failure("Could not fork repository."), outcome)
		assert.Empty(t, f.trees.CloneInputs)
	})

	t.Run("should fail when the fork has no name", func(t *testing.T) {
		t.Parallel()

		// given
		f := newUpdateFixture()
		f.githost.Fork = &entities.Repository{DefaultBranch: "develop"}
		request := requestFor(entitybuilders.NewUpdateRequestBuilder())

		// when
		outcome := f.execute(request)

		// then
		assert.Equal(t, entities.Failure("Could not fork repository."), outcome)
		assert.Empty(t, f.trees.CloneInputs)
	})

	t.Run("should fail when the fork has no default branch", func(t *testing.T) {
		t.Parallel()

		// given
		f := newUpdateFixture()
		f.githost.Fork = &entities.Repository{Name: "widgets"}
		request := requestFor(entitybuilders.NewUpdateRequestBuilder())

		// when
		outcome := f.execute(request)

		// then
		assert.Equal(t, entities.Failure("Could not get default branch for repository."), outcome)
		assert.Empty(t, f.trees.CloneInputs)
	})

	t.Run("should clone the fork by its own name", func(t *testing.T) {
		t.Parallel()

		// given
		f := newUpdateFixture()
		f.githost.Fork.Name = "widgets-1"
		request := requestFor(entitybuilders.NewUpdateRequestBuilder())

		// when
		f.execute(request)

		// then
		require.Len(t, f.trees.CloneInputs, 1)
		assert.Equal(t, "https://github.com/alice/widgets-1", f.trees.CloneInputs[0].URL)
	})

	t.Run("should fail when the clone fails", func(t *testing.T) {
		t.Parallel()

		// given
		f := newUpdateFixture()
		f.trees.CloneErr = errors.New("authentication required")
		request := requestFor(entitybuilders.NewUpdateRequestBuilder())

		// when
		outcome := f.execute(request)

		// then
		assert.True(t, outcome.Failed())
		assert.Empty(t, f.packageManager.Restored)
	})

	t.Run("should fail when the feature branch already exists", func(t *testing.T) {
		t.Parallel()

		// given
		f := newUpdateFixture()
		f.trees.Tree.BranchErr = domainRepos.ErrBranchExists
		request := requestFor(entitybuilders.NewUpdateRequestBuilder())

		// when
		outcome := f.execute(request)

		// then
		assert.True(t, outcome.Failed())
		assert.Empty(t, f.packageManager.Restored)
	})

	t.Run("should fail with the nothing updated message when no manifest has records", func(t *testing.T) {
		t.Parallel()

		// given
		f := newUpdateFixture()
		f.manifests.Contents = map[string]string{
			manifestPath("src", "Cake.Widgets", "packages.config"): `<packages />`,
		}
		request := requestFor(entitybuilders.NewUpdateRequestBuilder().WithAllSteps())

		// when
		outcome := f.execute(request)

		// then
		assert.Equal(t, entities.Failure("Nothing was updated. Probably a newer repository."), outcome)
		assert.Equal(t, []string{"branch"}, f.trees.Tree.Calls)
		assert.Empty(t, f.publisher.BuiltPaths)
	})

	t.Run("should fail without processing further manifests when a restore fails", func(t *testing.T) {
		t.Parallel()

		// given
		f := newUpdateFixture()
		first := manifestPath("a", "packages.config")
		second := manifestPath("b", "packages.config")
		f.manifests.Contents = map[string]string{first: eligibleManifest, second: eligibleManifest}
		f.packageManager.RestoreFailures = map[string]bool{first: true}
		request := requestFor(entitybuilders.NewUpdateRequestBuilder().WithAllSteps())

		// when
		outcome := f.execute(request)

		// then
		assert.Equal(t, 1, outcome.ExitCode)
		assert.Equal(t, []string{first}, f.packageManager.Restored)
		assert.Empty(t, f.packageManager.Updates)
		assert.Equal(t, []string{"branch"}, f.trees.Tree.Calls)
	})

	t.Run("should succeed without committing when nothing is staged", func(t *testing.T) {
		t.Parallel()

		// given
		f := newUpdateFixture()
		f.trees.Tree.Pending = false
		request := requestFor(entitybuilders.NewUpdateRequestBuilder().WithAllSteps())

		// when
		outcome := f.execute(request)

		// then
		assert.Equal(t, entities.SuccessWith("No changes in repository. Already updated?"), outcome)
		assert.Equal(t, []string{"branch", "stage", "status"}, f.trees.Tree.Calls)
		assert.Empty(t, f.publisher.BuiltPaths)
		assert.Empty(t, f.publisher.PushedBranches)
		assert.Empty(t, f.githost.PRInputs)
	})

	t.Run("should fail before pushing when the build fails", func(t *testing.T) {
		t.Parallel()

		// given
		f := newUpdateFixture()
		f.publisher.BuildFails = true
		request := requestFor(entitybuilders.NewUpdateRequestBuilder().WithAllSteps())

		// when
		outcome := f.execute(request)

		// then
		assert.Equal(t, entities.Failure("Something went wrong when building."), outcome)
		assert.Empty(t, f.publisher.PushedBranches)
		assert.Empty(t, f.githost.PRInputs)
	})

	t.Run("should fail without a pull request when the push fails", func(t *testing.T) {
		t.Parallel()

		// given
		f := newUpdateFixture()
		f.publisher.PushFails = true
		request := requestFor(entitybuilders.NewUpdateRequestBuilder().WithAllSteps())

		// when
		outcome := f.execute(request)

		// then
		assert.Equal(t, entities.Failure("Something went wrong when pushing to Git."), outcome)
		assert.Empty(t, f.githost.PRInputs)
	})

	t.Run("should still succeed when the pull request cannot be opened", func(t *testing.T) {
		t.Parallel()

		// given
		f := newUpdateFixture()
		f.githost.CreatePRErr = errors.New("422 A pull request already exists")
		request := requestFor(entitybuilders.NewUpdateRequestBuilder().WithAllSteps())

		// when
		outcome := f.execute(request)

		// then
		assert.Equal(t, 0, outcome.ExitCode)
		assert.Len(t, f.githost.PRInputs, 1)
	})

	t.Run("should target the configured pull request base", func(t *testing.T) {
		t.Parallel()

		// given
		f := newUpdateFixture()
		f.settings.PullRequest.Base = "main"
		request := requestFor(entitybuilders.NewUpdateRequestBuilder().WithAllSteps())

		// when
		f.execute(request)

		// then
		require.Len(t, f.githost.PRInputs, 1)
		assert.Equal(t, "main", f.githost.PRInputs[0].TargetBranch)
	})

	t.Run("should hand the coordinator the working and repository roots", func(t *testing.T) {
		t.Parallel()

		// given
		f := newUpdateFixture()
		stub := &commanddoubles.StubProcessManifestsCommand{Processed: 1}
		log, _ := logtest.NewNullLogger()
		registry := infraRepos.NewProviderRegistry()
		registry.Register("github", func(_ string) (domainRepos.GithostRepository, error) {
			return f.githost, nil
		})
		cmd := commands.NewUpdateCommand(registry, f.trees, f.publisher, stub, diagnostics.New(log))
		request := requestFor(entitybuilders.NewUpdateRequestBuilder().WithVersion("0.33"))

		// when
		outcome := cmd.Execute(context.Background(), f.settings, request)

		// then
		assert.False(t, outcome.Failed())
		assert.Equal(t, commands.ProcessManifestsOptions{
			WorkingRoot:    workingRoot,
			RepositoryRoot: repoRoot,
			Version:        "0.33",
		}, stub.LastOpts)
	})
}
