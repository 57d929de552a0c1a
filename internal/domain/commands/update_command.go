package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rios0rios0/cup/internal/diagnostics"
	"github.com/rios0rios0/cup/internal/domain/entities"
	"github.com/rios0rios0/cup/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/cup/internal/infrastructure/repositories"
)

const providerGitHub = "github"

const (
	msgInvalidVersion     = "The provided version is not valid."
	msgEmailNotResolved   = "Could not resolve email for user."
	msgForkFailed         = "Could not fork repository."
	msgNoDefaultBranch    = "Could not get default branch for repository."
	msgNothingUpdated     = "Nothing was updated. Probably a newer repository."
	msgAlreadyUpdated     = "No changes in repository. Already updated?"
	msgBuildFailed        = "Something went wrong when building."
	msgPushFailed         = "Something went wrong when pushing to Git."
	msgDestinationExists  = "Repository '%s' already exist on disk. Remove it and try again."
	msgInvalidRepository  = "Could not parse repository: %v"
	msgUnexpectedFailure  = "%s: %v"
	msgPullRequestCreated = "Created pull request #%d: %s"
)

// Update is the interface for the update command.
type Update interface {
	Execute(ctx context.Context, settings *entities.Settings, request entities.UpdateRequest) entities.WorkflowOutcome
}

// UpdateCommand runs the whole update workflow for one repository:
// fork -> clone -> branch -> update manifests -> commit -> build -> push -> PR.
// Each step may end the run; nothing already done remotely is rolled back.
type UpdateCommand struct {
	providerRegistry *infraRepos.ProviderRegistry
	workingTrees     repositories.WorkingTreeRepository
	publisher        repositories.PublishRepository
	manifests        ProcessManifests
	log              diagnostics.Log
}

// NewUpdateCommand creates a new UpdateCommand with its collaborators.
func NewUpdateCommand(
	providerRegistry *infraRepos.ProviderRegistry,
	workingTrees repositories.WorkingTreeRepository,
	publisher repositories.PublishRepository,
	manifests ProcessManifests,
	log diagnostics.Log,
) *UpdateCommand {
	return &UpdateCommand{
		providerRegistry: providerRegistry,
		workingTrees:     workingTrees,
		publisher:        publisher,
		manifests:        manifests,
		log:              log,
	}
}

// Execute runs the workflow and returns its terminal outcome.
func (it *UpdateCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	request entities.UpdateRequest,
) entities.WorkflowOutcome {
	if err := entities.ValidateVersion(request.Version); err != nil {
		return it.fail(msgInvalidVersion)
	}

	ref, err := entities.ParseRepositoryReference(request.Repository)
	if err != nil {
		return it.fail(fmt.Sprintf(msgInvalidRepository, err))
	}

	root, err := resolveRoot(request.WorkingDirectory)
	if err != nil {
		return it.fail(fmt.Sprintf(msgUnexpectedFailure, "Could not resolve working directory", err))
	}

	githost, err := it.providerRegistry.Get(providerGitHub, request.Token)
	if err != nil {
		return it.fail(fmt.Sprintf(msgUnexpectedFailure, "Could not create hosting client", err))
	}

	identity, outcome := it.resolveIdentity(ctx, githost, request.User)
	if outcome != nil {
		return *outcome
	}

	path, err := it.workingTrees.PrepareDestination(root, ref.Name)
	if errors.Is(err, repositories.ErrDestinationNotEmpty) {
		return it.fail(fmt.Sprintf(msgDestinationExists, filepath.Join(root, ref.Name)))
	}
	if err != nil {
		return it.fail(fmt.Sprintf(msgUnexpectedFailure, "Could not create directory for repository", err))
	}

	it.log.Infof("Forking repository...")
	fork, err := githost.ForkRepository(ctx, ref)
	if err != nil || fork == nil || fork.Name == "" {
		it.logCause(err)
		return it.fail(msgForkFailed)
	}
	if fork.DefaultBranch == "" {
		return it.fail(msgNoDefaultBranch)
	}
	it.log.Debugf("Fork %s/%s has default branch %s", fork.Organization, fork.Name, fork.DefaultBranch)

	it.log.Infof("Cloning repository...")
	tree, err := it.workingTrees.Clone(ctx, entities.CloneInput{
		URL:      settings.ForkCloneURL(request.User, fork.Name),
		Path:     path,
		Username: request.User,
		Token:    request.Token,
	})
	if err != nil {
		return it.fail(fmt.Sprintf(msgUnexpectedFailure, "Could not clone repository", err))
	}

	it.log.Infof("Creating branch...")
	it.log.Infof("Checking out branch...")
	if branchErr := tree.CreateAndCheckoutBranch(request.BranchName()); branchErr != nil {
		return it.fail(fmt.Sprintf(msgUnexpectedFailure, "Could not create branch", branchErr))
	}

	processed, err := it.manifests.Execute(ctx, it.log, ProcessManifestsOptions{
		WorkingRoot:    root,
		RepositoryRoot: path,
		Version:        request.Version,
	})
	if err != nil {
		return it.fail(err.Error())
	}
	if processed == 0 {
		return it.fail(msgNothingUpdated)
	}

	if !request.Commit {
		return entities.Success()
	}

	return it.commitAndPublish(ctx, settings, githost, tree, ref, path, identity, request)
}

// resolveIdentity fetches the commit author from the hosting service.
func (it *UpdateCommand) resolveIdentity(
	ctx context.Context,
	githost repositories.GithostRepository,
	user string,
) (entities.GitIdentity, *entities.WorkflowOutcome) {
	name, err := githost.GetDisplayName(ctx, user)
	if err != nil {
		outcome := it.fail(fmt.Sprintf(msgUnexpectedFailure, "Could not get user", err))
		return entities.GitIdentity{}, &outcome
	}

	email, err := githost.ResolvePrimaryEmail(ctx)
	if err != nil {
		it.logCause(err)
		outcome := it.fail(msgEmailNotResolved)
		return entities.GitIdentity{}, &outcome
	}

	return entities.GitIdentity{Name: name, Email: email}, nil
}

func (it *UpdateCommand) commitAndPublish(
	ctx context.Context,
	settings *entities.Settings,
	githost repositories.GithostRepository,
	tree repositories.WorkingTree,
	ref entities.RepositoryReference,
	path string,
	identity entities.GitIdentity,
	request entities.UpdateRequest,
) entities.WorkflowOutcome {
	it.log.Infof("Staging changes...")
	if err := tree.StageAll(); err != nil {
		return it.fail(fmt.Sprintf(msgUnexpectedFailure, "Could not stage changes", err))
	}

	pending, err := tree.HasPendingChanges()
	if err != nil {
		return it.fail(fmt.Sprintf(msgUnexpectedFailure, "Could not retrieve status", err))
	}
	if !pending {
		it.log.Infof("%s", msgAlreadyUpdated)
		return entities.SuccessWith(msgAlreadyUpdated)
	}

	it.log.Infof("Committing changes...")
	hash, err := tree.Commit(request.CommitMessage(), identity)
	if err != nil {
		return it.fail(fmt.Sprintf(msgUnexpectedFailure, "Could not commit changes", err))
	}
	it.log.Debugf("Created commit %s", hash)

	if !request.Push {
		return entities.Success()
	}

	if outcome := it.publish(ctx, path, request.BranchName()); outcome.Failed() {
		return outcome
	}

	if request.OpenPullRequest {
		it.openPullRequest(ctx, settings, githost, ref, request)
	}

	return entities.Success()
}

// publish builds the checkout and pushes the feature branch.
func (it *UpdateCommand) publish(ctx context.Context, path, branch string) entities.WorkflowOutcome {
	it.log.Infof("Building project...")
	built, err := it.publisher.Build(ctx, path)
	if err != nil || !built.Succeeded {
		it.logCause(err)
		return it.fail(msgBuildFailed)
	}

	it.log.Infof("Pushing branch %s...", branch)
	pushed, err := it.publisher.Push(ctx, path, branch)
	if err != nil || !pushed.Succeeded {
		it.logCause(err)
		return it.fail(msgPushFailed)
	}

	return entities.Success()
}

// openPullRequest is best-effort: a failure is logged and the run still succeeds.
func (it *UpdateCommand) openPullRequest(
	ctx context.Context,
	settings *entities.Settings,
	githost repositories.GithostRepository,
	ref entities.RepositoryReference,
	request entities.UpdateRequest,
) {
	it.log.Infof("Creating pull request...")
	pr, err := githost.OpenPullRequest(ctx, ref, entities.PullRequestInput{
		SourceBranch: request.PullRequestHead(),
		TargetBranch: settings.PullRequest.Base,
		Title:        request.PullRequestTitle(),
		Description:  request.PullRequestBody(),
	})
	if err != nil {
		it.log.Errorf("Could not create pull request: %v", err)
		return
	}
	if pr != nil {
		it.log.Infof(msgPullRequestCreated, pr.ID, pr.URL)
	}
}

func (it *UpdateCommand) fail(message string) entities.WorkflowOutcome {
	it.log.Errorf("%s", message)
	return entities.Failure(message)
}

func (it *UpdateCommand) logCause(err error) {
	if err != nil {
		it.log.Indent().Errorf("%v", err)
	}
}

func resolveRoot(workingDirectory string) (string, error) {
	if workingDirectory == "" {
		workingDirectory = "."
	}
	return filepath.Abs(workingDirectory)
}
