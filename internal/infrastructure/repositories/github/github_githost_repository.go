package github

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	gh "github.com/google/go-github/v66/github"

	"github.com/rios0rios0/cup/internal/domain/entities"
	"github.com/rios0rios0/cup/internal/domain/repositories"
)

const (
	providerName = "github"
	perPage      = 100
)

var (
	// ErrForkFailed is returned when GitHub did not return a usable fork.
	ErrForkFailed = errors.New("could not fork repository")

	// ErrPrimaryEmailNotFound is returned when the user has no primary email.
	ErrPrimaryEmailNotFound = errors.New("could not resolve primary email for user")
)

// GithostRepository implements repositories.GithostRepository for GitHub.
type GithostRepository struct {
	client *gh.Client
}

// NewGithostRepository creates a GitHub client authenticated with token.
// A non-empty settings.GitHub.APIURL targets a GitHub Enterprise host.
func NewGithostRepository(settings *entities.Settings, token string) (repositories.GithostRepository, error) {
	client := gh.NewClient(nil).WithAuthToken(token)

	if apiURL := settings.GitHub.APIURL; apiURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(apiURL, apiURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", apiURL, err)
		}
	}

	return &GithostRepository{client: client}, nil
}

// GetDisplayName returns the profile name of login, falling back to the login.
func (it *GithostRepository) GetDisplayName(ctx context.Context, login string) (string, error) {
	user, _, err := it.client.Users.Get(ctx, login)
	if err != nil {
		return "", fmt.Errorf("failed to get user %q: %w", login, err)
	}

	if name := strings.TrimSpace(user.GetName()); name != "" {
		return name, nil
	}
	return login, nil
}

// ResolvePrimaryEmail walks the authenticated user's emails and returns the primary one.
func (it *GithostRepository) ResolvePrimaryEmail(ctx context.Context) (string, error) {
	opts := &gh.ListOptions{PerPage: perPage}

	for {
		emails, resp, err := it.client.Users.ListEmails(ctx, opts)
		if err != nil {
			return "", fmt.Errorf("failed to list emails: %w", err)
		}

		for _, email := range emails {
			if email.GetPrimary() && strings.TrimSpace(email.GetEmail()) != "" {
				return email.GetEmail(), nil
			}
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return "", ErrPrimaryEmailNotFound
}

// ForkRepository forks ref under the authenticated user. GitHub answers 202
// while the fork is being created; the returned metadata is already usable.
func (it *GithostRepository) ForkRepository(
	ctx context.Context,
	ref entities.RepositoryReference,
) (*entities.Repository, error) {
	fork, _, err := it.client.Repositories.CreateFork(ctx, ref.Owner, ref.Name, &gh.RepositoryCreateForkOptions{})
	if err != nil {
		var accepted *gh.AcceptedError
		if !errors.As(err, &accepted) {
			return nil, fmt.Errorf("failed to fork %s: %w", ref, err)
		}
	}

	if fork == nil || fork.GetName() == "" {
		return nil, fmt.Errorf("%w: %s", ErrForkFailed, ref)
	}

	return &entities.Repository{
		ID:            strconv.FormatInt(fork.GetID(), 10),
		Name:          fork.GetName(),
		Organization:  fork.GetOwner().GetLogin(),
		DefaultBranch: fork.GetDefaultBranch(),
		RemoteURL:     fork.GetCloneURL(),
		SSHURL:        fork.GetSSHURL(),
		ProviderName:  providerName,
	}, nil
}

// OpenPullRequest opens a pull request on the upstream repository. The
// source branch is expected in "user:branch" form for cross-fork requests.
func (it *GithostRepository) OpenPullRequest(
	ctx context.Context,
	ref entities.RepositoryReference,
	input entities.PullRequestInput,
) (*entities.PullRequest, error) {
	sourceBranch := strings.TrimPrefix(input.SourceBranch, "refs/heads/")
	targetBranch := strings.TrimPrefix(input.TargetBranch, "refs/heads/")

	maintainerCanModify := true
	pr, _, err := it.client.PullRequests.Create(
		ctx, ref.Owner, ref.Name,
		&gh.NewPullRequest{
			Title:               &input.Title,
			Head:                &sourceBranch,
			Base:                &targetBranch,
			Body:                &input.Description,
			MaintainerCanModify: &maintainerCanModify,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create pull request: %w", err)
	}

	return &entities.PullRequest{
		ID:     pr.GetNumber(),
		Title:  pr.GetTitle(),
		URL:    pr.GetHTMLURL(),
		Status: pr.GetState(),
	}, nil
}
