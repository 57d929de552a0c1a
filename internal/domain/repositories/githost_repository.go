package repositories

import (
	"context"

	"github.com/rios0rios0/cup/internal/domain/entities"
)

// GithostRepository abstracts the Git hosting service that owns the upstream
// repository. Every call is blocking and none of them is idempotent.
type GithostRepository interface {
	// GetDisplayName returns the profile name of the given login, or the login itself when unset.
	GetDisplayName(ctx context.Context, login string) (string, error)

	// ResolvePrimaryEmail returns the primary email of the authenticated user.
	ResolvePrimaryEmail(ctx context.Context) (string, error)

	// ForkRepository forks ref under the authenticated user and returns the fork.
	ForkRepository(ctx context.Context, ref entities.RepositoryReference) (*entities.Repository, error)

	// OpenPullRequest opens a pull request against ref.
	OpenPullRequest(
		ctx context.Context,
		ref entities.RepositoryReference,
		input entities.PullRequestInput,
	) (*entities.PullRequest, error)
}
