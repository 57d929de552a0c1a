//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/cup/internal/domain/entities"
	"github.com/rios0rios0/cup/internal/domain/repositories"
)

// SpyGithostRepository implements repositories.GithostRepository as a configurable spy.
type SpyGithostRepository struct {
	// --- GetDisplayName ---
	DisplayName    string
	DisplayNameErr error
	LookedUpLogins []string

	// --- ResolvePrimaryEmail ---
	Email        string
	EmailErr     error
	EmailCallCnt int

	// --- ForkRepository ---
	Fork       *entities.Repository
	ForkErr    error
	ForkedRefs []entities.RepositoryReference

	// --- OpenPullRequest ---
	CreatedPR   *entities.PullRequest
	CreatePRErr error
	PRRefs      []entities.RepositoryReference
	PRInputs    []entities.PullRequestInput
}

var _ repositories.GithostRepository = (*SpyGithostRepository)(nil)

// NewSpyGithostRepository returns a spy that resolves "Alice" <alice@example.com>
// and forks into a repository with a "develop" default branch.
func NewSpyGithostRepository(forkName string) *SpyGithostRepository {
	return &SpyGithostRepository{
		DisplayName: "Alice",
		Email:       "alice@example.com",
		Fork: &entities.Repository{
			Name:          forkName,
			Organization:  "alice",
			DefaultBranch: "develop",
		},
		CreatedPR: &entities.PullRequest{ID: 1, URL: "https://github.com/acme/" + forkName + "/pull/1"},
	}
}

func (s *SpyGithostRepository) GetDisplayName(_ context.Context, login string) (string, error) {
	s.LookedUpLogins = append(s.LookedUpLogins, login)
	return s.DisplayName, s.DisplayNameErr
}

func (s *SpyGithostRepository) ResolvePrimaryEmail(_ context.Context) (string, error) {
	s.EmailCallCnt++
	return s.Email, s.EmailErr
}

func (s *SpyGithostRepository) ForkRepository(
	_ context.Context,
	ref entities.RepositoryReference,
) (*entities.Repository, error) {
	s.ForkedRefs = append(s.ForkedRefs, ref)
	if s.ForkErr != nil {
		return nil, s.ForkErr
	}
	return s.Fork, nil
}

func (s *SpyGithostRepository) OpenPullRequest(
	_ context.Context,
	ref entities.RepositoryReference,
	input entities.PullRequestInput,
) (*entities.PullRequest, error) {
	s.PRRefs = append(s.PRRefs, ref)
	s.PRInputs = append(s.PRInputs, input)
	if s.CreatePRErr != nil {
		return nil, s.CreatePRErr
	}
	return s.CreatedPR, nil
}
