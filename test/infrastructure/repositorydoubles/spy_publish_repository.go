//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/cup/internal/domain/entities"
	"github.com/rios0rios0/cup/internal/domain/repositories"
)

// SpyPublishRepository implements repositories.PublishRepository.
type SpyPublishRepository struct {
	// --- Build ---
	BuildFails bool
	BuildErr   error
	BuiltPaths []string

	// --- Push ---
	PushFails      bool
	PushErr        error
	PushedBranches []string
}

var _ repositories.PublishRepository = (*SpyPublishRepository)(nil)

func (s *SpyPublishRepository) Build(_ context.Context, repositoryPath string) (entities.ToolInvocationResult, error) {
	s.BuiltPaths = append(s.BuiltPaths, repositoryPath)
	if s.BuildErr != nil {
		return entities.ToolInvocationResult{}, s.BuildErr
	}
	return entities.ToolInvocationResult{Succeeded: !s.BuildFails}, nil
}

func (s *SpyPublishRepository) Push(
	_ context.Context,
	_, branch string,
) (entities.ToolInvocationResult, error) {
	s.PushedBranches = append(s.PushedBranches, branch)
	if s.PushErr != nil {
		return entities.ToolInvocationResult{}, s.PushErr
	}
	return entities.ToolInvocationResult{Succeeded: !s.PushFails}, nil
}
