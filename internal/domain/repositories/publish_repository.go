package repositories

import (
	"context"

	"github.com/rios0rios0/cup/internal/domain/entities"
)

// PublishRepository builds a checkout and pushes its feature branch.
type PublishRepository interface {
	Build(ctx context.Context, repositoryPath string) (entities.ToolInvocationResult, error)
	Push(ctx context.Context, repositoryPath, branch string) (entities.ToolInvocationResult, error)
}
