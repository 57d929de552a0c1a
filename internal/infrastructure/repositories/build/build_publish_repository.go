package build

import (
	"context"
	"path/filepath"

	"github.com/rios0rios0/cup/internal/domain/entities"
	"github.com/rios0rios0/cup/internal/domain/repositories"
	"github.com/rios0rios0/cup/internal/infrastructure/process"
)

var _ repositories.PublishRepository = (*PublishRepository)(nil)

// PublishRepository runs the repository build script and pushes with the git executable.
// Both stream the child output to the console.
type PublishRepository struct {
	settings *entities.Settings
	runner   process.Runner
}

func NewPublishRepository(settings *entities.Settings) *PublishRepository {
	return &PublishRepository{settings: settings, runner: process.NewOSRunner()}
}

// Build runs "<interpreter> <repositoryPath>/<script>" from inside the repository.
func (it *PublishRepository) Build(ctx context.Context, repositoryPath string) (entities.ToolInvocationResult, error) {
	return it.runner.Run(ctx, process.Command{
		Name:      it.settings.Build.Interpreter,
		Arguments: []string{filepath.Join(repositoryPath, it.settings.Build.Script)},
		Directory: repositoryPath,
	})
}

// Push publishes branch to the configured remote and sets it as upstream.
func (it *PublishRepository) Push(
	ctx context.Context,
	repositoryPath, branch string,
) (entities.ToolInvocationResult, error) {
	return it.runner.Run(ctx, process.Command{
		Name:      it.settings.Git.Executable,
		Arguments: []string{"push", "--set-upstream", it.settings.Git.Remote, branch},
		Directory: repositoryPath,
	})
}
