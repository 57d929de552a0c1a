package repositories

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/cup/internal/diagnostics"
	"github.com/rios0rios0/cup/internal/domain/entities"
	domainRepos "github.com/rios0rios0/cup/internal/domain/repositories"
	buildRepo "github.com/rios0rios0/cup/internal/infrastructure/repositories/build"
	gitRepo "github.com/rios0rios0/cup/internal/infrastructure/repositories/git"
	ghRepo "github.com/rios0rios0/cup/internal/infrastructure/repositories/github"
	manifestRepo "github.com/rios0rios0/cup/internal/infrastructure/repositories/manifest"
	nugetRepo "github.com/rios0rios0/cup/internal/infrastructure/repositories/nuget"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Hosting clients need the CLI token, so they are built on demand through the registry
	if err := container.Provide(func(settings *entities.Settings) *ProviderRegistry {
		reg := NewProviderRegistry()
		reg.Register("github", func(token string) (domainRepos.GithostRepository, error) {
			return ghRepo.NewGithostRepository(settings, token)
		})
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(diagnostics.Standard); err != nil {
		return err
	}

	if err := container.Provide(func() domainRepos.WorkingTreeRepository {
		return gitRepo.NewWorkingTreeRepository()
	}); err != nil {
		return err
	}
	if err := container.Provide(func() domainRepos.ManifestRepository {
		return manifestRepo.NewManifestRepository()
	}); err != nil {
		return err
	}
	if err := container.Provide(func(settings *entities.Settings) domainRepos.PackageManagerRepository {
		return nugetRepo.NewPackageManagerRepository(settings)
	}); err != nil {
		return err
	}
	if err := container.Provide(func(settings *entities.Settings) domainRepos.PublishRepository {
		return buildRepo.NewPublishRepository(settings)
	}); err != nil {
		return err
	}

	return nil
}
