package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/rios0rios0/cup/internal/diagnostics"
	"github.com/rios0rios0/cup/internal/domain/entities"
	"github.com/rios0rios0/cup/internal/domain/repositories"
)

var (
	// ErrRestoreFailed aborts the scan when a manifest could not be restored.
	ErrRestoreFailed = errors.New("an error occurred when restoring packages")

	// ErrUpdateFailed aborts the scan when a package could not be updated.
	ErrUpdateFailed = errors.New("an error occurred when updating package")
)

// ProcessManifests is the interface for the manifest update step.
type ProcessManifests interface {
	Execute(ctx context.Context, log diagnostics.Log, opts ProcessManifestsOptions) (int, error)
}

// ProcessManifestsOptions holds the inputs of a single manifest scan.
type ProcessManifestsOptions struct {
	WorkingRoot    string // where the package-manager executable is cached
	RepositoryRoot string // the cloned checkout
	Version        string // target Cake version
}

// ProcessManifestsCommand restores every packages.config of a checkout and
// bumps the recognized Cake packages to the target version. The first tool
// failure aborts the whole scan.
type ProcessManifestsCommand struct {
	manifests      repositories.ManifestRepository
	packageManager repositories.PackageManagerRepository
}

// NewProcessManifestsCommand creates a new ProcessManifestsCommand.
func NewProcessManifestsCommand(
	manifests repositories.ManifestRepository,
	packageManager repositories.PackageManagerRepository,
) *ProcessManifestsCommand {
	return &ProcessManifestsCommand{
		manifests:      manifests,
		packageManager: packageManager,
	}
}

// Execute returns the number of manifests holding at least one package
// entry, whether or not any of them was recognized.
func (it *ProcessManifestsCommand) Execute(
	ctx context.Context,
	log diagnostics.Log,
	opts ProcessManifestsOptions,
) (int, error) {
	log.Infof("Processing %s files...", entities.ManifestFileName)

	files, err := it.manifests.FindManifests(opts.RepositoryRoot)
	if err != nil {
		return 0, fmt.Errorf("failed to find manifests: %w", err)
	}

	toolsManifest := entities.ToolsManifestPath(opts.RepositoryRoot)
	processed := 0

	for _, file := range files {
		log.Infof("Processing %s...", file.Path)
		scope := log.Indent()

		if entities.SamePath(file.Path, toolsManifest) {
			scope.Infof("Skipping %s in %s.", entities.ManifestFileName, entities.ToolsDirectory)
			continue
		}

		counted, processErr := it.processManifest(ctx, scope, opts, file)
		if processErr != nil {
			return processed, processErr
		}
		if counted {
			processed++
		}
	}

	return processed, nil
}

func (it *ProcessManifestsCommand) processManifest(
	ctx context.Context,
	scope diagnostics.Log,
	opts ProcessManifestsOptions,
	file entities.ManifestFile,
) (bool, error) {
	scope.Infof("Restoring packages for %s...", file.Path)
	restored, err := it.packageManager.Restore(ctx, opts.WorkingRoot, file.Path)
	if err != nil || !restored.Succeeded {
		scope.Errorf("Could not restore NuGet package.")
		return false, toolFailure(ErrRestoreFailed, file.Path, err)
	}

	content, err := it.manifests.ReadManifest(file.Path)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", file.Path, err)
	}

	entries := entities.ExtractPackageEntries(content)
	for _, entry := range entities.RecognizedEntries(entries) {
		if entry.IsNewerThan(opts.Version) {
			scope.Warnf("%s is pinned to %s, newer than %s.", entry.Identifier, entry.Version, opts.Version)
		}

		scope.Infof("Updating package %s to %s...", entry.Identifier, opts.Version)
		updated, updateErr := it.packageManager.Update(
			ctx, opts.WorkingRoot, file.Path, entry.Identifier, opts.Version,
		)
		if updateErr != nil || !updated.Succeeded {
			scope.Errorf("Could not update package '%s' in file '%s'.", entry.Identifier, file.Path)
			return false, toolFailure(ErrUpdateFailed, file.Path, updateErr)
		}
	}

	return len(entries) > 0, nil
}

func toolFailure(sentinel error, manifest string, cause error) error {
	if cause != nil {
		return fmt.Errorf("%w (%s): %w", sentinel, manifest, cause)
	}
	return fmt.Errorf("%w (%s)", sentinel, manifest)
}
