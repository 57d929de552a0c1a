package repositories

import (
	"context"

	"github.com/rios0rios0/cup/internal/domain/entities"
)

// PackageManagerRepository drives the external package-manager executable.
// An error means the tool could not be fetched or started; a started tool
// that exits non-zero is reported through ToolInvocationResult.Succeeded.
type PackageManagerRepository interface {
	Restore(ctx context.Context, workingRoot, manifest string) (entities.ToolInvocationResult, error)
	Update(
		ctx context.Context,
		workingRoot, manifest, identifier, version string,
	) (entities.ToolInvocationResult, error)
}
