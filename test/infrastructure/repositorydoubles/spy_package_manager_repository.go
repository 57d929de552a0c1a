//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/cup/internal/domain/entities"
	"github.com/rios0rios0/cup/internal/domain/repositories"
)

// PackageUpdate records one Update call.
type PackageUpdate struct {
	WorkingRoot string
	Manifest    string
	Identifier  string
	Version     string
}

// SpyPackageManagerRepository implements repositories.PackageManagerRepository.
// Every call succeeds unless the manifest is listed in one of the failure maps.
type SpyPackageManagerRepository struct {
	// --- Restore ---
	Restored        []string
	RestoreFailures map[string]bool  // manifest -> exits non-zero
	RestoreErrors   map[string]error // manifest -> cannot start

	// --- Update ---
	Updates        []PackageUpdate
	UpdateFailures map[string]bool // identifier -> exits non-zero
	UpdateErr      error
}

var _ repositories.PackageManagerRepository = (*SpyPackageManagerRepository)(nil)

func (s *SpyPackageManagerRepository) Restore(
	_ context.Context,
	_, manifest string,
) (entities.ToolInvocationResult, error) {
	s.Restored = append(s.Restored, manifest)
	if err := s.RestoreErrors[manifest]; err != nil {
		return entities.ToolInvocationResult{}, err
	}
	return entities.ToolInvocationResult{Succeeded: !s.RestoreFailures[manifest]}, nil
}

func (s *SpyPackageManagerRepository) Update(
	_ context.Context,
	workingRoot, manifest, identifier, version string,
) (entities.ToolInvocationResult, error) {
	s.Updates = append(s.Updates, PackageUpdate{
		WorkingRoot: workingRoot,
		Manifest:    manifest,
		Identifier:  identifier,
		Version:     version,
	})
	if s.UpdateErr != nil {
		return entities.ToolInvocationResult{}, s.UpdateErr
	}
	return entities.ToolInvocationResult{Succeeded: !s.UpdateFailures[identifier]}, nil
}
