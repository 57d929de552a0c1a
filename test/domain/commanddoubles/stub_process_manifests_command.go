//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/cup/internal/diagnostics"
	"github.com/rios0rios0/cup/internal/domain/commands"
)

// StubProcessManifestsCommand is a stub implementation of commands.ProcessManifests.
type StubProcessManifestsCommand struct {
	ExecuteCallCount int
	Processed        int
	ExecuteErr       error
	LastOpts         commands.ProcessManifestsOptions
}

var _ commands.ProcessManifests = (*StubProcessManifestsCommand)(nil)

func (s *StubProcessManifestsCommand) Execute(
	_ context.Context,
	_ diagnostics.Log,
	opts commands.ProcessManifestsOptions,
) (int, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	return s.Processed, s.ExecuteErr
}
