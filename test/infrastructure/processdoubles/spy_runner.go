//go:build integration || unit || test

// Package processdoubles provides test doubles for the process runner.
package processdoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/cup/internal/domain/entities"
	"github.com/rios0rios0/cup/internal/infrastructure/process"
)

// SpyRunner implements process.Runner, recording every command it receives.
type SpyRunner struct {
	// Results are returned in order; the last one repeats once exhausted.
	Results  []entities.ToolInvocationResult
	RunErr   error
	Commands []process.Command
}

var _ process.Runner = (*SpyRunner)(nil)

func (s *SpyRunner) Run(_ context.Context, command process.Command) (entities.ToolInvocationResult, error) {
	s.Commands = append(s.Commands, command)
	if s.RunErr != nil {
		return entities.ToolInvocationResult{}, s.RunErr
	}
	if len(s.Results) == 0 {
		return entities.ToolInvocationResult{Succeeded: true}, nil
	}
	index := len(s.Commands) - 1
	if index >= len(s.Results) {
		index = len(s.Results) - 1
	}
	return s.Results[index], nil
}
