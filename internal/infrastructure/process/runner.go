// Package process runs the external tools of an update (package manager,
// build script, git push) and reports their exit status.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/cup/internal/domain/entities"
)

// Command describes a single external process invocation.
type Command struct {
	Name      string
	Arguments []string
	Directory string // empty for the current directory
	Capture   bool   // capture stdout instead of streaming it to the console
}

func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Arguments, " "))
}

// Runner executes commands. Implementations must block until the process exits.
type Runner interface {
	Run(ctx context.Context, command Command) (entities.ToolInvocationResult, error)
}

// OSRunner executes commands with os/exec.
type OSRunner struct {
	stdout io.Writer
	stderr io.Writer
}

// NewOSRunner creates a runner that streams uncaptured output to the process console.
func NewOSRunner() *OSRunner {
	return &OSRunner{stdout: os.Stdout, stderr: os.Stderr}
}

// Run starts the command and waits for it. A process that started and exited
// non-zero is not an error: it is reported with Succeeded set to false.
func (it *OSRunner) Run(ctx context.Context, command Command) (entities.ToolInvocationResult, error) {
	logger.Debugf("Executing: %s", command)

	executable := exec.CommandContext(ctx, command.Name, command.Arguments...)
	if command.Directory != "" {
		executable.Dir = command.Directory
	}

	var captured bytes.Buffer
	if command.Capture {
		executable.Stdout = &captured
	} else {
		executable.Stdout = it.stdout
	}
	executable.Stderr = it.stderr

	runErr := executable.Run()
	result := entities.ToolInvocationResult{
		Succeeded: runErr == nil,
		Output:    captured.String(),
	}

	if runErr != nil {
		exitErr := &exec.ExitError{}
		if errors.As(runErr, &exitErr) {
			logger.Debugf("%s exited with code %d", command.Name, exitErr.ExitCode())
			return result, nil
		}
		return result, fmt.Errorf("failed to start %s: %w", command.Name, runErr)
	}

	return result, nil
}
