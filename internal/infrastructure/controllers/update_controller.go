package controllers

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/cup/internal/domain/commands"
	"github.com/rios0rios0/cup/internal/domain/entities"
)

// ErrUpdateFailed is returned to Cobra when the workflow ends with a non-zero exit code.
var ErrUpdateFailed = errors.New("update failed")

// UpdateController handles the "update" subcommand.
type UpdateController struct {
	command  commands.Update
	settings *entities.Settings
}

// NewUpdateController creates a new UpdateController.
func NewUpdateController(command commands.Update, settings *entities.Settings) *UpdateController {
	return &UpdateController{command: command, settings: settings}
}

// GetBind returns the Cobra command metadata for the update controller.
func (it *UpdateController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "update <USER> <TOKEN> <REPOSITORY> <VERSION>",
		Short: "Update the Cake version of an addin repository",
		Long: `Fork REPOSITORY (owner/name) as USER, clone the fork into the working
directory, create the branch feature/cake-VERSION and pin Cake.Core and
Cake.Testing to VERSION in every packages.config.

TOKEN may be a literal access token, an ${ENV_VAR} reference or the path
to a file holding the token.

Optionally commit the change, build and push it, and open a pull request
against the upstream repository.`,
	}
}

// AddFlags adds the update-specific flags to the given Cobra command.
func (it *UpdateController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("working", "w", "", "Working directory the fork is cloned into (default: current directory)")
	cmd.Flags().BoolP("commit", "c", false, "Commit the updated manifests")
	cmd.Flags().BoolP("push", "p", false, "Build and push the feature branch (requires --commit)")
	cmd.Flags().Bool("pr", false, "Open a pull request (requires a successful --push)")
}

// Execute loads the configuration and runs the update workflow.
func (it *UpdateController) Execute(cmd *cobra.Command, arguments []string) error {
	if err := it.loadSettings(cmd); err != nil {
		return err
	}

	workingDirectory, _ := cmd.Flags().GetString("working")
	commit, _ := cmd.Flags().GetBool("commit")
	push, _ := cmd.Flags().GetBool("push")
	openPullRequest, _ := cmd.Flags().GetBool("pr")

	outcome := it.command.Execute(context.Background(), it.settings, entities.UpdateRequest{
		User:             arguments[0],
		Token:            entities.ResolveToken(arguments[1]),
		Repository:       arguments[2],
		Version:          arguments[3],
		WorkingDirectory: workingDirectory,
		Commit:           commit,
		Push:             push,
		OpenPullRequest:  openPullRequest,
	})
	if outcome.Failed() {
		return fmt.Errorf("%w: %s", ErrUpdateFailed, outcome.Message)
	}
	return nil
}

// loadSettings applies the configuration file, when one is given or found, over the defaults.
func (it *UpdateController) loadSettings(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		found, err := entities.FindConfigFile()
		if err != nil {
			logger.Debugf("No config file found, using defaults: %v", err)
			return nil
		}
		configPath = found
	}

	logger.Debugf("Using config file: %s", configPath)
	if err := it.settings.Load(configPath); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}
