package repositories

import (
	"context"
	"errors"

	"github.com/rios0rios0/cup/internal/domain/entities"
)

var (
	// ErrDestinationNotEmpty is returned when the clone destination already holds entries.
	ErrDestinationNotEmpty = errors.New("destination already exists and is not empty")

	// ErrBranchExists is returned when the feature branch is already present.
	ErrBranchExists = errors.New("branch already exists")
)

// WorkingTreeRepository manages local checkouts.
type WorkingTreeRepository interface {
	// PrepareDestination returns root/name, creating it when missing. It fails
	// when the directory already holds files or subdirectories.
	PrepareDestination(root, name string) (string, error)

	// Clone performs a full checkout clone and opens the resulting working tree.
	Clone(ctx context.Context, input entities.CloneInput) (WorkingTree, error)
}

// WorkingTree is an opened local checkout.
type WorkingTree interface {
	// CreateAndCheckoutBranch creates name at HEAD and checks it out.
	// An already existing branch is an error.
	CreateAndCheckoutBranch(name string) error

	// StageAll stages every change in the working tree.
	StageAll() error

	// HasPendingChanges reports whether the status is not clean.
	HasPendingChanges() (bool, error)

	// Commit records the staged changes and returns the new commit hash.
	Commit(message string, author entities.GitIdentity) (string, error)
}
