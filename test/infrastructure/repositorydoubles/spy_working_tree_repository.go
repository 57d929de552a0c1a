//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"path/filepath"

	"github.com/rios0rios0/cup/internal/domain/entities"
	"github.com/rios0rios0/cup/internal/domain/repositories"
)

// SpyWorkingTreeRepository implements repositories.WorkingTreeRepository
// without touching the file system.
type SpyWorkingTreeRepository struct {
	// --- PrepareDestination ---
	PrepareErr    error
	PreparedRoots []string
	PreparedNames []string

	// --- Clone ---
	Tree        *SpyWorkingTree
	CloneErr    error
	CloneInputs []entities.CloneInput
}

var _ repositories.WorkingTreeRepository = (*SpyWorkingTreeRepository)(nil)

// NewSpyWorkingTreeRepository returns a spy whose clones have pending changes.
func NewSpyWorkingTreeRepository() *SpyWorkingTreeRepository {
	return &SpyWorkingTreeRepository{Tree: &SpyWorkingTree{Pending: true, CommitHash: "abc123"}}
}

func (s *SpyWorkingTreeRepository) PrepareDestination(root, name string) (string, error) {
	s.PreparedRoots = append(s.PreparedRoots, root)
	s.PreparedNames = append(s.PreparedNames, name)
	if s.PrepareErr != nil {
		return "", s.PrepareErr
	}
	return filepath.Join(root, name), nil
}

func (s *SpyWorkingTreeRepository) Clone(
	_ context.Context,
	input entities.CloneInput,
) (repositories.WorkingTree, error) {
	s.CloneInputs = append(s.CloneInputs, input)
	if s.CloneErr != nil {
		return nil, s.CloneErr
	}
	return s.Tree, nil
}

// SpyWorkingTree implements repositories.WorkingTree, recording every call in Calls.
type SpyWorkingTree struct {
	Calls []string

	// --- CreateAndCheckoutBranch ---
	Branches  []string
	BranchErr error

	// --- StageAll ---
	StageErr error

	// --- HasPendingChanges ---
	Pending   bool
	StatusErr error

	// --- Commit ---
	CommitHash     string
	CommitErr      error
	CommitMessages []string
	CommitAuthors  []entities.GitIdentity
}

var _ repositories.WorkingTree = (*SpyWorkingTree)(nil)

func (s *SpyWorkingTree) CreateAndCheckoutBranch(name string) error {
	s.Calls = append(s.Calls, "branch")
	s.Branches = append(s.Branches, name)
	return s.BranchErr
}

func (s *SpyWorkingTree) StageAll() error {
	s.Calls = append(s.Calls, "stage")
	return s.StageErr
}

func (s *SpyWorkingTree) HasPendingChanges() (bool, error) {
	s.Calls = append(s.Calls, "status")
	return s.Pending, s.StatusErr
}

func (s *SpyWorkingTree) Commit(message string, author entities.GitIdentity) (string, error) {
	s.Calls = append(s.Calls, "commit")
	s.CommitMessages = append(s.CommitMessages, message)
	s.CommitAuthors = append(s.CommitAuthors, author)
	if s.CommitErr != nil {
		return "", s.CommitErr
	}
	return s.CommitHash, nil
}
