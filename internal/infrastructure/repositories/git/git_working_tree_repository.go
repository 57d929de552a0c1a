package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"

	"github.com/rios0rios0/cup/internal/domain/entities"
	"github.com/rios0rios0/cup/internal/domain/repositories"
)

const directoryMode = 0o755

var (
	_ repositories.WorkingTreeRepository = (*WorkingTreeRepository)(nil)
	_ repositories.WorkingTree           = (*WorkingTree)(nil)
)

// WorkingTreeRepository implements repositories.WorkingTreeRepository with go-git.
type WorkingTreeRepository struct{}

// NewWorkingTreeRepository creates a new go-git backed WorkingTreeRepository.
func NewWorkingTreeRepository() *WorkingTreeRepository {
	return &WorkingTreeRepository{}
}

// PrepareDestination returns root/name, creating it when missing.
func (it *WorkingTreeRepository) PrepareDestination(root, name string) (string, error) {
	path := filepath.Join(root, name)

	entries, err := os.ReadDir(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if mkdirErr := os.MkdirAll(path, directoryMode); mkdirErr != nil {
			return "", fmt.Errorf("failed to create %q: %w", path, mkdirErr)
		}
		return path, nil
	case err != nil:
		return "", fmt.Errorf("failed to read %q: %w", path, err)
	case len(entries) > 0:
		return "", fmt.Errorf("%w: %s", repositories.ErrDestinationNotEmpty, path)
	default:
		return path, nil
	}
}

// Clone performs a full clone of input.URL into input.Path and checks out the default branch.
func (it *WorkingTreeRepository) Clone(
	ctx context.Context,
	input entities.CloneInput,
) (repositories.WorkingTree, error) {
	opts := &gogit.CloneOptions{URL: input.URL}
	if input.Token != "" {
		opts.Auth = &githttp.BasicAuth{Username: input.Username, Password: input.Token}
	}

	repo, err := gogit.PlainCloneContext(ctx, input.Path, false, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to clone %q: %w", input.URL, err)
	}

	return &WorkingTree{repo: repo}, nil
}

// WorkingTree implements repositories.WorkingTree over a go-git repository.
type WorkingTree struct {
	repo *gogit.Repository
}

// CreateAndCheckoutBranch creates name at HEAD and checks it out.
func (it *WorkingTree) CreateAndCheckoutBranch(name string) error {
	branch := plumbing.NewBranchReferenceName(name)

	if _, err := it.repo.Reference(branch, false); err == nil {
		return fmt.Errorf("%w: %s", repositories.ErrBranchExists, name)
	} else if !errors.Is(err, plumbing.ErrReferenceNotFound) {
		return fmt.Errorf("failed to look up branch %q: %w", name, err)
	}

	head, err := it.repo.Head()
	if err != nil {
		return fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	if setErr := it.repo.Storer.SetReference(plumbing.NewHashReference(branch, head.Hash())); setErr != nil {
		return fmt.Errorf("failed to create branch %q: %w", name, setErr)
	}

	worktree, err := it.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree: %w", err)
	}

	if checkoutErr := worktree.Checkout(&gogit.CheckoutOptions{Branch: branch}); checkoutErr != nil {
		return fmt.Errorf("failed to check out %q: %w", name, checkoutErr)
	}

	return nil
}

// StageAll stages additions, modifications and deletions.
func (it *WorkingTree) StageAll() error {
	worktree, err := it.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree: %w", err)
	}

	if addErr := worktree.AddWithOptions(&gogit.AddOptions{All: true}); addErr != nil {
		return fmt.Errorf("failed to stage changes: %w", addErr)
	}
	return nil
}

// HasPendingChanges reports whether the status is not clean.
func (it *WorkingTree) HasPendingChanges() (bool, error) {
	worktree, err := it.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("failed to open worktree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return false, fmt.Errorf("failed to retrieve status: %w", err)
	}
	return !status.IsClean(), nil
}

// Commit records the staged changes with author as both author and committer.
func (it *WorkingTree) Commit(message string, author entities.GitIdentity) (string, error) {
	worktree, err := it.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to open worktree: %w", err)
	}

	signature := &object.Signature{
		Name:  author.Name,
		Email: author.Email,
		When:  time.Now(),
	}

	hash, err := worktree.Commit(message, &gogit.CommitOptions{
		Author:    signature,
		Committer: signature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}
	return hash.String(), nil
}
