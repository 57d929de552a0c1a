//go:build unit

package git

import (
	"fmt"

	gogit "github.com/go-git/go-git/v5"
)

// Open opens an existing checkout for testing.
func Open(path string) (*WorkingTree, error) {
	repo, err := gogit.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", path, err)
	}
	return &WorkingTree{repo: repo}, nil
}

// CurrentBranch returns the short name of the checked out branch for testing.
func (it *WorkingTree) CurrentBranch() (string, error) {
	head, err := it.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	return head.Name().Short(), nil
}
