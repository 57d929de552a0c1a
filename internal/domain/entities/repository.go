package entities

import (
	"errors"
	"fmt"
	"strings"

	gitforgeEntities "github.com/rios0rios0/gitforge/pkg/global/domain/entities"
)

// ErrInvalidRepository is returned when a repository spec is not "owner/name".
var ErrInvalidRepository = errors.New("invalid repository")

// Repository is re-exported from gitforge.
type Repository = gitforgeEntities.Repository

// RepositoryReference identifies the upstream repository to update.
type RepositoryReference struct {
	Owner string
	Name  string
}

// String returns the "owner/name" form.
func (r RepositoryReference) String() string {
	return r.Owner + "/" + r.Name
}

// ParseRepositoryReference parses an "owner/name" spec. Both parts must be non-empty.
func ParseRepositoryReference(spec string) (RepositoryReference, error) {
	parts := strings.Split(strings.TrimSpace(spec), "/")
	if len(parts) != 2 { //nolint:mnd // owner + name
		return RepositoryReference{}, fmt.Errorf("%w: expected owner/name, got %q", ErrInvalidRepository, spec)
	}

	owner := strings.TrimSpace(parts[0])
	if owner == "" {
		return RepositoryReference{}, fmt.Errorf("%w: could not parse repository owner", ErrInvalidRepository)
	}

	name := strings.TrimSpace(parts[1])
	if name == "" {
		return RepositoryReference{}, fmt.Errorf("%w: could not parse repository name", ErrInvalidRepository)
	}

	return RepositoryReference{Owner: owner, Name: name}, nil
}

// CloneInput describes a clone of a remote into a local directory.
type CloneInput struct {
	URL      string
	Path     string
	Username string
	Token    string
}
