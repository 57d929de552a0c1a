//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"fmt"
	"os"
	"sort"

	"github.com/rios0rios0/cup/internal/domain/entities"
	"github.com/rios0rios0/cup/internal/domain/repositories"
)

// StubManifestRepository implements repositories.ManifestRepository over an
// in-memory path -> content map.
type StubManifestRepository struct {
	Contents map[string]string
	FindErr  error
	ReadErr  error
	Reads    []string
}

var _ repositories.ManifestRepository = (*StubManifestRepository)(nil)

func NewStubManifestRepository(contents map[string]string) *StubManifestRepository {
	return &StubManifestRepository{Contents: contents}
}

// FindManifests returns every stored path, sorted.
func (s *StubManifestRepository) FindManifests(_ string) ([]entities.ManifestFile, error) {
	if s.FindErr != nil {
		return nil, s.FindErr
	}
	paths := make([]string, 0, len(s.Contents))
	for path := range s.Contents {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	files := make([]entities.ManifestFile, 0, len(paths))
	for _, path := range paths {
		files = append(files, entities.ManifestFile{Path: path})
	}
	return files, nil
}

func (s *StubManifestRepository) ReadManifest(path string) (string, error) {
	s.Reads = append(s.Reads, path)
	if s.ReadErr != nil {
		return "", s.ReadErr
	}
	content, ok := s.Contents[path]
	if !ok {
		return "", fmt.Errorf("%s: %w", path, os.ErrNotExist)
	}
	return content, nil
}
