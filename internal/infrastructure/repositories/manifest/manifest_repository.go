package manifest

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/cup/internal/domain/entities"
	"github.com/rios0rios0/cup/internal/domain/repositories"
)

var _ repositories.ManifestRepository = (*ManifestRepository)(nil)

// ManifestRepository walks a checkout on the local file system.
type ManifestRepository struct{}

func NewManifestRepository() *ManifestRepository {
	return &ManifestRepository{}
}

// FindManifests returns every packages.config under root in walk order.
// The ".git" directory is never descended into.
func (it *ManifestRepository) FindManifests(root string) ([]entities.ManifestFile, error) {
	var manifests []entities.ManifestFile

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if entry.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if entities.IsManifestName(entry.Name()) {
			manifests = append(manifests, entities.ManifestFile{Path: path})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %q for manifests: %w", root, err)
	}

	logger.Debugf("Found %d manifest(s) under %s", len(manifests), root)
	return manifests, nil
}

func (it *ManifestRepository) ReadManifest(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read manifest %q: %w", path, err)
	}
	return string(content), nil
}
