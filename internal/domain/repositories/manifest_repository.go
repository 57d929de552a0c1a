package repositories

import "github.com/rios0rios0/cup/internal/domain/entities"

// ManifestRepository finds and reads packages.config files on disk.
type ManifestRepository interface {
	// FindManifests returns every manifest under root, recursively.
	FindManifests(root string) ([]entities.ManifestFile, error)

	// ReadManifest returns the full textual content of a manifest.
	ReadManifest(path string) (string, error)
}
