package entities

import (
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"golang.org/x/mod/semver"
)

const (
	// ManifestFileName is the NuGet per-project manifest.
	ManifestFileName = "packages.config"

	// ToolsDirectory holds the build tool-chain manifest, which is never rewritten.
	ToolsDirectory = "tools"
)

// RecognizedPackages are the identifiers whose pinned version gets rewritten.
var RecognizedPackages = []string{"Cake.Core", "Cake.Testing"} //nolint:gochecknoglobals // fixed set

var packageEntryPattern = regexp.MustCompile(
	`<package id="(?P<id>[A-Za-z0-9.]+)" version="(?P<version>\d+\.\d+\.\d+)" targetFramework="(?P<framework>[a-z0-9]+)" />`,
)

// ManifestFile is a packages.config found under a repository root.
type ManifestFile struct {
	Path string
}

// PackageEntry is a single <package /> element of a manifest.
type PackageEntry struct {
	Identifier      string
	Version         string
	TargetFramework string
}

// IsRecognized reports whether the entry is one of the RecognizedPackages (case-insensitive).
func (e PackageEntry) IsRecognized() bool {
	for _, name := range RecognizedPackages {
		if strings.EqualFold(e.Identifier, name) {
			return true
		}
	}
	return false
}

// IsNewerThan reports whether the pinned version is strictly newer than target.
// It returns false when either side is not a semantic version.
func (e PackageEntry) IsNewerThan(target string) bool {
	current := "v" + e.Version
	wanted := "v" + target
	if !semver.IsValid(current) || !semver.IsValid(wanted) {
		return false
	}
	return semver.Compare(current, wanted) > 0
}

// ExtractPackageEntries returns every package entry matching the manifest
// record pattern, in document order. Unrecognized identifiers are included.
func ExtractPackageEntries(content string) []PackageEntry {
	matches := packageEntryPattern.FindAllStringSubmatch(content, -1)
	entries := make([]PackageEntry, 0, len(matches))
	for _, match := range matches {
		entries = append(entries, PackageEntry{
			Identifier:      match[packageEntryPattern.SubexpIndex("id")],
			Version:         match[packageEntryPattern.SubexpIndex("version")],
			TargetFramework: match[packageEntryPattern.SubexpIndex("framework")],
		})
	}
	return entries
}

// RecognizedEntries keeps only the recognized entries, deduplicated by
// identifier (case-insensitive). The first occurrence wins.
func RecognizedEntries(entries []PackageEntry) []PackageEntry {
	seen := make(map[string]bool)
	var result []PackageEntry
	for _, entry := range entries {
		if !entry.IsRecognized() {
			continue
		}
		key := strings.ToLower(entry.Identifier)
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, entry)
	}
	return result
}

// ToolsManifestPath returns the manifest path that belongs to the build tool-chain.
func ToolsManifestPath(repositoryRoot string) string {
	return filepath.Join(repositoryRoot, ToolsDirectory, ManifestFileName)
}

// SamePath compares two paths with the case sensitivity of the host file system.
func SamePath(a, b string) bool {
	a = filepath.Clean(a)
	b = filepath.Clean(b)
	if pathsAreCaseInsensitive() {
		return strings.EqualFold(a, b)
	}
	return a == b
}

func pathsAreCaseInsensitive() bool {
	return runtime.GOOS == "windows" || runtime.GOOS == "darwin"
}

// IsManifestName reports whether a file name is a packages.config, honoring host case sensitivity.
func IsManifestName(name string) bool {
	if pathsAreCaseInsensitive() {
		return strings.EqualFold(name, ManifestFileName)
	}
	return name == ManifestFileName
}
