package nuget

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/cup/internal/domain/entities"
	"github.com/rios0rios0/cup/internal/domain/repositories"
	"github.com/rios0rios0/cup/internal/infrastructure/process"
)

const (
	executableName  = "nuget.exe"
	executableMode  = 0o755
	downloadTimeout = 2 * time.Minute
)

var _ repositories.PackageManagerRepository = (*PackageManagerRepository)(nil)

// PackageManagerRepository implements repositories.PackageManagerRepository
// with nuget.exe, fetched into the working root on first use.
type PackageManagerRepository struct {
	settings *entities.Settings
	runner   process.Runner
	client   *http.Client
}

// NewPackageManagerRepository creates a NuGet client running real processes.
func NewPackageManagerRepository(settings *entities.Settings) *PackageManagerRepository {
	return &PackageManagerRepository{
		settings: settings,
		runner:   process.NewOSRunner(),
		client:   &http.Client{Timeout: downloadTimeout},
	}
}

// Restore runs "nuget restore" for manifest into the sibling packages directory.
func (it *PackageManagerRepository) Restore(
	ctx context.Context,
	workingRoot, manifest string,
) (entities.ToolInvocationResult, error) {
	return it.invoke(ctx, workingRoot, restoreArguments(manifest))
}

// Update runs "nuget update" for a single package of manifest.
func (it *PackageManagerRepository) Update(
	ctx context.Context,
	workingRoot, manifest, identifier, version string,
) (entities.ToolInvocationResult, error) {
	return it.invoke(ctx, workingRoot, updateArguments(manifest, identifier, version))
}

func (it *PackageManagerRepository) invoke(
	ctx context.Context,
	workingRoot string,
	arguments []string,
) (entities.ToolInvocationResult, error) {
	executable, err := it.ensureExecutable(ctx, workingRoot)
	if err != nil {
		return entities.ToolInvocationResult{}, err
	}

	result, err := it.runner.Run(ctx, it.command(executable, arguments))
	if result.Output != "" {
		logger.Debugf("[nuget] %s", result.Output)
	}
	return result, err
}

// command prefixes the invocation with the configured runner (e.g. mono), if any.
func (it *PackageManagerRepository) command(executable string, arguments []string) process.Command {
	if runner := it.settings.NuGet.Runner; runner != "" {
		return process.Command{
			Name:      runner,
			Arguments: append([]string{executable}, arguments...),
			Capture:   true,
		}
	}
	return process.Command{Name: executable, Arguments: arguments, Capture: true}
}

// ensureExecutable returns the path of nuget.exe under workingRoot, downloading it when absent.
func (it *PackageManagerRepository) ensureExecutable(ctx context.Context, workingRoot string) (string, error) {
	path := filepath.Join(workingRoot, executableName)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("failed to stat %q: %w", path, err)
	}

	logger.Infof("Downloading %s from %s...", executableName, it.settings.NuGet.URL)
	if err := it.download(ctx, path); err != nil {
		return "", err
	}
	return path, nil
}

// download writes to a temporary file first so an interrupted transfer never leaves a truncated executable.
func (it *PackageManagerRepository) download(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, it.settings.NuGet.URL, nil)
	if err != nil {
		return fmt.Errorf("failed to build download request: %w", err)
	}

	resp, err := it.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", executableName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download %s: unexpected status code %d", executableName, resp.StatusCode)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), executableName+".*.partial")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, copyErr := io.Copy(tmp, resp.Body); copyErr != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", executableName, copyErr)
	}
	if closeErr := tmp.Close(); closeErr != nil {
		return fmt.Errorf("failed to write %s: %w", executableName, closeErr)
	}
	if chmodErr := os.Chmod(tmp.Name(), executableMode); chmodErr != nil {
		return fmt.Errorf("failed to mark %s executable: %w", executableName, chmodErr)
	}

	return os.Rename(tmp.Name(), path)
}

// packagesDirectory returns the "../packages" directory next to manifest, collapsed.
func packagesDirectory(manifest string) string {
	return filepath.Clean(filepath.Join(filepath.Dir(manifest), "..", "packages"))
}

func restoreArguments(manifest string) []string {
	return []string{"restore", manifest, "-PackagesDirectory", packagesDirectory(manifest)}
}

func updateArguments(manifest, identifier, version string) []string {
	return []string{
		"update", manifest,
		"-Id", identifier,
		"-Version", version,
		"-RepositoryPath", packagesDirectory(manifest),
	}
}
