package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	defaultCloneURL         = "https://github.com"
	defaultPullRequestBase  = "develop"
	defaultNuGetURL         = "https://dist.nuget.org/win-x86-commandline/latest/nuget.exe"
	defaultBuildScript      = "build.ps1"
	defaultBuildInterpreter = "powershell"
	defaultGitExecutable    = "git"
	defaultGitRemote        = "origin"
)

// Settings is the flat configuration of cup. Every field has a default,
// so a config file only needs the keys it wants to override.
type Settings struct {
	GitHub      GitHubSettings      `yaml:"github"`
	PullRequest PullRequestSettings `yaml:"pull_request"`
	NuGet       NuGetSettings       `yaml:"nuget"`
	Build       BuildSettings       `yaml:"build"`
	Git         GitSettings         `yaml:"git"`
}

// GitHubSettings configures the hosting API and clone host.
type GitHubSettings struct {
	APIURL   string `yaml:"api_url"`   // GitHub Enterprise API base; empty for github.com
	CloneURL string `yaml:"clone_url"` // host prefix of fork clone URLs
}

// PullRequestSettings configures the upstream pull request.
type PullRequestSettings struct {
	Base string `yaml:"base"`
}

// NuGetSettings configures the package-manager executable.
type NuGetSettings struct {
	URL    string `yaml:"url"`
	Runner string `yaml:"runner"` // e.g. "mono" on non-Windows hosts
}

// BuildSettings configures the pre-push build.
type BuildSettings struct {
	Script      string `yaml:"script"`
	Interpreter string `yaml:"interpreter"`
}

// GitSettings configures the git executable used for pushing.
type GitSettings struct {
	Executable string `yaml:"executable"`
	Remote     string `yaml:"remote"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewSettings returns the default settings.
func NewSettings() *Settings {
	return &Settings{
		GitHub:      GitHubSettings{CloneURL: defaultCloneURL},
		PullRequest: PullRequestSettings{Base: defaultPullRequestBase},
		NuGet:       NuGetSettings{URL: defaultNuGetURL},
		Build:       BuildSettings{Script: defaultBuildScript, Interpreter: defaultBuildInterpreter},
		Git:         GitSettings{Executable: defaultGitExecutable, Remote: defaultGitRemote},
	}
}

// Load reads a YAML config file on top of the current values.
func (s *Settings) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	if unmarshalErr := yaml.Unmarshal(data, s); unmarshalErr != nil {
		return fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	return s.validate()
}

func (s *Settings) validate() error {
	if s.PullRequest.Base == "" {
		return errors.New("pull_request.base must not be empty")
	}
	if s.Build.Script == "" || s.Build.Interpreter == "" {
		return errors.New("build.script and build.interpreter must not be empty")
	}
	if s.Git.Executable == "" || s.Git.Remote == "" {
		return errors.New("git.executable and git.remote must not be empty")
	}
	if s.NuGet.URL == "" {
		return errors.New("nuget.url must not be empty")
	}
	if s.GitHub.CloneURL == "" {
		return errors.New("github.clone_url must not be empty")
	}
	return nil
}

// ForkCloneURL returns the HTTPS URL of the user's fork.
func (s *Settings) ForkCloneURL(user, repository string) string {
	return strings.TrimSuffix(s.GitHub.CloneURL, "/") + "/" + user + "/" + repository
}

// FindConfigFile searches for a configuration file in standard locations.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{".", ".config"}
	if homeDir != "" {
		locations = append(locations, homeDir, filepath.Join(homeDir, ".config"))
	}

	patterns := []string{".cup.yaml", ".cup.yml", "cup.yaml", "cup.yml"}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// ResolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func ResolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	if info, statErr := os.Stat(resolved); statErr == nil && !info.IsDir() {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Debugf("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}
