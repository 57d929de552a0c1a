package entities

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	branchNameFmt       = "feature/cake-%s"
	commitMessageFmt    = "Updated to Cake %s."
	pullRequestTitleFmt = "Update to Cake %s."
	pullRequestBodyFmt  = "This PR was automatically generated by a tool (not @%s).\n\n" +
		":warning: DO NOT merge this without review! :smile:"
)

// ErrInvalidVersion is returned when the target version is not a dotted numeric version.
var ErrInvalidVersion = errors.New("the provided version is not valid")

// versionPattern accepts two to four dot-separated numeric components (e.g. "0.26", "1.2.3", "1.2.3.4").
var versionPattern = regexp.MustCompile(`^\d+\.\d+(\.\d+){0,2}$`)

// UpdateRequest holds everything a single "update" invocation needs.
// It is built once by the controller and never mutated afterwards.
type UpdateRequest struct {
	User             string
	Token            string
	Repository       string // "owner/name"
	Version          string
	WorkingDirectory string // empty means the current directory
	Commit           bool
	Push             bool
	OpenPullRequest  bool
}

// ValidateVersion checks that version is a plain dotted numeric version
// whose components each fit in a signed 32-bit integer.
func ValidateVersion(version string) error {
	if !versionPattern.MatchString(version) {
		return fmt.Errorf("%w: %q", ErrInvalidVersion, version)
	}
	for _, component := range strings.Split(version, ".") {
		if _, err := strconv.ParseInt(component, 10, 32); err != nil {
			return fmt.Errorf("%w: component %q out of range", ErrInvalidVersion, component)
		}
	}
	return nil
}

// BranchName returns the feature branch that holds the update commit.
func (r UpdateRequest) BranchName() string {
	return fmt.Sprintf(branchNameFmt, r.Version)
}

// CommitMessage returns the message of the update commit.
func (r UpdateRequest) CommitMessage() string {
	return fmt.Sprintf(commitMessageFmt, r.Version)
}

// PullRequestTitle returns the title of the pull request opened upstream.
func (r UpdateRequest) PullRequestTitle() string {
	return fmt.Sprintf(pullRequestTitleFmt, r.Version)
}

// PullRequestBody returns the body of the pull request, including the
// disclaimer that a tool and not the user authored it.
func (r UpdateRequest) PullRequestBody() string {
	return fmt.Sprintf(pullRequestBodyFmt, r.User)
}

// PullRequestHead returns the "user:branch" head reference for a cross-fork PR.
func (r UpdateRequest) PullRequestHead() string {
	return r.User + ":" + r.BranchName()
}
