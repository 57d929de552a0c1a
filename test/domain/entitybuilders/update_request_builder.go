//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/cup/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// UpdateRequestBuilder helps create update requests with a fluent interface.
type UpdateRequestBuilder struct {
	*testkit.BaseBuilder
	user             string
	token            string
	repository       string
	version          string
	workingDirectory string
	commit           bool
	push             bool
	openPullRequest  bool
}

// NewUpdateRequestBuilder creates a builder for "alice updates acme/widgets to 1.2.3"
// with every gating flag off.
func NewUpdateRequestBuilder() *UpdateRequestBuilder {
	return &UpdateRequestBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		user:        "alice",
		token:       "TOKEN123",
		repository:  "acme/widgets",
		version:     "1.2.3",
	}
}

// WithUser sets the invoking user login.
func (b *UpdateRequestBuilder) WithUser(user string) *UpdateRequestBuilder {
	b.user = user
	return b
}

// WithToken sets the access token.
func (b *UpdateRequestBuilder) WithToken(token string) *UpdateRequestBuilder {
	b.token = token
	return b
}

// WithRepository sets the "owner/name" repository spec.
func (b *UpdateRequestBuilder) WithRepository(repository string) *UpdateRequestBuilder {
	b.repository = repository
	return b
}

// WithVersion sets the target version.
func (b *UpdateRequestBuilder) WithVersion(version string) *UpdateRequestBuilder {
	b.version = version
	return b
}

// WithWorkingDirectory sets the directory the fork is cloned into.
func (b *UpdateRequestBuilder) WithWorkingDirectory(dir string) *UpdateRequestBuilder {
	b.workingDirectory = dir
	return b
}

// WithCommit enables the commit step.
func (b *UpdateRequestBuilder) WithCommit() *UpdateRequestBuilder {
	b.commit = true
	return b
}

// WithPush enables the build and push steps.
func (b *UpdateRequestBuilder) WithPush() *UpdateRequestBuilder {
	b.push = true
	return b
}

// WithPullRequest enables the pull request step.
func (b *UpdateRequestBuilder) WithPullRequest() *UpdateRequestBuilder {
	b.openPullRequest = true
	return b
}

// WithAllSteps enables commit, push and pull request.
func (b *UpdateRequestBuilder) WithAllSteps() *UpdateRequestBuilder {
	return b.WithCommit().WithPush().WithPullRequest()
}

// Build creates the request (satisfies testkit.Builder interface).
func (b *UpdateRequestBuilder) Build() interface{} {
	return b.BuildUpdateRequest()
}

// BuildUpdateRequest creates the request with a concrete return type.
func (b *UpdateRequestBuilder) BuildUpdateRequest() entities.UpdateRequest {
	return entities.UpdateRequest{
		User:             b.user,
		Token:            b.token,
		Repository:       b.repository,
		Version:          b.version,
		WorkingDirectory: b.workingDirectory,
		Commit:           b.commit,
		Push:             b.push,
		OpenPullRequest:  b.openPullRequest,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *UpdateRequestBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	fresh := NewUpdateRequestBuilder()
	b.user = fresh.user
	b.token = fresh.token
	b.repository = fresh.repository
	b.version = fresh.version
	b.workingDirectory = ""
	b.commit = false
	b.push = false
	b.openPullRequest = false
	return b
}

// Clone creates a deep copy of the UpdateRequestBuilder.
func (b *UpdateRequestBuilder) Clone() testkit.Builder {
	return &UpdateRequestBuilder{
		BaseBuilder:      b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		user:             b.user,
		token:            b.token,
		repository:       b.repository,
		version:          b.version,
		workingDirectory: b.workingDirectory,
		commit:           b.commit,
		push:             b.push,
		openPullRequest:  b.openPullRequest,
	}
}
