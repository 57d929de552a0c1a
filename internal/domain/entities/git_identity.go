package entities

// GitIdentity is the author and committer of the update commit.
type GitIdentity struct {
	Name  string
	Email string
}
