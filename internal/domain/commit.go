package domain

// CommitMessageLabel is the file path recorded for findings in commit messages
const CommitMessageLabel = "COMMIT_MESSAGE"

// UnknownSource marks findings whose commit or file could not be determined
const UnknownSource = "unknown"

// Commit represents a Git commit selected for scanning
type Commit struct {
	Hash     string
	Message  string
	RepoPath string
}

// ShortHash returns the first 8 characters of the hash for log output
func (c *Commit) ShortHash() string {
	if len(c.Hash) > 8 {
		return c.Hash[:8]
	}
	return c.Hash
}
