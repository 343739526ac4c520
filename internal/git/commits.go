package git

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/juparave/commitguard/internal/domain"
	"github.com/juparave/commitguard/internal/util"
	"go.uber.org/zap"
)

// ErrNotRepository is returned when a path is not a Git working copy
var ErrNotRepository = errors.New("not a git repository")

// CommandError reports a failed git invocation
type CommandError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git %s failed: %v", strings.Join(e.Args, " "), e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *CommandError) Unwrap() error { return e.Err }

// Client interacts with Git repositories through the git binary
type Client struct {
	logger *zap.SugaredLogger
	binary string
}

// NewClient creates a new Git client
func NewClient(logger *zap.SugaredLogger) *Client {
	return &Client{logger: logger, binary: "git"}
}

// EnsureRepo checks that path is a directory with a .git folder
func EnsureRepo(path string) error {
	if !util.DirExists(path) {
		return fmt.Errorf("%w: path does not exist or is not a directory: %s", ErrNotRepository, path)
	}
	if !IsValidRepo(path) {
		return fmt.Errorf("%w: no .git folder found in %s", ErrNotRepository, path)
	}
	return nil
}

// IsValidRepo checks if a path is a valid Git repository
func IsValidRepo(path string) bool {
	return util.DirExists(filepath.Join(path, ".git"))
}

// LastNCommits returns the hashes of the last n commits, newest first
func (c *Client) LastNCommits(ctx context.Context, repoPath string, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}

	output, err := c.run(ctx, repoPath, "log", "-n", strconv.Itoa(n), "--pretty=format:%H")
	if err != nil {
		return nil, err
	}

	var hashes []string
	s := bufio.NewScanner(bytes.NewReader(output))
	for s.Scan() {
		if line := strings.TrimSpace(s.Text()); line != "" {
			hashes = append(hashes, line)
		}
	}
	return hashes, s.Err()
}

// GetDiff returns the patch introduced by a specific commit
func (c *Client) GetDiff(ctx context.Context, repoPath, commitHash string) (string, error) {
	output, err := c.run(ctx, repoPath, "show", "--format=", "--patch", "--no-color", commitHash)
	if err != nil {
		return "", err
	}
	return string(output), nil
}

// GetMessage returns the full commit message (subject and body), trimmed
func (c *Client) GetMessage(ctx context.Context, repoPath, commitHash string) (string, error) {
	output, err := c.run(ctx, repoPath, "show", "-s", "--format=%B", commitHash)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}

// GetCommits returns the last n commits of repoPath with their messages
func (c *Client) GetCommits(ctx context.Context, repoPath string, n int) ([]domain.Commit, error) {
	hashes, err := c.LastNCommits(ctx, repoPath, n)
	if err != nil {
		return nil, err
	}

	commits := make([]domain.Commit, 0, len(hashes))
	for _, h := range hashes {
		msg, err := c.GetMessage(ctx, repoPath, h)
		if err != nil {
			return nil, err
		}
		commits = append(commits, domain.Commit{Hash: h, Message: msg, RepoPath: repoPath})
	}
	return commits, nil
}

// IsRepoURL reports whether repo looks like something git can clone
func IsRepoURL(repo string) bool {
	for _, prefix := range []string{"http://", "https://", "git@"} {
		if strings.HasPrefix(repo, prefix) {
			return true
		}
	}
	return strings.HasSuffix(repo, ".git")
}

// Prepare resolves repo to a local working copy. Existing directories are
// used in place; URLs are cloned into a temporary directory which the
// returned cleanup function removes.
func (c *Client) Prepare(ctx context.Context, repo string) (string, func(), error) {
	noop := func() {}

	if util.DirExists(repo) {
		return repo, noop, nil
	}
	if !IsRepoURL(repo) {
		return "", noop, fmt.Errorf("%w: %q is neither an existing directory nor a supported URL", ErrNotRepository, repo)
	}

	tmp, err := os.MkdirTemp("", "commitguard-")
	if err != nil {
		return "", noop, fmt.Errorf("creating clone directory: %w", err)
	}
	cleanup := func() {
		if err := os.RemoveAll(tmp); err != nil {
			c.logger.Warnw("removing clone directory", "path", tmp, "error", err)
		}
	}

	c.logger.Infow("cloning repository", "url", repo, "dir", tmp)
	if _, err := c.run(ctx, "", "clone", repo, tmp); err != nil {
		cleanup()
		return "", noop, fmt.Errorf("failed to clone repo %s: %w", repo, err)
	}
	return tmp, cleanup, nil
}

func (c *Client) run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.binary, args...)
	cmd.Dir = dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	c.logger.Debugw("running git", "dir", dir, "args", args)
	output, err := cmd.Output()
	if err != nil {
		return nil, &CommandError{Args: args, Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}
	return output, nil
}
