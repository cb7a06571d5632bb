// Package git records saved documents as git commits.
package git

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// LockFile is the name of the lock file created in the working directory
// while a commit is being recorded.
const LockFile = ".keyloom.lock"

// Client wraps git command execution with a file-based lock for process safety.
type Client struct {
	WorkDir  string
	Logger   *slog.Logger
	lockPath string
}

// NewClient creates a new git client for the given working directory.
func NewClient(workDir string, logger *slog.Logger) *Client {
	return &Client{
		WorkDir:  workDir,
		Logger:   logger,
		lockPath: LockFile,
	}
}

// IsInstalled reports whether a git binary is available on PATH.
func IsInstalled() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// Lock acquires the file-based lock, retrying until ctx is done.
func (c *Client) Lock(ctx context.Context) (func(), error) {
	fullLockPath := filepath.Join(c.WorkDir, c.lockPath)

	for {
		f, err := os.OpenFile(fullLockPath, os.O_CREATE|os.O_EXCL, 0666)
		if err == nil {
			f.Close()
			return func() {
				os.Remove(fullLockPath)
			}, nil
		}

		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to acquire lock: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("failed to acquire lock: %w", ctx.Err())
		case <-time.After(10 * time.Millisecond):
		}
	}
}

// Run executes a raw git command in the working directory.
// It does NOT acquire the lock; callers that mutate the index use Lock.
func (c *Client) Run(ctx context.Context, args ...string) (string, error) {
	if c.Logger != nil {
		c.Logger.Debug("executing git", "args", args, "dir", c.WorkDir)
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = c.WorkDir

	out, err := cmd.CombinedOutput()
	output := string(out)

	if err != nil {
		return output, fmt.Errorf("git %s failed: %w\nOutput: %s", args[0], err, output)
	}

	return strings.TrimSpace(output), nil
}

// IsRepo reports whether the working directory is inside a git work tree.
func (c *Client) IsRepo(ctx context.Context) bool {
	out, err := c.Run(ctx, "rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

// Init initializes a new git repository. Re-running it is safe.
func (c *Client) Init(ctx context.Context) error {
	_, err := c.Run(ctx, "init")
	return err
}

// Add stages files.
func (c *Client) Add(ctx context.Context, files ...string) error {
	if len(files) == 0 {
		return nil
	}
	args := append([]string{"add", "--"}, files...)
	_, err := c.Run(ctx, args...)
	return err
}

// Changed returns the porcelain status lines restricted to files.
func (c *Client) Changed(ctx context.Context, files ...string) ([]string, error) {
	args := append([]string{"status", "--porcelain", "--"}, files...)
	out, err := c.Run(ctx, args...)
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// Commit records the changes of files only. Other staged paths stay in the
// index. With no files the whole index is committed.
func (c *Client) Commit(ctx context.Context, msg string, files ...string) error {
	args := []string{"commit", "-m", msg}
	if len(files) > 0 {
		args = append(append(args, "--only", "--"), files...)
	}
	_, err := c.Run(ctx, args...)
	return err
}

// CommitFiles stages files and commits them under the lock. When none of
// the files changed it does nothing and reports false.
func (c *Client) CommitFiles(ctx context.Context, msg string, files ...string) (bool, error) {
	unlock, err := c.Lock(ctx)
	if err != nil {
		return false, err
	}
	defer unlock()

	changed, err := c.Changed(ctx, files...)
	if err != nil {
		return false, err
	}
	if len(changed) == 0 {
		if c.Logger != nil {
			c.Logger.Debug("nothing to commit", "files", len(files))
		}
		return false, nil
	}

	if err := c.Add(ctx, files...); err != nil {
		return false, err
	}
	if err := c.Commit(ctx, msg, files...); err != nil {
		return false, err
	}
	return true, nil
}
