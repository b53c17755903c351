package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Field and record separators for structured log output. Control bytes keep
// commit messages from colliding with the format the way quotes and braces
// collide with JSON-shaped pretty formats.
const (
	fieldSep  = "\x1f"
	recordSep = "\x1e"

	// hash, author name, author email, author date, subject, body
	logFormat = "%h%x1f%an%x1f%ae%x1f%aI%x1f%s%x1f%b%x1e"

	minLogFields = 4
	numLogFields = 6
)

// Runner executes a git invocation in a repository and returns stdout.
// Retrieval and annotation are tested against a fake runner.
type Runner interface {
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)
}

// LocalRunner runs the git binary installed on the machine.
type LocalRunner struct{}

var _ Runner = LocalRunner{}

func (LocalRunner) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil, fmt.Errorf("git %s: %s", strings.Join(args, " "), strings.TrimSpace(string(exitErr.Stderr)))
	} else if err != nil {
		return nil, fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return out, nil
}

// IsRepository reports whether path holds a git repository. This is a
// filesystem probe on the metadata directory; no process is spawned.
func IsRepository(path string) bool {
	info, err := os.Stat(filepath.Join(path, ".git"))
	if err != nil {
		return false
	}
	// Worktrees and submodules keep a .git file pointing at the real dir.
	return info.IsDir() || info.Mode().IsRegular()
}

// LogOptions shape a single log query.
type LogOptions struct {
	After       time.Time
	Before      time.Time
	MaxCount    int
	Author      string
	AllBranches bool
}

// Client wraps git invocations against one repository.
type Client struct {
	path   string
	runner Runner
}

func NewClient(path string) *Client {
	return &Client{path: path, runner: LocalRunner{}}
}

// NewClientWithRunner is used by tests to substitute the git binary.
func NewClientWithRunner(path string, r Runner) *Client {
	return &Client{path: path, runner: r}
}

func (c *Client) Path() string { return c.path }

// Log runs a log query and parses its output into raw records. Records are
// returned most recent first, per git's default ordering.
func (c *Client) Log(ctx context.Context, opts LogOptions) ([]RawLogRecord, error) {
	args := []string{"log", "--pretty=format:" + logFormat}
	if !opts.After.IsZero() {
		args = append(args, "--after="+opts.After.Format(time.RFC3339))
	}
	if !opts.Before.IsZero() {
		args = append(args, "--before="+opts.Before.Format(time.RFC3339))
	}
	if opts.MaxCount > 0 {
		args = append(args, "-n", strconv.Itoa(opts.MaxCount))
	}
	if opts.Author != "" {
		args = append(args, "--author="+opts.Author)
	}
	if opts.AllBranches {
		args = append(args, "--all")
	}
	out, err := c.runner.Run(ctx, c.path, args...)
	if err != nil {
		return nil, err
	}
	return parseLog(out), nil
}

// parseLog splits raw log output into records without judging their quality;
// repairing or skipping bad records is the normalizer's job.
func parseLog(out []byte) []RawLogRecord {
	var records []RawLogRecord
	for _, chunk := range strings.Split(string(out), recordSep) {
		chunk = strings.TrimLeft(chunk, "\r\n")
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		fields := strings.Split(chunk, fieldSep)
		rec := RawLogRecord{FieldCount: len(fields)}
		get := func(i int) string {
			if i < len(fields) {
				return strings.TrimSpace(fields[i])
			}
			return ""
		}
		rec.Hash = get(0)
		rec.Author = get(1)
		rec.Email = get(2)
		rec.Date = get(3)
		rec.Message = get(4)
		rec.Body = strings.TrimSpace(strings.Join(fields[min(5, len(fields)):], fieldSep))
		if line, _, ok := strings.Cut(rec.Body, "\n"); ok {
			rec.Subject = strings.TrimSpace(line)
		} else {
			rec.Subject = rec.Body
		}
		records = append(records, rec)
	}
	return records
}

// ListBranches enumerates local branches, excluding the detached-HEAD
// pseudo-branch.
func (c *Client) ListBranches(ctx context.Context) ([]string, error) {
	out, err := c.runner.Run(ctx, c.path, "branch", "--format=%(refname:short)")
	if err != nil {
		return nil, err
	}
	var branches []string
	for _, line := range strings.Split(string(out), "\n") {
		name := strings.TrimSpace(line)
		if name == "" || strings.HasPrefix(name, "(") || strings.Contains(name, "HEAD") {
			continue
		}
		branches = append(branches, name)
	}
	return branches, nil
}

// BranchHistory returns up to limit short hashes from a branch's own history,
// most recent first.
func (c *Client) BranchHistory(ctx context.Context, branch string, limit int) ([]string, error) {
	args := []string{"log", branch, "--pretty=format:%h"}
	if limit > 0 {
		args = append(args, "-n", strconv.Itoa(limit))
	}
	out, err := c.runner.Run(ctx, c.path, args...)
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// BranchesContaining lists the local branches whose history includes hash.
func (c *Client) BranchesContaining(ctx context.Context, hash string) ([]string, error) {
	out, err := c.runner.Run(ctx, c.path, "branch", "--contains", hash, "--format=%(refname:short)")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

func splitLines(out []byte) []string {
	var lines []string
	for _, line := range strings.Split(string(out), "\n") {
		if s := strings.TrimSpace(line); s != "" {
			lines = append(lines, s)
		}
	}
	return lines
}
