package git

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner substitutes the git binary in tests.
type fakeRunner struct {
	fn    func(args []string) ([]byte, error)
	calls [][]string
}

func (f *fakeRunner) Run(_ context.Context, _ string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, args)
	return f.fn(args)
}

func hasArg(args []string, want string) bool {
	for _, a := range args {
		if a == want || strings.HasPrefix(a, want) {
			return true
		}
	}
	return false
}

// logRecord renders one well-formed record in the wire format log queries
// request.
func logRecord(hash, author, email, date, subject, body string) string {
	return strings.Join([]string{hash, author, email, date, subject, body}, fieldSep) + recordSep + "\n"
}

// gitDir creates a directory that passes the repository probe.
func gitDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0755))
	return dir
}

func mustParse(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return ts
}

func TestIsRepository(t *testing.T) {
	assert.True(t, IsRepository(gitDir(t)))
	assert.False(t, IsRepository(t.TempDir()))
}

func TestParseLog(t *testing.T) {
	out := logRecord("abc1234", "Alice", "alice@example.com", "2024-03-14T09:30:00+01:00", "feat: add login", "") +
		logRecord("def5678", "Bob", "bob@example.com", "2024-03-13T17:05:00+01:00", "fix: null check", "longer explanation\nsecond line")

	records := parseLog([]byte(out))

	require.Len(t, records, 2)
	assert.Equal(t, "abc1234", records[0].Hash)
	assert.Equal(t, "Alice", records[0].Author)
	assert.Equal(t, "feat: add login", records[0].Message)
	assert.Equal(t, numLogFields, records[0].FieldCount)

	assert.Equal(t, "fix: null check", records[1].Message)
	assert.Equal(t, "longer explanation", records[1].Subject)
	assert.Equal(t, "longer explanation\nsecond line", records[1].Body)
}

func TestParseLogKeepsMalformedChunks(t *testing.T) {
	out := "garbage-without-separators" + recordSep + "\n" +
		logRecord("abc1234", "Alice", "a@example.com", "2024-03-14T09:30:00Z", "chore: bump deps", "")

	records := parseLog([]byte(out))

	// Judgment is the normalizer's job; the parser only records field counts.
	require.Len(t, records, 2)
	assert.Equal(t, 1, records[0].FieldCount)
	assert.Equal(t, numLogFields, records[1].FieldCount)
}

func TestLogBuildsQueryArgs(t *testing.T) {
	runner := &fakeRunner{fn: func(args []string) ([]byte, error) { return nil, nil }}
	client := NewClientWithRunner("/repo", runner)

	after := mustParse(t, "2024-03-10T00:00:00Z")
	before := mustParse(t, "2024-03-15T00:00:00Z")
	_, err := client.Log(context.Background(), LogOptions{
		After:       after,
		Before:      before,
		MaxCount:    30,
		Author:      "Alice",
		AllBranches: true,
	})

	require.NoError(t, err)
	require.Len(t, runner.calls, 1)
	args := runner.calls[0]
	assert.Equal(t, "log", args[0])
	assert.True(t, hasArg(args, "--after="))
	assert.True(t, hasArg(args, "--before="))
	assert.True(t, hasArg(args, "--author=Alice"))
	assert.True(t, hasArg(args, "--all"))
	assert.True(t, hasArg(args, "-n"))
}

func TestListBranchesExcludesDetachedHead(t *testing.T) {
	runner := &fakeRunner{fn: func(args []string) ([]byte, error) {
		return []byte("main\nfeature-x\n(HEAD detached at abc1234)\n"), nil
	}}
	client := NewClientWithRunner("/repo", runner)

	branches, err := client.ListBranches(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"main", "feature-x"}, branches)
}
