package git

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// branchRunner answers the branch enumeration, per-branch history and
// containment queries the annotator issues.
type branchRunner struct {
	branches  []string
	histories map[string][]string // branch -> short hashes
	contains  map[string][]string // hash -> branches
	calls     [][]string
}

func (b *branchRunner) Run(_ context.Context, _ string, args ...string) ([]byte, error) {
	b.calls = append(b.calls, args)
	switch {
	case args[0] == "branch" && hasArg(args, "--contains"):
		return []byte(strings.Join(b.contains[args[2]], "\n")), nil
	case args[0] == "branch":
		return []byte(strings.Join(b.branches, "\n")), nil
	case args[0] == "log":
		return []byte(strings.Join(b.histories[args[1]], "\n")), nil
	}
	return nil, errors.New("unexpected git invocation")
}

func newTestAnnotator(runner Runner, notify Notifier) *Annotator {
	return NewAnnotator(NewClientWithRunner("/repo", runner), notify)
}

func TestAnnotateFeatureBranchWinsOverTrunk(t *testing.T) {
	runner := &branchRunner{
		branches: []string{"main", "feature-x"},
		histories: map[string][]string{
			"main":      {"abc1234", "eee0000"},
			"feature-x": {"abc1234"},
		},
	}
	a := newTestAnnotator(runner, nil)

	got := a.Annotate(context.Background(), []Commit{{Hash: "abc1234"}, {Hash: "eee0000"}})

	require.Len(t, got, 2)
	assert.Equal(t, "feature-x", got[0].Branch)
	assert.Equal(t, "main", got[1].Branch)
}

func TestAnnotateFeatureBranchWinsRegardlessOfScanOrder(t *testing.T) {
	runner := &branchRunner{
		branches: []string{"feature-x", "main"},
		histories: map[string][]string{
			"main":      {"abc1234"},
			"feature-x": {"abc1234"},
		},
	}
	a := newTestAnnotator(runner, nil)

	got := a.Annotate(context.Background(), []Commit{{Hash: "abc1234"}})

	require.Len(t, got, 1)
	assert.Equal(t, "feature-x", got[0].Branch)
}

func TestAnnotateContainmentFallback(t *testing.T) {
	runner := &branchRunner{
		branches:  []string{"main"},
		histories: map[string][]string{"main": {"other00"}},
		contains:  map[string][]string{"abc1234": {"release-1", "main"}},
	}
	a := newTestAnnotator(runner, nil)

	got := a.Annotate(context.Background(), []Commit{{Hash: "abc1234"}})

	require.Len(t, got, 1)
	assert.Equal(t, "main", got[0].Branch, "containment tie-break prefers trunk")
}

func TestAnnotateContainmentFallbackCapped(t *testing.T) {
	runner := &branchRunner{
		branches:  []string{"main"},
		histories: map[string][]string{"main": nil},
		contains:  map[string][]string{},
	}
	var notices []string
	a := newTestAnnotator(runner, func(format string, args ...any) {
		notices = append(notices, format)
	})
	a.ContainLimit = 2

	commits := []Commit{{Hash: "a1"}, {Hash: "a2"}, {Hash: "a3"}, {Hash: "a4"}}
	got := a.Annotate(context.Background(), commits)

	require.Len(t, got, 4)
	containQueries := 0
	for _, call := range runner.calls {
		if hasArg(call, "--contains") {
			containQueries++
		}
	}
	assert.Equal(t, 2, containQueries)
	assert.NotEmpty(t, notices)
}

func TestAnnotateBranchEnumerationFailureLeavesInputUntouched(t *testing.T) {
	runner := &fakeRunner{fn: func(args []string) ([]byte, error) {
		return nil, errors.New("fatal: not a git repository")
	}}
	a := newTestAnnotator(runner, nil)

	in := []Commit{{Hash: "abc1234"}}
	got := a.Annotate(context.Background(), in)

	require.Len(t, got, 1)
	assert.Empty(t, got[0].Branch)
}

func TestAnnotateEmptyInputSkipsAllQueries(t *testing.T) {
	runner := &branchRunner{}
	a := newTestAnnotator(runner, nil)

	got := a.Annotate(context.Background(), nil)

	assert.Empty(t, got)
	assert.Empty(t, runner.calls)
}
