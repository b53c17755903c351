package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aayushsolanki40/report-pilot/internal/git"
)

func commitAt(t *testing.T, hash, date, message string) git.Commit {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, date)
	require.NoError(t, err)
	return git.Commit{Hash: hash, Author: "Alice", Date: ts, Message: message}
}

func TestRenderEmptyIsOnlyTheSentence(t *testing.T) {
	r := NewRenderer("")

	for _, out := range []string{r.Plain(nil), r.Structured(nil)} {
		assert.Equal(t, NoCommitsSentence, out)
		assert.NotContains(t, out, "#")
	}
}

func TestPlainReport(t *testing.T) {
	r := NewRenderer("")
	commits := []git.Commit{
		commitAt(t, "abc1234", "2024-03-14T09:30:00Z", "feat: add login"),
		commitAt(t, "def5678", "2024-03-14T11:00:00Z", "feat: add logout"),
		commitAt(t, "eee9999", "2024-03-15T08:00:00Z", "fix: session leak"),
	}

	out := r.Plain(commits)

	assert.Contains(t, out, "# Work Report")
	assert.Contains(t, out, "## 2024-03-14")
	assert.Contains(t, out, "## 2024-03-15")
	assert.Contains(t, out, "- feat: add login (`abc1234`) — Alice")
	assert.Contains(t, out, "- Total commits: 3")
	assert.Contains(t, out, "- Period: 2024-03-14 to 2024-03-15")
	assert.Contains(t, out, "- Commit types: feat (2), fix (1)")
}

func TestPrefixTallySkipsNonPrefixColons(t *testing.T) {
	tally := prefixTally([]git.Commit{
		{Message: "feat: add login"},
		{Message: "note to self: revisit this"},
		{Message: "no colon here"},
	})

	require.Len(t, tally, 1)
	assert.Equal(t, "feat", tally[0].prefix)
	assert.Equal(t, 1, tally[0].count)
}

func TestStructuredReport(t *testing.T) {
	r := NewRenderer("")
	commits := []git.Commit{
		commitAt(t, "abc1234", "2024-03-14T09:30:00Z", "feat: add login"),
		commitAt(t, "def5678", "2024-03-14T11:00:00Z", "fix: session leak"),
		commitAt(t, "eee9999", "2024-03-15T08:00:00Z", "chore: bump deps"),
	}

	out := r.Structured(commits)

	assert.Contains(t, out, "## Executive Summary")
	assert.Contains(t, out, "**New Features:**")
	assert.Contains(t, out, "- Add login")
	assert.Contains(t, out, "**Bug Fixes:**")
	assert.Contains(t, out, "- Session leak")

	assert.Contains(t, out, "## Daily Work Breakdown")
	assert.Less(t, strings.Index(out, "### 2024-03-14"), strings.Index(out, "### 2024-03-15"), "days ascend")
	assert.Contains(t, out, "**Feature**")
	assert.Contains(t, out, "- Add login (`abc1234`)")
	assert.Contains(t, out, "**Chore**")
	assert.NotContains(t, out, "**Docs**", "empty categories are omitted")

	assert.Contains(t, out, "## Work Metrics")
	assert.Contains(t, out, "- Total commits: 3")
	assert.Contains(t, out, "- Days worked: 2")
	assert.Contains(t, out, "- Commits per day: 1.5")
	assert.Contains(t, out, "- Period: 2024-03-14 to 2024-03-15")

	assert.Contains(t, out, "## Focus Areas")
}

func TestStructuredCommitsPerDayRounding(t *testing.T) {
	r := NewRenderer("")
	var commits []git.Commit
	days := []string{"2024-03-11", "2024-03-12", "2024-03-13", "2024-03-14"}
	for i := 0; i < 10; i++ {
		commits = append(commits, commitAt(t, "abc1234",
			days[i%len(days)]+"T10:00:00Z", "feat: work"))
	}

	out := r.Structured(commits)

	assert.Contains(t, out, "- Commits per day: 2.5")
}

func TestStructuredSummaryWithoutTaggedWork(t *testing.T) {
	r := NewRenderer("")
	out := r.Structured([]git.Commit{
		commitAt(t, "abc1234", "2024-03-14T09:30:00Z", "wip"),
	})

	assert.Contains(t, out, "1 commits in this period.")
	assert.NotContains(t, out, "**New Features:**")
}

func TestRendererHonorsDateLayout(t *testing.T) {
	r := NewRenderer("02/01/2006")
	out := r.Plain([]git.Commit{
		commitAt(t, "abc1234", "2024-03-14T09:30:00Z", "feat: add login"),
	})

	assert.Contains(t, out, "## 14/03/2024")
}
