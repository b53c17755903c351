package report

import (
	"fmt"
	"strings"

	"github.com/aayushsolanki40/report-pilot/internal/git"
	"github.com/aayushsolanki40/report-pilot/internal/prompts"
)

// Digest formats commits into the deterministic plain-text summary handed to
// the model: commits grouped by day, one quoted line per commit.
func (r *Renderer) Digest(commits []git.Commit) string {
	var sb strings.Builder
	buckets := r.bucket(commits)
	for _, day := range sortedKeys(buckets) {
		sb.WriteString(day)
		sb.WriteString(":\n")
		for _, c := range buckets[day] {
			sb.WriteString(fmt.Sprintf("  %q by %s (%s)\n", c.Message, c.Author, c.Hash))
		}
	}
	return sb.String()
}

// Prompt wraps the digest in the fixed report instruction template.
func (r *Renderer) Prompt(commits []git.Commit) string {
	return prompts.BuildWorkReportPrompt(r.Digest(commits))
}
