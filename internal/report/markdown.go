package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/aayushsolanki40/report-pilot/internal/git"
)

// NoCommitsSentence is the entire output when there is nothing to report.
// Callers must not expect headers in this case.
const NoCommitsSentence = "No commits found in the selected period."

// Renderer serializes classified, day-bucketed commits into Markdown.
// DateLayout is the Go layout used for day-keys.
type Renderer struct {
	DateLayout string
}

func NewRenderer(dateLayout string) *Renderer {
	if dateLayout == "" {
		dateLayout = "2006-01-02"
	}
	return &Renderer{DateLayout: dateLayout}
}

// bucket groups commits by formatted day-key. Key order is whatever the map
// gives back; renderers that care re-sort explicitly.
func (r *Renderer) bucket(commits []git.Commit) map[string][]git.Commit {
	buckets := make(map[string][]git.Commit)
	for _, c := range commits {
		key := c.Date.Format(r.DateLayout)
		buckets[key] = append(buckets[key], c)
	}
	return buckets
}

func sortedKeys(buckets map[string][]git.Commit) []string {
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// chronological returns a copy sorted oldest first. Input order from the log
// is most-recent-first by convention but is never assumed here.
func chronological(commits []git.Commit) []git.Commit {
	sorted := make([]git.Commit, len(commits))
	copy(sorted, commits)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// Plain renders the legacy flat report: day-grouped commit lists plus a
// trailing summary block with a prefix tally.
func (r *Renderer) Plain(commits []git.Commit) string {
	if len(commits) == 0 {
		return NoCommitsSentence
	}

	var sb strings.Builder
	sb.WriteString("# Work Report\n\n")

	for day, dayCommits := range r.bucket(commits) {
		sb.WriteString(fmt.Sprintf("## %s\n\n", day))
		for _, c := range dayCommits {
			sb.WriteString(fmt.Sprintf("- %s (`%s`) — %s\n", c.Message, c.Hash, c.Author))
		}
		sb.WriteString("\n")
	}

	ordered := chronological(commits)
	first, last := ordered[0], ordered[len(ordered)-1]

	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- Total commits: %d\n", len(commits)))
	sb.WriteString(fmt.Sprintf("- Period: %s to %s\n", first.Date.Format(r.DateLayout), last.Date.Format(r.DateLayout)))

	tally := prefixTally(commits)
	if len(tally) > 0 {
		sb.WriteString("- Commit types: ")
		var parts []string
		for _, t := range tally {
			parts = append(parts, fmt.Sprintf("%s (%d)", t.prefix, t.count))
		}
		sb.WriteString(strings.Join(parts, ", "))
		sb.WriteString("\n")
	}
	return sb.String()
}

type prefixCount struct {
	prefix string
	count  int
}

// prefixTally counts the leading "word:" token of each message. This is the
// plain mode's cruder cousin of the classifier.
func prefixTally(commits []git.Commit) []prefixCount {
	counts := make(map[string]int)
	for _, c := range commits {
		head, _, found := strings.Cut(c.Message, ":")
		if !found {
			continue
		}
		head = strings.ToLower(strings.TrimSpace(head))
		if head == "" || strings.ContainsAny(head, " \t") {
			continue
		}
		counts[head]++
	}
	tally := make([]prefixCount, 0, len(counts))
	for p, n := range counts {
		tally = append(tally, prefixCount{p, n})
	}
	sort.Slice(tally, func(i, j int) bool {
		if tally[i].count != tally[j].count {
			return tally[i].count > tally[j].count
		}
		return tally[i].prefix < tally[j].prefix
	})
	return tally
}

// Structured renders the layered report: executive summary, daily breakdown
// by category, work metrics and focus areas.
func (r *Renderer) Structured(commits []git.Commit) string {
	if len(commits) == 0 {
		return NoCommitsSentence
	}

	var sb strings.Builder
	sb.WriteString("# Work Report\n\n")

	r.writeExecutiveSummary(&sb, commits)
	r.writeDailyBreakdown(&sb, commits)
	r.writeMetrics(&sb, commits)
	r.writeFocusAreas(&sb, commits)

	return sb.String()
}

func (r *Renderer) writeExecutiveSummary(sb *strings.Builder, commits []git.Commit) {
	sb.WriteString("## Executive Summary\n\n")

	features := IdentifyFeatures(commits)
	fixes := IdentifyBugFixes(commits)

	if len(features) == 0 && len(fixes) == 0 {
		sb.WriteString(fmt.Sprintf("%d commits in this period.\n\n", len(commits)))
		return
	}
	if len(features) > 0 {
		sb.WriteString("**New Features:**\n\n")
		for _, f := range features {
			sb.WriteString(fmt.Sprintf("- %s\n", f))
		}
		sb.WriteString("\n")
	}
	if len(fixes) > 0 {
		sb.WriteString("**Bug Fixes:**\n\n")
		for _, f := range fixes {
			sb.WriteString(fmt.Sprintf("- %s\n", f))
		}
		sb.WriteString("\n")
	}
}

func (r *Renderer) writeDailyBreakdown(sb *strings.Builder, commits []git.Commit) {
	sb.WriteString("## Daily Work Breakdown\n\n")

	buckets := r.bucket(commits)
	for _, day := range sortedKeys(buckets) {
		sb.WriteString(fmt.Sprintf("### %s\n\n", day))

		classified := Classify(buckets[day])
		for _, cat := range CategoryOrder {
			catCommits, ok := classified[cat]
			if !ok {
				continue
			}
			sb.WriteString(fmt.Sprintf("**%s**\n\n", capitalize(string(cat))))
			for _, c := range catCommits {
				sb.WriteString(fmt.Sprintf("- %s (`%s`)\n", CleanMessage(c.Message), c.Hash))
			}
			sb.WriteString("\n")
		}
	}
}

func (r *Renderer) writeMetrics(sb *strings.Builder, commits []git.Commit) {
	sb.WriteString("## Work Metrics\n\n")

	days := len(r.bucket(commits))
	perDay := math.Round(float64(len(commits))/float64(days)*10) / 10

	ordered := chronological(commits)
	first, last := ordered[0], ordered[len(ordered)-1]

	sb.WriteString(fmt.Sprintf("- Total commits: %d\n", len(commits)))
	sb.WriteString(fmt.Sprintf("- Days worked: %d\n", days))
	sb.WriteString(fmt.Sprintf("- Commits per day: %.1f\n", perDay))
	sb.WriteString(fmt.Sprintf("- Period: %s to %s\n\n", first.Date.Format(r.DateLayout), last.Date.Format(r.DateLayout)))
}

func (r *Renderer) writeFocusAreas(sb *strings.Builder, commits []git.Commit) {
	keywords := TopKeywords(ExtractKeywords(commits), 5)
	if len(keywords) == 0 {
		return
	}
	sb.WriteString("## Focus Areas\n\n")
	for _, kw := range keywords {
		sb.WriteString(fmt.Sprintf("- %s\n", kw))
	}
}
