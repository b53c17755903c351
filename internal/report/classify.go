package report

import (
	"sort"
	"strings"
	"unicode"

	"github.com/aayushsolanki40/report-pilot/internal/git"
)

// Category is a commit's classified intent.
type Category string

const (
	CategoryFeature  Category = "feature"
	CategoryFix      Category = "fix"
	CategoryDocs     Category = "docs"
	CategoryRefactor Category = "refactor"
	CategoryTest     Category = "test"
	CategoryChore    Category = "chore"
	CategoryOther    Category = "other"
)

// CategoryOrder fixes the evaluation and rendering priority.
var CategoryOrder = []Category{
	CategoryFeature, CategoryFix, CategoryDocs,
	CategoryRefactor, CategoryTest, CategoryChore, CategoryOther,
}

// conventionalPrefixes maps leading message tags to categories, checked in
// priority order against the lower-cased message.
var conventionalPrefixes = []struct {
	prefix   string
	category Category
}{
	{"feat", CategoryFeature},
	{"fix", CategoryFix},
	{"docs", CategoryDocs},
	{"refactor", CategoryRefactor},
	{"test", CategoryTest},
	{"chore", CategoryChore},
}

// categoryKeywords is the second classification tier, consulted only when no
// conventional prefix matched. Order matters: the first tier with a matching
// word wins.
var categoryKeywords = []struct {
	category Category
	words    []string
}{
	{CategoryFeature, []string{"implement", "add", "new", "feature"}},
	{CategoryFix, []string{"fix", "bug", "issue", "error"}},
	{CategoryDocs, []string{"doc", "readme", "comment"}},
	{CategoryRefactor, []string{"refactor", "restructure", "cleanup", "rewrite"}},
	{CategoryTest, []string{"test", "spec", "coverage"}},
	{CategoryChore, []string{"config", "version", "upgrade", "bump", "merge"}},
}

// Classify buckets commits by intent. Each commit lands in exactly one
// category; categories with no commits are absent from the result.
func Classify(commits []git.Commit) map[Category][]git.Commit {
	result := make(map[Category][]git.Commit)
	for _, c := range commits {
		cat := classifyMessage(c.Message)
		result[cat] = append(result[cat], c)
	}
	return result
}

func classifyMessage(message string) Category {
	lower := strings.ToLower(strings.TrimSpace(message))
	for _, p := range conventionalPrefixes {
		if strings.HasPrefix(lower, p.prefix) {
			return p.category
		}
	}
	for _, tier := range categoryKeywords {
		for _, word := range tier.words {
			if strings.Contains(lower, word) {
				return tier.category
			}
		}
	}
	return CategoryOther
}

// stopwords excluded from keyword frequency. Only words longer than three
// characters are counted, so short noise is filtered before this list.
var stopwords = map[string]bool{
	"this": true, "that": true, "with": true, "from": true,
	"have": true, "been": true, "were": true, "will": true,
	"when": true, "into": true, "some": true, "more": true,
	"only": true, "also": true, "https": true,
}

// ExtractKeywords counts lower-cased words across all commit messages,
// dropping punctuation, short words and stopwords.
func ExtractKeywords(commits []git.Commit) map[string]int {
	freq := make(map[string]int)
	for _, c := range commits {
		words := strings.FieldsFunc(strings.ToLower(c.Message), func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		for _, w := range words {
			if len(w) <= 3 || stopwords[w] {
				continue
			}
			freq[w]++
		}
	}
	return freq
}

// TopKeywords ranks keywords by descending count, ties broken alphabetically
// so output is deterministic.
func TopKeywords(freq map[string]int, n int) []string {
	type kw struct {
		word  string
		count int
	}
	ranked := make([]kw, 0, len(freq))
	for w, c := range freq {
		ranked = append(ranked, kw{w, c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].word < ranked[j].word
	})
	if n > len(ranked) {
		n = len(ranked)
	}
	words := make([]string, n)
	for i := range words {
		words[i] = ranked[i].word
	}
	return words
}

// IdentifyFeatures produces one readable line per feature-tagged commit for
// the executive summary.
func IdentifyFeatures(commits []git.Commit) []string {
	return describeTagged(commits, CategoryFeature)
}

// IdentifyBugFixes does the same for fix-tagged commits.
func IdentifyBugFixes(commits []git.Commit) []string {
	return describeTagged(commits, CategoryFix)
}

func describeTagged(commits []git.Commit, want Category) []string {
	var lines []string
	for _, c := range commits {
		if classifyMessage(c.Message) == want {
			lines = append(lines, CleanMessage(c.Message))
		}
	}
	return lines
}

// CleanMessage strips a conventional prefix (with optional scope) and
// capitalizes the remainder.
func CleanMessage(message string) string {
	msg := strings.TrimSpace(message)
	lower := strings.ToLower(msg)
	for _, p := range conventionalPrefixes {
		if !strings.HasPrefix(lower, p.prefix) {
			continue
		}
		if rest, ok := strings.CutPrefix(msg[len(p.prefix):], ":"); ok {
			msg = strings.TrimSpace(rest)
		} else if _, rest, ok := strings.Cut(msg, ":"); ok {
			// Scoped form like "feat(ui): ..."
			msg = strings.TrimSpace(rest)
		}
		break
	}
	return capitalize(msg)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
