package prompts

import (
	_ "embed"
	"fmt"
	"strings"
)

//go:embed work_report.md
var workReportPromptTemplate string

// BuildWorkReportPrompt fills the report instruction template with the
// commit digest.
func BuildWorkReportPrompt(digest string) string {
	return fmt.Sprintf(strings.TrimSpace(workReportPromptTemplate), digest)
}
