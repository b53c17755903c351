package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	repoPath string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "report-pilot",
	Short: "Report Pilot - turn your git history into a work report",
	Long: `Report Pilot inspects a local git repository over a time window,
classifies your commits by intent (features, fixes, docs, refactoring,
tests, chores) and renders a structured Markdown work report.

Use 'report-pilot generate' to build a report and 'report-pilot configure'
to set up an AI provider for prose reports.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&repoPath, "repo", ".", "Path to the git repository")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

func IsVerbose() bool {
	return verbose
}

func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}
