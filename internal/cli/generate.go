package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aayushsolanki40/report-pilot/internal/config"
	"github.com/aayushsolanki40/report-pilot/internal/constants"
	"github.com/aayushsolanki40/report-pilot/internal/daterange"
	"github.com/aayushsolanki40/report-pilot/internal/git"
	"github.com/aayushsolanki40/report-pilot/internal/llm"
	"github.com/aayushsolanki40/report-pilot/internal/report"
)

var (
	generatePeriod   string
	generateFrom     string
	generateTo       string
	generateAuthor   string
	generateAll      bool
	generateBranches bool
	generatePlain    bool
	generateAI       bool
	generateOutput   string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a work report from recent commits",
	Long: `Generate a Markdown work report from the repository's commit history.

By default only your own commits (git config user.name) are included and the
report covers today. The structured report has an executive summary, a daily
breakdown by category, work metrics and focus areas.

Examples:
  report-pilot generate                          # today, structured report
  report-pilot generate --period last-week       # the previous full week
  report-pilot generate --period custom \
      --from 2026-08-01 --to 2026-08-15          # explicit date bounds
  report-pilot generate --ai                     # AI-written prose report
  report-pilot generate --branches               # annotate commit branches
  report-pilot generate --plain                  # legacy flat report
  report-pilot generate -o report.md             # write to a file`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&generatePeriod, "period", "", "Reporting period: today, yesterday, this-week, last-week, custom")
	generateCmd.Flags().StringVar(&generateFrom, "from", "", "Custom period start (YYYY-MM-DD)")
	generateCmd.Flags().StringVar(&generateTo, "to", "", "Custom period end (YYYY-MM-DD)")
	generateCmd.Flags().StringVar(&generateAuthor, "author", "", "Only include commits by this author")
	generateCmd.Flags().BoolVar(&generateAll, "all", false, "Include all authors' commits")
	generateCmd.Flags().BoolVar(&generateBranches, "branches", false, "Resolve the branch each commit belongs to")
	generateCmd.Flags().BoolVar(&generatePlain, "plain", false, "Render the legacy flat report")
	generateCmd.Flags().BoolVar(&generateAI, "ai", false, "Ask the configured AI provider to write the report")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Write the report to a file")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	warnColor := color.New(color.FgHiYellow)
	dimColor := color.New(color.FgHiBlack)

	cfg, err := config.Load()
	if err != nil {
		VerboseLog("Warning: failed to load config: %v", err)
		cfg = &config.Config{DateFormat: "YYYY-MM-DD", DefaultPeriod: "today"}
	}

	absPath, err := filepath.Abs(repoPath)
	if err != nil {
		return fmt.Errorf("cannot resolve repository path: %w", err)
	}
	if !git.IsRepository(absPath) {
		warnColor.Fprintf(os.Stderr, "No git repository found at %s\n", absPath)
		return nil
	}

	rng, err := resolveRange(cfg)
	if err != nil {
		return err
	}

	author := resolveAuthor(absPath)
	notify := func(format string, a ...any) {
		warnColor.Fprintf(os.Stderr, format+"\n", a...)
	}

	client := git.NewClient(absPath)
	retriever := git.NewRetriever(client, notify)
	if cfg.RelaxedQueryLimit > 0 {
		retriever.RelaxedLimit = cfg.RelaxedQueryLimit
	}
	if cfg.BroadQueryLimit > 0 {
		retriever.BroadLimit = cfg.BroadQueryLimit
	}

	var annotator *git.Annotator
	if generateBranches {
		annotator = git.NewAnnotator(client, notify)
		if cfg.BranchScanLimit > 0 {
			annotator.ScanLimit = cfg.BranchScanLimit
		}
		if cfg.ContainLimit > 0 {
			annotator.ContainLimit = cfg.ContainLimit
		}
	}

	var aiClient llm.Client
	if generateAI {
		provider := constants.Provider(cfg.Provider)
		aiClient, err = llm.NewClient(llm.Config{
			Provider: provider,
			Model:    cfg.Model,
			APIKey:   cfg.GetAPIKey(provider),
			BaseURL:  cfg.OllamaBaseURL,
		})
		if err != nil {
			warnColor.Fprintf(os.Stderr, "AI provider unavailable: %v\n", err)
			aiClient = nil
		}
	}

	gen := report.NewGenerator(retriever, annotator, report.NewRenderer(cfg.DateLayout()), aiClient, func(format string, a ...any) {
		VerboseLog(format, a...)
	})

	mode := report.ModeStructured
	switch {
	case generatePlain:
		mode = report.ModePlain
	case generateAI:
		mode = report.ModeAI
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " Generating report..."
	s.Start()
	markdown, err := gen.Generate(cmd.Context(), report.Options{
		Range:    rng,
		Author:   author,
		Mode:     mode,
		Annotate: generateBranches,
	})
	s.Stop()
	if err != nil {
		if errors.Is(err, report.ErrInProgress) {
			warnColor.Fprintln(os.Stderr, "A report is already being generated.")
			return nil
		}
		return err
	}

	if generateOutput != "" {
		if err := writeReport(generateOutput, markdown); err != nil {
			return err
		}
		fmt.Println(successStyle.Render("Report written to " + generateOutput))
		return nil
	}

	if markdown == report.NoCommitsSentence {
		dimColor.Println(markdown)
		if !generateAll && author != "" {
			dimColor.Println("(Showing only your commits. Use --all to include everyone's)")
		}
		return nil
	}

	return displayMarkdown(markdown)
}

// resolveRange turns the period flag (or the configured default) into a
// concrete date range, prompting for custom bounds when they were not given.
func resolveRange(cfg *config.Config) (daterange.Range, error) {
	selected := generatePeriod
	if selected == "" {
		selected = cfg.DefaultPeriod
	}
	period, ok := daterange.ParsePeriod(selected)
	if !ok {
		VerboseLog("Unrecognized period %q, defaulting to today", selected)
		period = daterange.PeriodToday
	}

	if period != daterange.PeriodCustom {
		return daterange.Resolve(period, time.Now()), nil
	}

	from, err := customBound("Start date", generateFrom)
	if err != nil {
		return daterange.Range{}, err
	}
	to, err := customBound("End date", generateTo)
	if err != nil {
		return daterange.Range{}, err
	}
	return daterange.Custom(from, to), nil
}

func customBound(label, value string) (time.Time, error) {
	if value != "" {
		t, err := time.ParseInLocation(time.DateOnly, value, time.Local)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
		}
		return t, nil
	}

	prompt := promptui.Prompt{
		Label: label + " (YYYY-MM-DD)",
		Validate: func(input string) error {
			if _, err := time.ParseInLocation(time.DateOnly, input, time.Local); err != nil {
				return errors.New("expected YYYY-MM-DD")
			}
			return nil
		},
	}
	input, err := prompt.Run()
	if err != nil {
		return time.Time{}, fmt.Errorf("date prompt canceled: %w", err)
	}
	t, _ := time.ParseInLocation(time.DateOnly, input, time.Local)
	return t, nil
}

// resolveAuthor picks the author filter: the flag, or the configured git
// user unless --all was given. Identity lookup is best-effort.
func resolveAuthor(absPath string) string {
	if generateAll {
		return ""
	}
	if generateAuthor != "" {
		return generateAuthor
	}
	repo, err := git.OpenRepository(absPath)
	if err != nil {
		VerboseLog("could not open repository for identity lookup: %v", err)
		return ""
	}
	name, err := repo.UserName()
	if err != nil {
		VerboseLog("could not read git user.name: %v", err)
		return ""
	}
	return name
}

// writeReport writes the rendered report to path, creating parent
// directories as needed.
func writeReport(path, markdown string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(markdown+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// displayMarkdown renders through glamour on a terminal and falls back to
// raw Markdown when piped.
func displayMarkdown(markdown string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Println(markdown)
		return nil
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Println(markdown)
		return nil
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		fmt.Println(markdown)
		return nil
	}
	fmt.Print(out)
	return nil
}
