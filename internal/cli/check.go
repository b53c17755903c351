package cli

import (
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aayushsolanki40/report-pilot/internal/config"
	"github.com/aayushsolanki40/report-pilot/internal/constants"
	"github.com/aayushsolanki40/report-pilot/internal/git"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the environment and configuration",
	Long: `Verify that the target directory is a git repository, that the git
binary is available, and whether an AI provider is configured.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	okColor := color.New(color.FgHiGreen)
	badColor := color.New(color.FgHiRed)
	dimColor := color.New(color.FgHiBlack)

	fmt.Println(titleStyle.Render("Report Pilot environment check"))

	absPath, err := filepath.Abs(repoPath)
	if err != nil {
		return fmt.Errorf("cannot resolve repository path: %w", err)
	}
	if git.IsRepository(absPath) {
		okColor.Printf("  ✓ git repository at %s\n", absPath)
	} else {
		badColor.Printf("  ✗ no git repository at %s\n", absPath)
	}

	if gitPath, err := exec.LookPath("git"); err == nil {
		okColor.Printf("  ✓ git binary (%s)\n", gitPath)
	} else {
		badColor.Println("  ✗ git binary not found in PATH")
	}

	cfg, err := config.Load()
	if err != nil {
		badColor.Printf("  ✗ config: %v\n", err)
		return nil
	}
	dimColor.Printf("  config: %s\n", config.GetConfigPath())
	dimColor.Printf("  date format: %s  default period: %s\n", cfg.DateFormat, cfg.DefaultPeriod)

	provider := constants.Provider(cfg.Provider)
	if cfg.HasProvider(provider) {
		okColor.Printf("  ✓ AI provider: %s\n", provider)
	} else {
		badColor.Printf("  ✗ AI provider %s has no API key (run 'report-pilot configure')\n", provider)
	}
	return nil
}
