package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/aayushsolanki40/report-pilot/internal/config"
	"github.com/aayushsolanki40/report-pilot/internal/constants"
	"github.com/aayushsolanki40/report-pilot/internal/daterange"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Configure Report Pilot settings",
	Long: `Interactively configure the AI provider, API key, default reporting
period and date display format. Settings are stored in ` + "`~/.report-pilot/config.json`" + `.`,
	RunE: runConfigure,
}

func init() {
	rootCmd.AddCommand(configureCmd)
}

func runConfigure(cmd *cobra.Command, args []string) error {
	titleColor := color.New(color.FgHiCyan, color.Bold)
	dimColor := color.New(color.FgHiBlack)
	successColor := color.New(color.FgHiGreen)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Println()
	titleColor.Println("Report Pilot Configuration")
	dimColor.Printf("Settings file: %s\n\n", config.GetConfigPath())

	if err := configureProvider(cfg); err != nil {
		return err
	}
	if err := configurePeriod(cfg); err != nil {
		return err
	}
	if err := configureDateFormat(cfg); err != nil {
		return err
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Println()
	successColor.Println("Configuration saved.")
	return nil
}

func configureProvider(cfg *config.Config) error {
	items := make([]string, len(constants.AllProviders))
	current := 0
	for i, p := range constants.AllProviders {
		items[i] = fmt.Sprintf("%s — %s", p.Name, p.Description)
		if string(p.Name) == cfg.Provider {
			current = i
		}
	}

	sel := promptui.Select{
		Label:     "AI provider",
		Items:     items,
		CursorPos: current,
	}
	idx, _, err := sel.Run()
	if err != nil {
		return fmt.Errorf("provider selection canceled: %w", err)
	}
	info := constants.AllProviders[idx]
	cfg.Provider = string(info.Name)

	model := promptui.Prompt{
		Label:   "Model (empty for default " + constants.DefaultModels[info.Name] + ")",
		Default: cfg.Model,
	}
	if m, err := model.Run(); err == nil {
		cfg.Model = m
	}

	if !info.NeedsAPIKey {
		return nil
	}
	key := promptui.Prompt{
		Label: fmt.Sprintf("%s API key (empty to keep current)", info.Name),
		Mask:  '*',
	}
	entered, err := key.Run()
	if err != nil {
		return fmt.Errorf("API key prompt canceled: %w", err)
	}
	if entered == "" {
		return nil
	}
	switch info.Name {
	case constants.ProviderGemini:
		cfg.GeminiAPIKey = entered
	case constants.ProviderAnthropic:
		cfg.AnthropicAPIKey = entered
	case constants.ProviderOpenAI:
		cfg.OpenAIAPIKey = entered
	}
	return nil
}

func configurePeriod(cfg *config.Config) error {
	items := make([]string, len(daterange.AllPeriods))
	current := 0
	for i, p := range daterange.AllPeriods {
		items[i] = string(p)
		if string(p) == cfg.DefaultPeriod {
			current = i
		}
	}
	sel := promptui.Select{
		Label:     "Default reporting period",
		Items:     items,
		CursorPos: current,
	}
	_, chosen, err := sel.Run()
	if err != nil {
		return fmt.Errorf("period selection canceled: %w", err)
	}
	cfg.DefaultPeriod = chosen
	return nil
}

func configureDateFormat(cfg *config.Config) error {
	prompt := promptui.Prompt{
		Label:   "Date display format",
		Default: cfg.DateFormat,
	}
	format, err := prompt.Run()
	if err != nil {
		return fmt.Errorf("date format prompt canceled: %w", err)
	}
	if format != "" {
		cfg.DateFormat = format
	}
	return nil
}
