package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/aayushsolanki40/report-pilot/internal/constants"
)

// Config holds the values the reporting pipeline consumes. API keys may come
// from the config file, a .env file, or the environment.
type Config struct {
	DateFormat    string `json:"date_format"`
	DefaultPeriod string `json:"default_period"`

	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`

	GeminiAPIKey    string `json:"gemini_api_key,omitempty"`
	AnthropicAPIKey string `json:"anthropic_api_key,omitempty"`
	OpenAIAPIKey    string `json:"openai_api_key,omitempty"`
	OllamaBaseURL   string `json:"ollama_base_url,omitempty"`

	// Query caps. Zero means the package defaults apply.
	RelaxedQueryLimit int `json:"relaxed_query_limit,omitempty"`
	BroadQueryLimit   int `json:"broad_query_limit,omitempty"`
	BranchScanLimit   int `json:"branch_scan_limit,omitempty"`
	ContainLimit      int `json:"contain_limit,omitempty"`
}

var configPath string

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		configPath = ".report-pilot/config.json"
		return
	}
	configPath = filepath.Join(homeDir, ".report-pilot", "config.json")
}

func GetConfigPath() string {
	return configPath
}

// Load reads the config file, applying defaults for anything unset. A
// missing file is not an error. A .env file in the working directory is
// loaded first so keys can live outside the config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DateFormat:    "YYYY-MM-DD",
		DefaultPeriod: "today",
		Provider:      string(constants.ProviderGemini),
		OllamaBaseURL: "http://localhost:11434",
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.DateFormat == "" {
		cfg.DateFormat = "YYYY-MM-DD"
	}
	if cfg.DefaultPeriod == "" {
		cfg.DefaultPeriod = "today"
	}
	return cfg, nil
}

func (c *Config) Save() error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// GetAPIKey resolves a provider's credential, falling back to the
// conventional environment variable.
func (c *Config) GetAPIKey(provider constants.Provider) string {
	switch provider {
	case constants.ProviderGemini:
		if c.GeminiAPIKey != "" {
			return c.GeminiAPIKey
		}
		return os.Getenv("GEMINI_API_KEY")
	case constants.ProviderAnthropic:
		if c.AnthropicAPIKey != "" {
			return c.AnthropicAPIKey
		}
		return os.Getenv("ANTHROPIC_API_KEY")
	case constants.ProviderOpenAI:
		if c.OpenAIAPIKey != "" {
			return c.OpenAIAPIKey
		}
		return os.Getenv("OPENAI_API_KEY")
	default:
		return ""
	}
}

// HasProvider reports whether the provider is usable as configured.
func (c *Config) HasProvider(provider constants.Provider) bool {
	if provider == constants.ProviderOllama {
		return true
	}
	return c.GetAPIKey(provider) != ""
}

// momentTokens translates the display-format tokens the original settings
// surface used into Go reference-layout fragments.
var momentTokens = []struct{ from, to string }{
	{"YYYY", "2006"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
}

// DateLayout converts the configured display format into a Go time layout.
func (c *Config) DateLayout() string {
	layout := c.DateFormat
	for _, t := range momentTokens {
		layout = strings.ReplaceAll(layout, t.from, t.to)
	}
	return layout
}
