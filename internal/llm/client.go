package llm

import (
	"context"
	"fmt"

	"github.com/aayushsolanki40/report-pilot/internal/constants"
)

// Fixed generation parameters. Report generation is one request per report;
// callers do not tune these.
const (
	temperature     = 0.3
	maxOutputTokens = 2048
)

// Client is the boundary the report pipeline sees: a prompt in, Markdown
// prose out, or an error the caller must degrade around.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Provider is re-exported so callers need not import constants directly.
type Provider = constants.Provider

const (
	ProviderGemini    = constants.ProviderGemini
	ProviderAnthropic = constants.ProviderAnthropic
	ProviderOpenAI    = constants.ProviderOpenAI
	ProviderOllama    = constants.ProviderOllama
)

// Config selects and parameterizes a provider.
type Config struct {
	Provider Provider
	Model    string
	APIKey   string
	BaseURL  string
}

// NewClient builds a client for the configured provider. A missing
// credential is reported here, before any request is attempted.
func NewClient(cfg Config) (Client, error) {
	model := cfg.Model
	if model == "" {
		model = constants.DefaultModels[cfg.Provider]
	}
	switch cfg.Provider {
	case ProviderGemini:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("Gemini API key is required")
		}
		return NewGeminiClient(cfg.APIKey, model), nil
	case ProviderAnthropic:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("Anthropic API key is required")
		}
		return NewAnthropicClient(cfg.APIKey, model), nil
	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "https://api.openai.com/v1"
		}
		return NewOpenAIClient(baseURL, cfg.APIKey, model), nil
	case ProviderOllama:
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return NewOllamaClient(baseURL, model), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}
