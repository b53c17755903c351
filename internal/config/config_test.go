package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aayushsolanki40/report-pilot/internal/constants"
)

func TestDateLayout(t *testing.T) {
	cases := []struct {
		format string
		want   string
	}{
		{"YYYY-MM-DD", "2006-01-02"},
		{"DD/MM/YYYY", "02/01/2006"},
		{"MM-DD-YY", "01-02-06"},
		{"", ""},
	}
	for _, tc := range cases {
		cfg := &Config{DateFormat: tc.format}
		assert.Equal(t, tc.want, cfg.DateLayout(), "format: %q", tc.format)
	}
}

func TestGetAPIKeyPrefersConfigOverEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg := &Config{GeminiAPIKey: "file-key"}
	assert.Equal(t, "file-key", cfg.GetAPIKey(constants.ProviderGemini))

	cfg.GeminiAPIKey = ""
	assert.Equal(t, "env-key", cfg.GetAPIKey(constants.ProviderGemini))
}

func TestHasProvider(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")

	cfg := &Config{}
	assert.False(t, cfg.HasProvider(constants.ProviderAnthropic))
	assert.True(t, cfg.HasProvider(constants.ProviderOllama), "ollama needs no credential")

	cfg.AnthropicAPIKey = "sk-test"
	assert.True(t, cfg.HasProvider(constants.ProviderAnthropic))
}
