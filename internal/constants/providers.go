package constants

// Provider identifies an LLM provider.
type Provider string

const (
	ProviderGemini    Provider = "gemini"
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
	ProviderOllama    Provider = "ollama"
)

// ProviderInfo carries display information for the configure wizard.
type ProviderInfo struct {
	Name        Provider
	Description string
	NeedsAPIKey bool
}

// AllProviders lists supported providers in display order.
var AllProviders = []ProviderInfo{
	{ProviderGemini, "Google Gemini — Flash, Pro", true},
	{ProviderAnthropic, "Anthropic — Claude Sonnet, Haiku", true},
	{ProviderOpenAI, "OpenAI — GPT-4o and newer", true},
	{ProviderOllama, "Free, local, private — any local model", false},
}

// DefaultModels maps each provider to the model used when none is configured.
var DefaultModels = map[Provider]string{
	ProviderGemini:    "gemini-2.0-flash",
	ProviderAnthropic: "claude-sonnet-4-5-20250929",
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderOllama:    "llama3.1",
}
