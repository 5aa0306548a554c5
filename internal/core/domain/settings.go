package domain

import "time"

const unknownDescription = "Unknown"

// AIProvider identifies a hosted or local completion provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// LLMSettings holds completion provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint. Empty means the provider default.
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// ChatSettings tunes each conversation turn.
type ChatSettings struct {
	// HistoryWindow is how many recent transcript messages go upstream.
	HistoryWindow int

	// MaxTokens caps the completion length.
	MaxTokens int

	// Temperature controls sampling randomness.
	Temperature float64

	// CitationDelay is the pause before a citation view is revealed.
	CitationDelay time.Duration
}

// AssistantSettings fills the named slots of the system prompt template.
type AssistantSettings struct {
	// RoleTitle is the job role the assistant onboards people into.
	RoleTitle string

	// RoleDescription describes the role and what the new hire needs.
	RoleDescription string
}

// AppSettings holds all application settings.
type AppSettings struct {
	LLM       LLMSettings
	Chat      ChatSettings
	Assistant AssistantSettings

	// ReferenceDir overrides the embedded reference documents when set.
	ReferenceDir string
}

// Default chat tuning.
const (
	DefaultHistoryWindow = 10
	DefaultMaxTokens     = 300
	DefaultTemperature   = 0.7
	DefaultCitationDelay = 800 * time.Millisecond
)

// DefaultAppSettings returns settings with sensible defaults.
// The LLM is left unconfigured; without it the assistant answers
// with a canned message.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		LLM: LLMSettings{},
		Chat: ChatSettings{
			HistoryWindow: DefaultHistoryWindow,
			MaxTokens:     DefaultMaxTokens,
			Temperature:   DefaultTemperature,
			CitationDelay: DefaultCitationDelay,
		},
		Assistant: AssistantSettings{
			RoleTitle:       "New Employee",
			RoleDescription: "Someone joining the company who needs to learn its processes, tools, and culture.",
		},
	}
}

// AllLLMProviders returns providers that support chat completions.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOpenAI,
		AIProviderAnthropic,
		AIProviderOllama,
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-3.5-turbo",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
	}
}
