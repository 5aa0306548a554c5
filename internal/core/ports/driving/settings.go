package driving

import "github.com/custodia-labs/onboard/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetLLMProvider configures the LLM provider.
	SetLLMProvider(provider domain.AIProvider, model, apiKey string) error

	// SetAssistantRole sets the role title and description used in the system prompt.
	SetAssistantRole(title, description string) error

	// SetReferenceDir points the reference library at a directory of markdown files.
	// An empty dir restores the built-in documents.
	SetReferenceDir(dir string) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
	ValidateLLMConfig() error
}
