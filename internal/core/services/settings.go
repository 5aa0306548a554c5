package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/onboard/internal/core/domain"
	"github.com/custodia-labs/onboard/internal/core/ports/driven"
	"github.com/custodia-labs/onboard/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyLLMProvider     = "llm.provider"
	keyLLMModel        = "llm.model"
	keyLLMBaseURL      = "llm.base_url"
	keyLLMAPIKey       = "llm.api_key"
	keyHistoryWindow   = "chat.history_window"
	keyMaxTokens       = "chat.max_tokens"
	keyTemperature     = "chat.temperature"
	keyCitationDelayMS = "chat.citation_delay_ms"
	keyRoleTitle       = "assistant.role_title"
	keyRoleDescription = "assistant.role_description"
	keyReferenceDir    = "references.dir"
)

const (
	defaultOllamaURL    = "http://localhost:11434"
	maxTemperature      = 2.0
	maxHistoryWindowCap = 100
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		LLM: domain.LLMSettings{
			Provider: s.getProvider(keyLLMProvider, defaults.LLM.Provider),
			Model:    s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:  s.configStore.GetString(keyLLMBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(keyLLMAPIKey),
		},
		Chat: domain.ChatSettings{
			HistoryWindow: s.getInt(keyHistoryWindow, defaults.Chat.HistoryWindow),
			MaxTokens:     s.getInt(keyMaxTokens, defaults.Chat.MaxTokens),
			Temperature:   s.getFloat(keyTemperature, defaults.Chat.Temperature),
			CitationDelay: s.getDuration(keyCitationDelayMS, defaults.Chat.CitationDelay),
		},
		Assistant: domain.AssistantSettings{
			RoleTitle:       s.getString(keyRoleTitle, defaults.Assistant.RoleTitle),
			RoleDescription: s.getString(keyRoleDescription, defaults.Assistant.RoleDescription),
		},
		ReferenceDir: s.configStore.GetString(keyReferenceDir),
	}

	if settings.LLM.Model == "" && settings.LLM.Provider.IsValid() {
		settings.LLM.Model = domain.DefaultLLMModels()[settings.LLM.Provider]
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings.Chat.Temperature < 0 || settings.Chat.Temperature > maxTemperature {
		return fmt.Errorf("%w: temperature must be between 0 and %.1f", domain.ErrInvalidInput, maxTemperature)
	}
	if settings.Chat.HistoryWindow < 0 || settings.Chat.HistoryWindow > maxHistoryWindowCap {
		return fmt.Errorf("%w: history window must be between 0 and %d", domain.ErrInvalidInput, maxHistoryWindowCap)
	}

	// Save LLM settings
	if err := s.configStore.Set(keyLLMProvider, settings.LLM.Provider.String()); err != nil {
		return fmt.Errorf("save llm provider: %w", err)
	}
	if err := s.configStore.Set(keyLLMModel, settings.LLM.Model); err != nil {
		return fmt.Errorf("save llm model: %w", err)
	}
	if err := s.configStore.Set(keyLLMBaseURL, settings.LLM.BaseURL); err != nil {
		return fmt.Errorf("save llm base_url: %w", err)
	}
	if settings.LLM.APIKey != "" {
		if err := s.configStore.Set(keyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}

	// Save chat tuning
	if err := s.configStore.Set(keyHistoryWindow, settings.Chat.HistoryWindow); err != nil {
		return fmt.Errorf("save history window: %w", err)
	}
	if err := s.configStore.Set(keyMaxTokens, settings.Chat.MaxTokens); err != nil {
		return fmt.Errorf("save max tokens: %w", err)
	}
	if err := s.configStore.Set(keyTemperature, settings.Chat.Temperature); err != nil {
		return fmt.Errorf("save temperature: %w", err)
	}
	if err := s.configStore.Set(keyCitationDelayMS, int(settings.Chat.CitationDelay/time.Millisecond)); err != nil {
		return fmt.Errorf("save citation delay: %w", err)
	}

	// Save prompt slots
	if err := s.configStore.Set(keyRoleTitle, settings.Assistant.RoleTitle); err != nil {
		return fmt.Errorf("save role title: %w", err)
	}
	if err := s.configStore.Set(keyRoleDescription, settings.Assistant.RoleDescription); err != nil {
		return fmt.Errorf("save role description: %w", err)
	}

	if err := s.configStore.Set(keyReferenceDir, settings.ReferenceDir); err != nil {
		return fmt.Errorf("save reference dir: %w", err)
	}

	return nil
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}

	// Validate API key if required
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.LLM.Model = model
	} else {
		settings.LLM.Model = domain.DefaultLLMModels()[provider]
	}

	// Local providers need a base URL, cloud providers use their default
	if provider.IsLocal() {
		if settings.LLM.BaseURL == "" {
			settings.LLM.BaseURL = defaultOllamaURL
		}
	} else {
		settings.LLM.BaseURL = ""
	}

	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// SetAssistantRole sets the role title and description used in the system prompt.
func (s *SettingsService) SetAssistantRole(title, description string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("%w: role title is required", domain.ErrInvalidInput)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Assistant.RoleTitle = title
	if description = strings.TrimSpace(description); description != "" {
		settings.Assistant.RoleDescription = description
	}

	return s.Save(settings)
}

// SetReferenceDir points the reference library at a directory of markdown files.
func (s *SettingsService) SetReferenceDir(dir string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.ReferenceDir = strings.TrimSpace(dir)
	return s.Save(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return time.Duration(s.configStore.GetInt(key)) * time.Millisecond
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
