// Package env reads settings overrides from the process environment and an
// optional .env file.
package env

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"github.com/custodia-labs/onboard/internal/core/domain"
)

// Config holds environment overrides. Empty fields leave the stored
// setting untouched.
type Config struct {
	Provider     string        `env:"ONBOARD_PROVIDER"`
	Model        string        `env:"ONBOARD_MODEL"`
	BaseURL      string        `env:"ONBOARD_BASE_URL"`
	APIKey       string        `env:"ONBOARD_API_KEY"`
	OpenAIKey    string        `env:"OPENAI_API_KEY"`
	AnthropicKey string        `env:"ANTHROPIC_API_KEY"`
	RoleTitle    string        `env:"ONBOARD_ROLE_TITLE"`
	ReferenceDir string        `env:"ONBOARD_REFERENCE_DIR"`
	HistorySize  int           `env:"ONBOARD_HISTORY_WINDOW"`
	MaxTokens    int           `env:"ONBOARD_MAX_TOKENS"`
	RevealDelay  time.Duration `env:"ONBOARD_CITATION_DELAY"`
	DataDir      string        `env:"ONBOARD_DATA_DIR"`
	ServerAddr   string        `env:"ONBOARD_ADDR" envDefault:"127.0.0.1:8080"`
	RateLimit    float64       `env:"ONBOARD_RATE_LIMIT" envDefault:"1"`
	RateBurst    int           `env:"ONBOARD_RATE_BURST" envDefault:"3"`
}

// Load reads files (default ".env") into the environment, then parses it.
// Missing files are skipped; variables already set win over file values.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Apply overlays the overrides onto settings.
func (c Config) Apply(settings *domain.AppSettings) {
	if p := domain.AIProvider(c.Provider); p.IsValid() {
		settings.LLM.Provider = p
	} else if c.Provider == "" && !settings.LLM.Provider.IsValid() && c.OpenAIKey != "" {
		// A bare OPENAI_API_KEY is enough to get going.
		settings.LLM.Provider = domain.AIProviderOpenAI
	}
	if settings.LLM.Provider.IsValid() && settings.LLM.Model == "" {
		settings.LLM.Model = domain.DefaultLLMModels()[settings.LLM.Provider]
	}

	if c.Model != "" {
		settings.LLM.Model = c.Model
	}
	if c.BaseURL != "" {
		settings.LLM.BaseURL = c.BaseURL
	}
	if key := c.providerKey(settings.LLM.Provider); key != "" {
		settings.LLM.APIKey = key
	}

	if c.RoleTitle != "" {
		settings.Assistant.RoleTitle = c.RoleTitle
	}
	if c.ReferenceDir != "" {
		settings.ReferenceDir = c.ReferenceDir
	}
	if c.HistorySize > 0 {
		settings.Chat.HistoryWindow = c.HistorySize
	}
	if c.MaxTokens > 0 {
		settings.Chat.MaxTokens = c.MaxTokens
	}
	if c.RevealDelay > 0 {
		settings.Chat.CitationDelay = c.RevealDelay
	}
}

// providerKey picks the credential for a provider. ONBOARD_API_KEY applies
// to any provider.
func (c Config) providerKey(provider domain.AIProvider) string {
	if c.APIKey != "" {
		return c.APIKey
	}
	switch provider {
	case domain.AIProviderOpenAI:
		return c.OpenAIKey
	case domain.AIProviderAnthropic:
		return c.AnthropicKey
	default:
		return ""
	}
}
