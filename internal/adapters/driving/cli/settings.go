package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/onboard/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the LLM provider, the assistant's role and the
reference library.

Environment variables (OPENAI_API_KEY, ONBOARD_API_KEY, ONBOARD_MODEL, ...)
override stored settings at startup.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsProviderCmd = &cobra.Command{
	Use:   "provider",
	Short: "Configure LLM provider",
	Long:  `Interactively choose the LLM provider, model and API key.`,
	RunE:  runSettingsProvider,
}

var settingsModelCmd = &cobra.Command{
	Use:   "model [name]",
	Short: "Set the model for the current provider",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsModel,
}

var settingsAPIKeyCmd = &cobra.Command{
	Use:   "apikey",
	Short: "Set the API key for the current provider",
	Long:  `Prompts for the API key without echoing it.`,
	Args:  cobra.NoArgs,
	RunE:  runSettingsAPIKey,
}

var settingsRoleCmd = &cobra.Command{
	Use:   "role [title] [description]",
	Short: "Set the role the assistant onboards people into",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runSettingsRole,
}

var settingsReferencesDirCmd = &cobra.Command{
	Use:   "references-dir [path]",
	Short: "Read reference documents from a directory of markdown files",
	Long: `Point the reference library at a directory of .md files, ordered by
file name. Pass "" to go back to the built-in documents.`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsReferencesDir,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsProviderCmd)
	settingsCmd.AddCommand(settingsModelCmd)
	settingsCmd.AddCommand(settingsAPIKeyCmd)
	settingsCmd.AddCommand(settingsRoleCmd)
	settingsCmd.AddCommand(settingsReferencesDirCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	// LLM settings
	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.LLM.Model)
	if settings.LLM.Provider.IsLocal() || settings.LLM.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
	}
	if settings.LLM.Provider.RequiresAPIKey() {
		if settings.LLM.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(settings.LLM.APIKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	status := "configured"
	if !settings.LLM.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	// Chat tuning
	cmd.Println("[Chat]")
	cmd.Printf("  History window: %d messages\n", settings.Chat.HistoryWindow)
	cmd.Printf("  Max tokens: %d\n", settings.Chat.MaxTokens)
	cmd.Printf("  Temperature: %.1f\n", settings.Chat.Temperature)
	cmd.Printf("  Citation delay: %s\n", settings.Chat.CitationDelay)
	cmd.Println()

	// Assistant
	cmd.Println("[Assistant]")
	cmd.Printf("  Role: %s\n", settings.Assistant.RoleTitle)
	if settings.Assistant.RoleDescription != "" {
		cmd.Printf("  Description: %s\n", settings.Assistant.RoleDescription)
	}
	cmd.Println()

	// References
	cmd.Println("[References]")
	if settings.ReferenceDir != "" {
		cmd.Printf("  Directory: %s\n", settings.ReferenceDir)
	} else {
		cmd.Printf("  Directory: (built-in documents)\n")
	}
	cmd.Println()

	if !settings.LLM.IsConfigured() {
		cmd.Println("Run 'onboard settings provider' to start chatting.")
	}

	return nil
}

func runSettingsProvider(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	return configureLLMProvider(cmd, reader)
}

func runSettingsModel(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	model := strings.TrimSpace(args[0])
	if model == "" {
		return errors.New("model name is required")
	}
	settings.LLM.Model = model
	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save model: %w", err)
	}

	cmd.Printf("Model set to: %s (%s)\n", model, settings.LLM.Provider.Description())
	return nil
}

func runSettingsAPIKey(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	provider := settings.LLM.Provider
	if !provider.RequiresAPIKey() {
		// Keys are only meaningful for cloud providers.
		provider = domain.AIProviderOpenAI
	}

	cmd.Printf("Enter %s API key: ", provider.Description())
	apiKey := readPassword(cmd.InOrStdin(), bufio.NewReader(cmd.InOrStdin()))
	cmd.Println()
	if apiKey == "" {
		return errors.New("API key is required")
	}

	model := settings.LLM.Model
	if provider != settings.LLM.Provider {
		model = ""
	}
	if err := settingsService.SetLLMProvider(provider, model, apiKey); err != nil {
		return fmt.Errorf("failed to save API key: %w", err)
	}

	cmd.Printf("API key saved for %s: %s\n", provider.Description(), maskAPIKey(apiKey))
	return nil
}

func runSettingsRole(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	description := ""
	if len(args) > 1 {
		description = args[1]
	}
	if err := settingsService.SetAssistantRole(args[0], description); err != nil {
		return fmt.Errorf("failed to set role: %w", err)
	}

	cmd.Printf("Assistant role set to: %s\n", strings.TrimSpace(args[0]))
	return nil
}

func runSettingsReferencesDir(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	dir := strings.TrimSpace(args[0])
	if dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", dir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory", dir)
		}
	}

	if err := settingsService.SetReferenceDir(dir); err != nil {
		return fmt.Errorf("failed to set reference directory: %w", err)
	}

	if dir == "" {
		cmd.Println("Using built-in reference documents.")
	} else {
		cmd.Printf("Reference documents will be read from: %s\n", dir)
	}
	cmd.Println("Restart onboard for the change to take effect.")
	return nil
}

func configureLLMProvider(cmd *cobra.Command, reader *bufio.Reader) error {
	cmd.Println("Select LLM Provider")
	providers := domain.AllLLMProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	input := readLine(reader)
	idx := parseChoice(input, len(providers), 1)
	selectedProvider := providers[idx-1]

	// Get model
	defaults := domain.DefaultLLMModels()
	defaultModel := defaults[selectedProvider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	// Get API key if needed
	var apiKey string
	if selectedProvider.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		apiKey = readPassword(cmd.InOrStdin(), reader)
		cmd.Println()
		if apiKey == "" {
			return errors.New("API key is required for this provider")
		}
	}

	if err := settingsService.SetLLMProvider(selectedProvider, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure LLM provider: %w", err)
	}

	// Validate the configuration by pinging the service
	cmd.Print("Validating configuration... ")
	if err := settingsService.ValidateLLMConfig(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("LLM configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("LLM provider configured: %s (%s)\n\n", selectedProvider.Description(), model)
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads without echo when in is a terminal, otherwise a line
// from reader.
func readPassword(in io.Reader, reader *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
