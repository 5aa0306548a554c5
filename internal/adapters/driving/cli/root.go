// Package cli provides the cobra command tree for onboard.
package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/onboard/internal/adapters/driving/web"
	"github.com/custodia-labs/onboard/internal/core/domain"
	"github.com/custodia-labs/onboard/internal/core/ports/driving"
	"github.com/custodia-labs/onboard/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services wired in by main.
var (
	chatService      driving.ChatService
	citationService  driving.CitationService
	referenceService driving.ReferenceService
	documentService  driving.DocumentService
	settingsService  driving.SettingsService

	// revealDelay is how long ask waits before showing a citation.
	revealDelay = domain.DefaultAppSettings().Chat.CitationDelay

	// serverConfig holds defaults for the serve command.
	serverConfig = web.Config{}
)

// verbose enables debug logging for every command.
var verbose bool

// Services aggregates everything the commands need.
type Services struct {
	Chat        driving.ChatService
	Citation    driving.CitationService
	References  driving.ReferenceService
	Documents   driving.DocumentService
	Settings    driving.SettingsService
	RevealDelay time.Duration
	Server      web.Config
}

// SetServices injects the services used by the commands.
func SetServices(s Services) {
	chatService = s.Chat
	citationService = s.Citation
	referenceService = s.References
	documentService = s.Documents
	settingsService = s.Settings
	revealDelay = s.RevealDelay
	serverConfig = s.Server
}

// SetVersion sets the version reported by 'onboard version'.
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Onboarding assistant with cited answers",
	Long: `onboard answers new-hire questions with a hosted language model and
points at the exact passage of the onboarding documents each answer came from.

Run 'onboard tui' for the interactive chat, 'onboard ask' for a single
question, or 'onboard serve' to expose the HTTP API.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with a context that commands
// observe for cancellation.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
