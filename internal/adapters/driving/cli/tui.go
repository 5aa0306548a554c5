package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/onboard/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for onboard.

Chat with the onboarding assistant. When an answer cites a reference
document, a side panel opens with the quoted passage highlighted.

Controls:
  Enter      - Send message
  Tab        - Switch focus between chat and citation panel
  ↑/↓, PgUp/PgDn - Scroll
  Esc        - Close citation panel / dismiss error
  Ctrl+R     - Start a new conversation
  ?          - Toggle help
  Ctrl+C     - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := &tui.Ports{
		Chat:       chatService,
		Citation:   citationService,
		References: referenceService,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if err := app.WithContext(cmd.Context()).WithRevealDelay(revealDelay).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
