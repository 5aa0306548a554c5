package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/onboard/internal/core/services"
)

var askNoCitation bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the onboarding assistant a question",
	Long: `Sends one question to the assistant and prints the reply.

When the reply cites a reference document, the quoted passage is shown
after a short delay, highlighted with «».`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askNoCitation, "no-citation", false, "do not show the cited passage")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	ctx := cmd.Context()
	result, err := chatService.Submit(ctx, strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("failed to ask: %w", err)
	}

	cmd.Println(result.Assistant.Text)
	if result.Err != nil {
		cmd.PrintErrf("Error: %v\n", result.Err)
	}

	if result.Citation == nil || askNoCitation || citationService == nil {
		return nil
	}

	if err := waitForReveal(ctx, revealDelay); err != nil {
		return err
	}

	doc, err := citationService.Highlight(ctx, result.Citation.DocumentIndex, result.Citation.QuotedText)
	if err != nil {
		return fmt.Errorf("failed to highlight citation: %w", err)
	}

	cmd.Println()
	cmd.Printf("Source: [%d] %s\n", doc.Document.Ordinal(), doc.Document.Title)
	if excerpt := citationExcerpt(doc); excerpt != "" {
		cmd.Printf("  %s\n", excerpt)
	} else {
		cmd.Printf("  (quote not found: %q)\n", result.Citation.QuotedText)
	}
	return nil
}

// waitForReveal blocks until the reveal delay has passed or ctx ends.
func waitForReveal(ctx context.Context, delay time.Duration) error {
	r := services.NewRevealer(delay)
	defer r.Dispose()

	revealed := make(chan struct{})
	r.Schedule(func() { close(revealed) })

	select {
	case <-revealed:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
