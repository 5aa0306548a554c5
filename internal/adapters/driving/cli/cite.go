package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/onboard/internal/core/domain"
)

// Highlight markers used in plain-text output.
const (
	markOpen  = "«"
	markClose = "»"
)

var citeShowHTML bool

var citeCmd = &cobra.Command{
	Use:   "cite",
	Short: "Resolve and display citations",
	Long: `Parse [N]["quote"] citation markers and show the quoted passage
highlighted inside its reference document.`,
}

var citeExtractCmd = &cobra.Command{
	Use:   "extract [text]",
	Short: "Parse the first citation marker in a reply",
	Args:  cobra.ExactArgs(1),
	RunE:  runCiteExtract,
}

var citeShowCmd = &cobra.Command{
	Use:   "show [N] [quote]",
	Short: "Show a reference document with a quote highlighted",
	Long: `Render reference document N (numbered from 1) and mark the first
occurrence of the quote. Matching ignores case and treats any run of
whitespace as a single space.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCiteShow,
}

func init() {
	citeShowCmd.Flags().BoolVar(&citeShowHTML, "html", false, "print highlighted HTML instead of text")

	citeCmd.AddCommand(citeExtractCmd)
	citeCmd.AddCommand(citeShowCmd)
	rootCmd.AddCommand(citeCmd)
}

func runCiteExtract(cmd *cobra.Command, args []string) error {
	if citationService == nil {
		return errors.New("citation service not configured")
	}

	ref, ok := citationService.Extract(args[0])
	if !ok {
		cmd.Println("No citation found.")
		return nil
	}

	cmd.Printf("Document: %d\n", ref.DocumentIndex+1)
	cmd.Printf("Quote:    %q\n", ref.QuotedText)

	resolved, err := citationService.Resolve(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve citation: %w", err)
	}
	if resolved == nil {
		cmd.Println("Status:   no such reference document")
	} else {
		cmd.Println("Status:   resolves")
	}
	return nil
}

func runCiteShow(cmd *cobra.Command, args []string) error {
	if citationService == nil {
		return errors.New("citation service not configured")
	}

	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return fmt.Errorf("invalid document number %q: must be a positive integer", args[0])
	}
	quote := ""
	if len(args) > 1 {
		quote = args[1]
	}

	doc, err := citationService.Highlight(cmd.Context(), n-1, quote)
	if err != nil {
		return fmt.Errorf("failed to highlight document: %w", err)
	}

	if citeShowHTML {
		cmd.Println(doc.HTML)
		return nil
	}

	cmd.Printf("[%d] %s\n\n", doc.Document.Ordinal(), doc.Document.Title)
	cmd.Println(markSpan(doc.Rendition.Text, doc.Span))
	if quote != "" && !doc.Highlighted() {
		cmd.Printf("\nQuote not found: %q\n", quote)
	}
	return nil
}

// markSpan wraps the span in highlight markers.
func markSpan(text string, span *domain.TextSpan) string {
	if span == nil {
		return text
	}
	return text[:span.Start] + markOpen + text[span.Start:span.End] + markClose + text[span.End:]
}

// citationExcerpt returns the rendered blocks the span touches, with the
// span marked.
func citationExcerpt(doc *domain.HighlightedDocument) string {
	if doc == nil || doc.Span == nil {
		return ""
	}
	start, end := doc.Span.Start, doc.Span.End
	for _, b := range doc.Rendition.Blocks {
		if !doc.Span.Overlaps(b.Start, b.End) {
			continue
		}
		if b.Start < start {
			start = b.Start
		}
		if b.End > end {
			end = b.End
		}
	}

	text := doc.Rendition.Text
	excerpt := text[start:doc.Span.Start] + markOpen + text[doc.Span.Start:doc.Span.End] + markClose + text[doc.Span.End:end]
	return strings.TrimSpace(excerpt)
}
