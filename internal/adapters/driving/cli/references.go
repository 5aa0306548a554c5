package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var referencesCmd = &cobra.Command{
	Use:     "references",
	Aliases: []string{"refs"},
	Short:   "Browse the reference library",
	Long:    `List and read the reference documents the assistant quotes from.`,
}

var referencesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reference documents",
	Args:  cobra.NoArgs,
	RunE:  runReferencesList,
}

var referencesShowCmd = &cobra.Command{
	Use:   "show [N]",
	Short: "Print a reference document's markdown",
	Args:  cobra.ExactArgs(1),
	RunE:  runReferencesShow,
}

func init() {
	referencesCmd.AddCommand(referencesListCmd)
	referencesCmd.AddCommand(referencesShowCmd)
	rootCmd.AddCommand(referencesCmd)
}

func runReferencesList(cmd *cobra.Command, _ []string) error {
	if referenceService == nil {
		return errors.New("reference service not configured")
	}

	docs, err := referenceService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list references: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No reference documents.")
		return nil
	}

	cmd.Println("Reference documents:")
	cmd.Println()
	for _, d := range docs {
		cmd.Printf("  [%d] %s\n", d.Ordinal(), d.Title)
	}
	cmd.Println()
	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runReferencesShow(cmd *cobra.Command, args []string) error {
	if referenceService == nil {
		return errors.New("reference service not configured")
	}

	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return fmt.Errorf("invalid document number %q: must be a positive integer", args[0])
	}

	doc, err := referenceService.Get(cmd.Context(), n-1)
	if err != nil {
		return fmt.Errorf("failed to get reference: %w", err)
	}

	cmd.Println(doc.Body)
	return nil
}
