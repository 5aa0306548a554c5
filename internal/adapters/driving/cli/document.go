package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/onboard/internal/core/domain"
	"github.com/custodia-labs/onboard/internal/normalisers/dataurl"
)

var documentCmd = &cobra.Command{
	Use:     "document",
	Aliases: []string{"doc"},
	Short:   "Manage uploaded documents",
	Long: `Add, list, export, tag or delete the documents admins upload for new hires.

Accepted files: .pdf .doc .docx .txt .md .json .csv`,
}

var documentAddCmd = &cobra.Command{
	Use:   "add [file]",
	Short: "Upload a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentAdd,
}

var documentAddTextCmd = &cobra.Command{
	Use:   "add-text [name] [text]",
	Short: "Store pasted text",
	Long:  `Store text under a name. Pass "-" as the text to read it from stdin.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runDocumentAddText,
}

var documentAddLinkCmd = &cobra.Command{
	Use:   "add-link [url]",
	Short: "Fetch a web page and store its text",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentAddLink,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents, newest first",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show a document",
	Long: `Show a document's details and content. With --output the content is
written to a file instead; binary uploads are decoded back to their bytes.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentGet,
}

var documentTagCmd = &cobra.Command{
	Use:   "tag [doc-id]",
	Short: "Replace a document's role tags",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentTag,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

var (
	documentRoles  []string
	documentOutput string
)

func init() {
	for _, c := range []*cobra.Command{documentAddCmd, documentAddTextCmd, documentAddLinkCmd, documentTagCmd} {
		c.Flags().StringSliceVarP(&documentRoles, "role", "r", nil, "role ID to tag the document with (repeatable)")
	}
	documentListCmd.Flags().StringSliceVarP(&documentRoles, "role", "r", nil, "only list documents tagged with this role ID")
	documentGetCmd.Flags().StringVarP(&documentOutput, "output", "o", "", "write content to this file")

	documentCmd.AddCommand(documentAddCmd)
	documentCmd.AddCommand(documentAddTextCmd)
	documentCmd.AddCommand(documentAddLinkCmd)
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentTagCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentAdd(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	path := args[0]
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	doc, err := documentService.Upload(cmd.Context(), domain.Upload{
		Name:    filepath.Base(path),
		Content: content,
		RoleIDs: documentRoles,
	})
	if err != nil {
		return fmt.Errorf("failed to upload document: %w", err)
	}

	printDocumentAdded(cmd, doc)
	return nil
}

func runDocumentAddText(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	text := args[1]
	if text == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(data)
	}

	doc, err := documentService.AddText(cmd.Context(), args[0], text, documentRoles)
	if err != nil {
		return fmt.Errorf("failed to add text: %w", err)
	}

	printDocumentAdded(cmd, doc)
	return nil
}

func runDocumentAddLink(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	cmd.Printf("Fetching %s...\n", args[0])
	doc, err := documentService.AddLink(cmd.Context(), args[0], documentRoles)
	if err != nil {
		return fmt.Errorf("failed to add link: %w", err)
	}

	printDocumentAdded(cmd, doc)
	return nil
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	roleID := ""
	if len(documentRoles) > 0 {
		roleID = documentRoles[0]
	}

	docs, err := documentService.ListByRole(cmd.Context(), roleID)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents found.")
		return nil
	}

	cmd.Println("Documents:")
	cmd.Println()
	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    Name: %s\n", docs[i].Name)
		cmd.Printf("    Type: %s (%s)\n", docs[i].Type, domain.FormatSize(docs[i].Size))
		cmd.Printf("    Uploaded: %s\n", docs[i].UploadedAt.Format("2006-01-02 15:04:05"))
		if len(docs[i].RoleIDs) > 0 {
			cmd.Printf("    Roles: %v\n", docs[i].RoleIDs)
		}
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	doc, err := documentService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	if documentOutput != "" {
		payload := []byte(doc.Content)
		if doc.IsDataURL() {
			if _, payload, err = dataurl.Decode(doc.Content); err != nil {
				return fmt.Errorf("failed to decode document: %w", err)
			}
		}
		if err := os.WriteFile(documentOutput, payload, 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", documentOutput, err)
		}
		cmd.Printf("Wrote %s to %s\n", domain.FormatSize(int64(len(payload))), documentOutput)
		return nil
	}

	cmd.Printf("Document: %s\n\n", doc.ID)
	cmd.Printf("  Name:      %s\n", doc.Name)
	cmd.Printf("  Type:      %s\n", doc.Type)
	cmd.Printf("  Size:      %s\n", domain.FormatSize(doc.Size))
	cmd.Printf("  Uploaded:  %s\n", doc.UploadedAt.Format("2006-01-02 15:04:05"))
	if len(doc.RoleIDs) > 0 {
		cmd.Printf("  Roles:     %v\n", doc.RoleIDs)
	}
	cmd.Println()

	if doc.IsDataURL() {
		cmd.Println("(binary content; use --output to export)")
		return nil
	}
	cmd.Println(doc.Content)
	return nil
}

func runDocumentTag(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if err := documentService.Tag(cmd.Context(), args[0], documentRoles); err != nil {
		return fmt.Errorf("failed to tag document: %w", err)
	}

	if len(documentRoles) == 0 {
		cmd.Printf("Document %s untagged.\n", args[0])
		return nil
	}
	cmd.Printf("Document %s tagged with %d role(s).\n", args[0], len(documentRoles))
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if err := documentService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	cmd.Printf("Document %s deleted.\n", args[0])
	return nil
}

func printDocumentAdded(cmd *cobra.Command, doc *domain.StoredDocument) {
	cmd.Printf("Added %s (%s, %s)\n", doc.Name, doc.Type, domain.FormatSize(doc.Size))
	cmd.Printf("  ID: %s\n", doc.ID)
}
