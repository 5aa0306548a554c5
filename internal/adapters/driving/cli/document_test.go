package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/onboard/internal/core/domain"
)

// Document Command Tests

func TestDocumentCmd_Use(t *testing.T) {
	assert.Equal(t, "document", documentCmd.Use)
	assert.Contains(t, documentCmd.Aliases, "doc")
}

func TestDocumentCmd_HasSubcommands(t *testing.T) {
	commands := documentCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "add")
	assert.Contains(t, commandNames, "add-text")
	assert.Contains(t, commandNames, "add-link")
	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "get")
	assert.Contains(t, commandNames, "tag")
	assert.Contains(t, commandNames, "delete")
}

func TestDocumentCmd_ServiceNotConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	documentService = nil

	for _, args := range [][]string{
		{"document", "list"},
		{"document", "get", "x"},
		{"document", "delete", "x"},
		{"document", "add-text", "n", "t"},
	} {
		_, _, err := executeCommand(args...)
		require.Error(t, err, args)
		assert.Contains(t, err.Error(), "document service not configured")
	}
}

// Document Add Tests

func TestDocumentAddCmd_UploadsTextFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := filepath.Join(t.TempDir(), "handbook.md")
	require.NoError(t, os.WriteFile(path, []byte("# Handbook\n\nBe kind.\n"), 0o600))

	out, _, err := executeCommand("document", "add", path)

	require.NoError(t, err)
	assert.Contains(t, out, "Added handbook.md (text/markdown")
	assert.Contains(t, out, "ID: ")

	docs, err := documentService.List(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "# Handbook\n\nBe kind.\n", docs[0].Content)
}

func TestDocumentAddCmd_RejectsUnsupportedExtension(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := filepath.Join(t.TempDir(), "setup.exe")
	require.NoError(t, os.WriteFile(path, []byte{0x4d, 0x5a}, 0o600))

	_, _, err := executeCommand("document", "add", path)

	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestDocumentAddCmd_MissingFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, _, err := executeCommand("document", "add", filepath.Join(t.TempDir(), "missing.txt"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestDocumentAddCmd_UnknownRole(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("notes"), 0o600))

	_, _, err := executeCommand("document", "add", "--role", "nope", path)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDocumentAddTextCmd_ReadsStdin(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	rootCmd.SetIn(strings.NewReader("from stdin"))
	out, _, err := executeCommand("document", "add-text", "Pasted", "-")

	require.NoError(t, err)
	assert.Contains(t, out, "Added Pasted (text/plain")

	docs, err := documentService.List(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "from stdin", docs[0].Content)
}

func TestDocumentAddLinkCmd_NoFetcher(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, _, err := executeCommand("document", "add-link", "https://example.com")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "link intake not configured")
}

// Document List / Get Tests

func TestDocumentListCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, _, err := executeCommand("document", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No documents found.")

	ctx := context.Background()
	role, err := documentService.AddRole(ctx, "Engineer", "")
	require.NoError(t, err)
	_, err = documentService.AddText(ctx, "Tagged", "a", []string{role.ID})
	require.NoError(t, err)
	_, err = documentService.AddText(ctx, "Untagged", "b", nil)
	require.NoError(t, err)

	out, _, err = executeCommand("document", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Tagged")
	assert.Contains(t, out, "Untagged")
	assert.Contains(t, out, "Total: 2 documents")

	out, _, err = executeCommand("document", "list", "--role", role.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Name: Tagged")
	assert.NotContains(t, out, "Untagged")
	assert.Contains(t, out, "Total: 1 documents")
}

func TestDocumentGetCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	doc, err := documentService.AddText(context.Background(), "Policy", "Leave is 25 days.", nil)
	require.NoError(t, err)

	out, _, err := executeCommand("document", "get", doc.ID)

	require.NoError(t, err)
	assert.Contains(t, out, "Document: "+doc.ID)
	assert.Contains(t, out, "Name:      Policy")
	assert.Contains(t, out, "Leave is 25 days.")
}

func TestDocumentGetCmd_NotFound(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, _, err := executeCommand("document", "get", "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentGetCmd_BinaryExport(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	payload := []byte("%PDF-1.4\x00\x01binary")
	doc, err := documentService.Upload(context.Background(), domain.Upload{Name: "guide.pdf", Content: payload})
	require.NoError(t, err)
	require.True(t, doc.IsDataURL())

	out, _, err := executeCommand("document", "get", doc.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "(binary content; use --output to export)")

	dest := filepath.Join(t.TempDir(), "out.pdf")
	out, _, err = executeCommand("document", "get", "--output", dest, doc.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	written, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, payload, written)
}

// Document Tag / Delete Tests

func TestDocumentTagCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	ctx := context.Background()
	role, err := documentService.AddRole(ctx, "Designer", "")
	require.NoError(t, err)
	doc, err := documentService.AddText(ctx, "Brand", "Use the blue.", nil)
	require.NoError(t, err)

	out, _, err := executeCommand("document", "tag", "--role", role.ID, doc.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "tagged with 1 role(s)")

	got, err := documentService.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{role.ID}, got.RoleIDs)

	out, _, err = executeCommand("document", "tag", doc.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "untagged")

	got, err = documentService.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Empty(t, got.RoleIDs)
}

func TestDocumentDeleteCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	doc, err := documentService.AddText(context.Background(), "Old", "stale", nil)
	require.NoError(t, err)

	out, _, err := executeCommand("document", "delete", doc.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Document "+doc.ID+" deleted.")

	_, _, err = executeCommand("document", "delete", doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
