// Package markdown provides a Normaliser for Markdown uploads. The source
// is kept as written so it renders the same way when read back.
package markdown

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/onboard/internal/core/domain"
	"github.com/custodia-labs/onboard/internal/core/ports/driven"
	"github.com/custodia-labs/onboard/internal/normalisers/plaintext"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles Markdown documents.
type Normaliser struct{}

// New creates a new Markdown normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/markdown", "text/x-markdown"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 60
}

// Normalise stores the Markdown source. An unnamed upload takes its name
// from the first level-one heading.
func (n *Normaliser) Normalise(_ context.Context, upload *domain.Upload) (*domain.StoredDocument, error) {
	if upload == nil {
		return nil, domain.ErrInvalidInput
	}

	content := plaintext.Text(upload.Content)
	name := strings.TrimSpace(upload.Name)
	if name == "" {
		name = extractMarkdownTitle(content)
	}

	return &domain.StoredDocument{
		ID:         uuid.New().String(),
		Name:       name,
		Type:       upload.MIMEType,
		Size:       int64(len(upload.Content)),
		Content:    content,
		UploadedAt: time.Now(),
	}, nil
}

// extractMarkdownTitle returns the first "# " heading, or "".
func extractMarkdownTitle(content string) string {
	inFence := false
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "```") {
			inFence = !inFence
			continue
		}
		if !inFence && strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "#"))
		}
	}
	return ""
}
