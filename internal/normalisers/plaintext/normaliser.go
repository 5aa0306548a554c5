// Package plaintext provides a Normaliser for text-like uploads: plain text,
// CSV and JSON. Content is stored as text so it can be read back verbatim.
package plaintext

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/custodia-labs/onboard/internal/core/domain"
	"github.com/custodia-labs/onboard/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text documents.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{
		"text/plain",
		"text/csv",
		"application/json",
	}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise stores the upload as text. Invalid UTF-8 is replaced and a
// leading byte order mark is dropped.
func (n *Normaliser) Normalise(_ context.Context, upload *domain.Upload) (*domain.StoredDocument, error) {
	if upload == nil {
		return nil, domain.ErrInvalidInput
	}

	return &domain.StoredDocument{
		ID:         uuid.New().String(),
		Name:       upload.Name,
		Type:       upload.MIMEType,
		Size:       int64(len(upload.Content)),
		Content:    Text(upload.Content),
		UploadedAt: time.Now(),
	}, nil
}

// Text decodes raw bytes as UTF-8 text with Unix line endings.
func Text(raw []byte) string {
	content := string(raw)
	if !utf8.ValidString(content) {
		content = strings.ToValidUTF8(content, "\uFFFD")
	}
	content = strings.TrimPrefix(content, "\ufeff")
	return strings.ReplaceAll(content, "\r\n", "\n")
}
