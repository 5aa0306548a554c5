// Package dataurl provides the fallback Normaliser. Binary uploads such as
// PDF and Word files are stored whole as a base64 data URL.
package dataurl

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/onboard/internal/core/domain"
	"github.com/custodia-labs/onboard/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

const defaultMIMEType = "application/octet-stream"

// Normaliser encodes any upload as a data URL.
type Normaliser struct{}

// New creates a new data URL normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns nil: this normaliser accepts anything.
func (n *Normaliser) SupportedMIMETypes() []string {
	return nil
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 1
}

// Normalise stores the upload as data:<mime>;base64,<payload>.
func (n *Normaliser) Normalise(_ context.Context, upload *domain.Upload) (*domain.StoredDocument, error) {
	if upload == nil {
		return nil, domain.ErrInvalidInput
	}

	mimeType := upload.MIMEType
	if mimeType == "" {
		mimeType = defaultMIMEType
	}

	return &domain.StoredDocument{
		ID:         uuid.New().String(),
		Name:       upload.Name,
		Type:       mimeType,
		Size:       int64(len(upload.Content)),
		Content:    Encode(mimeType, upload.Content),
		UploadedAt: time.Now(),
	}, nil
}

// Encode builds a base64 data URL.
func Encode(mimeType string, payload []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(payload)
}

// Decode splits a base64 data URL into its MIME type and payload.
func Decode(dataURL string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return "", nil, fmt.Errorf("%w: not a data URL", domain.ErrInvalidInput)
	}
	meta, encoded, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("%w: data URL has no payload", domain.ErrInvalidInput)
	}
	mimeType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, fmt.Errorf("%w: data URL is not base64", domain.ErrInvalidInput)
	}

	payload, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if mimeType == "" {
		mimeType = defaultMIMEType
	}
	return mimeType, payload, nil
}
