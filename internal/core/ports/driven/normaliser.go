package driven

import (
	"context"

	"github.com/custodia-labs/onboard/internal/core/domain"
)

// Normaliser turns a raw upload into the record the document store keeps.
// Each normaliser handles specific MIME types (e.g., Markdown, HTML).
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	// An empty slice marks a fallback that accepts anything.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Generic MIME normalisers should return 50-89.
	// Fallback normalisers should return 1-9.
	Priority() int

	// Normalise converts an upload into a stored document with a fresh ID
	// and UploadedAt. RoleIDs are left for the caller to fill.
	Normalise(ctx context.Context, upload *domain.Upload) (*domain.StoredDocument, error)
}

// LinkFetcher retrieves a web page for link intake.
type LinkFetcher interface {
	// Fetch downloads url and returns it as an upload with its content type.
	Fetch(ctx context.Context, url string) (*domain.Upload, error)
}

// NormaliserRegistry selects the appropriate normaliser for an upload.
// It maintains a priority-ordered list of normalisers and dispatches
// on MIME type, falling back to normalisers that accept anything.
type NormaliserRegistry interface {
	// Normalise converts an upload using the best matching normaliser.
	Normalise(ctx context.Context, upload *domain.Upload) (*domain.StoredDocument, error)

	// Register adds a normaliser to the registry.
	Register(normaliser Normaliser)

	// SupportedMIMETypes returns all MIME types with a dedicated normaliser.
	SupportedMIMETypes() []string
}
