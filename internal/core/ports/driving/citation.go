package driving

import (
	"context"

	"github.com/custodia-labs/onboard/internal/core/domain"
)

// CitationService resolves citation markers against the reference library.
type CitationService interface {
	// Extract parses the first citation marker in an assistant reply.
	// It does not check the index against the library.
	Extract(reply string) (domain.CitationReference, bool)

	// Resolve extracts a marker and keeps it only if its index resolves.
	Resolve(ctx context.Context, reply string) (*domain.CitationReference, error)

	// Highlight renders a reference document with the first
	// case-insensitive occurrence of quote marked.
	Highlight(ctx context.Context, index int, quote string) (*domain.HighlightedDocument, error)
}

// ReferenceService exposes the reference library read-only.
type ReferenceService interface {
	// List returns all reference documents in index order.
	List(ctx context.Context) ([]domain.ReferenceDocument, error)

	// Get returns the document at a 0-based index.
	// Returns domain.ErrReferenceOutOfRange when it does not resolve.
	Get(ctx context.Context, index int) (*domain.ReferenceDocument, error)

	// Count returns the number of reference documents.
	Count(ctx context.Context) (int, error)
}
