package driven

import (
	"context"

	"github.com/custodia-labs/onboard/internal/core/domain"
)

// ReferenceSource loads the fixed, ordered reference documents.
// The order is stable for the lifetime of the process; Index fields are
// assigned from it.
type ReferenceSource interface {
	Load(ctx context.Context) ([]domain.ReferenceDocument, error)
}

// MarkdownRenderer turns a markdown body into readable text and HTML.
type MarkdownRenderer interface {
	// Render returns the human-readable text of body. Matching against
	// this text ignores markup tokens.
	Render(body string) (domain.Rendition, error)

	// RenderHTML renders body to HTML. When span is non-nil, the rendered
	// text covered by it is wrapped in <mark> elements; the first carries
	// id="citation-highlight". Span offsets refer to Render(body).Text.
	RenderHTML(body string, span *domain.TextSpan) (string, error)
}
