package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/custodia-labs/onboard/internal/core/domain"
	"github.com/custodia-labs/onboard/internal/core/ports/driven"
	"github.com/custodia-labs/onboard/internal/core/ports/driving"
	"github.com/custodia-labs/onboard/internal/logger"
)

// Ensure CitationService implements the interface.
var _ driving.CitationService = (*CitationService)(nil)

// citationMarker matches [N]["Q"]. Q may span lines but never contains a
// double quote, so a quote with an inner " does not match at all.
var citationMarker = regexp.MustCompile(`\[(\d+)\]\["([^"]*)"\]`)

// ExtractCitation returns the leftmost citation marker in reply.
// N is 1-based in the marker and 0-based in the result. Markers whose N
// is not a positive integer yield no citation.
func ExtractCitation(reply string) (domain.CitationReference, bool) {
	m := citationMarker.FindStringSubmatch(reply)
	if m == nil {
		return domain.CitationReference{}, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return domain.CitationReference{}, false
	}
	return domain.CitationReference{DocumentIndex: n - 1, QuotedText: m[2]}, true
}

// FindQuote locates the first case-insensitive occurrence of quote in text.
// The quote is matched literally, except that any run of whitespace in it
// matches any run of whitespace in text. Returns nil for a blank quote or
// no match.
func FindQuote(text, quote string) *domain.TextSpan {
	words := strings.Fields(quote)
	if len(words) == 0 {
		return nil
	}
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	pattern, err := regexp.Compile(`(?i)` + strings.Join(words, `\s+`))
	if err != nil {
		return nil
	}
	loc := pattern.FindStringIndex(text)
	if loc == nil {
		return nil
	}
	return &domain.TextSpan{Start: loc[0], End: loc[1]}
}

// CitationService resolves citation markers against the reference library
// and renders highlighted reference documents.
type CitationService struct {
	references driving.ReferenceService
	renderer   driven.MarkdownRenderer
}

// NewCitationService creates a new citation service.
func NewCitationService(references driving.ReferenceService, renderer driven.MarkdownRenderer) *CitationService {
	return &CitationService{
		references: references,
		renderer:   renderer,
	}
}

// Extract parses the first citation marker in an assistant reply.
func (s *CitationService) Extract(reply string) (domain.CitationReference, bool) {
	return ExtractCitation(reply)
}

// Resolve extracts a marker and keeps it only if its index resolves.
// An unresolvable marker is not an error.
func (s *CitationService) Resolve(ctx context.Context, reply string) (*domain.CitationReference, error) {
	ref, ok := ExtractCitation(reply)
	if !ok {
		logger.Debug("No citation marker in reply")
		return nil, nil
	}

	count, err := s.references.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count references: %w", err)
	}
	if !ref.InRange(count) {
		logger.Debug("Citation [%d] out of range (%d documents)", ref.DocumentIndex+1, count)
		return nil, nil
	}

	logger.Debug("Citation resolved: document %d, quote %q", ref.DocumentIndex, ref.QuotedText)
	return &ref, nil
}

// Highlight renders the reference document at index with the first
// occurrence of quote marked. A missing or empty quote is not an error:
// the document comes back unhighlighted.
func (s *CitationService) Highlight(ctx context.Context, index int, quote string) (*domain.HighlightedDocument, error) {
	doc, err := s.references.Get(ctx, index)
	if err != nil {
		return nil, err
	}

	rendition, err := s.renderer.Render(doc.Body)
	if err != nil {
		return nil, fmt.Errorf("render document %d: %w", index, err)
	}

	span := FindQuote(rendition.Text, quote)
	if span == nil && strings.TrimSpace(quote) != "" {
		logger.Debug("Quote not found in %q: %q", doc.Title, quote)
	}

	html, err := s.renderer.RenderHTML(doc.Body, span)
	if err != nil {
		return nil, fmt.Errorf("render document %d html: %w", index, err)
	}

	return &domain.HighlightedDocument{
		Document:  *doc,
		Quote:     quote,
		Rendition: rendition,
		Span:      span,
		HTML:      html,
	}, nil
}
