package domain

// BlockKind classifies a rendered block.
type BlockKind string

// Rendered block kinds.
const (
	BlockHeading   BlockKind = "heading"
	BlockParagraph BlockKind = "paragraph"
	BlockListItem  BlockKind = "list_item"
	BlockCode      BlockKind = "code"
	BlockQuote     BlockKind = "quote"
	BlockRule      BlockKind = "rule"
)

// RenderedBlock is a top-level unit of a rendition.
type RenderedBlock struct {
	Kind BlockKind

	// Level is the heading level (1-6) or list nesting depth (1-based).
	Level int

	// Start and End are byte offsets into Rendition.Text.
	Start int
	End   int
}

// Rendition is the human-readable text of a markdown body: markup tokens
// removed, soft line breaks rendered as a space, blocks separated by "\n".
type Rendition struct {
	Text   string
	Blocks []RenderedBlock
}

// TextSpan is a half-open byte range into Rendition.Text.
type TextSpan struct {
	Start int
	End   int
}

// Len returns the span length in bytes.
func (s TextSpan) Len() int {
	return s.End - s.Start
}

// Overlaps reports whether [start, end) intersects the span.
func (s TextSpan) Overlaps(start, end int) bool {
	return start < s.End && end > s.Start
}

// HighlightedDocument is a reference document rendered with at most one
// highlighted span.
type HighlightedDocument struct {
	Document  ReferenceDocument
	Quote     string
	Rendition Rendition

	// Span is nil when the quote was empty or not found.
	Span *TextSpan

	// HTML is the rendered body with the span wrapped in <mark>.
	HTML string
}

// Highlighted returns true if a span was found.
func (h HighlightedDocument) Highlighted() bool {
	return h.Span != nil
}

// HighlightedText returns the source text covered by the span.
func (h HighlightedDocument) HighlightedText() string {
	if h.Span == nil {
		return ""
	}
	return h.Rendition.Text[h.Span.Start:h.Span.End]
}
