package domain

// ReferenceDocument is one entry in the fixed, ordered collection the
// assistant is instructed to quote from.
type ReferenceDocument struct {
	// Index is the 0-based stable position in the collection.
	Index int

	// Title is the first level-one heading, or a name derived from the file.
	Title string

	// Body is the markdown source.
	Body string
}

// Ordinal returns the 1-based number the assistant uses in citation markers.
func (d ReferenceDocument) Ordinal() int {
	return d.Index + 1
}

// CitationReference is a citation parsed from one assistant reply.
// It is derived per message and never persisted.
type CitationReference struct {
	// DocumentIndex is 0-based. It must resolve to a ReferenceDocument
	// before a citation view opens.
	DocumentIndex int

	// QuotedText is the passage between the marker's double quotes.
	QuotedText string
}

// InRange reports whether the reference resolves within a collection of count documents.
func (c CitationReference) InRange(count int) bool {
	return c.DocumentIndex >= 0 && c.DocumentIndex < count
}

// CitationViewState is the presentation state of the citation viewer.
type CitationViewState struct {
	IsOpen        bool
	DocumentIndex *int
	QuotedText    *string
}

// Open shows the viewer for a reference. Opening a reference to a different
// document replaces the previous one.
func (s *CitationViewState) Open(ref CitationReference) {
	idx := ref.DocumentIndex
	quote := ref.QuotedText
	s.IsOpen = true
	s.DocumentIndex = &idx
	s.QuotedText = &quote
}

// Close hides the viewer and clears its index and quote.
func (s *CitationViewState) Close() {
	s.IsOpen = false
	s.DocumentIndex = nil
	s.QuotedText = nil
}

// Quote returns the open quote, or an empty string.
func (s CitationViewState) Quote() string {
	if s.QuotedText == nil {
		return ""
	}
	return *s.QuotedText
}
