// Package domain defines the core business entities for Onboard.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Message: One entry in a conversation transcript
//   - ReferenceDocument: A fixed, indexed source the assistant quotes from
//   - CitationReference: A document index plus quoted passage parsed from a reply
//   - Rendition: The human-readable text of a markdown body
//   - StoredDocument: An admin-uploaded document with role tags
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
