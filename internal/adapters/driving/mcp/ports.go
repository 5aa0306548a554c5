package mcp

import (
	"github.com/custodia-labs/onboard/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Chat answers questions. Optional: the ask tool reports unavailability without it.
	Chat driving.ChatService

	// Citation parses markers and highlights quotes.
	Citation driving.CitationService

	// References lists the reference library.
	References driving.ReferenceService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Citation == nil {
		return ErrMissingCitationService
	}
	if p.References == nil {
		return ErrMissingReferenceService
	}
	return nil
}
