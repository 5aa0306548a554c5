package web

import (
	"github.com/custodia-labs/onboard/internal/core/ports/driving"
)

// Ports aggregates the driving ports served over HTTP.
type Ports struct {
	Chat       driving.ChatService
	Citation   driving.CitationService
	References driving.ReferenceService

	// Documents is optional; admin routes are not mounted without it.
	Documents driving.DocumentService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Chat == nil {
		return ErrMissingChatService
	}
	if p.Citation == nil {
		return ErrMissingCitationService
	}
	if p.References == nil {
		return ErrMissingReferenceService
	}
	return nil
}
