// Package tui provides an interactive terminal user interface for onboard.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/onboard/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Chat runs conversation turns and owns the transcript.
	Chat driving.ChatService

	// Citation renders highlighted reference documents.
	Citation driving.CitationService

	// References lists the reference library. Optional; used for the
	// document count in the help view.
	References driving.ReferenceService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	chat driving.ChatService,
	citation driving.CitationService,
	references driving.ReferenceService,
) *Ports {
	return &Ports{
		Chat:       chat,
		Citation:   citation,
		References: references,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Chat == nil {
		return ErrMissingChatService
	}
	if p.Citation == nil {
		return ErrMissingCitationService
	}
	return nil
}
