// Package mcp provides an MCP (Model Context Protocol) server adapter for the
// onboarding assistant. It lets other AI clients resolve citations, highlight
// quotes in the reference library and ask the assistant questions.
package mcp

import "errors"

var (
	// ErrMissingCitationService is returned when the citation service is not provided.
	ErrMissingCitationService = errors.New("mcp: citation service is required")

	// ErrMissingReferenceService is returned when the reference service is not provided.
	ErrMissingReferenceService = errors.New("mcp: reference service is required")
)
