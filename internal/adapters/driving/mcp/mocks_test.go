package mcp

import (
	"context"
	"fmt"

	"github.com/custodia-labs/onboard/internal/core/domain"
	"github.com/custodia-labs/onboard/internal/core/services"
)

// mockReferenceService is a mock implementation of driving.ReferenceService.
type mockReferenceService struct {
	docs []domain.ReferenceDocument
	err  error
}

func (m *mockReferenceService) List(_ context.Context) ([]domain.ReferenceDocument, error) {
	return m.docs, m.err
}

func (m *mockReferenceService) Get(_ context.Context, index int) (*domain.ReferenceDocument, error) {
	if m.err != nil {
		return nil, m.err
	}
	if index < 0 || index >= len(m.docs) {
		return nil, fmt.Errorf("%w: %d", domain.ErrReferenceOutOfRange, index)
	}
	doc := m.docs[index]
	return &doc, nil
}

func (m *mockReferenceService) Count(_ context.Context) (int, error) {
	return len(m.docs), m.err
}

// mockCitationService is a mock implementation of driving.CitationService.
type mockCitationService struct {
	highlighted *domain.HighlightedDocument
	err         error

	gotIndex int
	gotQuote string
}

func (m *mockCitationService) Extract(reply string) (domain.CitationReference, bool) {
	return services.ExtractCitation(reply)
}

func (m *mockCitationService) Resolve(_ context.Context, reply string) (*domain.CitationReference, error) {
	ref, ok := services.ExtractCitation(reply)
	if !ok {
		return nil, m.err
	}
	return &ref, m.err
}

func (m *mockCitationService) Highlight(_ context.Context, index int, quote string) (*domain.HighlightedDocument, error) {
	m.gotIndex = index
	m.gotQuote = quote
	return m.highlighted, m.err
}

// mockChatService is a mock implementation of driving.ChatService.
type mockChatService struct {
	result *domain.TurnResult
	err    error
}

func (m *mockChatService) Submit(_ context.Context, _ string) (*domain.TurnResult, error) {
	return m.result, m.err
}

func (m *mockChatService) Transcript() []domain.Message { return nil }
func (m *mockChatService) Awaiting() bool               { return false }
func (m *mockChatService) Configured() bool             { return true }
func (m *mockChatService) ModelName() string            { return "mock" }
func (m *mockChatService) Reset()                       {}

func testReferences() *mockReferenceService {
	return &mockReferenceService{docs: []domain.ReferenceDocument{
		{Index: 0, Title: "Welcome", Body: "# Welcome\n\nGlad you're here."},
		{Index: 1, Title: "Tooling", Body: "# Tooling\n\nWe use Go."},
	}}
}

func testPorts() *Ports {
	return &Ports{
		Citation:   &mockCitationService{},
		References: testReferences(),
	}
}
