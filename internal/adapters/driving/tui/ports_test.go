package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/onboard/internal/core/domain"
	"github.com/custodia-labs/onboard/internal/core/ports/driving"
)

// MockChatService implements driving.ChatService for testing.
type MockChatService struct {
	mu         sync.Mutex
	transcript []domain.Message
	nextID     int64

	SubmitFunc func(ctx context.Context, text string) (*domain.TurnResult, error)
	Unready    bool
	Model      string
	Resets     int
}

func newMockChat() *MockChatService {
	m := &MockChatService{Model: "mock-model"}
	m.Reset()
	m.Resets = 0
	return m
}

func (m *MockChatService) message(text string, sender domain.Sender) domain.Message {
	m.nextID++
	return domain.Message{ID: m.nextID, Text: text, Sender: sender, Timestamp: time.Now()}
}

func (m *MockChatService) Submit(ctx context.Context, text string) (*domain.TurnResult, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, text)
	}
	return m.Reply(text, "ok"), nil
}

// Reply appends a user and assistant pair and returns the turn.
func (m *MockChatService) Reply(text, reply string) *domain.TurnResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	user := m.message(text, domain.SenderUser)
	assistant := m.message(reply, domain.SenderAssistant)
	m.transcript = append(m.transcript, user, assistant)
	return &domain.TurnResult{User: user, Assistant: assistant}
}

func (m *MockChatService) Transcript() []domain.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Message, len(m.transcript))
	copy(out, m.transcript)
	return out
}

func (m *MockChatService) Awaiting() bool { return false }

func (m *MockChatService) Configured() bool { return !m.Unready }

func (m *MockChatService) ModelName() string { return m.Model }

func (m *MockChatService) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transcript = []domain.Message{m.message(domain.GreetingText, domain.SenderAssistant)}
	m.Resets++
}

// MockCitationService implements driving.CitationService for testing.
type MockCitationService struct {
	HighlightFunc func(ctx context.Context, index int, quote string) (*domain.HighlightedDocument, error)
}

func (m *MockCitationService) Extract(string) (domain.CitationReference, bool) {
	return domain.CitationReference{}, false
}

func (m *MockCitationService) Resolve(context.Context, string) (*domain.CitationReference, error) {
	return nil, nil
}

func (m *MockCitationService) Highlight(
	ctx context.Context, index int, quote string,
) (*domain.HighlightedDocument, error) {
	if m.HighlightFunc != nil {
		return m.HighlightFunc(ctx, index, quote)
	}
	return nil, domain.ErrReferenceOutOfRange
}

// MockReferenceService implements driving.ReferenceService for testing.
type MockReferenceService struct {
	Docs []domain.ReferenceDocument
}

func (m *MockReferenceService) List(context.Context) ([]domain.ReferenceDocument, error) {
	return m.Docs, nil
}

func (m *MockReferenceService) Get(_ context.Context, index int) (*domain.ReferenceDocument, error) {
	if index < 0 || index >= len(m.Docs) {
		return nil, domain.ErrReferenceOutOfRange
	}
	return &m.Docs[index], nil
}

func (m *MockReferenceService) Count(context.Context) (int, error) {
	return len(m.Docs), nil
}

var (
	_ driving.ChatService      = (*MockChatService)(nil)
	_ driving.CitationService  = (*MockCitationService)(nil)
	_ driving.ReferenceService = (*MockReferenceService)(nil)
)

func TestNewPorts(t *testing.T) {
	chat := newMockChat()
	citations := &MockCitationService{}
	refs := &MockReferenceService{}

	ports := NewPorts(chat, citations, refs)

	assert.Same(t, chat, ports.Chat)
	assert.Same(t, citations, ports.Citation)
	assert.Same(t, refs, ports.References)
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name  string
		ports *Ports
		err   error
	}{
		{"all set", NewPorts(newMockChat(), &MockCitationService{}, &MockReferenceService{}), nil},
		{"references optional", NewPorts(newMockChat(), &MockCitationService{}, nil), nil},
		{"nil ports", nil, ErrInvalidPorts},
		{"missing chat", &Ports{Citation: &MockCitationService{}}, ErrMissingChatService},
		{"missing citation", &Ports{Chat: newMockChat()}, ErrMissingCitationService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
