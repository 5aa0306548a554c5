package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/onboard/internal/core/domain"
	"github.com/custodia-labs/onboard/internal/core/ports/driven"
	"github.com/custodia-labs/onboard/internal/core/ports/driving"
	"github.com/custodia-labs/onboard/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// ChatService owns one conversation transcript and runs one turn at a time.
//
// The awaiting flag is a gate, not a queue: a submission while a turn is in
// flight is rejected and leaves no trace. No timeout is imposed here; a
// request that never returns keeps the conversation awaiting until the
// caller's context or the adapter's HTTP timeout ends it.
type ChatService struct {
	llm       driven.LLMService
	citations driving.CitationService
	prompts   *PromptBuilder
	chat      domain.ChatSettings
	assistant domain.AssistantSettings
	now       func() time.Time

	mu         sync.Mutex
	transcript []domain.Message
	nextID     int64
	awaiting   bool
}

// NewChatService creates a conversation seeded with the greeting.
// llm may be nil, in which case every question gets a canned answer.
func NewChatService(
	llm driven.LLMService,
	citations driving.CitationService,
	prompts *PromptBuilder,
	settings domain.AppSettings,
) *ChatService {
	defaults := domain.DefaultAppSettings().Chat
	chat := settings.Chat
	if chat.HistoryWindow <= 0 {
		chat.HistoryWindow = defaults.HistoryWindow
	}
	if chat.MaxTokens <= 0 {
		chat.MaxTokens = defaults.MaxTokens
	}

	s := &ChatService{
		llm:       llm,
		citations: citations,
		prompts:   prompts,
		chat:      chat,
		assistant: settings.Assistant,
		now:       time.Now,
	}
	s.Reset()
	return s
}

// Submit runs one turn.
func (s *ChatService) Submit(ctx context.Context, text string) (*domain.TurnResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrEmptyMessage
	}

	s.mu.Lock()
	if s.awaiting {
		s.mu.Unlock()
		logger.Debug("Submission rejected: turn in progress")
		return nil, domain.ErrTurnInProgress
	}
	history := domain.LastMessages(s.transcript, s.chat.HistoryWindow)
	user := s.appendLocked(domain.SenderUser, text)
	s.awaiting = true
	s.mu.Unlock()

	logger.Section("Chat Turn")
	logger.Debug("Question: %q (history %d messages)", text, len(history))

	result := &domain.TurnResult{User: user}
	done := logger.Timed("Chat turn")
	reply, citation, err := s.complete(ctx, history, text)
	done()
	if err != nil {
		result.Err = err
		if errors.Is(err, domain.ErrLLMUnavailable) {
			reply = domain.UnconfiguredText
		} else {
			logger.Warn("Completion failed: %v", err)
			reply = domain.FallbackErrorText
		}
	}
	result.Citation = citation

	s.mu.Lock()
	result.Assistant = s.appendLocked(domain.SenderAssistant, reply)
	s.awaiting = false
	s.mu.Unlock()

	return result, nil
}

// complete asks the model and resolves any citation in the reply.
func (s *ChatService) complete(
	ctx context.Context,
	history []domain.Message,
	question string,
) (string, *domain.CitationReference, error) {
	if s.llm == nil {
		return "", nil, domain.ErrLLMUnavailable
	}

	system, err := s.prompts.Build(ctx, s.assistant)
	if err != nil {
		return "", nil, fmt.Errorf("build system prompt: %w", err)
	}

	messages := make([]driven.ChatMessage, 0, len(history)+2)
	messages = append(messages, driven.ChatMessage{Role: driven.RoleSystem, Content: system})
	for _, m := range history {
		messages = append(messages, driven.ChatMessage{Role: chatRole(m.Sender), Content: m.Text})
	}
	messages = append(messages, driven.ChatMessage{Role: driven.RoleUser, Content: question})

	start := time.Now()
	reply, err := s.llm.Chat(ctx, messages, driven.ChatOptions{
		MaxTokens:   s.chat.MaxTokens,
		Temperature: s.chat.Temperature,
	})
	if err != nil {
		return "", nil, err
	}
	logger.Debug("Completion from %s in %v (%d chars)", s.llm.ModelName(), time.Since(start), len(reply))

	if strings.TrimSpace(reply) == "" {
		return domain.EmptyReplyText, nil, nil
	}

	var citation *domain.CitationReference
	if s.citations != nil {
		citation, err = s.citations.Resolve(ctx, reply)
		if err != nil {
			logger.Warn("Citation lookup failed: %v", err)
			citation = nil
		}
	}
	return reply, citation, nil
}

// Transcript returns a copy of the messages so far.
func (s *ChatService) Transcript() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Awaiting reports whether a turn is in flight.
func (s *ChatService) Awaiting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.awaiting
}

// Configured reports whether a completion provider is available.
func (s *ChatService) Configured() bool {
	return s.llm != nil
}

// ModelName returns the completion model, or empty when unconfigured.
func (s *ChatService) ModelName() string {
	if s.llm == nil {
		return ""
	}
	return s.llm.ModelName()
}

// Reset clears the transcript back to the greeting. A turn in flight still
// appends its reply when it finishes.
func (s *ChatService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = nil
	s.appendLocked(domain.SenderAssistant, domain.GreetingText)
}

// appendLocked adds a message; caller must hold s.mu.
func (s *ChatService) appendLocked(sender domain.Sender, text string) domain.Message {
	s.nextID++
	msg := domain.Message{
		ID:        s.nextID,
		Text:      text,
		Sender:    sender,
		Timestamp: s.now(),
	}
	s.transcript = append(s.transcript, msg)
	return msg
}

func chatRole(sender domain.Sender) string {
	if sender == domain.SenderUser {
		return driven.RoleUser
	}
	return driven.RoleAssistant
}
