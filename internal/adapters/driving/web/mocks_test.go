package web

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/onboard/internal/adapters/driven/markdown"
	"github.com/custodia-labs/onboard/internal/adapters/driven/reference"
	"github.com/custodia-labs/onboard/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/onboard/internal/core/domain"
	"github.com/custodia-labs/onboard/internal/core/ports/driven"
	"github.com/custodia-labs/onboard/internal/core/services"
	"github.com/custodia-labs/onboard/internal/normalisers"
)

// stubLLM is a driven.LLMService with a function field.
type stubLLM struct {
	chatFn func(ctx context.Context, messages []driven.ChatMessage) (string, error)
}

func (s *stubLLM) Chat(ctx context.Context, messages []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	if s.chatFn != nil {
		return s.chatFn(ctx, messages)
	}
	return "Hello!", nil
}

func (s *stubLLM) ModelName() string            { return "stub-model" }
func (s *stubLLM) Ping(_ context.Context) error { return nil }
func (s *stubLLM) Close() error                 { return nil }

var testReferenceFS = fstest.MapFS{
	"01-welcome.md": {Data: []byte("# Welcome\n\nGlad you're here.\n")},
	"02-tooling.md": {Data: []byte("# Tooling\n\nWe use **Go** for all\nbackend services.\n")},
}

type testEnv struct {
	server *Server
	chat   *services.ChatService
	docs   *services.DocumentService
}

// newTestEnv builds a server over real services. llm may be nil.
func newTestEnv(t *testing.T, llm driven.LLMService, cfg Config) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	refs := services.NewReferenceLibrary(reference.NewFSSource(testReferenceFS, "test"))
	citations := services.NewCitationService(refs, markdown.NewRenderer())
	prompts := services.NewPromptBuilder(nil, refs)
	chat := services.NewChatService(llm, citations, prompts, domain.DefaultAppSettings())

	docStore := memory.NewDocumentStore()
	docs := services.NewDocumentService(docStore, memory.NewRoleStore(docStore), normalisers.NewDefaultRegistry(), nil)

	server, err := NewServer(&Ports{
		Chat:       chat,
		Citation:   citations,
		References: refs,
		Documents:  docs,
	}, cfg)
	require.NoError(t, err)

	return &testEnv{server: server, chat: chat, docs: docs}
}
