package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/custodia-labs/onboard/internal/core/domain"
	"github.com/custodia-labs/onboard/internal/core/ports/driven"
)

// mockLLM is a hand-written LLMService for chat tests.
type mockLLM struct {
	mu       sync.Mutex
	calls    [][]driven.ChatMessage
	opts     []driven.ChatOptions
	ChatFunc func(ctx context.Context, messages []driven.ChatMessage) (string, error)
}

func (m *mockLLM) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, messages)
	m.opts = append(m.opts, opts)
	fn := m.ChatFunc
	m.mu.Unlock()

	if fn == nil {
		return "", nil
	}
	return fn(ctx, messages)
}

func (m *mockLLM) ModelName() string            { return "mock-model" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

func (m *mockLLM) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *mockLLM) lastCall() []driven.ChatMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return nil
	}
	return m.calls[len(m.calls)-1]
}

// stubSource serves a fixed list of reference documents.
type stubSource struct {
	docs  []domain.ReferenceDocument
	err   error
	loads int
}

func (s *stubSource) Load(_ context.Context) ([]domain.ReferenceDocument, error) {
	s.loads++
	if s.err != nil {
		return nil, s.err
	}
	out := make([]domain.ReferenceDocument, len(s.docs))
	copy(out, s.docs)
	return out, nil
}

func threeDocs() *stubSource {
	return &stubSource{docs: []domain.ReferenceDocument{
		{Title: "Employee Onboarding Guide", Body: "# Employee Onboarding Guide\n\nStandard work hours are 9:00 AM to 5:00 PM."},
		{Title: "Security Policy", Body: "# Security Policy\n\nLock your screen when you step away."},
		{Title: "Product Knowledge", Body: "# Product Knowledge\n\nThe platform ships **weekly**."},
	}}
}

// plainRenderer treats markdown as already-rendered text and marks spans
// with <mark> tags.
type plainRenderer struct {
	err error
}

func (r *plainRenderer) Render(body string) (domain.Rendition, error) {
	if r.err != nil {
		return domain.Rendition{}, r.err
	}
	return domain.Rendition{Text: body}, nil
}

func (r *plainRenderer) RenderHTML(body string, span *domain.TextSpan) (string, error) {
	if span == nil {
		return body, nil
	}
	return body[:span.Start] + "<mark>" + body[span.Start:span.End] + "</mark>" + body[span.End:], nil
}

// stubPromptStore serves prompt templates by name.
type stubPromptStore struct {
	templates map[string]string
}

func (s *stubPromptStore) Load(name string) (string, error) {
	t, ok := s.templates[name]
	if !ok {
		return "", domain.ErrNotFound
	}
	return t, nil
}

func (s *stubPromptStore) Reload() {}

// stubRegistry turns every upload into a document holding its text.
type stubRegistry struct {
	err error
}

func (r *stubRegistry) Normalise(_ context.Context, upload *domain.Upload) (*domain.StoredDocument, error) {
	if r.err != nil {
		return nil, r.err
	}
	return &domain.StoredDocument{
		Name:    upload.Name,
		Type:    upload.MIMEType,
		Size:    int64(len(upload.Content)),
		Content: strings.TrimSpace(string(upload.Content)),
	}, nil
}

func (r *stubRegistry) Register(_ driven.Normaliser) {}

func (r *stubRegistry) SupportedMIMETypes() []string { return []string{"text/plain"} }

// stubFetcher returns a canned page.
type stubFetcher struct {
	upload *domain.Upload
	err    error
	urls   []string
}

func (f *stubFetcher) Fetch(_ context.Context, url string) (*domain.Upload, error) {
	f.urls = append(f.urls, url)
	if f.err != nil {
		return nil, f.err
	}
	u := *f.upload
	return &u, nil
}

var errNetwork = errors.New("dial tcp: connection refused")
