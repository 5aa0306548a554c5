package normalisers

import (
	"context"
	"fmt"
	"mime"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/onboard/internal/core/domain"
	"github.com/custodia-labs/onboard/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry dispatches uploads to normalisers by MIME type.
type Registry struct {
	mu         sync.RWMutex
	byMIME     map[string][]driven.Normaliser
	fallbacks  []driven.Normaliser
	registered int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byMIME: make(map[string][]driven.Normaliser),
	}
}

// Register adds a normaliser. A normaliser with no MIME types is a fallback.
func (r *Registry) Register(n driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.registered++
	types := n.SupportedMIMETypes()
	if len(types) == 0 {
		r.fallbacks = insertByPriority(r.fallbacks, n)
		return
	}
	for _, t := range types {
		key := baseType(t)
		r.byMIME[key] = insertByPriority(r.byMIME[key], n)
	}
}

// Normalise converts an upload with the best matching normaliser.
// Parameters such as charset are ignored when matching.
func (r *Registry) Normalise(ctx context.Context, upload *domain.Upload) (*domain.StoredDocument, error) {
	if upload == nil {
		return nil, domain.ErrInvalidInput
	}

	n := r.lookup(baseType(upload.MIMEType))
	if n == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, upload.MIMEType)
	}
	return n.Normalise(ctx, upload)
}

// SupportedMIMETypes returns the MIME types with a dedicated normaliser, sorted.
func (r *Registry) SupportedMIMETypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.byMIME))
	for t := range r.byMIME {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Len returns the number of registered normalisers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.registered
}

func (r *Registry) lookup(mimeType string) driven.Normaliser {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if candidates := r.byMIME[mimeType]; len(candidates) > 0 {
		return candidates[0]
	}
	if len(r.fallbacks) > 0 {
		return r.fallbacks[0]
	}
	return nil
}

// insertByPriority keeps list sorted highest priority first. Equal
// priorities keep registration order.
func insertByPriority(list []driven.Normaliser, n driven.Normaliser) []driven.Normaliser {
	i := sort.Search(len(list), func(i int) bool {
		return list[i].Priority() < n.Priority()
	})
	list = append(list, nil)
	copy(list[i+1:], list[i:])
	list[i] = n
	return list
}

// baseType lowercases a MIME type and strips its parameters.
func baseType(mimeType string) string {
	if mediaType, _, err := mime.ParseMediaType(mimeType); err == nil {
		return mediaType
	}
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}
