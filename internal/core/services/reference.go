package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/onboard/internal/core/domain"
	"github.com/custodia-labs/onboard/internal/core/ports/driven"
	"github.com/custodia-labs/onboard/internal/core/ports/driving"
	"github.com/custodia-labs/onboard/internal/logger"
)

// Ensure ReferenceLibrary implements the interface.
var _ driving.ReferenceService = (*ReferenceLibrary)(nil)

// ReferenceLibrary caches the reference documents after the first load.
// The collection is fixed for the life of the library.
type ReferenceLibrary struct {
	source driven.ReferenceSource

	mu     sync.Mutex
	docs   []domain.ReferenceDocument
	loaded bool
}

// NewReferenceLibrary creates a library backed by source.
func NewReferenceLibrary(source driven.ReferenceSource) *ReferenceLibrary {
	return &ReferenceLibrary{source: source}
}

// List returns all reference documents in index order.
func (l *ReferenceLibrary) List(ctx context.Context) ([]domain.ReferenceDocument, error) {
	docs, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ReferenceDocument, len(docs))
	copy(out, docs)
	return out, nil
}

// Get returns the document at a 0-based index.
func (l *ReferenceLibrary) Get(ctx context.Context, index int) (*domain.ReferenceDocument, error) {
	docs, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(docs) {
		return nil, fmt.Errorf("%w: %d (have %d)", domain.ErrReferenceOutOfRange, index, len(docs))
	}
	doc := docs[index]
	return &doc, nil
}

// Count returns the number of reference documents.
func (l *ReferenceLibrary) Count(ctx context.Context) (int, error) {
	docs, err := l.load(ctx)
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}

// load reads the source once. A failed load is retried on the next call.
func (l *ReferenceLibrary) load(ctx context.Context) ([]domain.ReferenceDocument, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.loaded {
		return l.docs, nil
	}

	docs, err := l.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load reference documents: %w", err)
	}
	for i := range docs {
		docs[i].Index = i
	}

	logger.Debug("Loaded %d reference documents", len(docs))
	l.docs = docs
	l.loaded = true
	return l.docs, nil
}
