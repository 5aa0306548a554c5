package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/onboard/internal/core/domain"
	"github.com/custodia-labs/onboard/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]domain.StoredDocument
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]domain.StoredDocument),
	}
}

// Add stores a new document.
func (s *DocumentStore) Add(_ context.Context, doc *domain.StoredDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.documents[doc.ID]; exists {
		return domain.ErrAlreadyExists
	}
	s.documents[doc.ID] = cloneDocument(*doc)
	return nil
}

// Get retrieves a document by ID.
func (s *DocumentStore) Get(_ context.Context, id string) (*domain.StoredDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	doc = cloneDocument(doc)
	return &doc, nil
}

// List returns all documents, newest first.
func (s *DocumentStore) List(_ context.Context) ([]domain.StoredDocument, error) {
	return s.filter(func(domain.StoredDocument) bool { return true }), nil
}

// ListByRole returns documents tagged with the role, newest first.
func (s *DocumentStore) ListByRole(_ context.Context, roleID string) ([]domain.StoredDocument, error) {
	return s.filter(func(d domain.StoredDocument) bool { return d.HasRole(roleID) }), nil
}

// SetRoles replaces the role tags of a document.
func (s *DocumentStore) SetRoles(_ context.Context, id string, roleIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.documents[id]
	if !ok {
		return domain.ErrNotFound
	}
	doc.RoleIDs = append([]string(nil), roleIDs...)
	s.documents[id] = doc
	return nil
}

// Delete removes a document.
func (s *DocumentStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.documents, id)
	return nil
}

// untag removes a role from every document.
func (s *DocumentStore) untag(roleID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, doc := range s.documents {
		if !doc.HasRole(roleID) {
			continue
		}
		kept := make([]string, 0, len(doc.RoleIDs))
		for _, r := range doc.RoleIDs {
			if r != roleID {
				kept = append(kept, r)
			}
		}
		doc.RoleIDs = kept
		s.documents[id] = doc
	}
}

func (s *DocumentStore) filter(keep func(domain.StoredDocument) bool) []domain.StoredDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.StoredDocument, 0, len(s.documents))
	for _, doc := range s.documents {
		if keep(doc) {
			result = append(result, cloneDocument(doc))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].UploadedAt.Equal(result[j].UploadedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].UploadedAt.After(result[j].UploadedAt)
	})
	return result
}

func cloneDocument(doc domain.StoredDocument) domain.StoredDocument {
	doc.RoleIDs = append([]string(nil), doc.RoleIDs...)
	return doc
}
