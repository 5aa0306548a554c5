package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/onboard/internal/core/domain"
	"github.com/custodia-labs/onboard/internal/core/ports/driven"
)

// Ensure RoleStore implements the interface.
var _ driven.RoleStore = (*RoleStore)(nil)

// RoleStore is an in-memory implementation of driven.RoleStore.
// Deleting a role untags documents held by the paired DocumentStore.
type RoleStore struct {
	mu    sync.RWMutex
	roles map[string]domain.Role
	docs  *DocumentStore
}

// NewRoleStore creates a role store. docs may be nil.
func NewRoleStore(docs *DocumentStore) *RoleStore {
	return &RoleStore{
		roles: make(map[string]domain.Role),
		docs:  docs,
	}
}

// Save stores or updates a role.
func (s *RoleStore) Save(_ context.Context, role domain.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roles[role.ID] = role
	return nil
}

// Get retrieves a role by ID.
func (s *RoleStore) Get(_ context.Context, id string) (*domain.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	role, ok := s.roles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &role, nil
}

// List returns all roles ordered by name.
func (s *RoleStore) List(_ context.Context) ([]domain.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Role, 0, len(s.roles))
	for _, r := range s.roles {
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Delete removes a role and untags every document carrying it.
func (s *RoleStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	if _, ok := s.roles[id]; !ok {
		s.mu.Unlock()
		return domain.ErrNotFound
	}
	delete(s.roles, id)
	s.mu.Unlock()

	if s.docs != nil {
		s.docs.untag(id)
	}
	return nil
}
