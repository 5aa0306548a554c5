package driven

import (
	"context"

	"github.com/custodia-labs/onboard/internal/core/domain"
)

// DocumentStore persists admin-uploaded documents.
// Each operation is atomic on a single record; there are no transactions
// spanning more than one call.
type DocumentStore interface {
	// Add stores a new document. Returns domain.ErrAlreadyExists on ID collision.
	Add(ctx context.Context, doc *domain.StoredDocument) error

	// Get retrieves a document by ID.
	Get(ctx context.Context, id string) (*domain.StoredDocument, error)

	// List returns all documents, newest first.
	List(ctx context.Context) ([]domain.StoredDocument, error)

	// ListByRole returns documents tagged with the role, newest first.
	ListByRole(ctx context.Context, roleID string) ([]domain.StoredDocument, error)

	// SetRoles replaces the role tags of a document.
	SetRoles(ctx context.Context, id string, roleIDs []string) error

	// Delete removes a document. Returns domain.ErrNotFound if absent.
	Delete(ctx context.Context, id string) error
}

// RoleStore persists role tags.
type RoleStore interface {
	// Save stores or updates a role.
	Save(ctx context.Context, role domain.Role) error

	// Get retrieves a role by ID.
	Get(ctx context.Context, id string) (*domain.Role, error)

	// List returns all roles ordered by name.
	List(ctx context.Context) ([]domain.Role, error)

	// Delete removes a role and untags every document carrying it.
	Delete(ctx context.Context, id string) error
}
