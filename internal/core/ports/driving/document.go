package driving

import (
	"context"

	"github.com/custodia-labs/onboard/internal/core/domain"
)

// DocumentService is the admin surface over uploaded documents and roles.
type DocumentService interface {
	// Upload normalises and stores a file upload.
	Upload(ctx context.Context, upload domain.Upload) (*domain.StoredDocument, error)

	// AddText stores pasted text under a name.
	AddText(ctx context.Context, name, text string, roleIDs []string) (*domain.StoredDocument, error)

	// AddLink fetches a web page and stores its readable text.
	AddLink(ctx context.Context, url string, roleIDs []string) (*domain.StoredDocument, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, id string) (*domain.StoredDocument, error)

	// List returns all documents, newest first.
	List(ctx context.Context) ([]domain.StoredDocument, error)

	// ListByRole returns documents tagged with a role, newest first.
	ListByRole(ctx context.Context, roleID string) ([]domain.StoredDocument, error)

	// Tag replaces a document's role tags. Every role must exist.
	Tag(ctx context.Context, id string, roleIDs []string) error

	// Delete removes a document.
	Delete(ctx context.Context, id string) error

	// AddRole creates a role.
	AddRole(ctx context.Context, name, description string) (*domain.Role, error)

	// ListRoles returns all roles ordered by name.
	ListRoles(ctx context.Context) ([]domain.Role, error)

	// DeleteRole removes a role and its tags.
	DeleteRole(ctx context.Context, id string) error
}
