package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/onboard/internal/core/domain"
	"github.com/custodia-labs/onboard/internal/core/ports/driven"
	"github.com/custodia-labs/onboard/internal/core/ports/driving"
	"github.com/custodia-labs/onboard/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// ErrLinkIntakeUnavailable is returned by AddLink when no fetcher is configured.
var ErrLinkIntakeUnavailable = errors.New("link intake not configured")

// DocumentService is the admin surface over uploaded documents and roles.
type DocumentService struct {
	docStore  driven.DocumentStore
	roleStore driven.RoleStore
	registry  driven.NormaliserRegistry
	fetcher   driven.LinkFetcher
}

// NewDocumentService creates a new document service. fetcher may be nil.
func NewDocumentService(
	docStore driven.DocumentStore,
	roleStore driven.RoleStore,
	registry driven.NormaliserRegistry,
	fetcher driven.LinkFetcher,
) *DocumentService {
	return &DocumentService{
		docStore:  docStore,
		roleStore: roleStore,
		registry:  registry,
		fetcher:   fetcher,
	}
}

// Upload normalises and stores a file upload.
func (s *DocumentService) Upload(ctx context.Context, upload domain.Upload) (*domain.StoredDocument, error) {
	upload.Name = strings.TrimSpace(upload.Name)
	if upload.Name == "" {
		return nil, fmt.Errorf("%w: file name is required", domain.ErrInvalidInput)
	}
	if !domain.IsAcceptedFile(upload.Name) {
		return nil, fmt.Errorf("%w: %s (accepted: %s)", domain.ErrUnsupportedType,
			upload.Name, strings.Join(domain.AcceptedExtensions(), " "))
	}
	if upload.MIMEType == "" {
		upload.MIMEType = domain.MIMETypeForFile(upload.Name)
	}
	return s.store(ctx, &upload)
}

// AddText stores pasted text under a name.
func (s *DocumentService) AddText(
	ctx context.Context,
	name, text string,
	roleIDs []string,
) (*domain.StoredDocument, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is empty", domain.ErrInvalidInput)
	}
	return s.store(ctx, &domain.Upload{
		Name:     name,
		MIMEType: "text/plain",
		Content:  []byte(text),
		RoleIDs:  roleIDs,
	})
}

// AddLink fetches a web page and stores its readable text.
func (s *DocumentService) AddLink(ctx context.Context, link string, roleIDs []string) (*domain.StoredDocument, error) {
	if s.fetcher == nil {
		return nil, ErrLinkIntakeUnavailable
	}
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q is not an http(s) URL", domain.ErrInvalidInput, link)
	}

	upload, err := s.fetcher.Fetch(ctx, u.String())
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u, err)
	}
	upload.RoleIDs = roleIDs
	return s.store(ctx, upload)
}

// store checks roles, normalises and persists an upload.
func (s *DocumentService) store(ctx context.Context, upload *domain.Upload) (*domain.StoredDocument, error) {
	roleIDs, err := s.checkRoles(ctx, upload.RoleIDs)
	if err != nil {
		return nil, err
	}

	doc, err := s.registry.Normalise(ctx, upload)
	if err != nil {
		return nil, fmt.Errorf("normalise %s: %w", upload.Name, err)
	}
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	if doc.UploadedAt.IsZero() {
		doc.UploadedAt = time.Now()
	}
	if doc.Name == "" {
		doc.Name = upload.Name
	}
	doc.RoleIDs = roleIDs

	if err := s.docStore.Add(ctx, doc); err != nil {
		return nil, fmt.Errorf("store %s: %w", doc.Name, err)
	}

	logger.Info("Stored document %s (%s, %s)", doc.Name, doc.Type, domain.FormatSize(doc.Size))
	return doc, nil
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, id string) (*domain.StoredDocument, error) {
	return s.docStore.Get(ctx, id)
}

// List returns all documents, newest first.
func (s *DocumentService) List(ctx context.Context) ([]domain.StoredDocument, error) {
	return s.docStore.List(ctx)
}

// ListByRole returns documents tagged with a role, newest first.
func (s *DocumentService) ListByRole(ctx context.Context, roleID string) ([]domain.StoredDocument, error) {
	if strings.TrimSpace(roleID) == "" {
		return s.docStore.List(ctx)
	}
	return s.docStore.ListByRole(ctx, roleID)
}

// Tag replaces a document's role tags.
func (s *DocumentService) Tag(ctx context.Context, id string, roleIDs []string) error {
	if _, err := s.docStore.Get(ctx, id); err != nil {
		return err
	}
	roleIDs, err := s.checkRoles(ctx, roleIDs)
	if err != nil {
		return err
	}
	return s.docStore.SetRoles(ctx, id, roleIDs)
}

// Delete removes a document.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	return s.docStore.Delete(ctx, id)
}

// AddRole creates a role. Names are unique, ignoring case.
func (s *DocumentService) AddRole(ctx context.Context, name, description string) (*domain.Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: role name is required", domain.ErrInvalidInput)
	}

	existing, err := s.roleStore.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range existing {
		if strings.EqualFold(r.Name, name) {
			return nil, fmt.Errorf("%w: role %q", domain.ErrAlreadyExists, name)
		}
	}

	role := domain.Role{
		ID:          uuid.New().String(),
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedAt:   time.Now(),
	}
	if err := s.roleStore.Save(ctx, role); err != nil {
		return nil, err
	}
	return &role, nil
}

// ListRoles returns all roles ordered by name.
func (s *DocumentService) ListRoles(ctx context.Context) ([]domain.Role, error) {
	roles, err := s.roleStore.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(roles, func(i, j int) bool {
		return strings.ToLower(roles[i].Name) < strings.ToLower(roles[j].Name)
	})
	return roles, nil
}

// DeleteRole removes a role and its tags.
func (s *DocumentService) DeleteRole(ctx context.Context, id string) error {
	return s.roleStore.Delete(ctx, id)
}

// checkRoles drops duplicates and verifies every role exists.
func (s *DocumentService) checkRoles(ctx context.Context, roleIDs []string) ([]string, error) {
	seen := make(map[string]bool, len(roleIDs))
	out := make([]string, 0, len(roleIDs))
	for _, id := range roleIDs {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		if _, err := s.roleStore.Get(ctx, id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, id)
			}
			return nil, err
		}
		seen[id] = true
		out = append(out, id)
	}
	return out, nil
}
