package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/onboard/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/onboard/internal/core/domain"
	"github.com/custodia-labs/onboard/internal/core/ports/driven"
)

// dbFileName is the database file inside the data directory.
const dbFileName = "onboard.db"

// Store is a SQLite database holding documents and roles.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens the database in dataDir and applies pending migrations.
// If dataDir is empty, defaults to ~/.onboard/data/onboard.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".onboard", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFileName)

	// foreign_keys is a per-connection pragma, so it goes in the DSN.
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// DocumentStore returns a DocumentStore backed by this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{store: s}
}

// RoleStore returns a RoleStore backed by this store.
func (s *Store) RoleStore() driven.RoleStore {
	return &roleStore{store: s}
}

// Version returns the highest applied migration.
func (s *Store) Version() (int, error) {
	var version int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&version); err != nil {
		return 0, fmt.Errorf("getting current version: %w", err)
	}
	return version, nil
}

// migrate runs all pending migrations, each in its own transaction
// together with its schema_migrations row.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	currentVersion, err := s.Version()
	if err != nil {
		return err
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_documents.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.apply(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) apply(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(script); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// Add inserts a document and its role tags.
func (s *documentStore) Add(ctx context.Context, doc *domain.StoredDocument) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (id, name, type, size, content, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.Name, doc.Type, doc.Size, doc.Content, doc.UploadedAt.UnixNano())
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: document %s", domain.ErrAlreadyExists, doc.ID)
		}
		return fmt.Errorf("saving document: %w", err)
	}

	if err := insertRoles(ctx, tx, doc.ID, doc.RoleIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Get retrieves a document by ID.
func (s *documentStore) Get(ctx context.Context, id string) (*domain.StoredDocument, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, type, size, content, uploaded_at
		FROM documents WHERE id = ?
	`, id)

	doc, err := scanDocument(row)
	if err != nil {
		return nil, err
	}

	tags, err := s.roleTags(ctx, "WHERE document_id = ?", id)
	if err != nil {
		return nil, err
	}
	doc.RoleIDs = tags[doc.ID]
	return doc, nil
}

// List returns all documents, newest first.
func (s *documentStore) List(ctx context.Context) ([]domain.StoredDocument, error) {
	return s.list(ctx, "", nil)
}

// ListByRole returns documents tagged with roleID, newest first.
func (s *documentStore) ListByRole(ctx context.Context, roleID string) ([]domain.StoredDocument, error) {
	return s.list(ctx,
		"WHERE id IN (SELECT document_id FROM document_roles WHERE role_id = ?)",
		[]any{roleID})
}

func (s *documentStore) list(ctx context.Context, where string, args []any) ([]domain.StoredDocument, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, type, size, content, uploaded_at
		FROM documents `+where+`
		ORDER BY uploaded_at DESC, id ASC
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	docs := []domain.StoredDocument{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	tags, err := s.roleTags(ctx, "", nil)
	if err != nil {
		return nil, err
	}
	for i := range docs {
		docs[i].RoleIDs = tags[docs[i].ID]
	}
	return docs, nil
}

// SetRoles replaces the role tags of a document.
func (s *documentStore) SetRoles(ctx context.Context, id string, roleIDs []string) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM documents WHERE id = ?", id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("checking document: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM document_roles WHERE document_id = ?", id); err != nil {
		return fmt.Errorf("clearing role tags: %w", err)
	}
	if err := insertRoles(ctx, tx, id, roleIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Delete removes a document. Its role tags cascade.
func (s *documentStore) Delete(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// roleTags loads role IDs per document, in the order they were tagged.
func (s *documentStore) roleTags(ctx context.Context, where string, arg any) (map[string][]string, error) {
	query := "SELECT document_id, role_id FROM document_roles " + where + " ORDER BY document_id, position"
	var rows *sql.Rows
	var err error
	if arg != nil {
		rows, err = s.store.db.QueryContext(ctx, query, arg)
	} else {
		rows, err = s.store.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("querying role tags: %w", err)
	}
	defer rows.Close()

	tags := make(map[string][]string)
	for rows.Next() {
		var docID, roleID string
		if err := rows.Scan(&docID, &roleID); err != nil {
			return nil, fmt.Errorf("scanning role tag: %w", err)
		}
		tags[docID] = append(tags[docID], roleID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating role tags: %w", err)
	}
	return tags, nil
}

func insertRoles(ctx context.Context, tx *sql.Tx, docID string, roleIDs []string) error {
	for i, roleID := range roleIDs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO document_roles (document_id, role_id, position)
			VALUES (?, ?, ?)
			ON CONFLICT(document_id, role_id) DO NOTHING
		`, docID, roleID, i)
		if err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, roleID)
			}
			return fmt.Errorf("saving role tag: %w", err)
		}
	}
	return nil
}

// ==================== Role Store ====================

// roleStore implements driven.RoleStore.
type roleStore struct {
	store *Store
}

var _ driven.RoleStore = (*roleStore)(nil)

// Save stores or updates a role.
func (s *roleStore) Save(ctx context.Context, role domain.Role) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO roles (id, name, description, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description
	`, role.ID, role.Name, role.Description, role.CreatedAt.UnixNano())
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: role %q", domain.ErrAlreadyExists, role.Name)
		}
		return fmt.Errorf("saving role: %w", err)
	}
	return nil
}

// Get retrieves a role by ID.
func (s *roleStore) Get(ctx context.Context, id string) (*domain.Role, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, description, created_at FROM roles WHERE id = ?
	`, id)
	return scanRole(row)
}

// List returns all roles ordered by name.
func (s *roleStore) List(ctx context.Context) ([]domain.Role, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, description, created_at FROM roles ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("querying roles: %w", err)
	}
	defer rows.Close()

	roles := []domain.Role{}
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, *role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating roles: %w", err)
	}
	return roles, nil
}

// Delete removes a role. Its document tags cascade.
func (s *roleStore) Delete(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM roles WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting role: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ==================== Helpers ====================

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*domain.StoredDocument, error) {
	var doc domain.StoredDocument
	var uploadedAt int64
	if err := row.Scan(&doc.ID, &doc.Name, &doc.Type, &doc.Size, &doc.Content, &uploadedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	doc.UploadedAt = time.Unix(0, uploadedAt)
	return &doc, nil
}

func scanRole(row scanner) (*domain.Role, error) {
	var role domain.Role
	var createdAt int64
	if err := row.Scan(&role.ID, &role.Name, &role.Description, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning role: %w", err)
	}
	role.CreatedAt = time.Unix(0, createdAt)
	return &role, nil
}

func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "PRIMARY KEY constraint failed")
}

func isForeignKeyViolation(err error) bool {
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
