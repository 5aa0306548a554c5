// Package sqlite provides a SQLite-based implementation of the document and
// role stores.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements both store interfaces
// through a single database connection:
//
//   - DocumentStore: admin-uploaded documents and their role tags
//   - RoleStore: job roles documents can be tagged with
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. NewStore applies every pending migration before it
// returns, recording each version in schema_migrations, so a returned store
// is always ready for use.
//
// # Data Location
//
// By default, the database is stored at ~/.onboard/data/onboard.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
