package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"meusgastos/internal/repository"

	_ "modernc.org/sqlite"
)

// DefaultPath is the database file opened when no path is configured.
const DefaultPath = "./meusgastos.db"

// Repository implements repository.Store on a local SQLite file.
type Repository struct {
	db *sql.DB
}

var _ repository.Store = (*Repository)(nil)

var (
	openOnce sync.Once
	shared   *Repository
	openErr  error
)

// Open returns the process-wide repository, constructing it on the first
// call. Concurrent callers share a single initialization; every later
// call returns the same handle (and ignores path), so the process never
// holds two connections to the database.
func Open(path string) (*Repository, error) {
	openOnce.Do(func() {
		shared, openErr = New(path)
	})
	return shared, openErr
}

// New opens the database at path, applies connection pragmas, and runs
// the schema migration before returning. Most callers want Open; New
// constructs an independent handle, which tests use with ":memory:".
//
// A migration failure is fatal: the handle is closed and the engine error
// is returned so startup can surface it verbatim.
func New(path string) (*Repository, error) {
	if dir := filepath.Dir(path); path != ":memory:" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// One connection for the whole process. SQLite serializes statement
	// execution per connection anyway, and the foreign_keys pragma below
	// is connection-scoped, so a pool would silently lose it.
	db.SetMaxOpenConns(1)

	// foreign_keys is not persisted and must be reissued on every open,
	// regardless of migration state.
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return repo, nil
}

// Close releases the underlying connection.
func (r *Repository) Close() error {
	return r.db.Close()
}
