package store

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
)

//go:embed schema.sql
var schemaSQL string

// RootName is the name of the single parentless root folder.
const RootName = "roots"

// Store owns the single live connection to one bookmark database file.
type Store struct {
	db    *sql.DB
	path  string
	clock Clock
	guids GUIDSource
}

// Option configures a Store handle at construction time.
type Option func(*Store)

// WithClock substitutes the timestamp source.
func WithClock(c Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithGUIDSource substitutes the node identifier generator.
func WithGUIDSource(g GUIDSource) Option {
	return func(s *Store) { s.guids = g }
}

// Create materializes a new bookmark database at path: the three-table
// schema plus the seeded root folder, committed as one unit. Fails with
// ALREADY_EXISTS when a file is already there.
func Create(path string, opts ...Option) (*Store, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, &Error{Code: CodeAlreadyExists, Message: "database file already exists", Name: path}
	}

	s, err := connect(path, opts)
	if err != nil {
		return nil, err
	}
	if err := s.init(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Open opens an existing bookmark database. Fails with NOT_FOUND when no
// file exists at path.
func Open(path string, opts ...Option) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &Error{Code: CodeNotFound, Message: "database file does not exist", Name: path}
	}
	return connect(path, opts)
}

// Delete removes the database file at path. Fails with NOT_FOUND when the
// file is absent. Any open handle must be closed by its owner first; see
// Destroy for the combined operation.
func Delete(path string) error {
	if _, err := os.Stat(path); err != nil {
		return &Error{Code: CodeNotFound, Message: "database file does not exist", Name: path}
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove database: %w", err)
	}
	return nil
}

func connect(path string, opts []Option) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	// Single writer; SQLite would return SQLITE_BUSY past one anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	// Cascade enforcement is connection scoped and defaults off.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	s := &Store{db: db, path: path, clock: systemClock{}, guids: uuidSource{}}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// init creates the schema and seeds the root folder in one transaction.
func (s *Store) init() error {
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("seed root: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	guid := s.guids.NewGUID()
	stamp := s.now()
	if _, err := tx.Exec(`
		INSERT INTO tree (guid, parent_guid, id_no, name, date_added, node_type)
		VALUES (?, NULL, 0, ?, ?, 1)
	`, guid, RootName, stamp); err != nil {
		return fmt.Errorf("seed root: %w", err)
	}
	if _, err := tx.Exec(`
		INSERT INTO folder (node_id, date_modified)
		VALUES (?, ?)
	`, guid, stamp); err != nil {
		return fmt.Errorf("seed root folder row: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed root: commit: %w", err)
	}
	return nil
}

// Close closes the database connection. Safe to call more than once.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Destroy closes the store and deletes its backing file.
func (s *Store) Destroy() error {
	if err := s.Close(); err != nil {
		return err
	}
	return Delete(s.path)
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }
