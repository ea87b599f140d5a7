package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/cy6erlion/kong-kontrollers/core"
)

const timeFormat = time.RFC3339Nano

const createAccountsTable = `
CREATE TABLE IF NOT EXISTS accounts (
	id INTEGER PRIMARY KEY,
	username TEXT UNIQUE NOT NULL,
	password TEXT NOT NULL,
	created TEXT NOT NULL,
	fullname TEXT,
	date_of_birth TEXT,
	id_number TEXT,
	gender TEXT,
	description TEXT,
	email TEXT UNIQUE,
	mobile_number TEXT,
	website TEXT,
	last_login TEXT,
	account_type TEXT)`

// Store is the embedded-file backend over a SQLite database.
type Store struct {
	path string
	db   *sql.DB // nil until Connect
}

var _ core.AccountStore = (*Store)(nil)

func New(path string) *Store {
	return &Store{path: path}
}

// Connect opens the database file and ensures the accounts table exists.
// It is idempotent and must succeed before any other operation.
func (s *Store) Connect() error {
	if s.db != nil {
		return nil
	}

	dsn := s.path + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrConnectionFailed, err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("%w: %w", core.ErrConnectionFailed, err)
	}

	tx, err := db.Begin()
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("%w: %w", core.ErrTransactionFailed, err)
	}
	if _, err := tx.Exec(createAccountsTable); err != nil {
		_ = tx.Rollback()
		_ = db.Close()
		return fmt.Errorf("%w: %w", core.ErrSchemaCreationFailed, err)
	}
	if err := tx.Commit(); err != nil {
		_ = db.Close()
		return fmt.Errorf("%w: %w", core.ErrSchemaCreationFailed, err)
	}

	s.db = db
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT,
			sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY,
			sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
