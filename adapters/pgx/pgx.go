package pgx

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cy6erlion/kong-kontrollers/core"
)

const createAccountsTable = `
CREATE TABLE IF NOT EXISTS accounts (
	id serial PRIMARY KEY,
	username varchar(15) UNIQUE NOT NULL,
	password text NOT NULL,
	created timestamptz NOT NULL,
	fullname varchar(50),
	date_of_birth timestamptz,
	id_number varchar(100),
	gender varchar(20),
	description varchar(200),
	email varchar(320) UNIQUE,
	mobile_number varchar(15),
	website varchar(2048),
	last_login timestamptz,
	account_type varchar(50))`

// Store is the client-server backend over a PostgreSQL connection pool.
type Store struct {
	url  string
	pool *pgxpool.Pool // nil until Connect
}

var _ core.AccountStore = (*Store)(nil)

func New(url string) *Store {
	return &Store{url: url}
}

// Connect opens the connection pool and ensures the accounts table exists.
// It is idempotent and must succeed before any other operation.
func (s *Store) Connect() error {
	if s.pool != nil {
		return nil
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, s.url)
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrConnectionFailed, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("%w: %w", core.ErrConnectionFailed, err)
	}

	if _, err := pool.Exec(ctx, createAccountsTable); err != nil {
		pool.Close()
		return fmt.Errorf("%w: %w", core.ErrSchemaCreationFailed, err)
	}

	s.pool = pool
	return nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.pool.Close()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
