package pgx

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cy6erlion/kong-kontrollers/core"
)

const privateColumns = `username, password, created, fullname, date_of_birth, id_number,
	gender, description, email, mobile_number, website, last_login, account_type`

// CreateAccount inserts a new standard account row.
func (s *Store) CreateAccount(account *core.Account) error {
	return s.create(account, false)
}

// CreateAdminAccount inserts a new account row with the admin role tag.
func (s *Store) CreateAdminAccount(account *core.Account) error {
	return s.create(account, true)
}

func (s *Store) create(account *core.Account, admin bool) error {
	if s.pool == nil {
		return core.ErrNotConnected
	}

	ctx := context.Background()

	var err error
	if admin {
		_, err = s.pool.Exec(ctx,
			`INSERT INTO accounts (username, email, password, created, account_type) VALUES ($1, $2, $3, $4, $5)`,
			account.Username, account.Email, account.Password, account.Created,
			string(core.AccountTypeAdmin),
		)
	} else {
		_, err = s.pool.Exec(ctx,
			`INSERT INTO accounts (username, email, password, created) VALUES ($1, $2, $3, $4)`,
			account.Username, account.Email, account.Password, account.Created,
		)
	}
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %w", core.ErrDuplicateAccount, err)
		}
		return fmt.Errorf("%w: %w", core.ErrFieldDecode, err)
	}
	return nil
}

// PublicGetByUsername returns the public projection for username, or nil
// when no account matches.
func (s *Store) PublicGetByUsername(username string) (*core.PublicAccount, error) {
	return s.publicGet(`SELECT username FROM accounts WHERE username = $1`, username)
}

// PublicGetByEmail returns the public projection for email, or nil when no
// account matches.
func (s *Store) PublicGetByEmail(email string) (*core.PublicAccount, error) {
	return s.publicGet(`SELECT username FROM accounts WHERE email = $1`, email)
}

func (s *Store) publicGet(query, key string) (*core.PublicAccount, error) {
	if s.pool == nil {
		return nil, core.ErrNotConnected
	}

	account := &core.PublicAccount{}
	err := s.pool.QueryRow(context.Background(), query, key).Scan(&account.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", core.ErrQueryFailed, err)
	}
	return account, nil
}

// PrivateGetByUsername returns the full record for username, or nil when no
// account matches.
func (s *Store) PrivateGetByUsername(username string) (*core.Account, error) {
	return s.privateGet(`SELECT `+privateColumns+` FROM accounts WHERE username = $1`, username)
}

// PrivateGetByEmail returns the full record for email, or nil when no
// account matches.
func (s *Store) PrivateGetByEmail(email string) (*core.Account, error) {
	return s.privateGet(`SELECT `+privateColumns+` FROM accounts WHERE email = $1`, email)
}

func (s *Store) privateGet(query, key string) (*core.Account, error) {
	if s.pool == nil {
		return nil, core.ErrNotConnected
	}

	var (
		account     core.Account
		accountType *string
	)

	err := s.pool.QueryRow(context.Background(), query, key).Scan(
		&account.Username,
		&account.Password,
		&account.Created,
		&account.Fullname,
		&account.DateOfBirth,
		&account.IDNumber,
		&account.Gender,
		&account.Description,
		&account.Email,
		&account.MobileNumber,
		&account.Website,
		&account.LastLogin,
		&accountType,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", core.ErrFieldDecode, err)
	}

	if accountType != nil {
		account.AccountType = core.AccountTypeFromString(*accountType)
	}

	return &account, nil
}
