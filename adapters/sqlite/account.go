package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

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
	if s.db == nil {
		return core.ErrNotConnected
	}

	var err error
	if admin {
		_, err = s.db.Exec(
			`INSERT INTO accounts (username, email, password, created, account_type) VALUES (?, ?, ?, ?, ?)`,
			account.Username, account.Email, account.Password,
			account.Created.Format(timeFormat), string(core.AccountTypeAdmin),
		)
	} else {
		_, err = s.db.Exec(
			`INSERT INTO accounts (username, email, password, created) VALUES (?, ?, ?, ?)`,
			account.Username, account.Email, account.Password,
			account.Created.Format(timeFormat),
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
	return s.publicGet(`SELECT username FROM accounts WHERE username = ?`, username)
}

// PublicGetByEmail returns the public projection for email, or nil when no
// account matches.
func (s *Store) PublicGetByEmail(email string) (*core.PublicAccount, error) {
	return s.publicGet(`SELECT username FROM accounts WHERE email = ?`, email)
}

func (s *Store) publicGet(query, key string) (*core.PublicAccount, error) {
	if s.db == nil {
		return nil, core.ErrNotConnected
	}

	account := &core.PublicAccount{}
	err := s.db.QueryRow(query, key).Scan(&account.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", core.ErrQueryFailed, err)
	}
	return account, nil
}

// PrivateGetByUsername returns the full record for username, or nil when no
// account matches.
func (s *Store) PrivateGetByUsername(username string) (*core.Account, error) {
	return s.privateGet(`SELECT `+privateColumns+` FROM accounts WHERE username = ?`, username)
}

// PrivateGetByEmail returns the full record for email, or nil when no
// account matches.
func (s *Store) PrivateGetByEmail(email string) (*core.Account, error) {
	return s.privateGet(`SELECT `+privateColumns+` FROM accounts WHERE email = ?`, email)
}

func (s *Store) privateGet(query, key string) (*core.Account, error) {
	if s.db == nil {
		return nil, core.ErrNotConnected
	}

	var (
		account     core.Account
		created     string
		dateOfBirth sql.NullString
		lastLogin   sql.NullString
		accountType sql.NullString
	)

	err := s.db.QueryRow(query, key).Scan(
		&account.Username,
		&account.Password,
		&created,
		&account.Fullname,
		&dateOfBirth,
		&account.IDNumber,
		&account.Gender,
		&account.Description,
		&account.Email,
		&account.MobileNumber,
		&account.Website,
		&lastLogin,
		&accountType,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", core.ErrFieldDecode, err)
	}

	if account.Created, err = time.Parse(timeFormat, created); err != nil {
		return nil, fmt.Errorf("%w: created: %w", core.ErrFieldDecode, err)
	}
	if account.DateOfBirth, err = parseNullTime(dateOfBirth); err != nil {
		return nil, fmt.Errorf("%w: date_of_birth: %w", core.ErrFieldDecode, err)
	}
	if account.LastLogin, err = parseNullTime(lastLogin); err != nil {
		return nil, fmt.Errorf("%w: last_login: %w", core.ErrFieldDecode, err)
	}
	account.AccountType = core.AccountTypeFromString(accountType.String)

	return &account, nil
}

func parseNullTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid {
		return nil, nil
	}
	t, err := time.Parse(timeFormat, ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
