package services

import (
	"errors"
	"fmt"

	"github.com/cy6erlion/kong-kontrollers/core"
)

// AccountService orchestrates account creation and public lookups.
type AccountService struct {
	store      core.AccountStore
	passwords  core.PasswordHandler
	cache      core.Cache
	adminEmail string
}

func NewAccountService(store core.AccountStore, passwords core.PasswordHandler, cache core.Cache, adminEmail string) *AccountService {
	return &AccountService{
		store:      store,
		passwords:  passwords,
		cache:      cache,
		adminEmail: adminEmail,
	}
}

// Create validates the input, hashes the password, classifies the account
// against the configured admin email and persists it. On success it returns
// the public projection of the new account.
//
// Exactly one row is inserted on success and none on any failure:
// validation, hashing and classification all happen before the single
// insert call.
func (s *AccountService) Create(input core.AccountCreationInput) (*core.PublicAccount, error) {
	// Step 1: Validate input shape; no store access past this point on
	// failure.
	if err := core.ValidateCreation(input); err != nil {
		return nil, err
	}

	// Step 2: Hash the password
	hash, err := s.passwords.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := core.NewAccount(input, hash)

	// Step 3: Classify. The admin role is granted here and nowhere else.
	if s.isAdminEmail(input.Email) {
		account.AccountType = core.AccountTypeAdmin
		err = s.store.CreateAdminAccount(&account)
	} else {
		err = s.store.CreateAccount(&account)
	}
	if err != nil {
		return nil, err
	}

	return account.Public(), nil
}

// PublicByUsername returns the public projection for username, consulting
// the cache first when one is configured.
func (s *AccountService) PublicByUsername(username string) (*core.PublicAccount, error) {
	if s.cache != nil {
		if account, err := s.cache.Get(username); err == nil && account != nil {
			return account, nil
		}
	}

	account, err := s.store.PublicGetByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	if account == nil {
		return nil, core.ErrAccountNotFound
	}

	if s.cache != nil {
		_ = s.cache.Set(username, account)
	}

	return account, nil
}

func (s *AccountService) isAdminEmail(email *string) bool {
	return s.adminEmail != "" && email != nil && *email == s.adminEmail
}

// IsClientError reports whether a creation failure is the client's fault
// (bad input, duplicate username/email, column mismatch) rather than a
// server fault.
func IsClientError(err error) bool {
	return errors.Is(err, core.ErrInvalidUsername) ||
		errors.Is(err, core.ErrInvalidPassword) ||
		errors.Is(err, core.ErrInvalidEmail) ||
		errors.Is(err, core.ErrDuplicateAccount) ||
		errors.Is(err, core.ErrFieldDecode)
}
