package services

import (
	"fmt"

	"github.com/cy6erlion/kong-kontrollers/core"
)

// LoginService authenticates submitted credentials and issues passports.
type LoginService struct {
	store     core.AccountStore
	passwords core.PasswordHandler
	passports core.PassportIssuer
}

func NewLoginService(store core.AccountStore, passwords core.PasswordHandler, passports core.PassportIssuer) *LoginService {
	return &LoginService{
		store:     store,
		passwords: passwords,
		passports: passports,
	}
}

// Login validates credential shape, looks up the account, verifies the
// password against the stored hash and issues a passport. A passport is
// only ever issued after a successful verification in the same call.
//
// An unknown username returns ErrAccountNotFound and a wrong password
// returns ErrWrongPassword; the two outcomes are deliberately distinct.
func (s *LoginService) Login(input core.AccountLoginInput) (*core.LoginResult, error) {
	// Step 1: Validate input shape
	if err := core.ValidateLogin(input); err != nil {
		return nil, err
	}

	// Step 2: Find the account
	account, err := s.store.PrivateGetByUsername(input.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	if account == nil {
		return nil, core.ErrAccountNotFound
	}

	// Step 3: Verify the password
	valid, err := s.passwords.Verify(input.Password, account.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		return nil, core.ErrWrongPassword
	}

	// Step 4: Issue the passport
	passport, err := s.passports.Issue(account.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue passport: %w", err)
	}

	return &core.LoginResult{
		Message:     "Login successful",
		AccountType: account.AccountType,
		Passport:    passport,
	}, nil
}
