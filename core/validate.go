package core

import (
	"net/mail"
	"regexp"
)

const (
	usernameMaxLen = 15 // matches the accounts.username column width
	passwordMinLen = 10
	passwordMaxLen = 128
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ValidateCreation checks the shape of account-creation input. It is pure:
// no store access, no existence checks.
func ValidateCreation(input AccountCreationInput) error {
	if !validUsername(input.Username) {
		return ErrInvalidUsername
	}
	if !validPassword(input.Password) {
		return ErrInvalidPassword
	}
	if input.Email != nil && !validEmail(*input.Email) {
		return ErrInvalidEmail
	}
	return nil
}

// ValidateLogin checks the shape of login input. Only username and password
// shape are checked; whether the username exists is resolved later against
// the store.
func ValidateLogin(input AccountLoginInput) error {
	if !validUsername(input.Username) {
		return ErrInvalidUsername
	}
	if !validPassword(input.Password) {
		return ErrInvalidPassword
	}
	return nil
}

func validUsername(username string) bool {
	if username == "" || len(username) > usernameMaxLen {
		return false
	}
	return usernamePattern.MatchString(username)
}

func validPassword(password string) bool {
	return len(password) >= passwordMinLen && len(password) <= passwordMaxLen
}

func validEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	// Reject the "Name <addr>" form; only a bare address is a valid value
	// for the email column.
	return err == nil && addr.Address == email
}
