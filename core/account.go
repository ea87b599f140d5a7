package core

import (
	"encoding/json"
	"time"
)

// AccountType is the closed set of account roles. The zero value is a
// standard account; only AccountTypeAdmin carries elevated privilege.
type AccountType string

const (
	AccountTypeStandard AccountType = ""
	AccountTypeAdmin    AccountType = "admin"
)

// AccountTypeFromString maps a stored role tag to an AccountType.
// Anything other than "admin" (including absence) is a standard account.
func AccountTypeFromString(s string) AccountType {
	if s == string(AccountTypeAdmin) {
		return AccountTypeAdmin
	}
	return AccountTypeStandard
}

// IsAdmin reports whether the account type carries administrative privilege.
func (t AccountType) IsAdmin() bool {
	return t == AccountTypeAdmin
}

// MarshalJSON encodes a standard account as null, matching the stored
// representation where the role column is NULL for non-admin accounts.
func (t AccountType) MarshalJSON() ([]byte, error) {
	if t == AccountTypeStandard {
		return []byte("null"), nil
	}
	return json.Marshal(string(t))
}

// UnmarshalJSON accepts null or a role tag string.
func (t *AccountType) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil {
		*t = AccountTypeStandard
		return nil
	}
	*t = AccountTypeFromString(*s)
	return nil
}

// Account is the full private user record.
//
// It contains the hashed credential and must never be serialized to an
// untrusted caller; handlers expose PublicAccount instead.
type Account struct {
	// Required data
	Username string    `json:"username"`
	Password string    `json:"-"` // hash, never the plaintext
	Created  time.Time `json:"created"`

	// Optional personal data
	Fullname    *string    `json:"fullname,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	IDNumber    *string    `json:"id_number,omitempty"`
	Gender      *string    `json:"gender,omitempty"`
	Description *string    `json:"description,omitempty"`

	// Optional contact data
	Email        *string `json:"email,omitempty"`
	MobileNumber *string `json:"mobile_number,omitempty"`
	Website      *string `json:"website,omitempty"`

	// Optional meta data
	LastLogin   *time.Time  `json:"last_login,omitempty"`
	AccountType AccountType `json:"account_type"`
}

// NewAccount builds a fresh standard account from validated creation input
// and an already-hashed password. Created is assigned server-side.
func NewAccount(input AccountCreationInput, passwordHash string) Account {
	return Account{
		Username: input.Username,
		Password: passwordHash,
		Created:  time.Now().UTC(),
		Email:    input.Email,
	}
}

// Public returns the projection of the account that is safe to expose.
func (a *Account) Public() *PublicAccount {
	return &PublicAccount{Username: a.Username}
}

// PublicAccount is the public projection of an account. It is the only
// account representation ever serialized to an untrusted caller.
type PublicAccount struct {
	Username string `json:"username"`
}
