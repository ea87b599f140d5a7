package services

import (
	"fmt"

	"github.com/cy6erlion/kong-kontrollers/core"
)

// AdminService decides whether a verified identity holds administrative
// privilege. A missing account resolves to false, never to an error; only
// store failures propagate. Callers gating privileged actions must treat
// any returned error as "not admin".
type AdminService struct {
	store      core.AccountStore
	adminEmail string
}

func NewAdminService(store core.AccountStore, adminEmail string) *AdminService {
	return &AdminService{
		store:      store,
		adminEmail: adminEmail,
	}
}

// IsAdmin reports whether username's stored role tag is admin.
func (s *AdminService) IsAdmin(username string) (bool, error) {
	account, err := s.store.PrivateGetByUsername(username)
	if err != nil {
		return false, fmt.Errorf("failed to load account: %w", err)
	}
	if account == nil {
		return false, nil
	}
	return account.AccountType.IsAdmin(), nil
}

// IsAdminByEmail reports whether username owns the account registered under
// the configured administrator email.
func (s *AdminService) IsAdminByEmail(username string) (bool, error) {
	if s.adminEmail == "" {
		return false, nil
	}

	account, err := s.store.PrivateGetByEmail(s.adminEmail)
	if err != nil {
		return false, fmt.Errorf("failed to load account: %w", err)
	}
	if account == nil {
		return false, nil
	}
	return account.Username == username, nil
}
