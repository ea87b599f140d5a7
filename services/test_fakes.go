package services

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/cy6erlion/kong-kontrollers/core"
)

// FakeAccountStore is an in-memory core.AccountStore for tests. Error
// fields, when set, are returned by the corresponding operations.
type FakeAccountStore struct {
	mu        sync.RWMutex
	accounts  map[string]*core.Account // key: username
	connected bool

	ConnectErr error
	CreateErr  error
	GetErr     error
}

var _ core.AccountStore = (*FakeAccountStore)(nil)

func NewFakeAccountStore() *FakeAccountStore {
	return &FakeAccountStore{accounts: make(map[string]*core.Account)}
}

func (f *FakeAccountStore) Connect() error {
	if f.ConnectErr != nil {
		return f.ConnectErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connected = true
	return nil
}

func (f *FakeAccountStore) CreateAccount(account *core.Account) error {
	return f.create(account)
}

func (f *FakeAccountStore) CreateAdminAccount(account *core.Account) error {
	return f.create(account)
}

func (f *FakeAccountStore) create(account *core.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.connected {
		return core.ErrNotConnected
	}
	if f.CreateErr != nil {
		return f.CreateErr
	}

	if _, exists := f.accounts[account.Username]; exists {
		return core.ErrDuplicateAccount
	}
	if account.Email != nil {
		for _, existing := range f.accounts {
			if existing.Email != nil && *existing.Email == *account.Email {
				return core.ErrDuplicateAccount
			}
		}
	}

	clone := *account
	f.accounts[account.Username] = &clone
	return nil
}

func (f *FakeAccountStore) PublicGetByUsername(username string) (*core.PublicAccount, error) {
	account, err := f.PrivateGetByUsername(username)
	if err != nil || account == nil {
		return nil, err
	}
	return account.Public(), nil
}

func (f *FakeAccountStore) PublicGetByEmail(email string) (*core.PublicAccount, error) {
	account, err := f.PrivateGetByEmail(email)
	if err != nil || account == nil {
		return nil, err
	}
	return account.Public(), nil
}

func (f *FakeAccountStore) PrivateGetByUsername(username string) (*core.Account, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if !f.connected {
		return nil, core.ErrNotConnected
	}
	if f.GetErr != nil {
		return nil, f.GetErr
	}

	account, ok := f.accounts[username]
	if !ok {
		return nil, nil
	}
	clone := *account
	return &clone, nil
}

func (f *FakeAccountStore) PrivateGetByEmail(email string) (*core.Account, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if !f.connected {
		return nil, core.ErrNotConnected
	}
	if f.GetErr != nil {
		return nil, f.GetErr
	}

	for _, account := range f.accounts {
		if account.Email != nil && *account.Email == email {
			clone := *account
			return &clone, nil
		}
	}
	return nil, nil
}

// FakePasswordHandler hashes by prefixing; Verify recomputes the prefix.
type FakePasswordHandler struct {
	HashErr   error
	VerifyErr error
}

var _ core.PasswordHandler = (*FakePasswordHandler)(nil)

func (f *FakePasswordHandler) Hash(password string) (string, error) {
	if f.HashErr != nil {
		return "", f.HashErr
	}
	return "hashed:" + password, nil
}

func (f *FakePasswordHandler) Verify(password, hash string) (bool, error) {
	if f.VerifyErr != nil {
		return false, f.VerifyErr
	}
	return hash == "hashed:"+password, nil
}

// FakePassportIssuer issues predictable passports for tests.
type FakePassportIssuer struct {
	IssueErr error
	Issued   []string // usernames passports were issued for
}

var _ core.PassportIssuer = (*FakePassportIssuer)(nil)

func (f *FakePassportIssuer) Issue(username string) (*core.Passport, error) {
	if f.IssueErr != nil {
		return nil, f.IssueErr
	}
	f.Issued = append(f.Issued, username)
	token := "passport-for-" + username
	return &core.Passport{
		Token:  token,
		Cookie: http.Cookie{Name: "kpassport", Value: token},
	}, nil
}

func (f *FakePassportIssuer) Verify(token string) (string, error) {
	var username string
	if _, err := fmt.Sscanf(token, "passport-for-%s", &username); err != nil {
		return "", core.ErrInvalidPassport
	}
	return username, nil
}
