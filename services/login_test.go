package services

import (
	"errors"
	"testing"

	"github.com/cy6erlion/kong-kontrollers/core"
)

func loginFixture(t *testing.T) (*LoginService, *FakeAccountStore, *FakePassportIssuer) {
	t.Helper()

	store := connectedFakeStore(t)
	passwords := &FakePasswordHandler{}
	passports := &FakePassportIssuer{}

	accounts := NewAccountService(store, passwords, nil, "admin@example.com")
	if _, err := accounts.Create(core.AccountCreationInput{
		Username: "alice",
		Email:    strPtr("alice@example.com"),
		Password: "Str0ngPass!",
	}); err != nil {
		t.Fatalf("Create alice: %v", err)
	}
	if _, err := accounts.Create(core.AccountCreationInput{
		Username: "root",
		Email:    strPtr("admin@example.com"),
		Password: "Adm1nPass!!",
	}); err != nil {
		t.Fatalf("Create root: %v", err)
	}

	return NewLoginService(store, passwords, passports), store, passports
}

// Requirement: correct credentials yield a passport bound to the username
// and the stored account type.
func TestLoginService_Login(t *testing.T) {
	// Arrange
	service, _, passports := loginFixture(t)

	// Act
	result, err := service.Login(core.AccountLoginInput{
		Username: "alice",
		Password: "Str0ngPass!",
	})

	// Assert
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.Message != "Login successful" {
		t.Errorf("Message = %q", result.Message)
	}
	if result.AccountType != core.AccountTypeStandard {
		t.Errorf("AccountType = %q, want standard", result.AccountType)
	}
	if result.Passport == nil || result.Passport.Token == "" {
		t.Fatal("Login() returned no passport")
	}
	if len(passports.Issued) != 1 || passports.Issued[0] != "alice" {
		t.Errorf("passports issued for %v, want [alice]", passports.Issued)
	}
}

// Requirement: an admin login reports the admin account type in the result.
func TestLoginService_Login_AdminType(t *testing.T) {
	service, _, _ := loginFixture(t)

	result, err := service.Login(core.AccountLoginInput{
		Username: "root",
		Password: "Adm1nPass!!",
	})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.AccountType != core.AccountTypeAdmin {
		t.Errorf("AccountType = %q, want admin", result.AccountType)
	}
}

// Requirement: a wrong password fails with ErrWrongPassword and no passport
// is issued.
func TestLoginService_Login_WrongPassword(t *testing.T) {
	service, _, passports := loginFixture(t)

	_, err := service.Login(core.AccountLoginInput{
		Username: "alice",
		Password: "WrongPass!!",
	})

	if !errors.Is(err, core.ErrWrongPassword) {
		t.Fatalf("Login() error = %v, want ErrWrongPassword", err)
	}
	if len(passports.Issued) != 0 {
		t.Errorf("passports issued for %v despite failed login", passports.Issued)
	}
}

// Requirement: an unknown username fails with ErrAccountNotFound, distinct
// from the wrong-password outcome.
func TestLoginService_Login_UnknownUsername(t *testing.T) {
	service, _, passports := loginFixture(t)

	_, err := service.Login(core.AccountLoginInput{
		Username: "nobody",
		Password: "Str0ngPass!",
	})

	if !errors.Is(err, core.ErrAccountNotFound) {
		t.Fatalf("Login() error = %v, want ErrAccountNotFound", err)
	}
	if len(passports.Issued) != 0 {
		t.Errorf("passports issued for %v despite unknown user", passports.Issued)
	}
}

// Requirement: malformed credentials are rejected on shape alone, before
// any store access.
func TestLoginService_Login_InvalidShape(t *testing.T) {
	store := NewFakeAccountStore() // deliberately not connected
	service := NewLoginService(store, &FakePasswordHandler{}, &FakePassportIssuer{})

	_, err := service.Login(core.AccountLoginInput{Username: "alice", Password: "short"})
	if !errors.Is(err, core.ErrInvalidPassword) {
		t.Fatalf("Login() error = %v, want ErrInvalidPassword", err)
	}
}

// Requirement: a store failure surfaces as an internal error, not as a
// credential failure.
func TestLoginService_Login_StoreFailure(t *testing.T) {
	service, store, _ := loginFixture(t)
	store.GetErr = core.ErrQueryFailed

	_, err := service.Login(core.AccountLoginInput{
		Username: "alice",
		Password: "Str0ngPass!",
	})

	if !errors.Is(err, core.ErrQueryFailed) {
		t.Fatalf("Login() error = %v, want wrapped ErrQueryFailed", err)
	}
	if errors.Is(err, core.ErrWrongPassword) || errors.Is(err, core.ErrAccountNotFound) {
		t.Error("store failure misreported as a credential failure")
	}
}

// Requirement: a passport issuance failure aborts the login.
func TestLoginService_Login_IssueFailure(t *testing.T) {
	store := connectedFakeStore(t)
	passwords := &FakePasswordHandler{}
	accounts := NewAccountService(store, passwords, nil, "")
	if _, err := accounts.Create(core.AccountCreationInput{Username: "alice", Password: "Str0ngPass!"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	issueErr := errors.New("signer unavailable")
	service := NewLoginService(store, passwords, &FakePassportIssuer{IssueErr: issueErr})

	_, err := service.Login(core.AccountLoginInput{Username: "alice", Password: "Str0ngPass!"})
	if !errors.Is(err, issueErr) {
		t.Fatalf("Login() error = %v, want wrapped issue error", err)
	}
}
