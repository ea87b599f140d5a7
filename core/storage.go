package core

// AccountStore is the persistence capability for accounts, implemented by
// interchangeable SQL backends. Backend choice is a deployment decision;
// the flows never know which implementation they run against.
//
// Connect must be called, and succeed, before any other operation; it opens
// the backend and ensures the accounts schema exists (create-if-not-exists,
// idempotent). Operations called before Connect fail with ErrNotConnected.
//
// Lookups return (nil, nil) when no row matches; a missing account is never
// an error at this layer.
type AccountStore interface {
	Connect() error

	// CreateAccount inserts a new standard account. CreateAdminAccount is
	// identical but persists the admin role tag. Both fail with
	// ErrDuplicateAccount when the username or email is already taken.
	CreateAccount(account *Account) error
	CreateAdminAccount(account *Account) error

	// Public lookups return only the public projection and are safe to
	// expose through handlers.
	PublicGetByUsername(username string) (*PublicAccount, error)
	PublicGetByEmail(email string) (*PublicAccount, error)

	// Private lookups return the full record, hash included. They exist for
	// the login and admin-resolution flows only and must never feed a
	// response body.
	PrivateGetByUsername(username string) (*Account, error)
	PrivateGetByEmail(email string) (*Account, error)
}
