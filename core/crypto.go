package core

import "net/http"

// PasswordHandler hashes plaintext passwords and verifies plaintext against
// a stored hash. Verify returns (false, nil) on a clean mismatch; an error
// means the primitive itself failed.
type PasswordHandler interface {
	Hash(password string) (string, error)
	Verify(password, hash string) (bool, error)
}

// Passport is a signed session artifact bound to a verified identity. The
// cookie is how it is attached to responses.
type Passport struct {
	Token  string
	Cookie http.Cookie
}

// PassportIssuer issues and verifies passports. Verify returns the username
// the passport was issued to, or ErrInvalidPassport.
type PassportIssuer interface {
	Issue(username string) (*Passport, error)
	Verify(token string) (string, error)
}
