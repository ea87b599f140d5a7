package core

// AccountCreationInput is the request body for account creation.
type AccountCreationInput struct {
	Username string  `json:"username"`
	Email    *string `json:"email,omitempty"`
	Password string  `json:"password"`
}

// AccountLoginInput is the request body for login.
type AccountLoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult is returned by a successful login. Message and AccountType are
// serialized to the caller; the passport travels as a cookie, never in the
// body.
type LoginResult struct {
	Message     string      `json:"message"`
	AccountType AccountType `json:"account_type"`
	Passport    *Passport   `json:"-"`
}
