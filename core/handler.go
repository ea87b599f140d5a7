package core

// AuthHandler provides the account operations HTTP adapters bind routes to.
type AuthHandler interface {
	CreateAccount(input AccountCreationInput) (*PublicAccount, error)
	Login(input AccountLoginInput) (*LoginResult, error)
	PublicByUsername(username string) (*PublicAccount, error)

	// VerifyPassport and IsAdmin back the admin guard middleware.
	VerifyPassport(token string) (string, error)
	IsAdmin(username string) (bool, error)
}

// HTTPAdapter registers the account routes on a concrete HTTP framework.
type HTTPAdapter interface {
	RegisterRoutes(handler AuthHandler, basePath, cookieName string) error
}
