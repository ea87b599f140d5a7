package core

import "errors"

// Store errors
var (
	ErrNotConnected         = errors.New("store not connected")              // 500
	ErrConnectionFailed     = errors.New("store connection failed")          // 500
	ErrSchemaCreationFailed = errors.New("accounts schema creation failed")  // 500
	ErrTransactionFailed    = errors.New("store transaction failed")         // 500
	ErrQueryFailed          = errors.New("account query failed")             // 500
	ErrFieldDecode          = errors.New("could not decode account field")   // 400 on create
	ErrDuplicateAccount     = errors.New("username or email already in use") // 400
)

// Validation errors (client input)
var (
	ErrInvalidUsername = errors.New("invalid username") // 400
	ErrInvalidPassword = errors.New("invalid password") // 400
	ErrInvalidEmail    = errors.New("invalid email")    // 400
)

// Login errors
var (
	ErrAccountNotFound = errors.New("account not found") // 404
	ErrWrongPassword   = errors.New("wrong password")    // 401
)

// Passport errors
var (
	ErrInvalidPassport = errors.New("invalid passport") // 401
)

// Cache errors
var (
	ErrCacheNotFound = errors.New("account not found in cache")
)

// Config errors (server-side configuration)
var (
	ErrSigningKeyRequired  = errors.New("passport signing key is required") // 500
	ErrSigningKeyTooShort  = errors.New("passport signing key too short")   // 500
	ErrHTTPAdapterRequired = errors.New("http adapter is required")         // 500
	ErrAdminEmailRequired  = errors.New("admin email is required")          // 500
	ErrDatabaseURLRequired = errors.New("database url is required")         // 500
	ErrUnknownStorage      = errors.New("unknown storage backend")          // 500
)
