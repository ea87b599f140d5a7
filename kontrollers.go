package kontrollers

import (
	"fmt"
	"time"

	pgxadapter "github.com/cy6erlion/kong-kontrollers/adapters/pgx"
	"github.com/cy6erlion/kong-kontrollers/adapters/sqlite"
	"github.com/cy6erlion/kong-kontrollers/core"
	"github.com/cy6erlion/kong-kontrollers/pkg/crypto"
	"github.com/cy6erlion/kong-kontrollers/services"
)

// interfaces
type (
	AccountStore = core.AccountStore
	Cache        = core.Cache

	HTTPAdapter = core.HTTPAdapter
	AuthHandler = core.AuthHandler

	PasswordHandler = core.PasswordHandler
	PassportIssuer  = core.PassportIssuer
)

// structs
type (
	Settings    = core.Config
	Account     = core.Account
	AccountType = core.AccountType

	PublicAccount        = core.PublicAccount
	AccountCreationInput = core.AccountCreationInput
	AccountLoginInput    = core.AccountLoginInput
	LoginResult          = core.LoginResult
	Passport             = core.Passport

	CacheConfig = core.CacheConfig
	CacheStats  = core.CacheStats
)

const (
	AccountTypeStandard = core.AccountTypeStandard
	AccountTypeAdmin    = core.AccountTypeAdmin
)

const (
	defaultBasePath    = "/api"
	defaultPassportTTL = 24 * time.Hour
	minSigningKeyLen   = 32
)

// Constructors & helpers (convenience re-exports)
var (
	NewInMemoryCache  = core.NewInMemoryCache
	NewArgon2         = crypto.NewArgon2
	NewPassportSigner = crypto.NewPassportSigner
	SettingsFromEnv   = core.ConfigFromEnv
)

var (
	ErrDuplicateAccount = core.ErrDuplicateAccount
	ErrAccountNotFound  = core.ErrAccountNotFound
	ErrWrongPassword    = core.ErrWrongPassword
	ErrInvalidPassport  = core.ErrInvalidPassport
)

var (
	ErrInvalidUsername = core.ErrInvalidUsername
	ErrInvalidPassword = core.ErrInvalidPassword
	ErrInvalidEmail    = core.ErrInvalidEmail
)

var (
	ErrSigningKeyRequired  = core.ErrSigningKeyRequired
	ErrSigningKeyTooShort  = core.ErrSigningKeyTooShort
	ErrHTTPAdapterRequired = core.ErrHTTPAdapterRequired
	ErrDatabaseURLRequired = core.ErrDatabaseURLRequired
	ErrUnknownStorage      = core.ErrUnknownStorage
)

// Config wires the account core together. Settings is the process-wide
// configuration (usually from SettingsFromEnv); HTTP is required. Store,
// hasher, issuer and cache default from Settings when nil.
type Config struct {
	Settings core.Config

	HTTP core.HTTPAdapter

	// Optional config
	Store          core.AccountStore
	PasswordHasher core.PasswordHandler
	PassportIssuer core.PassportIssuer
	CacheAdapter   core.Cache
	BasePath       string
}

// Kontrollers is the assembled account core. It implements core.AuthHandler
// for HTTP adapters.
type Kontrollers struct {
	Accounts *services.AccountService
	Logins   *services.LoginService
	Admin    *services.AdminService

	Store     core.AccountStore
	Passports core.PassportIssuer
	Settings  core.Config
	BasePath  string
}

var _ core.AuthHandler = (*Kontrollers)(nil)

func New(config Config) (*Kontrollers, error) {
	if config.Settings.SigningKey == "" {
		return nil, ErrSigningKeyRequired
	}
	if len(config.Settings.SigningKey) < minSigningKeyLen {
		return nil, fmt.Errorf("%w - minimum of %d characters", ErrSigningKeyTooShort, minSigningKeyLen)
	}
	if config.HTTP == nil {
		return nil, ErrHTTPAdapterRequired
	}
	if config.Settings.PassportTTL == 0 {
		// Hand-built Settings skip the env defaults; a zero TTL would issue
		// passports that expire on arrival.
		config.Settings.PassportTTL = defaultPassportTTL
	}

	store := config.Store
	if store == nil {
		var err error
		store, err = OpenStore(config.Settings)
		if err != nil {
			return nil, err
		}
	}
	if err := store.Connect(); err != nil {
		return nil, err
	}

	// Set Defaults

	passwordHasher := config.PasswordHasher
	if passwordHasher == nil {
		passwordHasher = crypto.NewArgon2()
	}

	passportIssuer := config.PassportIssuer
	if passportIssuer == nil {
		passportIssuer = crypto.NewPassportSigner(
			config.Settings.SigningKey,
			config.Settings.Host,
			config.Settings.CookieName,
			config.Settings.PassportTTL,
		)
	}

	cacheAdapter := config.CacheAdapter
	if cacheAdapter == nil && !config.Settings.DisableCache {
		cacheAdapter = core.NewInMemoryCache(core.CacheConfig{
			TTL:     config.Settings.CacheTTL,
			MaxSize: config.Settings.CacheMaxSize,
		})
	}

	basePath := config.BasePath
	if basePath == "" {
		basePath = defaultBasePath
	}

	k := &Kontrollers{
		Accounts:  services.NewAccountService(store, passwordHasher, cacheAdapter, config.Settings.AdminEmail),
		Logins:    services.NewLoginService(store, passwordHasher, passportIssuer),
		Admin:     services.NewAdminService(store, config.Settings.AdminEmail),
		Store:     store,
		Passports: passportIssuer,
		Settings:  config.Settings,
		BasePath:  basePath,
	}

	if err := config.HTTP.RegisterRoutes(k, basePath, config.Settings.CookieName); err != nil {
		return nil, err
	}

	return k, nil
}

// OpenStore builds the storage backend selected by settings. Both backends
// live in one binary; the choice is a deployment-time configuration value.
func OpenStore(settings core.Config) (core.AccountStore, error) {
	switch settings.Storage {
	case "", core.StorageSQLite:
		return sqlite.New(settings.StoragePath), nil
	case core.StoragePostgres:
		if settings.DatabaseURL == "" {
			return nil, ErrDatabaseURLRequired
		}
		return pgxadapter.New(settings.DatabaseURL), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStorage, settings.Storage)
	}
}

// CreateAccount implements core.AuthHandler.
func (k *Kontrollers) CreateAccount(input core.AccountCreationInput) (*core.PublicAccount, error) {
	return k.Accounts.Create(input)
}

// Login implements core.AuthHandler.
func (k *Kontrollers) Login(input core.AccountLoginInput) (*core.LoginResult, error) {
	return k.Logins.Login(input)
}

// PublicByUsername implements core.AuthHandler.
func (k *Kontrollers) PublicByUsername(username string) (*core.PublicAccount, error) {
	return k.Accounts.PublicByUsername(username)
}

// VerifyPassport implements core.AuthHandler.
func (k *Kontrollers) VerifyPassport(token string) (string, error) {
	return k.Passports.Verify(token)
}

// IsAdmin implements core.AuthHandler.
func (k *Kontrollers) IsAdmin(username string) (bool, error) {
	return k.Admin.IsAdmin(username)
}
