package core

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage backend names accepted by Config.Storage.
const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// Config holds the process-wide settings the account core consumes. It is
// loaded once at startup, either directly or via ConfigFromEnv.
type Config struct {
	// Storage selects the backend: "sqlite" (embedded file) or "postgres"
	// (client-server). Both live in one binary; this is a runtime choice.
	Storage string `env:"KONG_STORAGE" envDefault:"sqlite"`

	// StoragePath is the database file path for the sqlite backend.
	StoragePath string `env:"KONG_STORAGE_PATH" envDefault:"kong.sqlite"`

	// DatabaseURL is the connection string for the postgres backend.
	DatabaseURL string `env:"KONG_DATABASE_URL"`

	// AdminEmail is the single administrator email. An account created with
	// exactly this email is stored as an admin account.
	AdminEmail string `env:"KONG_ADMIN_EMAIL"`

	// SigningKey signs issued passports.
	SigningKey string `env:"KONG_SIGNING_KEY"`

	// Host is the hostname passports are scoped to.
	Host string `env:"KONG_HOST" envDefault:"localhost"`

	// CookieName is the name of the passport cookie.
	CookieName string `env:"KONG_COOKIE_NAME" envDefault:"kpassport"`

	// PassportTTL bounds the lifetime of issued passports.
	PassportTTL time.Duration `env:"KONG_PASSPORT_TTL" envDefault:"24h"`

	// Public-projection cache knobs.
	DisableCache bool          `env:"KONG_DISABLE_CACHE"`
	CacheTTL     time.Duration `env:"KONG_CACHE_TTL" envDefault:"5m"`
	CacheMaxSize int           `env:"KONG_CACHE_MAX_SIZE" envDefault:"500"`
}

// ConfigFromEnv loads configuration from KONG_* environment variables.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
