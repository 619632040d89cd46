package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"

	"github.com/AlibekovAA/task-manager/internal/common/constants"
)

var (
	ErrInvalidJWTSecret   = errors.New("JWT_SECRET must be at least 32 bytes")
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required when STORE_DRIVER=postgres")
	ErrUnknownStoreDriver = errors.New("unknown STORE_DRIVER")
	ErrInvalidJWTTTL      = errors.New("JWT_EXPIRES_IN must be positive")
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config is built once at process start and handed to every component that
// needs it.
type Config struct {
	AppEnv   string `env:"APP_ENV" envDefault:"production"`
	HTTPPort string `env:"PORT" envDefault:"3000"`

	StoreDriver string `env:"STORE_DRIVER" envDefault:"postgres"`
	DatabaseURL string `env:"DATABASE_URL"`

	JWTSecret    string        `env:"JWT_SECRET,required"`
	JWTExpiresIn time.Duration `env:"JWT_EXPIRES_IN" envDefault:"168h"`
	BcryptCost   int           `env:"BCRYPT_COST" envDefault:"12"`

	LogDir   string `env:"LOG_DIR"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	RequestTimeout     time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	MaxRequestBodySize int64         `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`

	AuthRateLimitRPS   float64 `env:"AUTH_RATE_LIMIT_RPS" envDefault:"5"`
	AuthRateLimitBurst int     `env:"AUTH_RATE_LIMIT_BURST" envDefault:"10"`
}

func (c Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if len(c.JWTSecret) < constants.JWTSecretMinLength {
		return fmt.Errorf("%w: got %d bytes", ErrInvalidJWTSecret, len(c.JWTSecret))
	}
	if c.JWTExpiresIn <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidJWTTTL, c.JWTExpiresIn)
	}

	switch c.StoreDriver {
	case StoreDriverPostgres:
		if c.DatabaseURL == "" {
			return ErrMissingDatabaseURL
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStoreDriver, c.StoreDriver)
	}

	return nil
}

// MigrateConfig is the subset needed by the migrate command, which runs
// without a signing secret.
type MigrateConfig struct {
	DatabaseURL string `env:"DATABASE_URL,required"`
	LogDir      string `env:"LOG_DIR"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

func LoadMigrate() (MigrateConfig, error) {
	var cfg MigrateConfig
	if err := env.Parse(&cfg); err != nil {
		return MigrateConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
