package constants

import "time"

const (
	UsernameMinLength     = 3
	UsernameMaxLength     = 20
	PasswordMinLength     = 8
	PasswordMaxLength     = 100
	TaskTitleMinLength    = 1
	TaskTitleMaxLength    = 255
	TaskDescriptionMax    = 1000
	JWTSecretMinLength    = 32
	BcryptCost            = 12
	DefaultMaxRequestSize = 1 << 20

	DefaultTokenTTL       = 7 * 24 * time.Hour
	DefaultRequestTimeout = 30 * time.Second

	DefaultAuthRateLimitRPS   = 5
	DefaultAuthRateLimitBurst = 10
	RateLimitCleanupInterval  = 5 * time.Minute

	DBPoolMaxConns        = 25
	DBPoolMinConns        = 5
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = time.Second
	DBPoolMetricsInterval = 30 * time.Second

	StoreBreakerThreshold   = 5
	StoreBreakerCallTimeout = 5 * time.Second
	StoreBreakerResetAfter  = 30 * time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	ReadinessTimeout = 3 * time.Second

	DefaultHTTPPort = "3000"

	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28
)

type RequestIDKeyType string

const RequestIDKey RequestIDKeyType = "request_id"

const RequestIDHeader = "X-Request-ID"
