package constants

import "time"

const (
	PasswordMinLength = 6
	PasswordMaxLength = 72
	EmailMaxLength    = 254
	NameMaxLength     = 128

	SigningSecretMinLength = 32

	DefaultMaxRequestSize = 1 << 20

	DBPoolMaxOpenConns    = 25
	DBPoolMinOpenConns    = 5
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = time.Second
	DBPoolMetricsInterval = 30 * time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	DefaultHTTPPort       = "4000"
	DefaultRequestTimeout = 5 * time.Second

	DefaultAccessTokenTTL  = 5 * time.Minute
	DefaultRefreshTokenTTL = 6 * time.Hour
	DefaultBcryptCost      = 10

	RateLimitCleanupInterval = 5 * time.Minute

	RateLimitSignInRequestsPerSecond   = 1.0
	RateLimitSignInBurst               = 5
	RateLimitRegisterRequestsPerSecond = 0.5
	RateLimitRegisterBurst             = 3
	RateLimitRefreshRequestsPerSecond  = 2.0
	RateLimitRefreshBurst              = 10
	RateLimitPasswordRequestsPerSecond = 0.5
	RateLimitPasswordBurst             = 3
	RateLimitGeneralRequestsPerSecond  = 10.0
	RateLimitGeneralBurst              = 30

	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"
