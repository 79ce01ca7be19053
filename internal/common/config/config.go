package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/finalstore/backend/internal/common/constants"
	commonerrors "github.com/finalstore/backend/internal/common/errors"
)

// StoreConfig is loaded once at process start and treated as immutable
// afterwards. Rotating either signing secret invalidates every outstanding
// token of that class; that is expected operational behavior.
type StoreConfig struct {
	HTTPPort           string
	DatabaseURL        string
	AccessTokenSecret  string
	RefreshTokenSecret string
	StripeSecretKey    string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	BcryptCost         int
	RequestTimeout     time.Duration

	// RevokeSessionsOnPasswordChange clears the stored refresh token when a
	// password change succeeds, forcing a fresh sign-in.
	RevokeSessionsOnPasswordChange bool
}

func LoadStoreConfig() (StoreConfig, error) {
	accessSecret, err := mustEnv("ACCESS_TOKEN_SECRET")
	if err != nil {
		return StoreConfig{}, err
	}

	refreshSecret, err := mustEnv("REFRESH_TOKEN_SECRET")
	if err != nil {
		return StoreConfig{}, err
	}

	if err := validateSigningSecrets(accessSecret, refreshSecret); err != nil {
		return StoreConfig{}, err
	}

	databaseURL, err := mustEnv("DATABASE_URL")
	if err != nil {
		return StoreConfig{}, err
	}

	return StoreConfig{
		HTTPPort:                       getEnv("STORE_HTTP_PORT", constants.DefaultHTTPPort),
		DatabaseURL:                    databaseURL,
		AccessTokenSecret:              accessSecret,
		RefreshTokenSecret:             refreshSecret,
		StripeSecretKey:                os.Getenv("STRIPE_SECRET_KEY"),
		AccessTokenTTL:                 getDurationEnv("ACCESS_TOKEN_TTL", constants.DefaultAccessTokenTTL),
		RefreshTokenTTL:                getDurationEnv("REFRESH_TOKEN_TTL", constants.DefaultRefreshTokenTTL),
		BcryptCost:                     getIntEnv("BCRYPT_COST", constants.DefaultBcryptCost),
		RequestTimeout:                 getDurationEnv("STORE_REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
		RevokeSessionsOnPasswordChange: getBoolEnv("REVOKE_SESSIONS_ON_PASSWORD_CHANGE", false),
	}, nil
}

// Compromise of one signing secret must not let an attacker forge the other
// token class, so the two secrets have to be independent values.
func validateSigningSecrets(accessSecret, refreshSecret string) error {
	if len(accessSecret) < constants.SigningSecretMinLength {
		return commonerrors.ErrInvalidSigningSecret.WithCause(
			fmt.Errorf("ACCESS_TOKEN_SECRET is %d bytes", len(accessSecret)))
	}
	if len(refreshSecret) < constants.SigningSecretMinLength {
		return commonerrors.ErrInvalidSigningSecret.WithCause(
			fmt.Errorf("REFRESH_TOKEN_SECRET is %d bytes", len(refreshSecret)))
	}
	if accessSecret == refreshSecret {
		return commonerrors.ErrIdenticalSigningSecrets
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", commonerrors.ErrMissingRequiredEnv.WithCause(fmt.Errorf("%s", key))
	}
	return v, nil
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getIntEnv(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}

func getBoolEnv(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
