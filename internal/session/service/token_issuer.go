package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/finalstore/backend/internal/common/clock"
	commoncrypto "github.com/finalstore/backend/internal/common/crypto"
)

// TokenIssuer signs both token classes. Access and refresh tokens use
// independent secrets so that compromise of one class never forges the
// other.
type TokenIssuer struct {
	accessSecret    []byte
	refreshSecret   []byte
	idGenerator     commoncrypto.IDGenerator
	clock           clock.Clock
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

func NewTokenIssuer(
	accessSecret string,
	refreshSecret string,
	idGenerator commoncrypto.IDGenerator,
	accessTokenTTL time.Duration,
	refreshTokenTTL time.Duration,
	clk clock.Clock,
) *TokenIssuer {
	return &TokenIssuer{
		accessSecret:    []byte(accessSecret),
		refreshSecret:   []byte(refreshSecret),
		idGenerator:     idGenerator,
		clock:           clk,
		accessTokenTTL:  accessTokenTTL,
		refreshTokenTTL: refreshTokenTTL,
	}
}

func (ti *TokenIssuer) IssueAccessToken(email string) (string, error) {
	tokenString, _, err := ti.sign(email, ti.accessSecret, ti.accessTokenTTL)
	if err != nil {
		return "", err
	}
	incrementAccessTokensIssued()
	return tokenString, nil
}

func (ti *TokenIssuer) IssueRefreshToken(email string) (string, time.Time, error) {
	tokenString, expiresAt, err := ti.sign(email, ti.refreshSecret, ti.refreshTokenTTL)
	if err != nil {
		return "", time.Time{}, err
	}
	incrementRefreshTokensIssued()
	return tokenString, expiresAt, nil
}

// The jti claim keeps two tokens for the same email distinct even when
// issued within the same second, which refresh-token rotation relies on.
func (ti *TokenIssuer) sign(email string, secret []byte, ttl time.Duration) (string, time.Time, error) {
	jti, err := ti.idGenerator.NewID()
	if err != nil {
		return "", time.Time{}, err
	}

	now := ti.clock.Now()
	expiresAt := now.Add(ttl)
	claims := jwt.MapClaims{
		"email": email,
		"jti":   jti,
		"exp":   expiresAt.Unix(),
		"iat":   now.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := t.SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}
