package service

import (
	"github.com/finalstore/backend/internal/common/clock"
	"github.com/finalstore/backend/internal/common/jwtauth"
)

// TokenVerifier checks signature and expiry for each token class against its
// own secret. All failure modes are reported identically; the distinction
// only survives in server-side logs.
type TokenVerifier struct {
	accessSecret  []byte
	refreshSecret []byte
	clock         clock.Clock
}

func NewTokenVerifier(accessSecret, refreshSecret string, clk clock.Clock) *TokenVerifier {
	return &TokenVerifier{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		clock:         clk,
	}
}

func (tv *TokenVerifier) VerifyAccess(tokenString string) (jwtauth.Claims, error) {
	return tv.verify(tokenString, tv.accessSecret)
}

func (tv *TokenVerifier) VerifyRefresh(tokenString string) (jwtauth.Claims, error) {
	return tv.verify(tokenString, tv.refreshSecret)
}

func (tv *TokenVerifier) verify(tokenString string, secret []byte) (jwtauth.Claims, error) {
	incrementJWTValidations()
	claims, err := jwtauth.ParseToken(tokenString, secret, tv.clock.Now)
	if err != nil {
		incrementJWTValidationsFailed()
		return jwtauth.Claims{}, err
	}
	return claims, nil
}
