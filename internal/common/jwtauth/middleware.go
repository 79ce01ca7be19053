package jwtauth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	commonhttp "github.com/finalstore/backend/internal/common/http"
	"github.com/finalstore/backend/internal/common/logger"
)

type Claims struct {
	Email string
}

type AccessVerifier interface {
	VerifyAccess(tokenString string) (Claims, error)
}

type contextKey string

const claimsKey contextKey = "jwt_claims"

// Middleware gates protected routes on a valid access token. A missing
// bearer header is a malformed request (400); a present but unverifiable
// token is forbidden (403). The split mirrors the public API contract.
func Middleware(verifier AccessVerifier, log *logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			if raw == "" || !strings.HasPrefix(raw, "Bearer ") {
				log.Warnf("jwt auth failed path=%s: missing or invalid authorization header", r.URL.Path)
				commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeMissingAuthorization, "missing or invalid authorization", nil, "")
				return
			}

			tokenString := strings.TrimPrefix(raw, "Bearer ")
			claims, err := verifier.VerifyAccess(tokenString)
			if err != nil {
				log.Warnf("jwt auth failed path=%s: %v", r.URL.Path, err)
				commonhttp.WriteErrorEnvelope(w, http.StatusForbidden, commonhttp.CodeInvalidToken, "bad token", nil, "")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func FromContext(ctx context.Context) (Claims, bool) {
	val := ctx.Value(claimsKey)
	claims, ok := val.(Claims)
	return claims, ok
}

// ParseToken checks the HS256 signature and expiry against the given secret
// and extracts the email claim. Signature mismatch, malformed structure and
// expiry all collapse into a single error; callers must not tell an outside
// party which one it was.
func ParseToken(tokenString string, secret []byte, now func() time.Time) (Claims, error) {
	parsed, err := jwt.Parse(
		tokenString,
		func(token *jwt.Token) (any, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, errors.New("unexpected signing method")
			}
			return secret, nil
		},
		jwt.WithTimeFunc(now),
	)
	if err != nil || !parsed.Valid {
		if err == nil {
			err = errors.New("token is not valid")
		}
		return Claims{}, err
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("invalid claims type")
	}

	email, _ := mapClaims["email"].(string)
	if email == "" {
		return Claims{}, errors.New("missing email claim")
	}

	return Claims{Email: email}, nil
}
