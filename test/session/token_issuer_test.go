package session

import (
	"testing"

	"github.com/finalstore/backend/internal/common/constants"
)

func TestTokenIssuer_AccessTokenRoundTrip(t *testing.T) {
	f := setupSessionService(t, false)

	token, err := f.issuer.IssueAccessToken("alice@example.com")
	if err != nil {
		t.Fatalf("IssueAccessToken failed: %v", err)
	}

	claims, err := f.verifier.VerifyAccess(token)
	if err != nil {
		t.Fatalf("VerifyAccess failed: %v", err)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("expected email alice@example.com, got %s", claims.Email)
	}
}

func TestTokenIssuer_RefreshTokenRoundTrip(t *testing.T) {
	f := setupSessionService(t, false)

	token, expiresAt, err := f.issuer.IssueRefreshToken("alice@example.com")
	if err != nil {
		t.Fatalf("IssueRefreshToken failed: %v", err)
	}

	wantExpiry := f.clock.Now().Add(constants.DefaultRefreshTokenTTL)
	if !expiresAt.Equal(wantExpiry) {
		t.Errorf("expected expiry %v, got %v", wantExpiry, expiresAt)
	}

	claims, err := f.verifier.VerifyRefresh(token)
	if err != nil {
		t.Fatalf("VerifyRefresh failed: %v", err)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("expected email alice@example.com, got %s", claims.Email)
	}
}

func TestTokenIssuer_TokenClassesAreNotInterchangeable(t *testing.T) {
	f := setupSessionService(t, false)

	accessToken, err := f.issuer.IssueAccessToken("alice@example.com")
	if err != nil {
		t.Fatalf("IssueAccessToken failed: %v", err)
	}
	refreshToken, _, err := f.issuer.IssueRefreshToken("alice@example.com")
	if err != nil {
		t.Fatalf("IssueRefreshToken failed: %v", err)
	}

	if _, err := f.verifier.VerifyRefresh(accessToken); err == nil {
		t.Error("expected access token to fail refresh verification")
	}
	if _, err := f.verifier.VerifyAccess(refreshToken); err == nil {
		t.Error("expected refresh token to fail access verification")
	}
}

func TestTokenIssuer_SameSecondTokensAreDistinct(t *testing.T) {
	f := setupSessionService(t, false)

	first, _, err := f.issuer.IssueRefreshToken("alice@example.com")
	if err != nil {
		t.Fatalf("IssueRefreshToken failed: %v", err)
	}
	second, _, err := f.issuer.IssueRefreshToken("alice@example.com")
	if err != nil {
		t.Fatalf("IssueRefreshToken failed: %v", err)
	}

	if first == second {
		t.Error("expected two refresh tokens issued at the same instant to differ")
	}
}
