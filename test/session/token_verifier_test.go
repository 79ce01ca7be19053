package session

import (
	"testing"
	"time"

	"github.com/finalstore/backend/internal/common/constants"
)

func TestTokenVerifier_ExpiredAccessTokenRejected(t *testing.T) {
	f := setupSessionService(t, false)

	token, err := f.issuer.IssueAccessToken("alice@example.com")
	if err != nil {
		t.Fatalf("IssueAccessToken failed: %v", err)
	}

	f.clock.Advance(constants.DefaultAccessTokenTTL + time.Minute)

	if _, err := f.verifier.VerifyAccess(token); err == nil {
		t.Error("expected expired access token to be rejected")
	}
}

func TestTokenVerifier_RefreshTokenOutlivesAccessToken(t *testing.T) {
	f := setupSessionService(t, false)

	refreshToken, _, err := f.issuer.IssueRefreshToken("alice@example.com")
	if err != nil {
		t.Fatalf("IssueRefreshToken failed: %v", err)
	}

	f.clock.Advance(constants.DefaultAccessTokenTTL + time.Minute)

	if _, err := f.verifier.VerifyRefresh(refreshToken); err != nil {
		t.Errorf("expected refresh token to remain valid past access TTL, got %v", err)
	}

	f.clock.Advance(constants.DefaultRefreshTokenTTL)

	if _, err := f.verifier.VerifyRefresh(refreshToken); err == nil {
		t.Error("expected expired refresh token to be rejected")
	}
}

func TestTokenVerifier_MalformedTokenRejected(t *testing.T) {
	f := setupSessionService(t, false)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := f.verifier.VerifyAccess(token); err == nil {
			t.Errorf("expected malformed token %q to be rejected", token)
		}
	}
}

func TestTokenVerifier_TamperedTokenRejected(t *testing.T) {
	f := setupSessionService(t, false)

	token, err := f.issuer.IssueAccessToken("alice@example.com")
	if err != nil {
		t.Fatalf("IssueAccessToken failed: %v", err)
	}

	tampered := token + "x"
	if _, err := f.verifier.VerifyAccess(tampered); err == nil {
		t.Error("expected tampered token to be rejected")
	}
}
