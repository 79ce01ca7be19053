package session

import (
	"context"
	"errors"
	"testing"

	accountdomain "github.com/finalstore/backend/internal/account/domain"
	"github.com/finalstore/backend/internal/session/service"
)

func storedCredential(email, password string) accountdomain.Credential {
	return accountdomain.Credential{
		ID:           7,
		Email:        email,
		PasswordHash: "hashed:" + password,
	}
}

func TestSessionService_SignIn_Success(t *testing.T) {
	f := setupSessionService(t, false)

	var rotatedTo string
	f.credentials.findByEmailFunc = func(ctx context.Context, email string) (accountdomain.Credential, error) {
		return storedCredential("alice@example.com", "password123"), nil
	}
	f.credentials.updateRefreshTokenFunc = func(ctx context.Context, email string, token string) error {
		rotatedTo = token
		return nil
	}
	f.profiles.findByEmailFunc = func(ctx context.Context, email string) (accountdomain.Profile, error) {
		return accountdomain.Profile{ID: 7, Email: email, Name: "Alice"}, nil
	}

	result, err := f.svc.SignIn(context.Background(), "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}

	if result.RefreshToken != rotatedTo {
		t.Error("expected stored refresh token to match the returned one")
	}
	if result.Profile.Name != "Alice" {
		t.Errorf("expected profile in response, got %+v", result.Profile)
	}

	claims, err := f.verifier.VerifyAccess(result.AccessToken)
	if err != nil {
		t.Fatalf("expected issued access token to verify: %v", err)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("expected access token bound to alice@example.com, got %s", claims.Email)
	}
}

func TestSessionService_SignIn_UnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	f := setupSessionService(t, false)

	_, unknownErr := f.svc.SignIn(context.Background(), "nobody@example.com", "password123")
	if !errors.Is(unknownErr, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", unknownErr)
	}

	f.credentials.findByEmailFunc = func(ctx context.Context, email string) (accountdomain.Credential, error) {
		return storedCredential("alice@example.com", "password123"), nil
	}

	_, wrongErr := f.svc.SignIn(context.Background(), "alice@example.com", "wrong-password")
	if !errors.Is(wrongErr, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongErr)
	}

	if unknownErr.Error() != wrongErr.Error() {
		t.Error("expected unknown email and wrong password to be indistinguishable")
	}
}

func TestSessionService_SignIn_RotatesRefreshToken(t *testing.T) {
	f := setupSessionService(t, false)

	var stored []string
	f.credentials.findByEmailFunc = func(ctx context.Context, email string) (accountdomain.Credential, error) {
		return storedCredential("alice@example.com", "password123"), nil
	}
	f.credentials.updateRefreshTokenFunc = func(ctx context.Context, email string, token string) error {
		stored = append(stored, token)
		return nil
	}

	first, err := f.svc.SignIn(context.Background(), "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("first SignIn failed: %v", err)
	}
	second, err := f.svc.SignIn(context.Background(), "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("second SignIn failed: %v", err)
	}

	if len(stored) != 2 {
		t.Fatalf("expected two rotations, got %d", len(stored))
	}
	if first.RefreshToken == second.RefreshToken {
		t.Error("expected each sign-in to mint a distinct refresh token")
	}
	if stored[1] != second.RefreshToken {
		t.Error("expected the second sign-in to overwrite the stored token")
	}
}
