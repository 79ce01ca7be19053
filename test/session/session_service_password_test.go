package session

import (
	"context"
	"errors"
	"testing"

	accountdomain "github.com/finalstore/backend/internal/account/domain"
	"github.com/finalstore/backend/internal/session/service"
)

func TestSessionService_ChangePassword_Success(t *testing.T) {
	f := setupSessionService(t, false)

	var updatedHash string
	cleared := false
	f.credentials.findByEmailFunc = func(ctx context.Context, email string) (accountdomain.Credential, error) {
		return storedCredential("alice@example.com", "old-password"), nil
	}
	f.credentials.updatePasswordHashFunc = func(ctx context.Context, email string, hash string) error {
		updatedHash = hash
		return nil
	}
	f.credentials.clearRefreshTokenFunc = func(ctx context.Context, email string) error {
		cleared = true
		return nil
	}

	message, err := f.svc.ChangePassword(context.Background(), "alice@example.com", "old-password", "new-password")
	if err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}

	if message != service.PasswordChangedMessage {
		t.Errorf("expected %q, got %q", service.PasswordChangedMessage, message)
	}
	if updatedHash != "hashed:new-password" {
		t.Errorf("expected new password hash to be stored, got %q", updatedHash)
	}
	if cleared {
		t.Error("expected refresh token to survive password change by default")
	}
}

func TestSessionService_ChangePassword_WrongPreviousPassword(t *testing.T) {
	f := setupSessionService(t, false)

	f.credentials.findByEmailFunc = func(ctx context.Context, email string) (accountdomain.Credential, error) {
		return storedCredential("alice@example.com", "old-password"), nil
	}
	f.credentials.updatePasswordHashFunc = func(ctx context.Context, email string, hash string) error {
		t.Error("password hash must not be updated when the previous password is wrong")
		return nil
	}

	_, err := f.svc.ChangePassword(context.Background(), "alice@example.com", "not-the-old-one", "new-password")
	if !errors.Is(err, service.ErrPreviousPasswordIncorrect) {
		t.Errorf("expected ErrPreviousPasswordIncorrect, got %v", err)
	}
}

func TestSessionService_ChangePassword_NewPasswordValidated(t *testing.T) {
	f := setupSessionService(t, false)

	_, err := f.svc.ChangePassword(context.Background(), "alice@example.com", "old-password", "abc")
	if !errors.Is(err, service.ErrValidationPasswordLength) {
		t.Errorf("expected ErrValidationPasswordLength, got %v", err)
	}
}

func TestSessionService_ChangePassword_RevokePolicyClearsToken(t *testing.T) {
	f := setupSessionService(t, true)

	cleared := false
	f.credentials.findByEmailFunc = func(ctx context.Context, email string) (accountdomain.Credential, error) {
		return storedCredential("alice@example.com", "old-password"), nil
	}
	f.credentials.clearRefreshTokenFunc = func(ctx context.Context, email string) error {
		cleared = true
		return nil
	}

	if _, err := f.svc.ChangePassword(context.Background(), "alice@example.com", "old-password", "new-password"); err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}

	if !cleared {
		t.Error("expected revoke policy to clear the stored refresh token")
	}
}

func TestSessionService_SignOut_Idempotent(t *testing.T) {
	f := setupSessionService(t, false)

	calls := 0
	f.credentials.clearRefreshTokenFunc = func(ctx context.Context, email string) error {
		calls++
		return nil
	}

	if err := f.svc.SignOut(context.Background(), "alice@example.com"); err != nil {
		t.Fatalf("SignOut failed: %v", err)
	}
	if err := f.svc.SignOut(context.Background(), "alice@example.com"); err != nil {
		t.Fatalf("repeated SignOut failed: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected both sign-outs to reach the store, got %d calls", calls)
	}
}
