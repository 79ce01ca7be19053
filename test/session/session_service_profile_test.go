package session

import (
	"context"
	"errors"
	"testing"

	accountdomain "github.com/finalstore/backend/internal/account/domain"
	accountrepo "github.com/finalstore/backend/internal/account/repository"
	commonerrors "github.com/finalstore/backend/internal/common/errors"
	"github.com/finalstore/backend/internal/session/service"
)

func TestSessionService_EditProfile_Success(t *testing.T) {
	f := setupSessionService(t, false)

	var movedFrom, movedTo string
	f.tx.updateCredentialEmailFunc = func(ctx context.Context, prevEmail, newEmail string) error {
		movedFrom, movedTo = prevEmail, newEmail
		return nil
	}
	f.tx.updateProfileFunc = func(ctx context.Context, prevEmail string, profile accountdomain.Profile) (accountdomain.Profile, error) {
		profile.ID = 7
		return profile, nil
	}

	profile, err := f.svc.EditProfile(context.Background(), "alice@example.com", "alice.new@example.com", service.ProfileInput{
		Name: "alice smith",
		City: "san francisco",
	})
	if err != nil {
		t.Fatalf("EditProfile failed: %v", err)
	}

	if movedFrom != "alice@example.com" || movedTo != "alice.new@example.com" {
		t.Errorf("expected credential email moved alice@example.com -> alice.new@example.com, got %s -> %s", movedFrom, movedTo)
	}
	if profile.Email != "alice.new@example.com" {
		t.Errorf("expected updated email, got %s", profile.Email)
	}
	if profile.Name != "Alice Smith" {
		t.Errorf("expected capitalized name, got %q", profile.Name)
	}
	if profile.City != "San Francisco" {
		t.Errorf("expected capitalized city, got %q", profile.City)
	}
}

func TestSessionService_EditProfile_NewEmailTaken(t *testing.T) {
	f := setupSessionService(t, false)

	f.tx.updateCredentialEmailFunc = func(ctx context.Context, prevEmail, newEmail string) error {
		return accountrepo.ErrEmailAlreadyExists
	}

	_, err := f.svc.EditProfile(context.Background(), "alice@example.com", "taken@example.com", service.ProfileInput{
		Name: "Alice",
	})
	if !errors.Is(err, service.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestSessionService_EditProfile_UnknownAccount(t *testing.T) {
	f := setupSessionService(t, false)

	f.tx.updateCredentialEmailFunc = func(ctx context.Context, prevEmail, newEmail string) error {
		return accountrepo.ErrCredentialNotFound
	}

	_, err := f.svc.EditProfile(context.Background(), "nobody@example.com", "new@example.com", service.ProfileInput{
		Name: "Nobody",
	})
	if !errors.Is(err, commonerrors.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestSessionService_GetProfile(t *testing.T) {
	f := setupSessionService(t, false)

	f.profiles.findByEmailFunc = func(ctx context.Context, email string) (accountdomain.Profile, error) {
		if email != "alice@example.com" {
			return accountdomain.Profile{}, accountrepo.ErrProfileNotFound
		}
		return accountdomain.Profile{ID: 7, Email: email, Name: "Alice"}, nil
	}

	profile, err := f.svc.GetProfile(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if profile.Name != "Alice" {
		t.Errorf("expected Alice, got %q", profile.Name)
	}

	if _, err := f.svc.GetProfile(context.Background(), "nobody@example.com"); !errors.Is(err, commonerrors.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}
