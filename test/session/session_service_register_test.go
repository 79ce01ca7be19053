package session

import (
	"context"
	"errors"
	"testing"

	accountdomain "github.com/finalstore/backend/internal/account/domain"
	accountrepo "github.com/finalstore/backend/internal/account/repository"
	"github.com/finalstore/backend/internal/session/service"
)

func TestSessionService_Register_Success(t *testing.T) {
	f := setupSessionService(t, false)

	var insertedCred accountdomain.Credential
	var insertedProfile accountdomain.Profile
	f.tx.insertCredentialFunc = func(ctx context.Context, cred accountdomain.Credential) error {
		insertedCred = cred
		return nil
	}
	f.tx.insertProfileFunc = func(ctx context.Context, profile accountdomain.Profile) error {
		insertedProfile = profile
		return nil
	}

	result, err := f.svc.Register(context.Background(), service.RegisterInput{
		Email:    "alice@example.com",
		Password: "password123",
		Name:     "alice smith",
		City:     "new york",
		Country:  "united states",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if insertedCred.ID != insertedProfile.ID {
		t.Errorf("credential and profile rows got different ids: %d vs %d", insertedCred.ID, insertedProfile.ID)
	}
	if insertedCred.Email != "alice@example.com" {
		t.Errorf("expected credential email alice@example.com, got %s", insertedCred.Email)
	}
	if insertedCred.PasswordHash != "hashed:password123" {
		t.Errorf("expected hashed password to be stored, got %s", insertedCred.PasswordHash)
	}
	if insertedCred.RefreshToken == "" {
		t.Error("expected refresh token to be stored at registration")
	}
	if insertedCred.RefreshToken != result.RefreshToken {
		t.Error("expected returned refresh token to match the stored one")
	}

	if result.Profile.Name != "Alice Smith" {
		t.Errorf("expected capitalized name, got %q", result.Profile.Name)
	}
	if result.Profile.City != "New York" {
		t.Errorf("expected capitalized city, got %q", result.Profile.City)
	}
	if result.Profile.Country != "United States" {
		t.Errorf("expected capitalized country, got %q", result.Profile.Country)
	}

	claims, err := f.verifier.VerifyRefresh(result.RefreshToken)
	if err != nil {
		t.Fatalf("expected stored refresh token to verify: %v", err)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("expected refresh token bound to alice@example.com, got %s", claims.Email)
	}
}

func TestSessionService_Register_ValidationFailures(t *testing.T) {
	f := setupSessionService(t, false)

	cases := []struct {
		name    string
		input   service.RegisterInput
		wantErr error
	}{
		{
			name:    "missing email",
			input:   service.RegisterInput{Password: "password123", Name: "Alice"},
			wantErr: service.ErrValidationEmailRequired,
		},
		{
			name:    "missing password",
			input:   service.RegisterInput{Email: "alice@example.com", Name: "Alice"},
			wantErr: service.ErrValidationPasswordRequired,
		},
		{
			name:    "short password",
			input:   service.RegisterInput{Email: "alice@example.com", Password: "abc", Name: "Alice"},
			wantErr: service.ErrValidationPasswordLength,
		},
		{
			name:    "missing name",
			input:   service.RegisterInput{Email: "alice@example.com", Password: "password123"},
			wantErr: service.ErrValidationNameRequired,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Register(context.Background(), tc.input)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestSessionService_Register_EmailTaken(t *testing.T) {
	f := setupSessionService(t, false)

	f.tx.insertCredentialFunc = func(ctx context.Context, cred accountdomain.Credential) error {
		return accountrepo.ErrEmailAlreadyExists
	}

	_, err := f.svc.Register(context.Background(), service.RegisterInput{
		Email:    "alice@example.com",
		Password: "password123",
		Name:     "Alice",
	})
	if !errors.Is(err, service.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestSessionService_Register_ConcurrentRegistrationsGetDistinctIDs(t *testing.T) {
	f := setupSessionService(t, false)

	ids := make(chan accountdomain.AccountID, 20)
	f.tx.insertCredentialFunc = func(ctx context.Context, cred accountdomain.Credential) error {
		ids <- cred.ID
		return nil
	}

	done := make(chan struct{})
	for i := 0; i < 20; i++ {
		go func(n int) {
			defer func() { done <- struct{}{} }()
			_, err := f.svc.Register(context.Background(), service.RegisterInput{
				Email:    "user@example.com",
				Password: "password123",
				Name:     "User",
			})
			if err != nil {
				t.Errorf("Register failed: %v", err)
			}
		}(i)
	}
	for i := 0; i < 20; i++ {
		<-done
	}
	close(ids)

	seen := map[accountdomain.AccountID]bool{}
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate account id allocated: %d", id)
		}
		seen[id] = true
	}
	if len(seen) != 20 {
		t.Errorf("expected 20 distinct ids, got %d", len(seen))
	}
}
