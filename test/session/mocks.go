package session

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	accountdomain "github.com/finalstore/backend/internal/account/domain"
	accountrepo "github.com/finalstore/backend/internal/account/repository"
)

type mockCredentialRepo struct {
	findByEmailFunc        func(ctx context.Context, email string) (accountdomain.Credential, error)
	findByRefreshTokenFunc func(ctx context.Context, token string) (accountdomain.Credential, error)
	updateRefreshTokenFunc func(ctx context.Context, email string, token string) error
	clearRefreshTokenFunc  func(ctx context.Context, email string) error
	updatePasswordHashFunc func(ctx context.Context, email string, hash string) error
}

func (m *mockCredentialRepo) FindByEmail(ctx context.Context, email string) (accountdomain.Credential, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return accountdomain.Credential{}, accountrepo.ErrCredentialNotFound
}

func (m *mockCredentialRepo) FindByRefreshToken(ctx context.Context, token string) (accountdomain.Credential, error) {
	if m.findByRefreshTokenFunc != nil {
		return m.findByRefreshTokenFunc(ctx, token)
	}
	return accountdomain.Credential{}, accountrepo.ErrCredentialNotFound
}

func (m *mockCredentialRepo) UpdateRefreshToken(ctx context.Context, email string, token string) error {
	if m.updateRefreshTokenFunc != nil {
		return m.updateRefreshTokenFunc(ctx, email, token)
	}
	return nil
}

func (m *mockCredentialRepo) ClearRefreshToken(ctx context.Context, email string) error {
	if m.clearRefreshTokenFunc != nil {
		return m.clearRefreshTokenFunc(ctx, email)
	}
	return nil
}

func (m *mockCredentialRepo) UpdatePasswordHash(ctx context.Context, email string, hash string) error {
	if m.updatePasswordHashFunc != nil {
		return m.updatePasswordHashFunc(ctx, email, hash)
	}
	return nil
}

type mockProfileRepo struct {
	findByEmailFunc func(ctx context.Context, email string) (accountdomain.Profile, error)
}

func (m *mockProfileRepo) FindByEmail(ctx context.Context, email string) (accountdomain.Profile, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return accountdomain.Profile{}, accountrepo.ErrProfileNotFound
}

type mockAccountTx struct {
	nextAccountIDFunc         func(ctx context.Context) (accountdomain.AccountID, error)
	insertCredentialFunc      func(ctx context.Context, cred accountdomain.Credential) error
	insertProfileFunc         func(ctx context.Context, profile accountdomain.Profile) error
	updateCredentialEmailFunc func(ctx context.Context, prevEmail, newEmail string) error
	updateProfileFunc         func(ctx context.Context, prevEmail string, profile accountdomain.Profile) (accountdomain.Profile, error)

	nextID int64
}

func (m *mockAccountTx) NextAccountID(ctx context.Context) (accountdomain.AccountID, error) {
	if m.nextAccountIDFunc != nil {
		return m.nextAccountIDFunc(ctx)
	}
	return accountdomain.AccountID(atomic.AddInt64(&m.nextID, 1)), nil
}

func (m *mockAccountTx) InsertCredential(ctx context.Context, cred accountdomain.Credential) error {
	if m.insertCredentialFunc != nil {
		return m.insertCredentialFunc(ctx, cred)
	}
	return nil
}

func (m *mockAccountTx) InsertProfile(ctx context.Context, profile accountdomain.Profile) error {
	if m.insertProfileFunc != nil {
		return m.insertProfileFunc(ctx, profile)
	}
	return nil
}

func (m *mockAccountTx) UpdateCredentialEmail(ctx context.Context, prevEmail, newEmail string) error {
	if m.updateCredentialEmailFunc != nil {
		return m.updateCredentialEmailFunc(ctx, prevEmail, newEmail)
	}
	return nil
}

func (m *mockAccountTx) UpdateProfile(ctx context.Context, prevEmail string, profile accountdomain.Profile) (accountdomain.Profile, error) {
	if m.updateProfileFunc != nil {
		return m.updateProfileFunc(ctx, prevEmail, profile)
	}
	return profile, nil
}

type mockTxManager struct {
	tx         *mockAccountTx
	withTxFunc func(ctx context.Context, fn func(ctx context.Context, tx accountrepo.AccountTx) error) error
}

func (m *mockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context, tx accountrepo.AccountTx) error) error {
	if m.withTxFunc != nil {
		return m.withTxFunc(ctx, fn)
	}
	return fn(ctx, m.tx)
}

type mockHasher struct {
	hashFunc    func(password string) (string, error)
	compareFunc func(hash string, password string) error
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed:" + password, nil
}

func (m *mockHasher) Compare(hash string, password string) error {
	if m.compareFunc != nil {
		return m.compareFunc(hash, password)
	}
	if hash != "hashed:"+password {
		return fmt.Errorf("hash mismatch")
	}
	return nil
}

type mockIDGenerator struct {
	newIDFunc func() (string, error)

	mu      sync.Mutex
	counter int
}

func (m *mockIDGenerator) NewID() (string, error) {
	if m.newIDFunc != nil {
		return m.newIDFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("id-%d", m.counter), nil
}
