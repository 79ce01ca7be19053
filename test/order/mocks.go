package order

import (
	"context"
	"fmt"
	"sync"

	accountdomain "github.com/finalstore/backend/internal/account/domain"
	accountrepo "github.com/finalstore/backend/internal/account/repository"
	orderdomain "github.com/finalstore/backend/internal/order/domain"
)

type mockOrderRepo struct {
	insertFunc        func(ctx context.Context, order orderdomain.Order) (orderdomain.Order, error)
	listByAccountFunc func(ctx context.Context, accountID accountdomain.AccountID) ([]orderdomain.Order, error)

	mu     sync.Mutex
	nextID int64
	orders []orderdomain.Order
}

func (m *mockOrderRepo) Insert(ctx context.Context, order orderdomain.Order) (orderdomain.Order, error) {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, order)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	order.ID = m.nextID
	m.orders = append(m.orders, order)
	return order, nil
}

func (m *mockOrderRepo) ListByAccount(ctx context.Context, accountID accountdomain.AccountID) ([]orderdomain.Order, error) {
	if m.listByAccountFunc != nil {
		return m.listByAccountFunc(ctx, accountID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	result := []orderdomain.Order{}
	for _, o := range m.orders {
		if o.AccountID == accountID {
			result = append(result, o)
		}
	}
	return result, nil
}

type mockCredentialRepo struct {
	findByEmailFunc func(ctx context.Context, email string) (accountdomain.Credential, error)
}

func (m *mockCredentialRepo) FindByEmail(ctx context.Context, email string) (accountdomain.Credential, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return accountdomain.Credential{}, accountrepo.ErrCredentialNotFound
}

func (m *mockCredentialRepo) FindByRefreshToken(ctx context.Context, token string) (accountdomain.Credential, error) {
	return accountdomain.Credential{}, accountrepo.ErrCredentialNotFound
}

func (m *mockCredentialRepo) UpdateRefreshToken(ctx context.Context, email string, token string) error {
	return nil
}

func (m *mockCredentialRepo) ClearRefreshToken(ctx context.Context, email string) error {
	return nil
}

func (m *mockCredentialRepo) UpdatePasswordHash(ctx context.Context, email string, hash string) error {
	return nil
}

type mockIDGenerator struct {
	mu      sync.Mutex
	counter int
}

func (m *mockIDGenerator) NewID() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("order-no-%d", m.counter), nil
}
