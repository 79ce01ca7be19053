package order

import (
	"context"
	"errors"
	"testing"
	"time"

	accountdomain "github.com/finalstore/backend/internal/account/domain"
	"github.com/finalstore/backend/internal/common/clock"
	commonerrors "github.com/finalstore/backend/internal/common/errors"
	"github.com/finalstore/backend/internal/common/logger"
	"github.com/finalstore/backend/internal/order/service"
)

func setupOrderService(t *testing.T) (*service.OrderService, *mockOrderRepo, *mockCredentialRepo, *clock.MockClock) {
	_ = t
	orders := &mockOrderRepo{}
	credentials := &mockCredentialRepo{}
	mockClock := clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	log, _ := logger.New("", "test", "info")

	svc := service.NewOrderService(orders, credentials, &mockIDGenerator{}, mockClock, log)
	return svc, orders, credentials, mockClock
}

func TestOrderService_RecordOrder_Success(t *testing.T) {
	svc, _, credentials, mockClock := setupOrderService(t)

	credentials.findByEmailFunc = func(ctx context.Context, email string) (accountdomain.Credential, error) {
		return accountdomain.Credential{ID: 7, Email: email}, nil
	}

	order, err := svc.RecordOrder(context.Background(), "alice@example.com", []int64{101, 102}, []int32{1, 3})
	if err != nil {
		t.Fatalf("RecordOrder failed: %v", err)
	}

	if order.AccountID != 7 {
		t.Errorf("expected order bound to account 7, got %d", order.AccountID)
	}
	if order.OrderNo == "" {
		t.Error("expected generated order number")
	}
	if !order.PurchasedAt.Equal(mockClock.Now()) {
		t.Errorf("expected purchase time %v, got %v", mockClock.Now(), order.PurchasedAt)
	}

	listed, err := svc.ListOrders(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("ListOrders failed: %v", err)
	}
	if len(listed) != 1 || listed[0].OrderNo != order.OrderNo {
		t.Errorf("expected the recorded order to be listed, got %+v", listed)
	}
}

func TestOrderService_RecordOrder_Validation(t *testing.T) {
	svc, _, credentials, _ := setupOrderService(t)

	credentials.findByEmailFunc = func(ctx context.Context, email string) (accountdomain.Credential, error) {
		return accountdomain.Credential{ID: 7, Email: email}, nil
	}

	if _, err := svc.RecordOrder(context.Background(), "alice@example.com", nil, nil); !errors.Is(err, service.ErrEmptyOrder) {
		t.Errorf("expected ErrEmptyOrder, got %v", err)
	}
	if _, err := svc.RecordOrder(context.Background(), "alice@example.com", []int64{1, 2}, []int32{1}); !errors.Is(err, service.ErrMismatchedQuantities) {
		t.Errorf("expected ErrMismatchedQuantities, got %v", err)
	}
	if _, err := svc.RecordOrder(context.Background(), "alice@example.com", []int64{1}, []int32{0}); !errors.Is(err, service.ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestOrderService_RecordOrder_UnknownAccount(t *testing.T) {
	svc, _, _, _ := setupOrderService(t)

	_, err := svc.RecordOrder(context.Background(), "nobody@example.com", []int64{1}, []int32{1})
	if !errors.Is(err, commonerrors.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestOrderService_OrderNumbersAreDistinct(t *testing.T) {
	svc, _, credentials, _ := setupOrderService(t)

	credentials.findByEmailFunc = func(ctx context.Context, email string) (accountdomain.Credential, error) {
		return accountdomain.Credential{ID: 7, Email: email}, nil
	}

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		order, err := svc.RecordOrder(context.Background(), "alice@example.com", []int64{1}, []int32{1})
		if err != nil {
			t.Fatalf("RecordOrder failed: %v", err)
		}
		if seen[order.OrderNo] {
			t.Fatalf("duplicate order number: %s", order.OrderNo)
		}
		seen[order.OrderNo] = true
	}
}
