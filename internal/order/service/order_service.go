package service

import (
	"context"
	"errors"
	"net/http"

	accountrepo "github.com/finalstore/backend/internal/account/repository"
	"github.com/finalstore/backend/internal/common/clock"
	commoncrypto "github.com/finalstore/backend/internal/common/crypto"
	commonerrors "github.com/finalstore/backend/internal/common/errors"
	"github.com/finalstore/backend/internal/common/logger"
	"github.com/finalstore/backend/internal/observability/metrics"
	"github.com/finalstore/backend/internal/order/domain"
	orderrepo "github.com/finalstore/backend/internal/order/repository"
)

var (
	ErrEmptyOrder = commonerrors.NewDomainError(
		"EMPTY_ORDER",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"order must contain at least one item",
	)
	ErrMismatchedQuantities = commonerrors.NewDomainError(
		"MISMATCHED_QUANTITIES",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"items and quantities must have the same length",
	)
	ErrInvalidQuantity = commonerrors.NewDomainError(
		"INVALID_QUANTITY",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"quantities must be positive",
	)
)

type OrderService struct {
	orders      orderrepo.OrderRepository
	credentials accountrepo.CredentialRepository
	idGenerator commoncrypto.IDGenerator
	clock       clock.Clock
	log         *logger.Logger
}

func NewOrderService(
	orders orderrepo.OrderRepository,
	credentials accountrepo.CredentialRepository,
	idGenerator commoncrypto.IDGenerator,
	clk clock.Clock,
	log *logger.Logger,
) *OrderService {
	return &OrderService{
		orders:      orders,
		credentials: credentials,
		idGenerator: idGenerator,
		clock:       clk,
		log:         log,
	}
}

// RecordOrder persists a purchase for the account behind email. The order
// number is generated here, not supplied by the caller.
func (s *OrderService) RecordOrder(ctx context.Context, email string, itemIDs []int64, quantities []int32) (domain.Order, error) {
	if len(itemIDs) == 0 {
		return domain.Order{}, ErrEmptyOrder
	}
	if len(itemIDs) != len(quantities) {
		return domain.Order{}, ErrMismatchedQuantities
	}
	for _, q := range quantities {
		if q <= 0 {
			return domain.Order{}, ErrInvalidQuantity
		}
	}

	cred, err := s.credentials.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, accountrepo.ErrCredentialNotFound) {
			return domain.Order{}, commonerrors.ErrAccountNotFound
		}
		return domain.Order{}, commonerrors.ErrStoreFailure.WithCause(err)
	}

	orderNo, err := s.idGenerator.NewID()
	if err != nil {
		return domain.Order{}, commonerrors.ErrInternalError.WithCause(err)
	}

	order := domain.Order{
		AccountID:   cred.ID,
		ItemIDs:     itemIDs,
		Quantities:  quantities,
		OrderNo:     orderNo,
		PurchasedAt: s.clock.Now(),
	}

	saved, err := s.orders.Insert(ctx, order)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "record_order_failed",
		}).Errorf("record order failed: %v", err)
		return domain.Order{}, commonerrors.ErrStoreFailure.WithCause(err)
	}

	metrics.OrdersRecorded.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"email":      email,
		"account_id": int64(saved.AccountID),
		"order_no":   saved.OrderNo,
		"action":     "record_order_success",
	}).Info("order recorded")

	return saved, nil
}

func (s *OrderService) ListOrders(ctx context.Context, email string) ([]domain.Order, error) {
	cred, err := s.credentials.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, accountrepo.ErrCredentialNotFound) {
			return nil, commonerrors.ErrAccountNotFound
		}
		return nil, commonerrors.ErrStoreFailure.WithCause(err)
	}

	orders, err := s.orders.ListByAccount(ctx, cred.ID)
	if err != nil {
		return nil, commonerrors.ErrStoreFailure.WithCause(err)
	}
	return orders, nil
}
