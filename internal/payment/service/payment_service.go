package service

import (
	"context"
	"errors"
	"net/http"

	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	commonerrors "github.com/finalstore/backend/internal/common/errors"
	"github.com/finalstore/backend/internal/common/logger"
	"github.com/finalstore/backend/internal/observability/metrics"
)

var (
	ErrPaymentFailed = commonerrors.NewDomainError(
		"PAYMENT_FAILED",
		commonerrors.CategoryExternal,
		http.StatusPaymentRequired,
		"payment could not be processed",
	)
	ErrInvalidAmount = commonerrors.NewDomainError(
		"INVALID_AMOUNT",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"amount must be positive",
	)
	ErrPaymentsDisabled = commonerrors.NewDomainError(
		"PAYMENTS_DISABLED",
		commonerrors.CategoryInternal,
		http.StatusServiceUnavailable,
		"payments are not configured",
	)
)

type PaymentIntent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
	Status       string
}

// PaymentService fronts the card processor. The API client is instance
// scoped; no package-level key is ever set.
type PaymentService struct {
	api *client.API
	log *logger.Logger
}

// NewPaymentService returns a service whose API client is nil when secretKey
// is empty; CreatePaymentIntent then reports payments as disabled instead of
// calling out with no credentials.
func NewPaymentService(secretKey string, log *logger.Logger) *PaymentService {
	var api *client.API
	if secretKey != "" {
		api = &client.API{}
		api.Init(secretKey, nil)
	}
	return &PaymentService{api: api, log: log}
}

// CreatePaymentIntent opens a card payment for the given minor-unit amount.
// Processor error details are logged but never surface to the caller.
func (s *PaymentService) CreatePaymentIntent(ctx context.Context, amount int64, currency string) (PaymentIntent, error) {
	if s.api == nil {
		return PaymentIntent{}, ErrPaymentsDisabled
	}
	if amount <= 0 {
		return PaymentIntent{}, ErrInvalidAmount
	}
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}

	params := &stripe.PaymentIntentParams{
		Params:             stripe.Params{Context: ctx},
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}

	intent, err := s.api.PaymentIntents.New(params)
	if err != nil {
		metrics.PaymentIntentsFailed.Inc()

		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			s.log.WithFields(ctx, logger.Fields{
				"stripe_code": string(stripeErr.Code),
				"action":      "payment_intent_failed",
			}).Errorf("payment intent failed: %s", stripeErr.Msg)
		} else {
			s.log.WithFields(ctx, logger.Fields{
				"action": "payment_intent_failed",
			}).Errorf("payment intent failed: %v", err)
		}
		return PaymentIntent{}, ErrPaymentFailed.WithCause(err)
	}

	metrics.PaymentIntentsCreated.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"intent_id": intent.ID,
		"amount":    amount,
		"currency":  currency,
		"action":    "payment_intent_created",
	}).Info("payment intent created")

	return PaymentIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       intent.Amount,
		Currency:     string(intent.Currency),
		Status:       string(intent.Status),
	}, nil
}
