package http

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	commonhttp "github.com/finalstore/backend/internal/common/http"
	"github.com/finalstore/backend/internal/common/logger"
	"github.com/finalstore/backend/internal/payment/service"
)

type Router struct {
	service        *service.PaymentService
	errorHandler   *commonhttp.ErrorHandler
	validate       *validator.Validate
	log            *logger.Logger
	requestTimeout time.Duration
}

func NewRouter(svc *service.PaymentService, log *logger.Logger, requestTimeout time.Duration) *Router {
	return &Router{
		service:        svc,
		errorHandler:   commonhttp.NewErrorHandler(log),
		validate:       validator.New(validator.WithRequiredStructEnabled()),
		log:            log,
		requestTimeout: requestTimeout,
	}
}

type createIntentRequest struct {
	Amount   int64  `json:"amount" validate:"required,gt=0"`
	Currency string `json:"currency" validate:"omitempty,len=3"`
}

type createIntentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"clientSecret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

func (rt *Router) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	post := commonhttp.RequireMethod(http.MethodPost)
	timeout := commonhttp.WithTimeout(rt.requestTimeout)

	mux.Handle("/api/payment/intent", authMiddleware(post(timeout(rt.handleCreateIntent))))
}

func (rt *Router) handleCreateIntent(w http.ResponseWriter, r *http.Request) {
	var req createIntentRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid request body", nil, "")
		return
	}
	if err := rt.validate.Struct(&req); err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeBadRequest, "invalid request", nil, "")
		return
	}

	intent, err := rt.service.CreatePaymentIntent(r.Context(), req.Amount, req.Currency)
	if err != nil {
		rt.errorHandler.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, createIntentResponse{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       intent.Amount,
		Currency:     intent.Currency,
		Status:       intent.Status,
	})
}
