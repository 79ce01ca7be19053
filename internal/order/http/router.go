package http

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	commonhttp "github.com/finalstore/backend/internal/common/http"
	"github.com/finalstore/backend/internal/common/jwtauth"
	"github.com/finalstore/backend/internal/common/logger"
	"github.com/finalstore/backend/internal/order/domain"
	"github.com/finalstore/backend/internal/order/service"
)

type Router struct {
	service        *service.OrderService
	errorHandler   *commonhttp.ErrorHandler
	validate       *validator.Validate
	log            *logger.Logger
	requestTimeout time.Duration
}

func NewRouter(svc *service.OrderService, log *logger.Logger, requestTimeout time.Duration) *Router {
	return &Router{
		service:        svc,
		errorHandler:   commonhttp.NewErrorHandler(log),
		validate:       validator.New(validator.WithRequiredStructEnabled()),
		log:            log,
		requestTimeout: requestTimeout,
	}
}

type recordOrderRequest struct {
	ItemIDs    []int64 `json:"itemIds" validate:"required,min=1,dive,gt=0"`
	Quantities []int32 `json:"quantities" validate:"required,min=1,dive,gt=0"`
}

type orderResponse struct {
	ID          int64     `json:"id"`
	ItemIDs     []int64   `json:"itemIds"`
	Quantities  []int32   `json:"quantities"`
	OrderNo     string    `json:"orderNo"`
	PurchasedAt time.Time `json:"purchasedAt"`
}

func toOrderResponse(o domain.Order) orderResponse {
	return orderResponse{
		ID:          o.ID,
		ItemIDs:     o.ItemIDs,
		Quantities:  o.Quantities,
		OrderNo:     o.OrderNo,
		PurchasedAt: o.PurchasedAt,
	}
}

func (rt *Router) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	timeout := commonhttp.WithTimeout(rt.requestTimeout)

	mux.Handle("/api/orders", authMiddleware(timeout(rt.handleOrders)))
}

func (rt *Router) handleOrders(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		rt.handleRecordOrder(w, r)
	case http.MethodGet:
		rt.handleListOrders(w, r)
	default:
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, "")
	}
}

func (rt *Router) handleRecordOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtauth.FromContext(r.Context())
	if !ok {
		commonhttp.WriteErrorEnvelope(w, http.StatusForbidden, commonhttp.CodeInvalidToken, "bad token", nil, "")
		return
	}

	var req recordOrderRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid request body", nil, "")
		return
	}
	if err := rt.validate.Struct(&req); err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeBadRequest, "invalid request", nil, "")
		return
	}

	order, err := rt.service.RecordOrder(r.Context(), claims.Email, req.ItemIDs, req.Quantities)
	if err != nil {
		rt.errorHandler.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, toOrderResponse(order))
}

func (rt *Router) handleListOrders(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtauth.FromContext(r.Context())
	if !ok {
		commonhttp.WriteErrorEnvelope(w, http.StatusForbidden, commonhttp.CodeInvalidToken, "bad token", nil, "")
		return
	}

	orders, err := rt.service.ListOrders(r.Context(), claims.Email)
	if err != nil {
		rt.errorHandler.HandleError(w, r, err)
		return
	}

	responses := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		responses = append(responses, toOrderResponse(o))
	}

	commonhttp.WriteJSON(w, http.StatusOK, responses)
}
