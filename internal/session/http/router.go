package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	accountdomain "github.com/finalstore/backend/internal/account/domain"
	commonhttp "github.com/finalstore/backend/internal/common/http"
	"github.com/finalstore/backend/internal/common/jwtauth"
	"github.com/finalstore/backend/internal/common/logger"
	"github.com/finalstore/backend/internal/session/service"
)

type Router struct {
	service        *service.SessionService
	errorHandler   *commonhttp.ErrorHandler
	validate       *validator.Validate
	log            *logger.Logger
	requestTimeout time.Duration
}

func NewRouter(svc *service.SessionService, log *logger.Logger, requestTimeout time.Duration) *Router {
	return &Router{
		service:        svc,
		errorHandler:   commonhttp.NewErrorHandler(log),
		validate:       validator.New(validator.WithRequiredStructEnabled()),
		log:            log,
		requestTimeout: requestTimeout,
	}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Name     string `json:"name" validate:"required,max=128"`
	Phone    string `json:"phone" validate:"max=32"`
	Address  string `json:"address" validate:"max=256"`
	City     string `json:"city" validate:"max=128"`
	Country  string `json:"country" validate:"max=128"`
}

type signInRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=72"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type changePasswordRequest struct {
	Password    string `json:"password" validate:"required,max=72"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=72"`
}

type editProfileRequest struct {
	Email   string `json:"email" validate:"required,email,max=254"`
	Name    string `json:"name" validate:"required,max=128"`
	Phone   string `json:"phone" validate:"max=32"`
	Address string `json:"address" validate:"max=256"`
	City    string `json:"city" validate:"max=128"`
	Country string `json:"country" validate:"max=128"`
}

type profileResponse struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type registerResponse struct {
	Profile      profileResponse `json:"profile"`
	RefreshToken string          `json:"refreshToken"`
}

type signInResponse struct {
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken"`
	Profile      profileResponse `json:"profile"`
}

type refreshResponse struct {
	AccessToken string `json:"accessToken"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func toProfileResponse(p accountdomain.Profile) profileResponse {
	return profileResponse{
		ID:      int64(p.ID),
		Email:   p.Email,
		Name:    p.Name,
		Phone:   p.Phone,
		Address: p.Address,
		City:    p.City,
		Country: p.Country,
	}
}

func (rt *Router) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	post := commonhttp.RequireMethod(http.MethodPost)
	get := commonhttp.RequireMethod(http.MethodGet)
	timeout := commonhttp.WithTimeout(rt.requestTimeout)

	mux.HandleFunc("/api/auth/register", post(timeout(rt.handleRegister)))
	mux.HandleFunc("/api/auth/signin", post(timeout(rt.handleSignIn)))
	mux.HandleFunc("/api/auth/refresh", post(timeout(rt.handleRefresh)))

	mux.Handle("/api/auth/signout", authMiddleware(post(timeout(rt.handleSignOut))))
	mux.Handle("/api/auth/password", authMiddleware(post(timeout(rt.handleChangePassword))))
	mux.Handle("/api/profile", authMiddleware(get(timeout(rt.handleGetProfile))))
	mux.Handle("/api/profile/edit", authMiddleware(post(timeout(rt.handleEditProfile))))
}

// decodeValid decodes the body into dst and runs struct validation. It
// writes the error response itself and reports whether the handler should
// continue.
func (rt *Router) decodeValid(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := commonhttp.DecodeJSON(r, dst); err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid request body", nil, "")
		return false
	}

	if err := rt.validate.Struct(dst); err != nil {
		details := map[string]any{}
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				details[fe.Field()] = fe.Tag()
			}
		}
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeBadRequest, "invalid request", details, "")
		return false
	}

	return true
}

func (rt *Router) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !rt.decodeValid(w, r, &req) {
		return
	}

	result, err := rt.service.Register(r.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
		Address:  req.Address,
		City:     req.City,
		Country:  req.Country,
	})
	if err != nil {
		rt.errorHandler.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, registerResponse{
		Profile:      toProfileResponse(result.Profile),
		RefreshToken: result.RefreshToken,
	})
}

func (rt *Router) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if !rt.decodeValid(w, r, &req) {
		return
	}

	result, err := rt.service.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		rt.errorHandler.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, signInResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		Profile:      toProfileResponse(result.Profile),
	})
}

func (rt *Router) handleSignOut(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtauth.FromContext(r.Context())
	if !ok {
		commonhttp.WriteErrorEnvelope(w, http.StatusForbidden, commonhttp.CodeInvalidToken, "bad token", nil, "")
		return
	}

	if err := rt.service.SignOut(r.Context(), claims.Email); err != nil {
		rt.errorHandler.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, messageResponse{Message: "signed out"})
}

func (rt *Router) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid request body", nil, "")
		return
	}
	if req.RefreshToken == "" {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeMissingRefreshToken, "refresh token is required", nil, "")
		return
	}

	accessToken, err := rt.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		rt.errorHandler.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, refreshResponse{AccessToken: accessToken})
}

func (rt *Router) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtauth.FromContext(r.Context())
	if !ok {
		commonhttp.WriteErrorEnvelope(w, http.StatusForbidden, commonhttp.CodeInvalidToken, "bad token", nil, "")
		return
	}

	var req changePasswordRequest
	if !rt.decodeValid(w, r, &req) {
		return
	}

	message, err := rt.service.ChangePassword(r.Context(), claims.Email, req.Password, req.NewPassword)
	if err != nil {
		rt.errorHandler.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, messageResponse{Message: message})
}

func (rt *Router) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtauth.FromContext(r.Context())
	if !ok {
		commonhttp.WriteErrorEnvelope(w, http.StatusForbidden, commonhttp.CodeInvalidToken, "bad token", nil, "")
		return
	}

	profile, err := rt.service.GetProfile(r.Context(), claims.Email)
	if err != nil {
		rt.errorHandler.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toProfileResponse(profile))
}

func (rt *Router) handleEditProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtauth.FromContext(r.Context())
	if !ok {
		commonhttp.WriteErrorEnvelope(w, http.StatusForbidden, commonhttp.CodeInvalidToken, "bad token", nil, "")
		return
	}

	var req editProfileRequest
	if !rt.decodeValid(w, r, &req) {
		return
	}

	profile, err := rt.service.EditProfile(r.Context(), claims.Email, req.Email, service.ProfileInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		City:    req.City,
		Country: req.Country,
	})
	if err != nil {
		rt.errorHandler.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toProfileResponse(profile))
}
