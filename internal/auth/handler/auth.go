package handler

import (
	"net/http"

	"github.com/mknoufi/stock-verify-backend/internal/auth/service"
	"github.com/mknoufi/stock-verify-backend/pkg/errors"
	"github.com/mknoufi/stock-verify-backend/pkg/httputil"
	"github.com/mknoufi/stock-verify-backend/pkg/logger"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	service *service.AuthService
	logger  *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(svc *service.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		service: svc,
		logger:  log,
	}
}

// Login authenticates a staff member with username and PIN
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username" validate:"required"`
		PIN      string `json:"pin" validate:"required,min=4,max=6,numeric"`
	}
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	result, err := h.service.LoginWithPIN(r.Context(), req.Username, req.PIN)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, result)
}

// Refresh exchanges a refresh token for a new token pair
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token" validate:"required"`
	}
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	tokens, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, tokens)
}

// ChangePIN changes the authenticated staff member's PIN
func (h *AuthHandler) ChangePIN(w http.ResponseWriter, r *http.Request) {
	staffID := httputil.GetUserID(r.Context())
	if staffID == "" {
		httputil.Error(w, errors.Unauthorized("authentication required"))
		return
	}

	var req struct {
		CurrentPIN string `json:"current_pin" validate:"required"`
		NewPIN     string `json:"new_pin" validate:"required,min=4,max=6,numeric"`
	}
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := h.service.ChangePIN(r.Context(), staffID, req.CurrentPIN, req.NewPIN); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.NoContent(w)
}
