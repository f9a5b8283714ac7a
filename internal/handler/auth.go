package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cvforge/cvforge-go/internal/identity"
	"github.com/cvforge/cvforge-go/internal/model"
	"github.com/cvforge/cvforge-go/internal/service"
)

const authBodyLimit = 1 << 20 // 1MB

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleRegister handles POST /register requests.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !decodeBody(w, r, authBodyLimit, &req) {
		return
	}

	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		var valErr *service.ValidationError
		var dupErr *service.DuplicateError
		switch {
		case errors.As(err, &valErr):
			writeJSON(w, http.StatusBadRequest, fieldErrorResponse(valErr.Message, valErr.Fields))
		case errors.Is(err, service.ErrEmailTaken):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.As(err, &dupErr):
			writeJSON(w, http.StatusBadRequest, errorResponse(dupErr.Error()))
		default:
			slog.Error("register failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse("Server error"))
		}
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleLogin handles POST /login requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeBody(w, r, authBodyLimit, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		var valErr *service.ValidationError
		switch {
		case errors.As(err, &valErr):
			writeJSON(w, http.StatusBadRequest, fieldErrorResponse(valErr.Message, valErr.Fields))
		case errors.Is(err, service.ErrInvalidCredentials):
			writeJSON(w, http.StatusUnauthorized, errorResponse(err.Error()))
		default:
			slog.Error("login failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse("Server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleGoogleLogin handles POST /federated-login requests.
func (h *AuthHandler) HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.FederatedLoginRequest
	if !decodeBody(w, r, authBodyLimit, &req) {
		return
	}

	resp, err := h.service.GoogleLogin(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGoogleTokenMissing):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, identity.ErrVerificationFailed):
			writeJSON(w, http.StatusUnauthorized, errorResponse("Google authentication failed"))
		default:
			slog.Error("google login failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse("Server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
