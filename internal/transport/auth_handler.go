package transport

import (
	"net/http"

	"puf-orgu/internal/middleware"
	"puf-orgu/internal/repository"
	"puf-orgu/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// LoginRequest represents the admin login payload
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest represents the password change payload
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

// AuthHandler handles admin authentication requests
type AuthHandler struct {
	auth   service.AuthService
	logger *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		logger: logger,
	}
}

// RegisterRoutes registers all auth routes
func (h *AuthHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Post("/api/auth", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/api/auth/change-password", h.ChangePassword)
	})
}

// Login verifies admin credentials and issues a session token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Login validation failed", zap.Error(err))
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			middleware.RespondWithError(w, http.StatusUnauthorized, "invalid username or password")
			return
		}
		h.logger.Error("Login failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "authentication failed")
		return
	}

	h.logger.Info("Admin logged in", zap.String("username", req.Username))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   token,
	})
}

// ChangePassword rotates the password of the authenticated admin
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Change password validation failed", zap.Error(err))
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	username, ok := middleware.GetAdminUsername(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.auth.ChangePassword(r.Context(), username, req.CurrentPassword, req.NewPassword); err != nil {
		switch err {
		case repository.ErrAdminNotFound:
			middleware.RespondWithError(w, http.StatusNotFound, "admin account not found")
		case service.ErrWrongPassword:
			middleware.RespondWithError(w, http.StatusUnauthorized, "current password is incorrect")
		case service.ErrPasswordTooShort:
			middleware.RespondWithError(w, http.StatusBadRequest, "new password must be at least 8 characters")
		default:
			h.logger.Error("Password change failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to change password")
		}
		return
	}

	h.logger.Info("Admin password changed", zap.String("username", username))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "password updated successfully"})
}
