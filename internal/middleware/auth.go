package middleware

import (
	"context"
	"net/http"
	"strings"

	"puf-orgu/internal/service"

	"go.uber.org/zap"
)

type contextKey string

const adminUsernameKey contextKey = "admin_username"

// AdminAuthMiddleware validates the bearer session token on admin
// requests. There are exactly two states: anonymous requests are rejected
// with 401, authenticated ones proceed with the admin username in context.
func AdminAuthMiddleware(auth service.AuthService, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Debug("Missing authorization header")
				RespondWithError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				logger.Debug("Invalid authorization header format")
				RespondWithError(w, http.StatusUnauthorized, "invalid authorization header format")
				return
			}

			claims, err := auth.ValidateToken(parts[1])
			if err != nil {
				logger.Debug("Token validation failed", zap.Error(err))
				RespondWithError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), adminUsernameKey, claims.Username)

			logger.Debug("Admin authenticated", zap.String("username", claims.Username))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdminUsername extracts the authenticated admin username from the
// request context.
func GetAdminUsername(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(adminUsernameKey).(string)
	return username, ok
}
