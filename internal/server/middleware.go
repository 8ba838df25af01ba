package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/zentask/zentask/internal/server/auth"
)

type contextKey string

// userIDContextKey carries the authenticated user's id through the
// request context.
const userIDContextKey contextKey = "userID"

// AuthMiddleware provides bearer-token authentication for routes.
type AuthMiddleware struct {
	tokens *auth.TokenService
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(tokens *auth.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate validates the access token from the Authorization header
// and adds the user id to the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		userID, err := m.tokens.ValidateAccessToken(parts[1])
		if err != nil {
			switch err {
			case auth.ErrExpiredToken:
				RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			default:
				RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			}
			return
		}

		ctx := context.WithValue(r.Context(), userIDContextKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID extracts the authenticated user id from the request context.
func GetUserID(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(userIDContextKey).(uuid.UUID)
	return userID, ok
}
