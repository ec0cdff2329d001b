package http

import (
	"context"
	"net/http"
	"strings"

	"skillswap-backend/internal/security"
)

type contextKey string

const userIDKey contextKey = "user_id"

// AuthMiddleware validates the bearer token and stores the actor's user id
// on the request context.
type AuthMiddleware struct {
	tokenManager security.TokenManager
}

func NewAuthMiddleware(tokenManager security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokenManager: tokenManager}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			Error(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		claims, err := m.tokenManager.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			DomainError(w, err)
			return
		}
		if claims.Type != security.TokenTypeAccess {
			Error(w, http.StatusUnauthorized, "access token required")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext returns the authenticated actor's id. The auth
// middleware guarantees it is present on protected routes.
func UserIDFromContext(ctx context.Context) (int32, bool) {
	id, ok := ctx.Value(userIDKey).(int32)
	return id, ok
}
