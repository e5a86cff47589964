package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"scrib/pkg/errors"
	"scrib/pkg/models"
)

// AuthManager interface for authentication operations
type AuthManager interface {
	IsAuthenticated(r *http.Request) *models.Session
}

type sessionKey struct{}

// SessionFrom returns the session stored by RequireAuthAPI
func SessionFrom(ctx context.Context) (*models.Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(*models.Session)
	return session, ok
}

// RequireAuthAPI creates middleware for API routes that require authentication
func RequireAuthAPI(authManager AuthManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := authManager.IsAuthenticated(r)
			if session == nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(errors.ToFrontendError(errors.ErrNotAuthenticated))
				return
			}
			ctx := context.WithValue(r.Context(), sessionKey{}, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
