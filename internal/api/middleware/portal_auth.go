package middleware

import (
	"context"
	"net/http"

	"github.com/hfletcher/jobsite/internal/auth"
	"github.com/hfletcher/jobsite/internal/pkg/errors"
	"github.com/hfletcher/jobsite/internal/pkg/utils"
)

const (
	// PortalUserIDKey is the context key for portal user ID
	PortalUserIDKey ContextKey = "portalUserID"
	// PortalClientIDKey is the context key for the client a portal user belongs to
	PortalClientIDKey ContextKey = "portalClientID"
)

// PortalAuthMiddleware validates portal JWT tokens. Portal tokens are
// signed with their own secret, so a contractor token never passes
// here and vice versa.
func PortalAuthMiddleware(portalSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerToken(r)
			if tokenStr == "" {
				utils.WriteError(w, errors.Unauthorized("Missing authentication token"))
				return
			}

			claims, err := auth.ParsePortalClaims(tokenStr, portalSecret)
			if err != nil {
				utils.WriteError(w, errors.Unauthorized("Invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), PortalUserIDKey, claims.PortalUserID)
			ctx = context.WithValue(ctx, PortalClientIDKey, claims.ClientID)

			AddLogField(w, "portal_user_id", claims.PortalUserID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetPortalUserID extracts the portal user ID from the request context
func GetPortalUserID(r *http.Request) (int64, bool) {
	id, ok := r.Context().Value(PortalUserIDKey).(int64)
	return id, ok
}

// GetPortalClientID extracts the portal user's client ID from the request context
func GetPortalClientID(r *http.Request) (int64, bool) {
	id, ok := r.Context().Value(PortalClientIDKey).(int64)
	return id, ok
}
