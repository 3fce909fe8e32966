package middleware

import (
	"net/http"
	"time"

	"github.com/hfletcher/jobsite/internal/domain/user"
	"github.com/hfletcher/jobsite/internal/pkg/errors"
	"github.com/hfletcher/jobsite/internal/pkg/utils"
)

// EntitlementGate blocks app routes for accounts whose trial has ended
// without an active subscription. It must run after AuthMiddleware.
// Billing and auth routes are mounted outside the gate so an expired
// user can still log in and subscribe.
func EntitlementGate(users user.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserID(r)
			if !ok {
				utils.WriteError(w, errors.Unauthorized("Missing authentication token"))
				return
			}

			ent, err := users.Entitlement(r.Context(), userID, time.Now())
			if err != nil {
				utils.WriteAppError(w, err)
				return
			}

			if !ent.CanAccessApp {
				utils.WriteError(w, errors.TrialExpired())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
