package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hfletcher/jobsite/internal/domain/user"
	"github.com/hfletcher/jobsite/internal/pkg/logger"
	"github.com/hfletcher/jobsite/internal/services"
	"github.com/hfletcher/jobsite/internal/testutil"
)

func TestEntitlementGate(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	userService := services.NewUserService(repo, log)

	fresh := time.Now()
	expired := time.Now().Add(-20 * 24 * time.Hour)

	tests := []struct {
		name           string
		user           *user.User
		expectedStatus int
	}{
		{
			name:           "active trial passes",
			user:           &user.User{Email: "trial@example.com", PlanType: user.PlanTypeTrial, TrialStart: &fresh},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "expired trial blocked",
			user:           &user.User{Email: "expired@example.com", PlanType: user.PlanTypeTrial, TrialStart: &expired},
			expectedStatus: http.StatusPaymentRequired,
		},
		{
			name: "subscriber passes after trial",
			user: &user.User{
				Email: "paid@example.com", PlanType: user.PlanTypeCore,
				TrialStart: &expired, SubscriptionActive: true,
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo.Create(context.Background(), tt.user)

			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil)
			req = req.WithContext(context.WithValue(req.Context(), UserIDKey, tt.user.ID))
			rr := httptest.NewRecorder()

			EntitlementGate(userService)(next).ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("gate returned wrong status code: got %v want %v, body %s", rr.Code, tt.expectedStatus, rr.Body.String())
			}
			if called != (tt.expectedStatus == http.StatusOK) {
				t.Errorf("next handler called = %v", called)
			}
		})
	}
}

func TestEntitlementGateMissingUser(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	userService := services.NewUserService(repo, log)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler called without authentication")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil)
	rr := httptest.NewRecorder()

	EntitlementGate(userService)(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("gate returned wrong status code: got %v want %v", rr.Code, http.StatusUnauthorized)
	}
}
