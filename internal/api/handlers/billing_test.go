package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hfletcher/jobsite/internal/api/middleware"
	"github.com/hfletcher/jobsite/internal/config"
	"github.com/hfletcher/jobsite/internal/domain/user"
	"github.com/hfletcher/jobsite/internal/payments"
	"github.com/hfletcher/jobsite/internal/pkg/logger"
	"github.com/hfletcher/jobsite/internal/pkg/validator"
	"github.com/hfletcher/jobsite/internal/services"
	"github.com/hfletcher/jobsite/internal/testutil"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:          "test-secret",
			AccessTokenExpiry:  time.Hour,
			RefreshTokenExpiry: 24 * time.Hour,
		},
		Portal: config.PortalConfig{
			JWTSecret:   "portal-test-secret",
			TokenExpiry: 7 * 24 * time.Hour,
		},
		Processor: config.ProcessorConfig{
			WebhookSecret: "whsec_test",
			CorePriceID:   "price_core",
			ProPriceID:    "price_pro",
			SetupPriceID:  "price_setup",
		},
	}
}

func newBillingHandler(t *testing.T, users *testutil.MockUserRepository, processor services.ProcessorClient) *BillingHandler {
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	cfg := testConfig()
	billing := services.NewBillingService(users, processor, cfg.Processor, log)
	userService := services.NewUserService(users, log)
	return NewBillingHandler(billing, userService, cfg, log, validator.New())
}

// stubProcessor answers every call with fixed records
type stubProcessor struct{}

func (stubProcessor) CreateCustomer(ctx context.Context, req payments.CreateCustomerRequest) (*payments.Customer, error) {
	return &payments.Customer{ID: "cus_test", Email: req.Email}, nil
}

func (stubProcessor) CreateSubscription(ctx context.Context, req payments.CreateSubscriptionRequest) (*payments.Subscription, error) {
	return &payments.Subscription{
		ID:         "sub_test",
		CustomerID: req.CustomerID,
		LatestInvoice: &payments.Invoice{
			PaymentIntent: &payments.PaymentIntent{ClientSecret: "secret_test"},
		},
	}, nil
}

func (stubProcessor) GetSubscription(ctx context.Context, id string) (*payments.Subscription, error) {
	return &payments.Subscription{ID: id, CustomerID: "cus_test"}, nil
}

func (stubProcessor) GetCustomer(ctx context.Context, id string) (*payments.Customer, error) {
	return &payments.Customer{ID: id}, nil
}

func seedContractor(t *testing.T, users *testutil.MockUserRepository) *user.User {
	now := time.Now()
	u := &user.User{
		Email:      "dan@example.com",
		PlanType:   user.PlanTypeTrial,
		TrialStart: &now,
	}
	if err := users.Create(context.Background(), u); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return u
}

func TestBillingHandler_Subscribe(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name:           "valid plan",
			body:           `{"plan":"core"}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown plan",
			body:           `{"plan":"enterprise"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing plan",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed body",
			body:           `{`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := testutil.NewMockUserRepository()
			u := seedContractor(t, users)
			handler := newBillingHandler(t, users, stubProcessor{})

			req := httptest.NewRequest(http.MethodPost, "/api/v1/billing/subscribe", bytes.NewBufferString(tt.body))
			req = req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, u.ID))
			rr := httptest.NewRecorder()

			handler.Subscribe(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("handler returned wrong status code: got %v want %v, body %s", rr.Code, tt.expectedStatus, rr.Body.String())
			}
		})
	}
}

func TestBillingHandler_Entitlement(t *testing.T) {
	users := testutil.NewMockUserRepository()
	u := seedContractor(t, users)
	handler := newBillingHandler(t, users, stubProcessor{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/billing/entitlement", nil)
	req = req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, u.ID))
	rr := httptest.NewRecorder()

	handler.Entitlement(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v, body %s", rr.Code, rr.Body.String())
	}

	var response struct {
		Success bool `json:"success"`
		Data    struct {
			TrialActive  bool `json:"is_trial_active"`
			CanAccessApp bool `json:"can_access_app"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !response.Success || !response.Data.TrialActive || !response.Data.CanAccessApp {
		t.Errorf("unexpected entitlement payload: %+v", response)
	}
}

func TestBillingHandler_Webhook(t *testing.T) {
	payload := func() []byte {
		ev := map[string]interface{}{
			"id":   "evt_1",
			"type": payments.EventInvoicePaymentSucceeded,
			"data": map[string]interface{}{
				"object": map[string]interface{}{"id": "in_1", "subscription": "sub_test"},
			},
		}
		body, _ := json.Marshal(ev)
		return body
	}()

	tests := []struct {
		name           string
		body           []byte
		signature      string
		expectedStatus int
	}{
		{
			name:           "valid signature",
			body:           payload,
			signature:      payments.Sign("whsec_test", payload),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing signature",
			body:           payload,
			signature:      "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong signature",
			body:           payload,
			signature:      payments.Sign("whsec_other", payload),
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := testutil.NewMockUserRepository()
			u := seedContractor(t, users)
			users.SaveProcessorRefs(context.Background(), u.ID, "cus_test", "sub_test")
			handler := newBillingHandler(t, users, stubProcessor{})

			req := httptest.NewRequest(http.MethodPost, "/api/v1/billing/webhook", bytes.NewBuffer(tt.body))
			if tt.signature != "" {
				req.Header.Set(payments.SignatureHeader, tt.signature)
			}
			rr := httptest.NewRecorder()

			handler.Webhook(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("handler returned wrong status code: got %v want %v, body %s", rr.Code, tt.expectedStatus, rr.Body.String())
			}

			if tt.expectedStatus == http.StatusOK && !u.SubscriptionActive {
				t.Error("subscription not activated by webhook")
			}
			if tt.expectedStatus != http.StatusOK && u.SubscriptionActive {
				t.Error("rejected webhook still changed billing state")
			}
		})
	}
}
