package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/hfletcher/jobsite/internal/config"
	"github.com/hfletcher/jobsite/internal/domain/user"
	"github.com/hfletcher/jobsite/internal/payments"
	"github.com/hfletcher/jobsite/internal/pkg/errors"
	"github.com/hfletcher/jobsite/internal/pkg/logger"
	"github.com/hfletcher/jobsite/internal/testutil"
)

// fakeProcessor is an in-memory payment processor for service tests
type fakeProcessor struct {
	customers     map[string]*payments.Customer
	subscriptions map[string]*payments.Subscription

	customerCalls int
	subCalls      int
	lastSubReq    payments.CreateSubscriptionRequest

	createCustomerErr error
	createSubErr      error
}

func newFakeProcessor() *fakeProcessor {
	return &fakeProcessor{
		customers:     make(map[string]*payments.Customer),
		subscriptions: make(map[string]*payments.Subscription),
	}
}

func (f *fakeProcessor) CreateCustomer(ctx context.Context, req payments.CreateCustomerRequest) (*payments.Customer, error) {
	f.customerCalls++
	if f.createCustomerErr != nil {
		return nil, f.createCustomerErr
	}
	cust := &payments.Customer{ID: "cus_test", Email: req.Email, Name: req.Name}
	f.customers[cust.ID] = cust
	return cust, nil
}

func (f *fakeProcessor) CreateSubscription(ctx context.Context, req payments.CreateSubscriptionRequest) (*payments.Subscription, error) {
	f.subCalls++
	f.lastSubReq = req
	if f.createSubErr != nil {
		return nil, f.createSubErr
	}
	sub := &payments.Subscription{
		ID:         "sub_test",
		CustomerID: req.CustomerID,
		Status:     "incomplete",
		LatestInvoice: &payments.Invoice{
			ID:            "in_test",
			PaymentIntent: &payments.PaymentIntent{ID: "pi_test", ClientSecret: "secret_test"},
		},
	}
	f.subscriptions[sub.ID] = sub
	return sub, nil
}

func (f *fakeProcessor) GetSubscription(ctx context.Context, id string) (*payments.Subscription, error) {
	sub, ok := f.subscriptions[id]
	if !ok {
		return nil, errors.NotFound("Subscription")
	}
	return sub, nil
}

func (f *fakeProcessor) GetCustomer(ctx context.Context, id string) (*payments.Customer, error) {
	cust, ok := f.customers[id]
	if !ok {
		return nil, errors.NotFound("Customer")
	}
	return cust, nil
}

func testProcessorConfig() config.ProcessorConfig {
	return config.ProcessorConfig{
		APIKey:        "sk_test",
		WebhookSecret: "whsec_test",
		CorePriceID:   "price_core",
		ProPriceID:    "price_pro",
		SetupPriceID:  "price_setup",
	}
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json"})
}

func seedBillingUser(repo *testutil.MockUserRepository) *user.User {
	now := time.Now()
	u := &user.User{
		Email:       "dan@example.com",
		CompanyName: "Fletcher Construction",
		PlanType:    user.PlanTypeTrial,
		TrialStart:  &now,
	}
	repo.Create(context.Background(), u)
	return u
}

func TestBillingSubscribeValidation(t *testing.T) {
	tests := []struct {
		name  string
		plan  string
		email string
	}{
		{name: "unknown plan", plan: "enterprise", email: "dan@example.com"},
		{name: "trial is not purchasable", plan: user.PlanTypeTrial, email: "dan@example.com"},
		{name: "missing email", plan: user.PlanTypeCore, email: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := testutil.NewMockUserRepository()
			u := &user.User{Email: tt.email, PlanType: user.PlanTypeTrial}
			repo.Create(context.Background(), u)

			processor := newFakeProcessor()
			svc := NewBillingService(repo, processor, testProcessorConfig(), testLogger())

			_, err := svc.Subscribe(context.Background(), u.ID, tt.plan)
			if err == nil {
				t.Fatal("Subscribe() expected error, got nil")
			}
			if processor.customerCalls != 0 || processor.subCalls != 0 {
				t.Errorf("Subscribe() contacted processor on invalid input: %d customer calls, %d subscription calls",
					processor.customerCalls, processor.subCalls)
			}
		})
	}
}

func TestBillingSubscribe(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	u := seedBillingUser(repo)

	processor := newFakeProcessor()
	svc := NewBillingService(repo, processor, testProcessorConfig(), testLogger())

	result, err := svc.Subscribe(context.Background(), u.ID, user.PlanTypeCore)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	if result.SubscriptionID != "sub_test" {
		t.Errorf("SubscriptionID = %q, want sub_test", result.SubscriptionID)
	}
	if result.ClientSecret != "secret_test" {
		t.Errorf("ClientSecret = %q, want secret_test", result.ClientSecret)
	}
	if u.ProcessorCustomerID != "cus_test" {
		t.Errorf("ProcessorCustomerID = %q, want cus_test", u.ProcessorCustomerID)
	}
	if u.ProcessorSubscriptionID != "sub_test" {
		t.Errorf("ProcessorSubscriptionID = %q, want sub_test", u.ProcessorSubscriptionID)
	}
	if u.PlanType != user.PlanTypeCore {
		t.Errorf("PlanType = %q, want core", u.PlanType)
	}

	// Setup fee is charged on the first subscription only.
	if len(processor.lastSubReq.Items) != 2 {
		t.Fatalf("subscription items = %d, want 2 (plan + setup)", len(processor.lastSubReq.Items))
	}
	if processor.lastSubReq.Items[0].PriceID != "price_core" {
		t.Errorf("plan price = %q, want price_core", processor.lastSubReq.Items[0].PriceID)
	}
	if processor.lastSubReq.Items[1].PriceID != "price_setup" {
		t.Errorf("setup price = %q, want price_setup", processor.lastSubReq.Items[1].PriceID)
	}
}

func TestBillingSubscribeReusesCustomer(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	u := seedBillingUser(repo)

	processor := newFakeProcessor()
	svc := NewBillingService(repo, processor, testProcessorConfig(), testLogger())

	if _, err := svc.Subscribe(context.Background(), u.ID, user.PlanTypeCore); err != nil {
		t.Fatalf("first Subscribe() error = %v", err)
	}
	u.SetupPaid = true
	if _, err := svc.Subscribe(context.Background(), u.ID, user.PlanTypePro); err != nil {
		t.Fatalf("second Subscribe() error = %v", err)
	}

	if processor.customerCalls != 1 {
		t.Errorf("customer created %d times, want 1", processor.customerCalls)
	}
	if len(processor.lastSubReq.Items) != 1 {
		t.Errorf("second subscription items = %d, want 1 (setup already paid)", len(processor.lastSubReq.Items))
	}
	if processor.lastSubReq.Items[0].PriceID != "price_pro" {
		t.Errorf("plan price = %q, want price_pro", processor.lastSubReq.Items[0].PriceID)
	}
}

func invoiceEvent(id, subscriptionID string) *payments.Event {
	ev := &payments.Event{ID: id, Type: payments.EventInvoicePaymentSucceeded}
	obj, _ := json.Marshal(payments.Invoice{ID: "in_test", SubscriptionID: subscriptionID})
	ev.Data.Object = obj
	return ev
}

func subscriptionDeletedEvent(id, customerID string) *payments.Event {
	ev := &payments.Event{ID: id, Type: payments.EventSubscriptionDeleted}
	obj, _ := json.Marshal(payments.Subscription{ID: "sub_test", CustomerID: customerID})
	ev.Data.Object = obj
	return ev
}

func TestBillingHandlePaymentSucceeded(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	u := seedBillingUser(repo)

	processor := newFakeProcessor()
	svc := NewBillingService(repo, processor, testProcessorConfig(), testLogger())

	if _, err := svc.Subscribe(context.Background(), u.ID, user.PlanTypeCore); err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	ev := invoiceEvent("evt_1", "sub_test")
	if err := svc.HandleEvent(context.Background(), ev); err != nil {
		t.Fatalf("HandleEvent() error = %v", err)
	}

	if !u.SubscriptionActive {
		t.Error("SubscriptionActive = false after payment succeeded")
	}
	if !u.SetupPaid {
		t.Error("SetupPaid = false after payment succeeded")
	}

	// At-least-once delivery: a duplicate event must be harmless.
	if err := svc.HandleEvent(context.Background(), ev); err != nil {
		t.Fatalf("HandleEvent() duplicate delivery error = %v", err)
	}
	if !u.SubscriptionActive || !u.SetupPaid {
		t.Error("duplicate delivery changed billing state")
	}
}

func TestBillingHandleSubscriptionDeleted(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	u := seedBillingUser(repo)

	processor := newFakeProcessor()
	svc := NewBillingService(repo, processor, testProcessorConfig(), testLogger())

	if _, err := svc.Subscribe(context.Background(), u.ID, user.PlanTypeCore); err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	if err := svc.HandleEvent(context.Background(), invoiceEvent("evt_1", "sub_test")); err != nil {
		t.Fatalf("HandleEvent() error = %v", err)
	}

	if err := svc.HandleEvent(context.Background(), subscriptionDeletedEvent("evt_2", "cus_test")); err != nil {
		t.Fatalf("HandleEvent() error = %v", err)
	}

	if u.SubscriptionActive {
		t.Error("SubscriptionActive = true after subscription deleted")
	}
	if !u.SetupPaid {
		t.Error("SetupPaid lost on cancellation; the fee stays paid")
	}
}

func TestBillingHandleEventUnknownCustomer(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	processor := newFakeProcessor()
	processor.customers["cus_stranger"] = &payments.Customer{ID: "cus_stranger"}
	processor.subscriptions["sub_stranger"] = &payments.Subscription{ID: "sub_stranger", CustomerID: "cus_stranger"}

	svc := NewBillingService(repo, processor, testProcessorConfig(), testLogger())

	// Dropped, not errored: an error would make the processor retry
	// the event forever.
	if err := svc.HandleEvent(context.Background(), invoiceEvent("evt_1", "sub_stranger")); err != nil {
		t.Errorf("HandleEvent() unknown customer error = %v, want nil", err)
	}
	if err := svc.HandleEvent(context.Background(), subscriptionDeletedEvent("evt_2", "cus_stranger")); err != nil {
		t.Errorf("HandleEvent() unknown customer error = %v, want nil", err)
	}
}

func TestBillingHandleEventIgnoresUnknownType(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	svc := NewBillingService(repo, newFakeProcessor(), testProcessorConfig(), testLogger())

	ev := &payments.Event{ID: "evt_1", Type: "charge.refunded"}
	if err := svc.HandleEvent(context.Background(), ev); err != nil {
		t.Errorf("HandleEvent() unknown type error = %v, want nil", err)
	}
}

func TestBillingHandleEventOneOffInvoice(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	u := seedBillingUser(repo)

	svc := NewBillingService(repo, newFakeProcessor(), testProcessorConfig(), testLogger())

	if err := svc.HandleEvent(context.Background(), invoiceEvent("evt_1", "")); err != nil {
		t.Errorf("HandleEvent() one-off invoice error = %v, want nil", err)
	}
	if u.SubscriptionActive {
		t.Error("one-off invoice activated subscription")
	}
}
