package services

import (
	"context"

	"github.com/hfletcher/jobsite/internal/config"
	"github.com/hfletcher/jobsite/internal/domain/user"
	"github.com/hfletcher/jobsite/internal/payments"
	"github.com/hfletcher/jobsite/internal/pkg/errors"
	"github.com/hfletcher/jobsite/internal/pkg/logger"
	"github.com/hfletcher/jobsite/internal/pkg/metrics"
)

// ProcessorClient is the payment processor surface the billing service
// depends on. Satisfied by *payments.Client.
type ProcessorClient interface {
	CreateCustomer(ctx context.Context, req payments.CreateCustomerRequest) (*payments.Customer, error)
	CreateSubscription(ctx context.Context, req payments.CreateSubscriptionRequest) (*payments.Subscription, error)
	GetSubscription(ctx context.Context, id string) (*payments.Subscription, error)
	GetCustomer(ctx context.Context, id string) (*payments.Customer, error)
}

// SubscribeResult is returned to the frontend so it can confirm the
// initial payment.
type SubscribeResult struct {
	SubscriptionID string `json:"subscription_id"`
	ClientSecret   string `json:"client_secret,omitempty"`
}

// BillingService owns the subscription lifecycle: checkout against the
// payment processor and webhook reconciliation back into local state.
type BillingService struct {
	users     user.Repository
	processor ProcessorClient
	cfg       config.ProcessorConfig
	logger    *logger.Logger
}

// NewBillingService creates a new billing service
func NewBillingService(users user.Repository, processor ProcessorClient, cfg config.ProcessorConfig, log *logger.Logger) *BillingService {
	return &BillingService{
		users:     users,
		processor: processor,
		cfg:       cfg,
		logger:    log,
	}
}

// Subscribe starts a paid subscription for a user. Validation failures
// return before any processor call is made. The processor customer is
// created at most once per user; later subscriptions reuse the stored
// customer id.
func (s *BillingService) Subscribe(ctx context.Context, userID int64, plan string) (*SubscribeResult, error) {
	if !user.ValidPlanSelection(plan) {
		return nil, errors.BadRequest("Unknown plan: choose core or pro")
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.Email == "" {
		return nil, errors.BadRequest("An email address is required before subscribing")
	}

	customerID := u.ProcessorCustomerID
	if customerID == "" {
		cust, err := s.processor.CreateCustomer(ctx, payments.CreateCustomerRequest{
			Email: u.Email,
			Name:  u.CompanyName,
			Metadata: map[string]string{
				"user_id": formatID(u.ID),
			},
		})
		if err != nil {
			s.logger.ErrorWithErr(err, "Failed to create processor customer")
			return nil, errors.ProcessorError("Could not create billing customer", err)
		}
		customerID = cust.ID

		if err := s.users.SaveProcessorRefs(ctx, u.ID, customerID, u.ProcessorSubscriptionID); err != nil {
			return nil, err
		}
	}

	items := []payments.LineItem{
		{PriceID: s.planPrice(plan), Quantity: 1},
	}
	if !u.SetupPaid {
		items = append(items, payments.LineItem{PriceID: s.cfg.SetupPriceID, Quantity: 1})
		if s.cfg.OnboardPriceID != "" {
			items = append(items, payments.LineItem{PriceID: s.cfg.OnboardPriceID, Quantity: 1})
		}
	}

	sub, err := s.processor.CreateSubscription(ctx, payments.CreateSubscriptionRequest{
		CustomerID: customerID,
		Items:      items,
		Metadata: map[string]string{
			"user_id": formatID(u.ID),
			"plan":    plan,
		},
	})
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to create subscription")
		return nil, errors.ProcessorError("Could not create subscription", err)
	}

	if err := s.users.SaveProcessorRefs(ctx, u.ID, customerID, sub.ID); err != nil {
		return nil, err
	}

	u.PlanType = plan
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}

	metrics.RecordSubscriptionCreated(plan)
	s.logger.WithFields(map[string]interface{}{
		"user_id":         u.ID,
		"plan":            plan,
		"subscription_id": sub.ID,
	}).Info("Subscription created")

	result := &SubscribeResult{SubscriptionID: sub.ID}
	if sub.LatestInvoice != nil && sub.LatestInvoice.PaymentIntent != nil {
		result.ClientSecret = sub.LatestInvoice.PaymentIntent.ClientSecret
	}
	return result, nil
}

func (s *BillingService) planPrice(plan string) string {
	if plan == user.PlanTypePro {
		return s.cfg.ProPriceID
	}
	return s.cfg.CorePriceID
}

// HandleEvent reconciles a verified webhook event into local billing
// state. Writes are idempotent, so at-least-once delivery is safe. An
// event for an unknown customer is logged and dropped rather than
// returned as an error, otherwise the processor would retry it forever.
func (s *BillingService) HandleEvent(ctx context.Context, event *payments.Event) error {
	switch event.Type {
	case payments.EventInvoicePaymentSucceeded:
		return s.handlePaymentSucceeded(ctx, event)
	case payments.EventSubscriptionDeleted:
		return s.handleSubscriptionDeleted(ctx, event)
	default:
		metrics.RecordWebhookEvent(event.Type, "ignored")
		return nil
	}
}

func (s *BillingService) handlePaymentSucceeded(ctx context.Context, event *payments.Event) error {
	inv, err := event.EventInvoice()
	if err != nil {
		metrics.RecordWebhookEvent(event.Type, "malformed")
		return errors.BadRequest("Malformed invoice payload")
	}
	if inv.SubscriptionID == "" {
		// One-off invoice with no subscription attached; nothing to do.
		metrics.RecordWebhookEvent(event.Type, "ignored")
		return nil
	}

	// Re-fetch from the API rather than trusting the payload. The
	// webhook body may be stale by the time it is delivered.
	sub, err := s.processor.GetSubscription(ctx, inv.SubscriptionID)
	if err != nil {
		metrics.RecordWebhookEvent(event.Type, "error")
		return errors.ProcessorError("Could not fetch subscription", err)
	}
	cust, err := s.processor.GetCustomer(ctx, sub.CustomerID)
	if err != nil {
		metrics.RecordWebhookEvent(event.Type, "error")
		return errors.ProcessorError("Could not fetch customer", err)
	}

	u, err := s.users.GetByProcessorCustomer(ctx, cust.ID)
	if err != nil {
		s.logger.WithFields(map[string]interface{}{
			"customer_id": cust.ID,
			"event_id":    event.ID,
		}).Warn("Webhook for unknown customer")
		metrics.RecordWebhookEvent(event.Type, "unknown_user")
		return nil
	}

	if err := s.users.SetSubscriptionState(ctx, u.ID, true, true); err != nil {
		metrics.RecordWebhookEvent(event.Type, "error")
		return err
	}

	metrics.RecordWebhookEvent(event.Type, "ok")
	s.logger.WithFields(map[string]interface{}{
		"user_id":  u.ID,
		"event_id": event.ID,
	}).Info("Subscription activated")
	return nil
}

func (s *BillingService) handleSubscriptionDeleted(ctx context.Context, event *payments.Event) error {
	sub, err := event.EventSubscription()
	if err != nil {
		metrics.RecordWebhookEvent(event.Type, "malformed")
		return errors.BadRequest("Malformed subscription payload")
	}

	u, err := s.users.GetByProcessorCustomer(ctx, sub.CustomerID)
	if err != nil {
		s.logger.WithFields(map[string]interface{}{
			"customer_id": sub.CustomerID,
			"event_id":    event.ID,
		}).Warn("Webhook for unknown customer")
		metrics.RecordWebhookEvent(event.Type, "unknown_user")
		return nil
	}

	if err := s.users.SetSubscriptionState(ctx, u.ID, false, u.SetupPaid); err != nil {
		metrics.RecordWebhookEvent(event.Type, "error")
		return err
	}

	metrics.RecordWebhookEvent(event.Type, "ok")
	s.logger.WithFields(map[string]interface{}{
		"user_id":  u.ID,
		"event_id": event.ID,
	}).Info("Subscription deactivated")
	return nil
}
