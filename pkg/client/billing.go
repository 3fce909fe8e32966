package client

import "context"

// BillingService handles billing-related API calls
type BillingService struct {
	client *Client
}

// Billing returns the billing service
func (c *Client) Billing() *BillingService {
	return &BillingService{client: c}
}

// SubscribeRequest starts a paid subscription
type SubscribeRequest struct {
	Plan string `json:"plan"`
}

// SubscribeResult carries the payment confirmation token
type SubscribeResult struct {
	SubscriptionID string `json:"subscription_id"`
	ClientSecret   string `json:"client_secret"`
}

// Info retrieves the billing summary for the account
func (s *BillingService) Info(ctx context.Context) (*BillingInfo, error) {
	var info BillingInfo
	if err := s.client.doRequest(ctx, "GET", "/api/v1/billing/info", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Entitlement retrieves the derived access state
func (s *BillingService) Entitlement(ctx context.Context) (*Entitlement, error) {
	var ent Entitlement
	if err := s.client.doRequest(ctx, "GET", "/api/v1/billing/entitlement", nil, &ent); err != nil {
		return nil, err
	}
	return &ent, nil
}

// Subscribe starts a core or pro subscription
func (s *BillingService) Subscribe(ctx context.Context, plan string) (*SubscribeResult, error) {
	var res SubscribeResult
	if err := s.client.doRequest(ctx, "POST", "/api/v1/billing/subscribe", SubscribeRequest{Plan: plan}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
