package dto

import "github.com/hfletcher/jobsite/internal/domain/user"

// SubscribeRequest starts a paid subscription
type SubscribeRequest struct {
	Plan string `json:"plan" validate:"required,oneof=core pro"`
}

// EntitlementDTO mirrors the derived access state
type EntitlementDTO struct {
	TrialActive        bool `json:"is_trial_active"`
	TrialDaysRemaining int  `json:"trial_days_remaining"`
	CanAccessApp       bool `json:"can_access_app"`
	IsPro              bool `json:"is_pro"`
}

// EntitlementToDTO maps the domain entitlement to its API shape
func EntitlementToDTO(e user.Entitlement) EntitlementDTO {
	return EntitlementDTO{
		TrialActive:        e.TrialActive,
		TrialDaysRemaining: e.TrialDaysRemaining,
		CanAccessApp:       e.CanAccessApp,
		IsPro:              e.IsPro,
	}
}

// PlanDTO describes a subscribable plan
type PlanDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceID     string `json:"price_id"`
}

// BillingInfoDTO is the contractor's billing summary
type BillingInfoDTO struct {
	PlanType           string         `json:"plan_type"`
	SetupPaid          bool           `json:"setup_paid"`
	SubscriptionActive bool           `json:"subscription_active"`
	Entitlement        EntitlementDTO `json:"entitlement"`
}
