package user

import "time"

// User represents a contractor account
type User struct {
	ID           int64   `json:"id"`
	Email        string  `json:"email"`
	Username     string  `json:"username,omitempty"`
	FullName     *string `json:"full_name,omitempty"`
	CompanyName  string  `json:"company_name,omitempty"`
	PasswordHash string  `json:"-"` // Not exposed in JSON

	// Billing state. TrialStart is set at account creation; the
	// entitlement window is always derived from it, never stored.
	PlanType                string     `json:"plan_type"`
	SetupPaid               bool       `json:"setup_paid"`
	TrialStart              *time.Time `json:"trial_start,omitempty"`
	SubscriptionActive      bool       `json:"subscription_active"`
	ProcessorCustomerID     string     `json:"-"`
	ProcessorSubscriptionID string     `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Plan types
const (
	PlanTypeTrial = "trial"
	PlanTypeCore  = "core"
	PlanTypePro   = "pro"
)

// ValidPlanSelection reports whether a plan can be purchased. Only the
// paid tiers are valid upgrade targets.
func ValidPlanSelection(plan string) bool {
	return plan == PlanTypeCore || plan == PlanTypePro
}
