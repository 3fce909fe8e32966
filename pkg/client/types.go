package client

import "time"

// User represents a contractor account
type User struct {
	ID          int64   `json:"id"`
	Email       string  `json:"email"`
	Username    string  `json:"username,omitempty"`
	FullName    *string `json:"full_name,omitempty"`
	CompanyName string  `json:"company_name,omitempty"`
	PlanType    string  `json:"plan_type"`
}

// Entitlement is the derived access state for an account
type Entitlement struct {
	TrialActive        bool `json:"is_trial_active"`
	TrialDaysRemaining int  `json:"trial_days_remaining"`
	CanAccessApp       bool `json:"can_access_app"`
	IsPro              bool `json:"is_pro"`
}

// BillingInfo is the contractor's billing summary
type BillingInfo struct {
	PlanType           string      `json:"plan_type"`
	SetupPaid          bool        `json:"setup_paid"`
	SubscriptionActive bool        `json:"subscription_active"`
	Entitlement        Entitlement `json:"entitlement"`
}

// ProjectClient represents a client of the contractor
type ProjectClient struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Project represents a construction project
type Project struct {
	ID          int64      `json:"id"`
	ClientID    int64      `json:"client_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Address     string     `json:"address,omitempty"`
	Status      string     `json:"status"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ListOptions contains common pagination options
type ListOptions struct {
	Page     int
	PageSize int
}

// Page wraps a paginated list response
type Page[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}
