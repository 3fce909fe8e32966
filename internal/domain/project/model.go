package project

import "time"

// Project represents a job tracked for a client
type Project struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	ClientID    int64      `json:"client_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Address     string     `json:"address,omitempty"`
	Status      string     `json:"status"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	// AccountingEstimateID is set once the project has been pushed to
	// the accounting platform as an estimate.
	AccountingEstimateID string    `json:"-"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at,omitempty"`
}

// Project status
const (
	StatusPlanning  = "planning"
	StatusActive    = "active"
	StatusOnHold    = "on_hold"
	StatusCompleted = "completed"
	StatusArchived  = "archived"
)

// Filter contains project filtering options
type Filter struct {
	ClientID int64
	Status   string
}
