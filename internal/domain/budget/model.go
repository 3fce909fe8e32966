package budget

import "time"

// Item represents a budget line item on a project. Amounts are in
// cents to avoid floating point drift.
type Item struct {
	ID             int64     `json:"id"`
	ProjectID      int64     `json:"project_id"`
	Category       string    `json:"category"`
	Description    string    `json:"description,omitempty"`
	EstimatedCents int64     `json:"estimated_cents"`
	ActualCents    int64     `json:"actual_cents"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at,omitempty"`
}

// Budget categories
const (
	CategoryLabor     = "labor"
	CategoryMaterials = "materials"
	CategoryPermits   = "permits"
	CategorySubs      = "subcontractors"
	CategoryOther     = "other"
)

// Totals aggregates budget amounts for a project or contractor
type Totals struct {
	EstimatedCents int64 `json:"estimated_cents"`
	ActualCents    int64 `json:"actual_cents"`
}
