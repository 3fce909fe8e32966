package updaterequest

import "time"

// Request represents a client-initiated question about project status
type Request struct {
	ID           int64     `json:"id"`
	ProjectID    int64     `json:"project_id"`
	PortalUserID int64     `json:"portal_user_id"`
	Question     string    `json:"question"`
	Status       string    `json:"status"`
	Reply        string    `json:"reply,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

// Request status. The contractor may move a request to any status,
// including backwards; ordering is intentionally not enforced. The
// reply field is independent of status and can be set at any time.
const (
	StatusPending   = "pending"
	StatusReviewed  = "reviewed"
	StatusCompleted = "completed"
)

// ValidStatus reports whether s names a known status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusReviewed, StatusCompleted:
		return true
	}
	return false
}
