package portal

import "time"

// PortalUser represents an end-client login for the client portal.
// Portal users are scoped to a single client of a contractor and never
// see another tenant's data.
type PortalUser struct {
	ID           int64      `json:"id"`
	ClientID     int64      `json:"client_id"`
	Email        string     `json:"email"`
	Name         string     `json:"name,omitempty"`
	PasswordHash string     `json:"-"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
