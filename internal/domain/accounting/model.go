package accounting

import "time"

// Connection holds the OAuth token pair for one contractor's link to
// the accounting platform. A user without a row (or with a cleared
// row) is disconnected.
type Connection struct {
	UserID       int64     `json:"user_id"`
	RealmID      string    `json:"realm_id"`
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

// Expired reports whether the access token is past its expiry at now.
// A small skew margin avoids using a token that dies mid-request.
func (c *Connection) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt.Add(-30 * time.Second))
}
