package client

import "time"

// Client represents an end-client of a contractor
type Client struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// AccountingRef links a client to its record on the accounting platform.
// Empty until the client has been pushed at least once.
type AccountingRef struct {
	ClientID   int64  `json:"client_id"`
	ExternalID string `json:"external_id"`
}
