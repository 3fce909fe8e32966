package dto

import "time"

// AccountingStatusDTO reports the accounting connection state
type AccountingStatusDTO struct {
	Connected bool       `json:"connected"`
	RealmID   string     `json:"realm_id,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// AccountingSyncResponse returns the external id created by a push
type AccountingSyncResponse struct {
	ExternalID string `json:"external_id"`
}
