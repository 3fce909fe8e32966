package dto

// PortalLoginRequest represents a portal login request
type PortalLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// PortalAuthResponse carries the portal access token
type PortalAuthResponse struct {
	AccessToken string `json:"accessToken"`
	ClientID    int64  `json:"client_id"`
	Name        string `json:"name,omitempty"`
}

// PortalInviteRequest creates a portal login for a client
type PortalInviteRequest struct {
	ClientID int64  `json:"client_id" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name,omitempty" validate:"omitempty,max=200"`
	Password string `json:"password" validate:"required,min=8"`
}

// CreateUpdateRequestRequest files a question from the portal
type CreateUpdateRequestRequest struct {
	ProjectID int64  `json:"project_id" validate:"required"`
	Question  string `json:"question" validate:"required,max=2000"`
}

// SetRequestStatusRequest moves an update request to a new status
type SetRequestStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending reviewed completed"`
}

// SetRequestReplyRequest sets the contractor's reply on a request
type SetRequestReplyRequest struct {
	Reply string `json:"reply" validate:"max=5000"`
}
