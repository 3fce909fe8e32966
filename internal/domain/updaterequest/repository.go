package updaterequest

import "context"

// Repository defines the interface for update request data access
type Repository interface {
	// Create creates a new request in pending status
	Create(ctx context.Context, r *Request) (int64, error)

	// GetByID retrieves a request by ID
	GetByID(ctx context.Context, id int64) (*Request, error)

	// Update writes status and reply
	Update(ctx context.Context, r *Request) error

	// ListForUser retrieves requests across a contractor's projects
	ListForUser(ctx context.Context, userID int64, status string, limit, offset int) ([]*Request, int64, error)

	// ListByPortalUser retrieves requests created by one portal user
	ListByPortalUser(ctx context.Context, portalUserID int64) ([]*Request, error)

	// CountPendingForUser counts pending requests for a contractor
	CountPendingForUser(ctx context.Context, userID int64) (int, error)
}

// Service defines the interface for update request business logic
type Service interface {
	// Create files a new request against a project on behalf of a portal user
	Create(ctx context.Context, portalUserID, clientID, projectID int64, question string) (int64, error)

	// Get retrieves a request, verifying contractor ownership
	Get(ctx context.Context, userID, id int64) (*Request, error)

	// SetStatus moves a request to any known status
	SetStatus(ctx context.Context, userID, id int64, status string) error

	// SetReply sets the contractor's free-text reply, independent of status
	SetReply(ctx context.Context, userID, id int64, reply string) error

	// ListForUser retrieves requests across a contractor's projects
	ListForUser(ctx context.Context, userID int64, status string, limit, offset int) ([]*Request, int64, error)

	// ListByPortalUser retrieves requests created by one portal user
	ListByPortalUser(ctx context.Context, portalUserID int64) ([]*Request, error)
}
