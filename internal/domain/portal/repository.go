package portal

import (
	"context"
	"time"
)

// Repository defines the interface for portal user data access
type Repository interface {
	// Create creates a new portal user
	Create(ctx context.Context, p *PortalUser) (int64, error)

	// GetByID retrieves a portal user by ID
	GetByID(ctx context.Context, id int64) (*PortalUser, error)

	// GetByEmail retrieves a portal user by email
	GetByEmail(ctx context.Context, email string) (*PortalUser, error)

	// ListByClient retrieves portal users of a client
	ListByClient(ctx context.Context, clientID int64) ([]*PortalUser, error)

	// SetLastLogin records a successful login
	SetLastLogin(ctx context.Context, id int64, at time.Time) error

	// Delete deletes a portal user
	Delete(ctx context.Context, clientID, id int64) error
}
