package accounting

import "context"

// Repository defines the interface for accounting connection storage
type Repository interface {
	// Get retrieves the connection for a user; NotFound when disconnected
	Get(ctx context.Context, userID int64) (*Connection, error)

	// Save upserts the connection for a user in one statement
	Save(ctx context.Context, c *Connection) error

	// Delete removes the connection, returning the user to disconnected
	Delete(ctx context.Context, userID int64) error
}
