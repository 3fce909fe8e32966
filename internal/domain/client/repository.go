package client

import "context"

// Repository defines the interface for client data access
type Repository interface {
	// Create creates a new client
	Create(ctx context.Context, c *Client) (int64, error)

	// GetByID retrieves a client by ID, scoped to the owning contractor
	GetByID(ctx context.Context, userID, id int64) (*Client, error)

	// Update updates a client
	Update(ctx context.Context, c *Client) error

	// Delete deletes a client
	Delete(ctx context.Context, userID, id int64) error

	// List retrieves clients with pagination
	List(ctx context.Context, userID int64, limit, offset int) ([]*Client, int64, error)

	// SetAccountingID records the accounting platform id for a client
	SetAccountingID(ctx context.Context, clientID int64, externalID string) error

	// GetAccountingID returns the accounting platform id for a client,
	// or empty if the client was never pushed
	GetAccountingID(ctx context.Context, clientID int64) (string, error)
}

// Service defines the interface for client business logic
type Service interface {
	Create(ctx context.Context, c *Client) (int64, error)
	GetByID(ctx context.Context, userID, id int64) (*Client, error)
	Update(ctx context.Context, userID int64, c *Client) error
	Delete(ctx context.Context, userID, id int64) error
	List(ctx context.Context, userID int64, limit, offset int) ([]*Client, int64, error)
}
