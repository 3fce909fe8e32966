package user

import "context"

// Repository defines the interface for user data access
type Repository interface {
	// Create creates a new user
	Create(ctx context.Context, u *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByProcessorCustomer retrieves a user by processor customer id
	GetByProcessorCustomer(ctx context.Context, customerID string) (*User, error)

	// Update updates a user
	Update(ctx context.Context, u *User) error

	// SaveProcessorRefs persists the processor customer/subscription ids
	SaveProcessorRefs(ctx context.Context, userID int64, customerID, subscriptionID string) error

	// SetSubscriptionState flips the entitlement-relevant billing flags.
	// The write is idempotent: setting a flag to its current value is a no-op.
	SetSubscriptionState(ctx context.Context, userID int64, active, setupPaid bool) error

	// Delete deletes a user
	Delete(ctx context.Context, id int64) error

	// List retrieves users with pagination
	List(ctx context.Context, limit, offset int) ([]*User, int64, error)

	// ListOnTrial retrieves users without an active subscription.
	// Their access derives entirely from the trial window.
	ListOnTrial(ctx context.Context) ([]*User, error)
}
