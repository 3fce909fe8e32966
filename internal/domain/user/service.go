package user

import (
	"context"
	"time"
)

// Service defines the interface for user business logic
type Service interface {
	// Register creates a new account with a fresh trial window
	Register(ctx context.Context, email, username, password string, fullName *string) (*User, error)

	// Authenticate verifies credentials and returns the user
	Authenticate(ctx context.Context, email, password string) (*User, error)

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Update updates a user
	Update(ctx context.Context, u *User) error

	// Entitlement computes the derived access state for a user at now
	Entitlement(ctx context.Context, userID int64, now time.Time) (Entitlement, error)
}
