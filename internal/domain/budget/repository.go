package budget

import "context"

// Repository defines the interface for budget data access
type Repository interface {
	// Create creates a new budget item
	Create(ctx context.Context, item *Item) (int64, error)

	// GetByID retrieves a budget item by ID within a project
	GetByID(ctx context.Context, projectID, id int64) (*Item, error)

	// Update updates a budget item
	Update(ctx context.Context, item *Item) error

	// Delete deletes a budget item
	Delete(ctx context.Context, projectID, id int64) error

	// ListByProject retrieves all budget items of a project
	ListByProject(ctx context.Context, projectID int64) ([]*Item, error)

	// TotalsByProject sums estimated and actual amounts for a project
	TotalsByProject(ctx context.Context, projectID int64) (Totals, error)

	// TotalsForUser sums amounts across a contractor's projects
	TotalsForUser(ctx context.Context, userID int64) (Totals, error)
}

// Service defines the interface for budget business logic
type Service interface {
	Create(ctx context.Context, userID int64, item *Item) (int64, error)
	Update(ctx context.Context, userID int64, item *Item) error
	Delete(ctx context.Context, userID, projectID, id int64) error
	ListByProject(ctx context.Context, userID, projectID int64) ([]*Item, Totals, error)
}
