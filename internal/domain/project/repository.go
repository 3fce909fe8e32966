package project

import "context"

// Repository defines the interface for project data access
type Repository interface {
	// Create creates a new project
	Create(ctx context.Context, p *Project) (int64, error)

	// GetByID retrieves a project by ID, scoped to the owning contractor
	GetByID(ctx context.Context, userID, id int64) (*Project, error)

	// Update updates a project
	Update(ctx context.Context, p *Project) error

	// Delete deletes a project
	Delete(ctx context.Context, userID, id int64) error

	// List retrieves projects with filters and pagination
	List(ctx context.Context, userID int64, filter Filter, limit, offset int) ([]*Project, int64, error)

	// ListByClient retrieves all projects belonging to one client
	ListByClient(ctx context.Context, clientID int64) ([]*Project, error)

	// SetAccountingEstimateID records the accounting estimate id
	SetAccountingEstimateID(ctx context.Context, projectID int64, estimateID string) error

	// CountByStatus counts projects by status for one contractor
	CountByStatus(ctx context.Context, userID int64) (map[string]int, error)
}

// Service defines the interface for project business logic
type Service interface {
	Create(ctx context.Context, p *Project) (int64, error)
	GetByID(ctx context.Context, userID, id int64) (*Project, error)
	Update(ctx context.Context, userID int64, p *Project) error
	Delete(ctx context.Context, userID, id int64) error
	List(ctx context.Context, userID int64, filter Filter, limit, offset int) ([]*Project, int64, error)
}
