package task

import "context"

// Repository defines the interface for task data access
type Repository interface {
	// Create creates a new task
	Create(ctx context.Context, t *Task) (int64, error)

	// GetByID retrieves a task by ID within a project
	GetByID(ctx context.Context, projectID, id int64) (*Task, error)

	// Update updates a task
	Update(ctx context.Context, t *Task) error

	// Delete deletes a task
	Delete(ctx context.Context, projectID, id int64) error

	// ListByProject retrieves all tasks of a project
	ListByProject(ctx context.Context, projectID int64) ([]*Task, error)

	// CountOpenForUser counts tasks not yet done across a contractor's projects
	CountOpenForUser(ctx context.Context, userID int64) (int, error)
}

// Service defines the interface for task business logic
type Service interface {
	Create(ctx context.Context, userID int64, t *Task) (int64, error)
	GetByID(ctx context.Context, userID, projectID, id int64) (*Task, error)
	Update(ctx context.Context, userID int64, t *Task) error
	Delete(ctx context.Context, userID, projectID, id int64) error
	ListByProject(ctx context.Context, userID, projectID int64) ([]*Task, error)
}
