package update

import "context"

// Repository defines the interface for progress update data access
type Repository interface {
	// Create creates a new update with its photos
	Create(ctx context.Context, u *Update) (int64, error)

	// GetByID retrieves an update with photos by ID within a project
	GetByID(ctx context.Context, projectID, id int64) (*Update, error)

	// Update updates an update's title and body
	Update(ctx context.Context, u *Update) error

	// Delete deletes an update and its photos
	Delete(ctx context.Context, projectID, id int64) error

	// ListByProject retrieves updates of a project, newest first
	ListByProject(ctx context.Context, projectID int64, limit, offset int) ([]*Update, int64, error)

	// AddPhoto attaches a photo to an existing update
	AddPhoto(ctx context.Context, p *Photo) error
}

// Service defines the interface for progress update business logic
type Service interface {
	Create(ctx context.Context, userID int64, u *Update) (int64, error)
	GetByID(ctx context.Context, userID, projectID, id int64) (*Update, error)
	Delete(ctx context.Context, userID, projectID, id int64) error
	ListByProject(ctx context.Context, userID, projectID int64, limit, offset int) ([]*Update, int64, error)
	AddPhoto(ctx context.Context, userID, projectID, updateID int64, url, caption string) (*Photo, error)
}
