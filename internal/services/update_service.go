package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/hfletcher/jobsite/internal/domain/project"
	"github.com/hfletcher/jobsite/internal/domain/update"
	"github.com/hfletcher/jobsite/internal/pkg/errors"
	"github.com/hfletcher/jobsite/internal/pkg/logger"
)

// UpdateService implements update.Service
type UpdateService struct {
	repo     update.Repository
	projects project.Repository
	logger   *logger.Logger
}

// NewUpdateService creates a new progress update service
func NewUpdateService(repo update.Repository, projects project.Repository, log *logger.Logger) update.Service {
	return &UpdateService{
		repo:     repo,
		projects: projects,
		logger:   log,
	}
}

// Create creates a new update with its photos
func (s *UpdateService) Create(ctx context.Context, userID int64, u *update.Update) (int64, error) {
	if _, err := s.projects.GetByID(ctx, userID, u.ProjectID); err != nil {
		return 0, err
	}
	if u.Title == "" {
		return 0, errors.BadRequest("Update title is required")
	}

	for i := range u.Photos {
		if u.Photos[i].ID == "" {
			u.Photos[i].ID = uuid.NewString()
		}
	}

	id, err := s.repo.Create(ctx, u)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to create update")
		return 0, err
	}

	s.logger.WithFields(map[string]interface{}{
		"update_id":  id,
		"project_id": u.ProjectID,
		"photos":     len(u.Photos),
	}).Info("Progress update posted")

	return id, nil
}

// GetByID retrieves an update by ID
func (s *UpdateService) GetByID(ctx context.Context, userID, projectID, id int64) (*update.Update, error) {
	if _, err := s.projects.GetByID(ctx, userID, projectID); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, projectID, id)
}

// Delete deletes an update and its photos
func (s *UpdateService) Delete(ctx context.Context, userID, projectID, id int64) error {
	if _, err := s.projects.GetByID(ctx, userID, projectID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, projectID, id)
}

// ListByProject retrieves updates of a project, newest first
func (s *UpdateService) ListByProject(ctx context.Context, userID, projectID int64, limit, offset int) ([]*update.Update, int64, error) {
	if _, err := s.projects.GetByID(ctx, userID, projectID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListByProject(ctx, projectID, limit, offset)
}

// AddPhoto attaches a photo to an existing update
func (s *UpdateService) AddPhoto(ctx context.Context, userID, projectID, updateID int64, url, caption string) (*update.Photo, error) {
	if _, err := s.projects.GetByID(ctx, userID, projectID); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(ctx, projectID, updateID); err != nil {
		return nil, err
	}
	if url == "" {
		return nil, errors.BadRequest("Photo URL is required")
	}

	p := &update.Photo{
		ID:       uuid.NewString(),
		UpdateID: updateID,
		URL:      url,
		Caption:  caption,
	}
	if err := s.repo.AddPhoto(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
