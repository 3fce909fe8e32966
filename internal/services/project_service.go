package services

import (
	"context"

	"github.com/hfletcher/jobsite/internal/domain/client"
	"github.com/hfletcher/jobsite/internal/domain/project"
	"github.com/hfletcher/jobsite/internal/pkg/errors"
	"github.com/hfletcher/jobsite/internal/pkg/logger"
)

// ProjectService implements project.Service
type ProjectService struct {
	repo    project.Repository
	clients client.Repository
	logger  *logger.Logger
}

// NewProjectService creates a new project service
func NewProjectService(repo project.Repository, clients client.Repository, log *logger.Logger) project.Service {
	return &ProjectService{
		repo:    repo,
		clients: clients,
		logger:  log,
	}
}

// Create creates a new project. The client must belong to the same
// contractor; cross-tenant references are rejected before the insert.
func (s *ProjectService) Create(ctx context.Context, p *project.Project) (int64, error) {
	if _, err := s.clients.GetByID(ctx, p.UserID, p.ClientID); err != nil {
		return 0, errors.BadRequest("Client not found for this account")
	}

	if p.Status == "" {
		p.Status = project.StatusPlanning
	}

	id, err := s.repo.Create(ctx, p)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to create project")
		return 0, err
	}

	s.logger.WithFields(map[string]interface{}{
		"project_id": id,
		"user_id":    p.UserID,
		"client_id":  p.ClientID,
	}).Info("Project created")

	return id, nil
}

// GetByID retrieves a project by ID
func (s *ProjectService) GetByID(ctx context.Context, userID, id int64) (*project.Project, error) {
	return s.repo.GetByID(ctx, userID, id)
}

// Update updates a project after verifying ownership
func (s *ProjectService) Update(ctx context.Context, userID int64, p *project.Project) error {
	existing, err := s.repo.GetByID(ctx, userID, p.ID)
	if err != nil {
		return err
	}

	if p.ClientID != existing.ClientID {
		if _, err := s.clients.GetByID(ctx, userID, p.ClientID); err != nil {
			return errors.BadRequest("Client not found for this account")
		}
	}

	p.UserID = userID
	return s.repo.Update(ctx, p)
}

// Delete deletes a project
func (s *ProjectService) Delete(ctx context.Context, userID, id int64) error {
	return s.repo.Delete(ctx, userID, id)
}

// List retrieves projects with filters and pagination
func (s *ProjectService) List(ctx context.Context, userID int64, filter project.Filter, limit, offset int) ([]*project.Project, int64, error) {
	return s.repo.List(ctx, userID, filter, limit, offset)
}
