package services

import (
	"context"

	"github.com/hfletcher/jobsite/internal/domain/project"
	"github.com/hfletcher/jobsite/internal/domain/task"
	"github.com/hfletcher/jobsite/internal/pkg/errors"
	"github.com/hfletcher/jobsite/internal/pkg/logger"
)

// TaskService implements task.Service. Tasks are keyed by project, so
// every operation resolves the project first to enforce tenancy.
type TaskService struct {
	repo     task.Repository
	projects project.Repository
	logger   *logger.Logger
}

// NewTaskService creates a new task service
func NewTaskService(repo task.Repository, projects project.Repository, log *logger.Logger) task.Service {
	return &TaskService{
		repo:     repo,
		projects: projects,
		logger:   log,
	}
}

func (s *TaskService) ownProject(ctx context.Context, userID, projectID int64) error {
	if _, err := s.projects.GetByID(ctx, userID, projectID); err != nil {
		return err
	}
	return nil
}

// Create creates a new task
func (s *TaskService) Create(ctx context.Context, userID int64, t *task.Task) (int64, error) {
	if err := s.ownProject(ctx, userID, t.ProjectID); err != nil {
		return 0, err
	}

	if t.Status != "" && t.Status != task.StatusTodo && t.Status != task.StatusInProgress && t.Status != task.StatusDone {
		return 0, errors.BadRequest("Unknown task status")
	}

	return s.repo.Create(ctx, t)
}

// GetByID retrieves a task by ID
func (s *TaskService) GetByID(ctx context.Context, userID, projectID, id int64) (*task.Task, error) {
	if err := s.ownProject(ctx, userID, projectID); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, projectID, id)
}

// Update updates a task
func (s *TaskService) Update(ctx context.Context, userID int64, t *task.Task) error {
	if err := s.ownProject(ctx, userID, t.ProjectID); err != nil {
		return err
	}

	if t.Status != task.StatusTodo && t.Status != task.StatusInProgress && t.Status != task.StatusDone {
		return errors.BadRequest("Unknown task status")
	}

	return s.repo.Update(ctx, t)
}

// Delete deletes a task
func (s *TaskService) Delete(ctx context.Context, userID, projectID, id int64) error {
	if err := s.ownProject(ctx, userID, projectID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, projectID, id)
}

// ListByProject retrieves all tasks of a project
func (s *TaskService) ListByProject(ctx context.Context, userID, projectID int64) ([]*task.Task, error) {
	if err := s.ownProject(ctx, userID, projectID); err != nil {
		return nil, err
	}
	return s.repo.ListByProject(ctx, projectID)
}
