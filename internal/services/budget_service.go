package services

import (
	"context"

	"github.com/hfletcher/jobsite/internal/domain/budget"
	"github.com/hfletcher/jobsite/internal/domain/project"
	"github.com/hfletcher/jobsite/internal/pkg/errors"
	"github.com/hfletcher/jobsite/internal/pkg/logger"
)

// BudgetService implements budget.Service
type BudgetService struct {
	repo     budget.Repository
	projects project.Repository
	logger   *logger.Logger
}

// NewBudgetService creates a new budget service
func NewBudgetService(repo budget.Repository, projects project.Repository, log *logger.Logger) budget.Service {
	return &BudgetService{
		repo:     repo,
		projects: projects,
		logger:   log,
	}
}

func validCategory(c string) bool {
	switch c {
	case budget.CategoryLabor, budget.CategoryMaterials, budget.CategoryPermits, budget.CategorySubs, budget.CategoryOther:
		return true
	}
	return false
}

// Create creates a new budget item
func (s *BudgetService) Create(ctx context.Context, userID int64, item *budget.Item) (int64, error) {
	if _, err := s.projects.GetByID(ctx, userID, item.ProjectID); err != nil {
		return 0, err
	}
	if !validCategory(item.Category) {
		return 0, errors.BadRequest("Unknown budget category")
	}
	if item.EstimatedCents < 0 || item.ActualCents < 0 {
		return 0, errors.BadRequest("Amounts cannot be negative")
	}
	return s.repo.Create(ctx, item)
}

// Update updates a budget item
func (s *BudgetService) Update(ctx context.Context, userID int64, item *budget.Item) error {
	if _, err := s.projects.GetByID(ctx, userID, item.ProjectID); err != nil {
		return err
	}
	if !validCategory(item.Category) {
		return errors.BadRequest("Unknown budget category")
	}
	if item.EstimatedCents < 0 || item.ActualCents < 0 {
		return errors.BadRequest("Amounts cannot be negative")
	}
	return s.repo.Update(ctx, item)
}

// Delete deletes a budget item
func (s *BudgetService) Delete(ctx context.Context, userID, projectID, id int64) error {
	if _, err := s.projects.GetByID(ctx, userID, projectID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, projectID, id)
}

// ListByProject retrieves budget items with project totals
func (s *BudgetService) ListByProject(ctx context.Context, userID, projectID int64) ([]*budget.Item, budget.Totals, error) {
	if _, err := s.projects.GetByID(ctx, userID, projectID); err != nil {
		return nil, budget.Totals{}, err
	}

	items, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, budget.Totals{}, err
	}

	totals, err := s.repo.TotalsByProject(ctx, projectID)
	if err != nil {
		return nil, budget.Totals{}, err
	}

	return items, totals, nil
}
