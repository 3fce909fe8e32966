package services

import (
	"context"

	"github.com/hfletcher/jobsite/internal/domain/budget"
	"github.com/hfletcher/jobsite/internal/domain/project"
	"github.com/hfletcher/jobsite/internal/domain/task"
	"github.com/hfletcher/jobsite/internal/domain/updaterequest"
	"github.com/hfletcher/jobsite/internal/pkg/logger"
)

// DashboardStats is the contractor's home screen summary
type DashboardStats struct {
	ProjectsByStatus      map[string]int `json:"projects_by_status"`
	ActiveProjects        int            `json:"active_projects"`
	OpenTasks             int            `json:"open_tasks"`
	PendingUpdateRequests int            `json:"pending_update_requests"`
	BudgetTotals          budget.Totals  `json:"budget_totals"`
}

// DashboardService aggregates per-tenant counts for the home screen
type DashboardService struct {
	projects project.Repository
	tasks    task.Repository
	requests updaterequest.Repository
	budgets  budget.Repository
	logger   *logger.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	projects project.Repository,
	tasks task.Repository,
	requests updaterequest.Repository,
	budgets budget.Repository,
	log *logger.Logger,
) *DashboardService {
	return &DashboardService{
		projects: projects,
		tasks:    tasks,
		requests: requests,
		budgets:  budgets,
		logger:   log,
	}
}

// Stats computes the dashboard aggregates for one contractor
func (s *DashboardService) Stats(ctx context.Context, userID int64) (*DashboardStats, error) {
	byStatus, err := s.projects.CountByStatus(ctx, userID)
	if err != nil {
		return nil, err
	}

	openTasks, err := s.tasks.CountOpenForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	pending, err := s.requests.CountPendingForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	totals, err := s.budgets.TotalsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		ProjectsByStatus:      byStatus,
		ActiveProjects:        byStatus[project.StatusActive],
		OpenTasks:             openTasks,
		PendingUpdateRequests: pending,
		BudgetTotals:          totals,
	}, nil
}
