package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/hfletcher/jobsite/internal/domain/budget"
	"github.com/hfletcher/jobsite/internal/pkg/errors"
)

// BudgetRepository implements budget.Repository
type BudgetRepository struct {
	db *sql.DB
}

// NewBudgetRepository creates a new budget repository
func NewBudgetRepository(db *sql.DB) budget.Repository {
	return &BudgetRepository{db: db}
}

// Create creates a new budget item
func (r *BudgetRepository) Create(ctx context.Context, item *budget.Item) (int64, error) {
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	query := `
		INSERT INTO budget_items (project_id, category, description, estimated_cents, actual_cents, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		item.ProjectID, item.Category, item.Description, item.EstimatedCents, item.ActualCents, now.Unix(), now.Unix(),
	).Scan(&item.ID)
	if err != nil {
		return 0, errors.DatabaseError("Failed to create budget item", err)
	}
	return item.ID, nil
}

// GetByID retrieves a budget item by ID within a project
func (r *BudgetRepository) GetByID(ctx context.Context, projectID, id int64) (*budget.Item, error) {
	query := `
		SELECT id, project_id, category, description, estimated_cents, actual_cents, created_at, updated_at
		FROM budget_items WHERE project_id = $1 AND id = $2
	`

	var item budget.Item
	var createdAt, updatedAt int64

	err := r.db.QueryRowContext(ctx, query, projectID, id).Scan(
		&item.ID, &item.ProjectID, &item.Category, &item.Description,
		&item.EstimatedCents, &item.ActualCents, &createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Budget item")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get budget item", err)
	}

	item.CreatedAt = time.Unix(createdAt, 0)
	item.UpdatedAt = time.Unix(updatedAt, 0)
	return &item, nil
}

// Update updates a budget item
func (r *BudgetRepository) Update(ctx context.Context, item *budget.Item) error {
	item.UpdatedAt = time.Now()

	query := `
		UPDATE budget_items
		SET category = $1, description = $2, estimated_cents = $3, actual_cents = $4, updated_at = $5
		WHERE project_id = $6 AND id = $7
	`

	result, err := r.db.ExecContext(ctx, query,
		item.Category, item.Description, item.EstimatedCents, item.ActualCents,
		item.UpdatedAt.Unix(), item.ProjectID, item.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update budget item", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Budget item")
	}
	return nil
}

// Delete deletes a budget item
func (r *BudgetRepository) Delete(ctx context.Context, projectID, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM budget_items WHERE project_id = $1 AND id = $2`, projectID, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete budget item", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Budget item")
	}
	return nil
}

// ListByProject retrieves all budget items of a project
func (r *BudgetRepository) ListByProject(ctx context.Context, projectID int64) ([]*budget.Item, error) {
	query := `
		SELECT id, project_id, category, description, estimated_cents, actual_cents, created_at, updated_at
		FROM budget_items WHERE project_id = $1 ORDER BY category, created_at
	`

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list budget items", err)
	}
	defer rows.Close()

	var out []*budget.Item
	for rows.Next() {
		var item budget.Item
		var createdAt, updatedAt int64
		if err := rows.Scan(&item.ID, &item.ProjectID, &item.Category, &item.Description,
			&item.EstimatedCents, &item.ActualCents, &createdAt, &updatedAt); err != nil {
			return nil, errors.DatabaseError("Failed to scan budget item", err)
		}
		item.CreatedAt = time.Unix(createdAt, 0)
		item.UpdatedAt = time.Unix(updatedAt, 0)
		out = append(out, &item)
	}

	return out, rows.Err()
}

// TotalsByProject sums estimated and actual amounts for a project
func (r *BudgetRepository) TotalsByProject(ctx context.Context, projectID int64) (budget.Totals, error) {
	query := `
		SELECT COALESCE(SUM(estimated_cents), 0), COALESCE(SUM(actual_cents), 0)
		FROM budget_items WHERE project_id = $1
	`

	var t budget.Totals
	if err := r.db.QueryRowContext(ctx, query, projectID).Scan(&t.EstimatedCents, &t.ActualCents); err != nil {
		return budget.Totals{}, errors.DatabaseError("Failed to total budget", err)
	}
	return t, nil
}

// TotalsForUser sums amounts across a contractor's projects
func (r *BudgetRepository) TotalsForUser(ctx context.Context, userID int64) (budget.Totals, error) {
	query := `
		SELECT COALESCE(SUM(b.estimated_cents), 0), COALESCE(SUM(b.actual_cents), 0)
		FROM budget_items b
		JOIN projects p ON p.id = b.project_id
		WHERE p.user_id = $1
	`

	var t budget.Totals
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&t.EstimatedCents, &t.ActualCents); err != nil {
		return budget.Totals{}, errors.DatabaseError("Failed to total budget", err)
	}
	return t, nil
}
