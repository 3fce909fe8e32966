package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hfletcher/jobsite/internal/domain/project"
	"github.com/hfletcher/jobsite/internal/pkg/errors"
)

// ProjectRepository implements project.Repository
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sql.DB) project.Repository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, user_id, client_id, name, description, address, status,
	start_date, end_date, accounting_estimate_id, created_at, updated_at`

// Create creates a new project
func (r *ProjectRepository) Create(ctx context.Context, p *project.Project) (int64, error) {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = project.StatusPlanning
	}

	query := `
		INSERT INTO projects (user_id, client_id, name, description, address, status,
			start_date, end_date, accounting_estimate_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		p.UserID, p.ClientID, p.Name, p.Description, p.Address, p.Status,
		nullableUnix(p.StartDate), nullableUnix(p.EndDate), p.AccountingEstimateID,
		now.Unix(), now.Unix(),
	).Scan(&p.ID)
	if err != nil {
		return 0, errors.DatabaseError("Failed to create project", err)
	}
	return p.ID, nil
}

func scanProject(scan func(dest ...interface{}) error) (*project.Project, error) {
	var p project.Project
	var startDate, endDate sql.NullInt64
	var createdAt, updatedAt int64

	err := scan(
		&p.ID, &p.UserID, &p.ClientID, &p.Name, &p.Description, &p.Address, &p.Status,
		&startDate, &endDate, &p.AccountingEstimateID, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.StartDate = timeFromUnix(startDate)
	p.EndDate = timeFromUnix(endDate)
	p.CreatedAt = time.Unix(createdAt, 0)
	p.UpdatedAt = time.Unix(updatedAt, 0)
	return &p, nil
}

// GetByID retrieves a project by ID, scoped to the owning contractor
func (r *ProjectRepository) GetByID(ctx context.Context, userID, id int64) (*project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE user_id = $1 AND id = $2`

	p, err := scanProject(r.db.QueryRowContext(ctx, query, userID, id).Scan)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Project")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get project", err)
	}
	return p, nil
}

// Update updates a project
func (r *ProjectRepository) Update(ctx context.Context, p *project.Project) error {
	p.UpdatedAt = time.Now()

	query := `
		UPDATE projects
		SET client_id = $1, name = $2, description = $3, address = $4, status = $5,
			start_date = $6, end_date = $7, updated_at = $8
		WHERE user_id = $9 AND id = $10
	`

	result, err := r.db.ExecContext(ctx, query,
		p.ClientID, p.Name, p.Description, p.Address, p.Status,
		nullableUnix(p.StartDate), nullableUnix(p.EndDate), p.UpdatedAt.Unix(),
		p.UserID, p.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update project", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Project")
	}
	return nil
}

// Delete deletes a project
func (r *ProjectRepository) Delete(ctx context.Context, userID, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete project", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Project")
	}
	return nil
}

// List retrieves projects with filters and pagination
func (r *ProjectRepository) List(ctx context.Context, userID int64, filter project.Filter, limit, offset int) ([]*project.Project, int64, error) {
	where := `WHERE user_id = $1`
	args := []interface{}{userID}

	if filter.ClientID != 0 {
		args = append(args, filter.ClientID)
		where += fmt.Sprintf(" AND client_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM projects `+where, args...).Scan(&total); err != nil {
		return nil, 0, errors.DatabaseError("Failed to count projects", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM projects %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		projectColumns, where, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list projects", err)
	}
	defer rows.Close()

	var out []*project.Project
	for rows.Next() {
		p, err := scanProject(rows.Scan)
		if err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan project", err)
		}
		out = append(out, p)
	}

	return out, total, rows.Err()
}

// ListByClient retrieves all projects belonging to one client
func (r *ProjectRepository) ListByClient(ctx context.Context, clientID int64) ([]*project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE client_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list projects by client", err)
	}
	defer rows.Close()

	var out []*project.Project
	for rows.Next() {
		p, err := scanProject(rows.Scan)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan project", err)
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

// SetAccountingEstimateID records the accounting estimate id
func (r *ProjectRepository) SetAccountingEstimateID(ctx context.Context, projectID int64, estimateID string) error {
	query := `UPDATE projects SET accounting_estimate_id = $1, updated_at = $2 WHERE id = $3`
	if _, err := r.db.ExecContext(ctx, query, estimateID, time.Now().Unix(), projectID); err != nil {
		return errors.DatabaseError("Failed to save estimate reference", err)
	}
	return nil
}

// CountByStatus counts projects by status for one contractor
func (r *ProjectRepository) CountByStatus(ctx context.Context, userID int64) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT status, COUNT(1) FROM projects WHERE user_id = $1 GROUP BY status`, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to count projects", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, errors.DatabaseError("Failed to scan count", err)
		}
		counts[status] = count
	}

	return counts, rows.Err()
}
