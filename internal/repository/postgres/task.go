package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/hfletcher/jobsite/internal/domain/task"
	"github.com/hfletcher/jobsite/internal/pkg/errors"
)

// TaskRepository implements task.Repository
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sql.DB) task.Repository {
	return &TaskRepository{db: db}
}

// Create creates a new task
func (r *TaskRepository) Create(ctx context.Context, t *task.Task) (int64, error) {
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Status == "" {
		t.Status = task.StatusTodo
	}

	query := `
		INSERT INTO tasks (project_id, title, description, status, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		t.ProjectID, t.Title, t.Description, t.Status, nullableUnix(t.DueDate), now.Unix(), now.Unix(),
	).Scan(&t.ID)
	if err != nil {
		return 0, errors.DatabaseError("Failed to create task", err)
	}
	return t.ID, nil
}

// GetByID retrieves a task by ID within a project
func (r *TaskRepository) GetByID(ctx context.Context, projectID, id int64) (*task.Task, error) {
	query := `
		SELECT id, project_id, title, description, status, due_date, created_at, updated_at
		FROM tasks WHERE project_id = $1 AND id = $2
	`

	var t task.Task
	var dueDate sql.NullInt64
	var createdAt, updatedAt int64

	err := r.db.QueryRowContext(ctx, query, projectID, id).Scan(
		&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Status, &dueDate, &createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Task")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get task", err)
	}

	t.DueDate = timeFromUnix(dueDate)
	t.CreatedAt = time.Unix(createdAt, 0)
	t.UpdatedAt = time.Unix(updatedAt, 0)
	return &t, nil
}

// Update updates a task
func (r *TaskRepository) Update(ctx context.Context, t *task.Task) error {
	t.UpdatedAt = time.Now()

	query := `
		UPDATE tasks
		SET title = $1, description = $2, status = $3, due_date = $4, updated_at = $5
		WHERE project_id = $6 AND id = $7
	`

	result, err := r.db.ExecContext(ctx, query,
		t.Title, t.Description, t.Status, nullableUnix(t.DueDate), t.UpdatedAt.Unix(), t.ProjectID, t.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update task", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Task")
	}
	return nil
}

// Delete deletes a task
func (r *TaskRepository) Delete(ctx context.Context, projectID, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE project_id = $1 AND id = $2`, projectID, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete task", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Task")
	}
	return nil
}

// ListByProject retrieves all tasks of a project
func (r *TaskRepository) ListByProject(ctx context.Context, projectID int64) ([]*task.Task, error) {
	query := `
		SELECT id, project_id, title, description, status, due_date, created_at, updated_at
		FROM tasks WHERE project_id = $1 ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list tasks", err)
	}
	defer rows.Close()

	var out []*task.Task
	for rows.Next() {
		var t task.Task
		var dueDate sql.NullInt64
		var createdAt, updatedAt int64
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Status, &dueDate, &createdAt, &updatedAt); err != nil {
			return nil, errors.DatabaseError("Failed to scan task", err)
		}
		t.DueDate = timeFromUnix(dueDate)
		t.CreatedAt = time.Unix(createdAt, 0)
		t.UpdatedAt = time.Unix(updatedAt, 0)
		out = append(out, &t)
	}

	return out, rows.Err()
}

// CountOpenForUser counts tasks not yet done across a contractor's projects
func (r *TaskRepository) CountOpenForUser(ctx context.Context, userID int64) (int, error) {
	query := `
		SELECT COUNT(1) FROM tasks t
		JOIN projects p ON p.id = t.project_id
		WHERE p.user_id = $1 AND t.status != $2
	`

	var count int
	if err := r.db.QueryRowContext(ctx, query, userID, task.StatusDone).Scan(&count); err != nil {
		return 0, errors.DatabaseError("Failed to count open tasks", err)
	}
	return count, nil
}
