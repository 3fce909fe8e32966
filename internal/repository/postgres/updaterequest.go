package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/hfletcher/jobsite/internal/domain/updaterequest"
	"github.com/hfletcher/jobsite/internal/pkg/errors"
)

// UpdateRequestRepository implements updaterequest.Repository
type UpdateRequestRepository struct {
	db *sql.DB
}

// NewUpdateRequestRepository creates a new update request repository
func NewUpdateRequestRepository(db *sql.DB) updaterequest.Repository {
	return &UpdateRequestRepository{db: db}
}

// Create creates a new request in pending status
func (r *UpdateRequestRepository) Create(ctx context.Context, req *updaterequest.Request) (int64, error) {
	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now
	req.Status = updaterequest.StatusPending

	query := `
		INSERT INTO update_requests (project_id, portal_user_id, question, status, reply, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		req.ProjectID, req.PortalUserID, req.Question, req.Status, req.Reply, now.Unix(), now.Unix(),
	).Scan(&req.ID)
	if err != nil {
		return 0, errors.DatabaseError("Failed to create update request", err)
	}
	return req.ID, nil
}

// GetByID retrieves a request by ID
func (r *UpdateRequestRepository) GetByID(ctx context.Context, id int64) (*updaterequest.Request, error) {
	query := `
		SELECT id, project_id, portal_user_id, question, status, reply, created_at, updated_at
		FROM update_requests WHERE id = $1
	`

	req, err := scanRequest(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Update request")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get update request", err)
	}
	return req, nil
}

// Update writes status and reply
func (r *UpdateRequestRepository) Update(ctx context.Context, req *updaterequest.Request) error {
	req.UpdatedAt = time.Now()

	query := `
		UPDATE update_requests SET status = $1, reply = $2, updated_at = $3 WHERE id = $4
	`

	result, err := r.db.ExecContext(ctx, query, req.Status, req.Reply, req.UpdatedAt.Unix(), req.ID)
	if err != nil {
		return errors.DatabaseError("Failed to update request", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Update request")
	}
	return nil
}

// ListForUser retrieves requests across a contractor's projects
func (r *UpdateRequestRepository) ListForUser(ctx context.Context, userID int64, status string, limit, offset int) ([]*updaterequest.Request, int64, error) {
	where := `FROM update_requests ur JOIN projects p ON p.id = ur.project_id WHERE p.user_id = $1`
	args := []interface{}{userID}
	if status != "" {
		where += ` AND ur.status = $2`
		args = append(args, status)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) `+where, args...).Scan(&total); err != nil {
		return nil, 0, errors.DatabaseError("Failed to count update requests", err)
	}

	query := `SELECT ur.id, ur.project_id, ur.portal_user_id, ur.question, ur.status, ur.reply, ur.created_at, ur.updated_at ` +
		where + ` ORDER BY ur.created_at DESC, ur.id DESC LIMIT ` + placeholder(len(args)+1) + ` OFFSET ` + placeholder(len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list update requests", err)
	}
	defer rows.Close()

	var out []*updaterequest.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan update request", err)
		}
		out = append(out, req)
	}

	return out, total, rows.Err()
}

// ListByPortalUser retrieves requests created by one portal user
func (r *UpdateRequestRepository) ListByPortalUser(ctx context.Context, portalUserID int64) ([]*updaterequest.Request, error) {
	query := `
		SELECT id, project_id, portal_user_id, question, status, reply, created_at, updated_at
		FROM update_requests WHERE portal_user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, portalUserID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list update requests", err)
	}
	defer rows.Close()

	var out []*updaterequest.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan update request", err)
		}
		out = append(out, req)
	}

	return out, rows.Err()
}

// CountPendingForUser counts pending requests for a contractor
func (r *UpdateRequestRepository) CountPendingForUser(ctx context.Context, userID int64) (int, error) {
	query := `
		SELECT COUNT(1) FROM update_requests ur
		JOIN projects p ON p.id = ur.project_id
		WHERE p.user_id = $1 AND ur.status = $2
	`

	var count int
	if err := r.db.QueryRowContext(ctx, query, userID, updaterequest.StatusPending).Scan(&count); err != nil {
		return 0, errors.DatabaseError("Failed to count pending requests", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRequest(row rowScanner) (*updaterequest.Request, error) {
	var req updaterequest.Request
	var createdAt, updatedAt int64
	err := row.Scan(&req.ID, &req.ProjectID, &req.PortalUserID, &req.Question,
		&req.Status, &req.Reply, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	req.CreatedAt = time.Unix(createdAt, 0)
	req.UpdatedAt = time.Unix(updatedAt, 0)
	return &req, nil
}
