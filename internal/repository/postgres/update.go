package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/hfletcher/jobsite/internal/domain/update"
	"github.com/hfletcher/jobsite/internal/pkg/errors"
)

// UpdateRepository implements update.Repository
type UpdateRepository struct {
	db *sql.DB
}

// NewUpdateRepository creates a new progress update repository
func NewUpdateRepository(db *sql.DB) update.Repository {
	return &UpdateRepository{db: db}
}

// Create creates a new update with its photos
func (r *UpdateRepository) Create(ctx context.Context, u *update.Update) (int64, error) {
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.DatabaseError("Failed to begin transaction", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO updates (project_id, title, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, query,
		u.ProjectID, u.Title, u.Body, now.Unix(), now.Unix(),
	).Scan(&u.ID); err != nil {
		return 0, errors.DatabaseError("Failed to create update", err)
	}

	for i := range u.Photos {
		p := &u.Photos[i]
		p.UpdateID = u.ID
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO update_photos (id, update_id, url, caption) VALUES ($1, $2, $3, $4)`,
			p.ID, p.UpdateID, p.URL, p.Caption,
		); err != nil {
			return 0, errors.DatabaseError("Failed to attach photo", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.DatabaseError("Failed to commit update", err)
	}
	return u.ID, nil
}

// GetByID retrieves an update with photos by ID within a project
func (r *UpdateRepository) GetByID(ctx context.Context, projectID, id int64) (*update.Update, error) {
	query := `
		SELECT id, project_id, title, body, created_at, updated_at
		FROM updates WHERE project_id = $1 AND id = $2
	`

	var u update.Update
	var createdAt, updatedAt int64

	err := r.db.QueryRowContext(ctx, query, projectID, id).Scan(
		&u.ID, &u.ProjectID, &u.Title, &u.Body, &createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Update")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get update", err)
	}

	u.CreatedAt = time.Unix(createdAt, 0)
	u.UpdatedAt = time.Unix(updatedAt, 0)

	photos, err := r.photosFor(ctx, []int64{u.ID})
	if err != nil {
		return nil, err
	}
	u.Photos = photos[u.ID]
	return &u, nil
}

// Update updates an update's title and body
func (r *UpdateRepository) Update(ctx context.Context, u *update.Update) error {
	u.UpdatedAt = time.Now()

	query := `
		UPDATE updates SET title = $1, body = $2, updated_at = $3
		WHERE project_id = $4 AND id = $5
	`

	result, err := r.db.ExecContext(ctx, query, u.Title, u.Body, u.UpdatedAt.Unix(), u.ProjectID, u.ID)
	if err != nil {
		return errors.DatabaseError("Failed to update progress update", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Update")
	}
	return nil
}

// Delete deletes an update and its photos
func (r *UpdateRepository) Delete(ctx context.Context, projectID, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.DatabaseError("Failed to begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM update_photos WHERE update_id = $1`, id); err != nil {
		return errors.DatabaseError("Failed to delete photos", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM updates WHERE project_id = $1 AND id = $2`, projectID, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete update", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Update")
	}

	if err := tx.Commit(); err != nil {
		return errors.DatabaseError("Failed to commit delete", err)
	}
	return nil
}

// ListByProject retrieves updates of a project, newest first
func (r *UpdateRepository) ListByProject(ctx context.Context, projectID int64, limit, offset int) ([]*update.Update, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM updates WHERE project_id = $1`, projectID,
	).Scan(&total); err != nil {
		return nil, 0, errors.DatabaseError("Failed to count updates", err)
	}

	query := `
		SELECT id, project_id, title, body, created_at, updated_at
		FROM updates WHERE project_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, projectID, limit, offset)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list updates", err)
	}
	defer rows.Close()

	var out []*update.Update
	var ids []int64
	for rows.Next() {
		var u update.Update
		var createdAt, updatedAt int64
		if err := rows.Scan(&u.ID, &u.ProjectID, &u.Title, &u.Body, &createdAt, &updatedAt); err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan update", err)
		}
		u.CreatedAt = time.Unix(createdAt, 0)
		u.UpdatedAt = time.Unix(updatedAt, 0)
		out = append(out, &u)
		ids = append(ids, u.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.DatabaseError("Failed to read updates", err)
	}

	if len(ids) > 0 {
		photos, err := r.photosFor(ctx, ids)
		if err != nil {
			return nil, 0, err
		}
		for _, u := range out {
			u.Photos = photos[u.ID]
		}
	}

	return out, total, nil
}

// AddPhoto attaches a photo to an existing update
func (r *UpdateRepository) AddPhoto(ctx context.Context, p *update.Photo) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO update_photos (id, update_id, url, caption) VALUES ($1, $2, $3, $4)`,
		p.ID, p.UpdateID, p.URL, p.Caption,
	)
	if err != nil {
		return errors.DatabaseError("Failed to attach photo", err)
	}
	return nil
}

// photosFor loads photos for a set of updates keyed by update ID. The
// IN clause is built per call since the set size varies.
func (r *UpdateRepository) photosFor(ctx context.Context, updateIDs []int64) (map[int64][]update.Photo, error) {
	query := `SELECT id, update_id, url, caption FROM update_photos WHERE update_id IN (`
	args := make([]interface{}, 0, len(updateIDs))
	for i, id := range updateIDs {
		if i > 0 {
			query += ", "
		}
		query += placeholder(i + 1)
		args = append(args, id)
	}
	query += `) ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load photos", err)
	}
	defer rows.Close()

	out := make(map[int64][]update.Photo)
	for rows.Next() {
		var p update.Photo
		if err := rows.Scan(&p.ID, &p.UpdateID, &p.URL, &p.Caption); err != nil {
			return nil, errors.DatabaseError("Failed to scan photo", err)
		}
		out[p.UpdateID] = append(out[p.UpdateID], p)
	}
	return out, rows.Err()
}
