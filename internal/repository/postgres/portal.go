package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/hfletcher/jobsite/internal/domain/portal"
	"github.com/hfletcher/jobsite/internal/pkg/errors"
)

// PortalUserRepository implements portal.Repository
type PortalUserRepository struct {
	db *sql.DB
}

// NewPortalUserRepository creates a new portal user repository
func NewPortalUserRepository(db *sql.DB) portal.Repository {
	return &PortalUserRepository{db: db}
}

// Create creates a new portal user
func (r *PortalUserRepository) Create(ctx context.Context, p *portal.PortalUser) (int64, error) {
	p.CreatedAt = time.Now()
	p.Email = strings.ToLower(p.Email)

	query := `
		INSERT INTO portal_users (client_id, email, name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		p.ClientID, p.Email, p.Name, p.PasswordHash, p.CreatedAt.Unix(),
	).Scan(&p.ID)
	if err != nil {
		return 0, errors.DatabaseError("Failed to create portal user", err)
	}
	return p.ID, nil
}

// GetByID retrieves a portal user by ID
func (r *PortalUserRepository) GetByID(ctx context.Context, id int64) (*portal.PortalUser, error) {
	return r.getBy(ctx, `id = $1`, id)
}

// GetByEmail retrieves a portal user by email
func (r *PortalUserRepository) GetByEmail(ctx context.Context, email string) (*portal.PortalUser, error) {
	return r.getBy(ctx, `email = $1`, strings.ToLower(email))
}

func (r *PortalUserRepository) getBy(ctx context.Context, where string, arg interface{}) (*portal.PortalUser, error) {
	query := `
		SELECT id, client_id, email, name, password_hash, last_login_at, created_at
		FROM portal_users WHERE ` + where

	var p portal.PortalUser
	var lastLogin sql.NullInt64
	var createdAt int64

	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&p.ID, &p.ClientID, &p.Email, &p.Name, &p.PasswordHash, &lastLogin, &createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Portal user")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get portal user", err)
	}

	p.LastLoginAt = timeFromUnix(lastLogin)
	p.CreatedAt = time.Unix(createdAt, 0)
	return &p, nil
}

// ListByClient retrieves portal users of a client
func (r *PortalUserRepository) ListByClient(ctx context.Context, clientID int64) ([]*portal.PortalUser, error) {
	query := `
		SELECT id, client_id, email, name, password_hash, last_login_at, created_at
		FROM portal_users WHERE client_id = $1 ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list portal users", err)
	}
	defer rows.Close()

	var out []*portal.PortalUser
	for rows.Next() {
		var p portal.PortalUser
		var lastLogin sql.NullInt64
		var createdAt int64
		if err := rows.Scan(&p.ID, &p.ClientID, &p.Email, &p.Name, &p.PasswordHash, &lastLogin, &createdAt); err != nil {
			return nil, errors.DatabaseError("Failed to scan portal user", err)
		}
		p.LastLoginAt = timeFromUnix(lastLogin)
		p.CreatedAt = time.Unix(createdAt, 0)
		out = append(out, &p)
	}

	return out, rows.Err()
}

// SetLastLogin records a successful login
func (r *PortalUserRepository) SetLastLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE portal_users SET last_login_at = $1 WHERE id = $2`, at.Unix(), id)
	if err != nil {
		return errors.DatabaseError("Failed to record login", err)
	}
	return nil
}

// Delete deletes a portal user
func (r *PortalUserRepository) Delete(ctx context.Context, clientID, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM portal_users WHERE client_id = $1 AND id = $2`, clientID, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete portal user", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Portal user")
	}
	return nil
}
