package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/hfletcher/jobsite/internal/domain/accounting"
	"github.com/hfletcher/jobsite/internal/pkg/errors"
)

// AccountingRepository implements accounting.Repository
type AccountingRepository struct {
	db *sql.DB
}

// NewAccountingRepository creates a new accounting connection repository
func NewAccountingRepository(db *sql.DB) accounting.Repository {
	return &AccountingRepository{db: db}
}

// Get retrieves the connection for a user; NotFound when disconnected
func (r *AccountingRepository) Get(ctx context.Context, userID int64) (*accounting.Connection, error) {
	query := `
		SELECT user_id, realm_id, access_token, refresh_token, expires_at, created_at, updated_at
		FROM accounting_connections WHERE user_id = $1
	`

	var c accounting.Connection
	var expiresAt, createdAt, updatedAt int64

	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&c.UserID, &c.RealmID, &c.AccessToken, &c.RefreshToken, &expiresAt, &createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Accounting connection")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get accounting connection", err)
	}

	c.ExpiresAt = time.Unix(expiresAt, 0)
	c.CreatedAt = time.Unix(createdAt, 0)
	c.UpdatedAt = time.Unix(updatedAt, 0)
	return &c, nil
}

// Save upserts the connection for a user in one statement. Token pairs
// are always written together so a failed refresh never leaves a mixed
// old/new pair behind.
func (r *AccountingRepository) Save(ctx context.Context, c *accounting.Connection) error {
	now := time.Now()
	c.UpdatedAt = now
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}

	query := `
		INSERT INTO accounting_connections (user_id, realm_id, access_token, refresh_token, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			realm_id = excluded.realm_id,
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		c.UserID, c.RealmID, c.AccessToken, c.RefreshToken,
		c.ExpiresAt.Unix(), c.CreatedAt.Unix(), c.UpdatedAt.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to save accounting connection", err)
	}
	return nil
}

// Delete removes the connection, returning the user to disconnected.
// Deleting an absent row is not an error; disconnect is idempotent.
func (r *AccountingRepository) Delete(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM accounting_connections WHERE user_id = $1`, userID)
	if err != nil {
		return errors.DatabaseError("Failed to delete accounting connection", err)
	}
	return nil
}
