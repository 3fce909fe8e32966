package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/hfletcher/jobsite/internal/domain/client"
	"github.com/hfletcher/jobsite/internal/pkg/errors"
)

// ClientRepository implements client.Repository
type ClientRepository struct {
	db *sql.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *sql.DB) client.Repository {
	return &ClientRepository{db: db}
}

// Create creates a new client
func (r *ClientRepository) Create(ctx context.Context, c *client.Client) (int64, error) {
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	query := `
		INSERT INTO clients (user_id, name, email, phone, address, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		c.UserID, c.Name, c.Email, c.Phone, c.Address, c.Notes, now.Unix(), now.Unix(),
	).Scan(&c.ID)
	if err != nil {
		return 0, errors.DatabaseError("Failed to create client", err)
	}
	return c.ID, nil
}

// GetByID retrieves a client by ID, scoped to the owning contractor
func (r *ClientRepository) GetByID(ctx context.Context, userID, id int64) (*client.Client, error) {
	query := `
		SELECT id, user_id, name, email, phone, address, notes, created_at, updated_at
		FROM clients WHERE user_id = $1 AND id = $2
	`

	var c client.Client
	var createdAt, updatedAt int64

	err := r.db.QueryRowContext(ctx, query, userID, id).Scan(
		&c.ID, &c.UserID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.Notes, &createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Client")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get client", err)
	}

	c.CreatedAt = time.Unix(createdAt, 0)
	c.UpdatedAt = time.Unix(updatedAt, 0)
	return &c, nil
}

// Update updates a client
func (r *ClientRepository) Update(ctx context.Context, c *client.Client) error {
	c.UpdatedAt = time.Now()

	query := `
		UPDATE clients
		SET name = $1, email = $2, phone = $3, address = $4, notes = $5, updated_at = $6
		WHERE user_id = $7 AND id = $8
	`

	result, err := r.db.ExecContext(ctx, query,
		c.Name, c.Email, c.Phone, c.Address, c.Notes, c.UpdatedAt.Unix(), c.UserID, c.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update client", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Client")
	}
	return nil
}

// Delete deletes a client
func (r *ClientRepository) Delete(ctx context.Context, userID, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete client", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Client")
	}
	return nil
}

// List retrieves clients with pagination
func (r *ClientRepository) List(ctx context.Context, userID int64, limit, offset int) ([]*client.Client, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM clients WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, errors.DatabaseError("Failed to count clients", err)
	}

	query := `
		SELECT id, user_id, name, email, phone, address, notes, created_at, updated_at
		FROM clients WHERE user_id = $1 ORDER BY name LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list clients", err)
	}
	defer rows.Close()

	var out []*client.Client
	for rows.Next() {
		var c client.Client
		var createdAt, updatedAt int64
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.Notes, &createdAt, &updatedAt); err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan client", err)
		}
		c.CreatedAt = time.Unix(createdAt, 0)
		c.UpdatedAt = time.Unix(updatedAt, 0)
		out = append(out, &c)
	}

	return out, total, rows.Err()
}

// SetAccountingID records the accounting platform id for a client
func (r *ClientRepository) SetAccountingID(ctx context.Context, clientID int64, externalID string) error {
	query := `
		INSERT INTO client_accounting_refs (client_id, external_id)
		VALUES ($1, $2)
		ON CONFLICT(client_id) DO UPDATE SET external_id = excluded.external_id
	`
	if _, err := r.db.ExecContext(ctx, query, clientID, externalID); err != nil {
		return errors.DatabaseError("Failed to save accounting reference", err)
	}
	return nil
}

// GetAccountingID returns the accounting platform id for a client, or
// empty if the client was never pushed
func (r *ClientRepository) GetAccountingID(ctx context.Context, clientID int64) (string, error) {
	var externalID string
	err := r.db.QueryRowContext(ctx,
		`SELECT external_id FROM client_accounting_refs WHERE client_id = $1`, clientID,
	).Scan(&externalID)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", errors.DatabaseError("Failed to get accounting reference", err)
	}
	return externalID, nil
}
