package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/hfletcher/jobsite/internal/domain/user"
	"github.com/hfletcher/jobsite/internal/pkg/errors"
)

// UserRepository implements user.Repository
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) user.Repository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, username, full_name, company_name, password_hash,
	plan_type, setup_paid, trial_start, subscription_active,
	processor_customer_id, processor_subscription_id, created_at, updated_at`

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	query := `
		INSERT INTO users (email, username, full_name, company_name, password_hash,
			plan_type, setup_paid, trial_start, subscription_active,
			processor_customer_id, processor_subscription_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		u.Email, u.Username, u.FullName, u.CompanyName, u.PasswordHash,
		u.PlanType, u.SetupPaid, nullableUnix(u.TrialStart), u.SubscriptionActive,
		u.ProcessorCustomerID, u.ProcessorSubscriptionID, now.Unix(), now.Unix(),
	).Scan(&u.ID)
	if err != nil {
		return errors.DatabaseError("Failed to create user", err)
	}

	return nil
}

func (r *UserRepository) scanUser(row *sql.Row) (*user.User, error) {
	var u user.User
	var fullName sql.NullString
	var trialStart sql.NullInt64
	var createdAt, updatedAt int64

	err := row.Scan(
		&u.ID, &u.Email, &u.Username, &fullName, &u.CompanyName, &u.PasswordHash,
		&u.PlanType, &u.SetupPaid, &trialStart, &u.SubscriptionActive,
		&u.ProcessorCustomerID, &u.ProcessorSubscriptionID, &createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("User")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get user", err)
	}

	if fullName.Valid {
		u.FullName = &fullName.String
	}
	u.TrialStart = timeFromUnix(trialStart)
	u.CreatedAt = time.Unix(createdAt, 0)
	u.UpdatedAt = time.Unix(updatedAt, 0)

	return &u, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

// GetByProcessorCustomer retrieves a user by processor customer id
func (r *UserRepository) GetByProcessorCustomer(ctx context.Context, customerID string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE processor_customer_id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, customerID))
}

// Update updates a user
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	u.UpdatedAt = time.Now()

	query := `
		UPDATE users
		SET email = $1, username = $2, full_name = $3, company_name = $4,
			plan_type = $5, updated_at = $6
		WHERE id = $7
	`

	result, err := r.db.ExecContext(ctx, query,
		u.Email, u.Username, u.FullName, u.CompanyName, u.PlanType, u.UpdatedAt.Unix(), u.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update user", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("User")
	}

	return nil
}

// SaveProcessorRefs persists the processor customer/subscription ids
func (r *UserRepository) SaveProcessorRefs(ctx context.Context, userID int64, customerID, subscriptionID string) error {
	query := `
		UPDATE users
		SET processor_customer_id = $1, processor_subscription_id = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := r.db.ExecContext(ctx, query, customerID, subscriptionID, time.Now().Unix(), userID)
	if err != nil {
		return errors.DatabaseError("Failed to save processor references", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("User")
	}
	return nil
}

// SetSubscriptionState flips the entitlement-relevant billing flags
func (r *UserRepository) SetSubscriptionState(ctx context.Context, userID int64, active, setupPaid bool) error {
	query := `
		UPDATE users
		SET subscription_active = $1, setup_paid = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := r.db.ExecContext(ctx, query, active, setupPaid, time.Now().Unix(), userID)
	if err != nil {
		return errors.DatabaseError("Failed to set subscription state", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("User")
	}
	return nil
}

// Delete deletes a user
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete user", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("User")
	}

	return nil
}

// ListOnTrial retrieves users whose access depends on the trial window
func (r *UserRepository) ListOnTrial(ctx context.Context) ([]*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE subscription_active = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, false)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list trial users", err)
	}
	defer rows.Close()

	var out []*user.User
	for rows.Next() {
		var u user.User
		var fullName sql.NullString
		var trialStart sql.NullInt64
		var createdAt, updatedAt int64

		if err := rows.Scan(
			&u.ID, &u.Email, &u.Username, &fullName, &u.CompanyName, &u.PasswordHash,
			&u.PlanType, &u.SetupPaid, &trialStart, &u.SubscriptionActive,
			&u.ProcessorCustomerID, &u.ProcessorSubscriptionID, &createdAt, &updatedAt,
		); err != nil {
			return nil, errors.DatabaseError("Failed to scan user", err)
		}

		if fullName.Valid {
			u.FullName = &fullName.String
		}
		u.TrialStart = timeFromUnix(trialStart)
		u.CreatedAt = time.Unix(createdAt, 0)
		u.UpdatedAt = time.Unix(updatedAt, 0)
		out = append(out, &u)
	}

	return out, rows.Err()
}

// List retrieves users with pagination
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*user.User, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM users`).Scan(&total); err != nil {
		return nil, 0, errors.DatabaseError("Failed to count users", err)
	}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list users", err)
	}
	defer rows.Close()

	var out []*user.User
	for rows.Next() {
		var u user.User
		var fullName sql.NullString
		var trialStart sql.NullInt64
		var createdAt, updatedAt int64

		if err := rows.Scan(
			&u.ID, &u.Email, &u.Username, &fullName, &u.CompanyName, &u.PasswordHash,
			&u.PlanType, &u.SetupPaid, &trialStart, &u.SubscriptionActive,
			&u.ProcessorCustomerID, &u.ProcessorSubscriptionID, &createdAt, &updatedAt,
		); err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan user", err)
		}

		if fullName.Valid {
			u.FullName = &fullName.String
		}
		u.TrialStart = timeFromUnix(trialStart)
		u.CreatedAt = time.Unix(createdAt, 0)
		u.UpdatedAt = time.Unix(updatedAt, 0)
		out = append(out, &u)
	}

	return out, total, rows.Err()
}
