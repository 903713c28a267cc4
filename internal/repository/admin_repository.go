package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/scintilla-cusat/recruit-api/internal/models"
)

const adminColumns = "id, email, password_hash, current_upi_person, created_at"

// AdminRepository provides database access for admin accounts and their
// device-token allow-lists.
type AdminRepository struct {
	db *sqlx.DB
}

// NewAdminRepository creates a new instance of AdminRepository.
func NewAdminRepository(db *sqlx.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// FindByEmail returns an admin by email address.
func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	query := fmt.Sprintf("SELECT %s FROM admins WHERE email = $1 LIMIT 1", adminColumns)
	var admin models.Admin
	if err := r.db.GetContext(ctx, &admin, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find admin by email: %w", err)
	}
	return &admin, nil
}

// FindByID returns an admin by identifier.
func (r *AdminRepository) FindByID(ctx context.Context, id string) (*models.Admin, error) {
	query := fmt.Sprintf("SELECT %s FROM admins WHERE id = $1 LIMIT 1", adminColumns)
	var admin models.Admin
	if err := r.db.GetContext(ctx, &admin, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find admin by id: %w", err)
	}
	return &admin, nil
}

// Create inserts a new admin account.
func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	if admin.ID == "" {
		admin.ID = uuid.NewString()
	}
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO admins (id, email, password_hash, current_upi_person, created_at) VALUES (:id, :email, :password_hash, :current_upi_person, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, admin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	return nil
}

// FindPrimary returns the oldest admin account. The public payment endpoint
// advertises this account's UPI selection.
func (r *AdminRepository) FindPrimary(ctx context.Context) (*models.Admin, error) {
	query := fmt.Sprintf("SELECT %s FROM admins ORDER BY created_at ASC LIMIT 1", adminColumns)
	var admin models.Admin
	if err := r.db.GetContext(ctx, &admin, query); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find primary admin: %w", err)
	}
	return &admin, nil
}

// AddSessionToken appends a device token to the admin's allow-list.
func (r *AdminRepository) AddSessionToken(ctx context.Context, token *models.DeviceToken) error {
	if token.ID == "" {
		token.ID = uuid.NewString()
	}
	if token.IssuedAt.IsZero() {
		token.IssuedAt = time.Now().UTC()
	}
	const query = `INSERT INTO device_tokens (id, admin_id, token, issued_at) VALUES (:id, :admin_id, :token, :issued_at)`
	if _, err := r.db.NamedExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("add session token: %w", err)
	}
	return nil
}

// RemoveSessionToken removes the matching device token. Removing an absent
// token is a no-op.
func (r *AdminRepository) RemoveSessionToken(ctx context.Context, adminID, token string) error {
	const query = `DELETE FROM device_tokens WHERE admin_id = $1 AND token = $2`
	if _, err := r.db.ExecContext(ctx, query, adminID, token); err != nil {
		return fmt.Errorf("remove session token: %w", err)
	}
	return nil
}

// FindBySessionToken resolves the admin owning the given raw device token.
func (r *AdminRepository) FindBySessionToken(ctx context.Context, token string) (*models.Admin, error) {
	const query = `SELECT a.id, a.email, a.password_hash, a.current_upi_person, a.created_at FROM admins a JOIN device_tokens t ON t.admin_id = a.id WHERE t.token = $1 LIMIT 1`
	var admin models.Admin
	if err := r.db.GetContext(ctx, &admin, query, token); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find admin by session token: %w", err)
	}
	return &admin, nil
}

// SetActivePaymentAccount stores the admin's current UPI person selection.
func (r *AdminRepository) SetActivePaymentAccount(ctx context.Context, adminID, person string) error {
	const query = `UPDATE admins SET current_upi_person = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, adminID, person)
	if err != nil {
		return fmt.Errorf("set active payment account: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set active payment account: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
