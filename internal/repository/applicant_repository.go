package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/scintilla-cusat/recruit-api/internal/models"
)

const applicantColumns = "user_id, name, phone_no, email, year_of_study, degree, department, course, team, transaction_id, payment_screenshot, status, created_at"

// ApplicantRepository provides database access for applicant records.
type ApplicantRepository struct {
	db *sqlx.DB
}

// NewApplicantRepository creates a new instance of ApplicantRepository.
func NewApplicantRepository(db *sqlx.DB) *ApplicantRepository {
	return &ApplicantRepository{db: db}
}

// Create inserts a new applicant record.
func (r *ApplicantRepository) Create(ctx context.Context, applicant *models.Applicant) error {
	if applicant.Status == "" {
		applicant.Status = models.StatusPending
	}
	if applicant.CreatedAt.IsZero() {
		applicant.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO applicants (user_id, name, phone_no, email, year_of_study, degree, department, course, team, transaction_id, payment_screenshot, status, created_at) VALUES (:user_id, :name, :phone_no, :email, :year_of_study, :degree, :department, :course, :team, :transaction_id, :payment_screenshot, :status, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, applicant); err != nil {
		return fmt.Errorf("create applicant: %w", err)
	}
	return nil
}

// Exists reports whether an applicant with the given user id is stored.
func (r *ApplicantRepository) Exists(ctx context.Context, userID string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM applicants WHERE user_id = $1)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID); err != nil {
		return false, fmt.Errorf("check applicant exists: %w", err)
	}
	return exists, nil
}

// FindByID returns an applicant by user id.
func (r *ApplicantRepository) FindByID(ctx context.Context, userID string) (*models.Applicant, error) {
	query := fmt.Sprintf("SELECT %s FROM applicants WHERE user_id = $1 LIMIT 1", applicantColumns)
	var applicant models.Applicant
	if err := r.db.GetContext(ctx, &applicant, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find applicant by id: %w", err)
	}
	return &applicant, nil
}

// ListAll returns every applicant ordered by creation time descending.
func (r *ApplicantRepository) ListAll(ctx context.Context) ([]models.Applicant, error) {
	query := fmt.Sprintf("SELECT %s FROM applicants ORDER BY created_at DESC", applicantColumns)
	var applicants []models.Applicant
	if err := r.db.SelectContext(ctx, &applicants, query); err != nil {
		return nil, fmt.Errorf("list applicants: %w", err)
	}
	return applicants, nil
}

// UpdateStatus sets the review status of one applicant. It returns
// sql.ErrNoRows when no record matches.
func (r *ApplicantRepository) UpdateStatus(ctx context.Context, userID string, status models.ApplicantStatus) error {
	const query = `UPDATE applicants SET status = $2 WHERE user_id = $1`
	res, err := r.db.ExecContext(ctx, query, userID, status)
	if err != nil {
		return fmt.Errorf("update applicant status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update applicant status: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete hard-deletes an applicant record. It returns sql.ErrNoRows when no
// record matches.
func (r *ApplicantRepository) Delete(ctx context.Context, userID string) error {
	const query = `DELETE FROM applicants WHERE user_id = $1`
	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("delete applicant: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete applicant: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
