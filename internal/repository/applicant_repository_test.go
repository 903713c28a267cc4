package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scintilla-cusat/recruit-api/internal/models"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	return sqlxdb, mock, func() {
		db.Close()
	}
}

func applicantRows(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"user_id", "name", "phone_no", "email", "year_of_study", "degree", "department", "course", "team", "transaction_id", "payment_screenshot", "status", "created_at"}).
		AddRow("SC_ABC1234567", "Alice", "9999999999", "alice@example.com", 2, "UG", "Department of Computer Science (DCS)", "BTech CS", "Tech", "TXN1", "img", string(models.StatusPending), now)
}

func TestCreateApplicant(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewApplicantRepository(db)

	mock.ExpectExec("INSERT INTO applicants").WillReturnResult(sqlmock.NewResult(1, 1))

	applicant := &models.Applicant{
		UserID:            "SC_ABC1234567",
		Name:              "Alice",
		PhoneNo:           "9999999999",
		Email:             "alice@example.com",
		YearOfStudy:       2,
		Degree:            models.DegreeUG,
		Department:        "Department of Computer Science (DCS)",
		Course:            "BTech CS",
		Team:              "Tech",
		TransactionID:     "TXN1",
		PaymentScreenshot: "img",
	}
	err := repo.Create(context.Background(), applicant)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, applicant.Status)
	assert.False(t, applicant.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicantExists(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewApplicantRepository(db)

	rows := sqlmock.NewRows([]string{"exists"}).AddRow(true)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM applicants WHERE user_id = $1)")).
		WithArgs("SC_ABC1234567").
		WillReturnRows(rows)

	exists, err := repo.Exists(context.Background(), "SC_ABC1234567")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindApplicantByID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewApplicantRepository(db)

	now := time.Now()
	mock.ExpectQuery("SELECT user_id, name, phone_no, email, year_of_study, degree, department, course, team, transaction_id, payment_screenshot, status, created_at FROM applicants WHERE user_id").
		WithArgs("SC_ABC1234567").
		WillReturnRows(applicantRows(now))

	applicant, err := repo.FindByID(context.Background(), "SC_ABC1234567")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", applicant.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAllOrdersByCreatedAtDesc(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewApplicantRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM applicants ORDER BY created_at DESC")).
		WillReturnRows(applicantRows(now))

	applicants, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, applicants, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusNotFound(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewApplicantRepository(db)

	mock.ExpectExec("UPDATE applicants SET status").
		WithArgs("SC_MISSING000", string(models.StatusVerified)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "SC_MISSING000", models.StatusVerified)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteApplicant(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewApplicantRepository(db)

	mock.ExpectExec("DELETE FROM applicants").
		WithArgs("SC_ABC1234567").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), "SC_ABC1234567")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
