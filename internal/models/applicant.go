package models

import "time"

// ApplicantStatus tracks the review state of a submission.
type ApplicantStatus string

const (
	StatusPending  ApplicantStatus = "pending"
	StatusVerified ApplicantStatus = "verified"
	StatusRejected ApplicantStatus = "rejected"

	// StatusAll is a filter sentinel, never stored.
	StatusAll ApplicantStatus = "all"
)

// Valid reports whether the status is a storable enum member.
func (s ApplicantStatus) Valid() bool {
	switch s {
	case StatusPending, StatusVerified, StatusRejected:
		return true
	}
	return false
}

// Degree distinguishes undergraduate and postgraduate applicants.
type Degree string

const (
	DegreeUG Degree = "UG"
	DegreePG Degree = "PG"
)

// Applicant represents one recruitment submission stored in the applicants table.
// UserID is assigned at creation and never changes; status is the only field
// mutated afterwards.
type Applicant struct {
	UserID            string          `db:"user_id" json:"userId"`
	Name              string          `db:"name" json:"name"`
	PhoneNo           string          `db:"phone_no" json:"phoneNo"`
	Email             string          `db:"email" json:"email"`
	YearOfStudy       int             `db:"year_of_study" json:"yearOfStudy"`
	Degree            Degree          `db:"degree" json:"degree"`
	Department        string          `db:"department" json:"department"`
	Course            string          `db:"course" json:"course"`
	Team              string          `db:"team" json:"team"`
	TransactionID     string          `db:"transaction_id" json:"transactionId"`
	PaymentScreenshot string          `db:"payment_screenshot" json:"paymentScreenshot,omitempty"`
	Status            ApplicantStatus `db:"status" json:"status"`
	CreatedAt         time.Time       `db:"created_at" json:"createdAt"`
}

// ApplicantFilter captures the admin dashboard filter controls.
type ApplicantFilter struct {
	Status         ApplicantStatus
	Team           string
	Department     string
	Search         string
	DuplicatesOnly bool
}

// StatusCounts holds tab badge counts for the admin dashboard. Each count is
// computed against every active filter except status itself.
type StatusCounts struct {
	All      int `json:"all"`
	Pending  int `json:"pending"`
	Verified int `json:"verified"`
	Rejected int `json:"rejected"`
}
