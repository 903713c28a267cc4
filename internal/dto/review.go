package dto

import "github.com/scintilla-cusat/recruit-api/internal/models"

// ApplicantView decorates an applicant with its duplicate flag for the
// admin dashboard.
type ApplicantView struct {
	models.Applicant
	Duplicate bool `json:"duplicate"`
}

// ReviewListResponse is the filtered dashboard payload.
type ReviewListResponse struct {
	Applicants []ApplicantView     `json:"applicants"`
	Counts     models.StatusCounts `json:"counts"`
}

// SubmitResponse acknowledges a public submission.
type SubmitResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

// PaymentAccountResponse exposes the advertised UPI account.
type PaymentAccountResponse struct {
	Person  string            `json:"person"`
	Details models.UPIAccount `json:"details"`
}
