package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/scintilla-cusat/recruit-api/internal/models"
	appErrors "github.com/scintilla-cusat/recruit-api/pkg/errors"
	"github.com/scintilla-cusat/recruit-api/pkg/export"
)

// Export formats.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

// ExportResult is a rendered export ready to stream to the client.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders filtered applicant lists as downloadable files.
type ExportService struct {
	repo   reviewApplicantLister
	logger *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(repo reviewApplicantLister, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{repo: repo, logger: logger}
}

// Export renders the applicants matching the filter in the requested format.
func (s *ExportService) Export(ctx context.Context, filter models.ApplicantFilter, format string) (*ExportResult, error) {
	if format != FormatCSV && format != FormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load applicants")
	}

	emailGroups, txGroups := ComputeDuplicateGroups(records)
	filtered := FilterAndSort(records, filter)

	dataset := export.Dataset{
		Headers: []string{"User ID", "Name", "Email", "Phone", "Year", "Degree", "Department", "Course", "Team", "Transaction ID", "Status", "Duplicate", "Submitted At"},
		Rows:    make([][]string, 0, len(filtered)),
	}
	for _, rec := range filtered {
		dataset.Rows = append(dataset.Rows, []string{
			rec.UserID,
			rec.Name,
			rec.Email,
			rec.PhoneNo,
			strconv.Itoa(rec.YearOfStudy),
			string(rec.Degree),
			rec.Department,
			rec.Course,
			rec.Team,
			rec.TransactionID,
			string(rec.Status),
			strconv.FormatBool(IsDuplicate(rec, emailGroups, txGroups)),
			rec.CreatedAt.Format(time.RFC3339),
		})
	}

	stamp := time.Now().Format("2006-01-02")
	switch format {
	case FormatCSV:
		content, err := export.CSV(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportResult{
			Content:     content,
			ContentType: "text/csv",
			Filename:    fmt.Sprintf("applicants-%s.csv", stamp),
		}, nil
	default:
		content, err := export.PDF(dataset, "Recruitment Applicants")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportResult{
			Content:     content,
			ContentType: "application/pdf",
			Filename:    fmt.Sprintf("applicants-%s.pdf", stamp),
		}, nil
	}
}
