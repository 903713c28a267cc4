package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/scintilla-cusat/recruit-api/internal/models"
	"github.com/scintilla-cusat/recruit-api/internal/notifier"
	appErrors "github.com/scintilla-cusat/recruit-api/pkg/errors"
	"github.com/scintilla-cusat/recruit-api/pkg/userid"
)

// idAttempts bounds identifier generation retries on collision.
const idAttempts = 5

type applicantRepository interface {
	Create(ctx context.Context, applicant *models.Applicant) error
	Exists(ctx context.Context, userID string) (bool, error)
	FindByID(ctx context.Context, userID string) (*models.Applicant, error)
	ListAll(ctx context.Context) ([]models.Applicant, error)
	UpdateStatus(ctx context.Context, userID string, status models.ApplicantStatus) error
	Delete(ctx context.Context, userID string) error
}

// SubmitApplicationRequest is the public intake payload.
type SubmitApplicationRequest struct {
	Name              string        `json:"name" validate:"required"`
	PhoneNo           string        `json:"phoneNo" validate:"required"`
	Email             string        `json:"email" validate:"required,email"`
	YearOfStudy       int           `json:"yearOfStudy" validate:"required,min=1,max=5"`
	Degree            models.Degree `json:"degree" validate:"required,oneof=UG PG"`
	Department        string        `json:"department" validate:"required"`
	Course            string        `json:"course" validate:"required"`
	Team              string        `json:"team" validate:"required"`
	TransactionID     string        `json:"transactionId" validate:"required"`
	PaymentScreenshot string        `json:"paymentScreenshot" validate:"required"`
}

// ApplicantServiceConfig bounds intake behaviour.
type ApplicantServiceConfig struct {
	MaxScreenshotBytes int64
}

// ApplicantService implements submission intake and admin review actions
// over the applicant store.
type ApplicantService struct {
	repo      applicantRepository
	validator *validator.Validate
	logger    *zap.Logger
	notifier  *notifier.Notifier
	cache     *CacheService
	metrics   *MetricsService
	cfg       ApplicantServiceConfig

	generateID func() (string, error)
}

// NewApplicantService constructs an ApplicantService instance.
func NewApplicantService(repo applicantRepository, validate *validator.Validate, logger *zap.Logger, n *notifier.Notifier, cache *CacheService, metrics *MetricsService, cfg ApplicantServiceConfig) *ApplicantService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxScreenshotBytes <= 0 {
		cfg.MaxScreenshotBytes = 512000
	}
	return &ApplicantService{
		repo:       repo,
		validator:  validate,
		logger:     logger,
		notifier:   n,
		cache:      cache,
		metrics:    metrics,
		cfg:        cfg,
		generateID: userid.Generate,
	}
}

// Submit validates the payload, allocates a unique applicant id and persists
// the record with status pending.
func (s *ApplicantService) Submit(ctx context.Context, req SubmitApplicationRequest) (*models.Applicant, error) {
	if err := s.validateSubmission(req); err != nil {
		s.metrics.RecordSubmission("rejected")
		s.notifier.Emit(notifier.EventSubmissionFailure,
			notifier.EmbedField{Name: "Email", Value: req.Email, Inline: true},
			notifier.EmbedField{Name: "Reason", Value: notifier.Truncate(err.Error())},
		)
		return nil, err
	}

	userID, err := s.allocateUserID(ctx)
	if err != nil {
		s.metrics.RecordSubmission("failed")
		s.notifier.EmitError("application submission", err)
		return nil, err
	}

	applicant := &models.Applicant{
		UserID:            userID,
		Name:              req.Name,
		PhoneNo:           req.PhoneNo,
		Email:             req.Email,
		YearOfStudy:       req.YearOfStudy,
		Degree:            req.Degree,
		Department:        req.Department,
		Course:            req.Course,
		Team:              req.Team,
		TransactionID:     req.TransactionID,
		PaymentScreenshot: req.PaymentScreenshot,
		Status:            models.StatusPending,
	}

	if err := s.repo.Create(ctx, applicant); err != nil {
		s.metrics.RecordSubmission("failed")
		s.notifier.EmitError("application submission", err)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store application")
	}

	s.invalidateReviewCache(ctx)
	s.metrics.RecordSubmission("accepted")
	s.notifier.Emit(notifier.EventSubmissionSuccess,
		notifier.EmbedField{Name: "Applicant ID", Value: applicant.UserID, Inline: true},
		notifier.EmbedField{Name: "Name", Value: applicant.Name, Inline: true},
		notifier.EmbedField{Name: "Team", Value: applicant.Team, Inline: true},
	)

	return applicant, nil
}

// Get returns one applicant by user id.
func (s *ApplicantService) Get(ctx context.Context, userID string) (*models.Applicant, error) {
	applicant, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "applicant not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load applicant")
	}
	return applicant, nil
}

// SetStatus moves one applicant to a new review status. Any status is
// reachable from any other.
func (s *ApplicantService) SetStatus(ctx context.Context, userID string, status models.ApplicantStatus) (*models.Applicant, error) {
	if !status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrInvalidStatus, fmt.Sprintf("invalid status %q", status))
	}

	previous, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, userID, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "applicant not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update status")
	}

	s.invalidateReviewCache(ctx)
	s.notifier.Emit(notifier.EventStatusChange,
		notifier.EmbedField{Name: "Applicant ID", Value: userID, Inline: true},
		notifier.EmbedField{Name: "Previous", Value: strings.ToUpper(string(previous.Status)), Inline: true},
		notifier.EmbedField{Name: "New", Value: strings.ToUpper(string(status)), Inline: true},
	)

	updated := *previous
	updated.Status = status
	return &updated, nil
}

// Delete hard-removes one applicant.
func (s *ApplicantService) Delete(ctx context.Context, userID string) error {
	applicant, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "applicant not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete applicant")
	}

	s.invalidateReviewCache(ctx)
	s.notifier.Emit(notifier.EventDeletion,
		notifier.EmbedField{Name: "Applicant ID", Value: userID, Inline: true},
		notifier.EmbedField{Name: "Name", Value: applicant.Name, Inline: true},
		notifier.EmbedField{Name: "Previous Status", Value: strings.ToUpper(string(applicant.Status)), Inline: true},
	)

	return nil
}

func (s *ApplicantService) validateSubmission(req SubmitApplicationRequest) error {
	if err := s.validator.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
			return appErrors.Clone(appErrors.ErrValidation, "invalid fields: "+strings.Join(fields, ", "))
		}
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid submission payload")
	}

	if !models.IsDepartment(req.Department) {
		return appErrors.Clone(appErrors.ErrValidation, "invalid fields: department")
	}
	if !models.IsTeam(req.Team) {
		return appErrors.Clone(appErrors.ErrValidation, "invalid fields: team")
	}
	if int64(len(req.PaymentScreenshot)) > s.cfg.MaxScreenshotBytes {
		return appErrors.Clone(appErrors.ErrValidation, "invalid fields: paymentScreenshot (too large)")
	}
	return nil
}

func (s *ApplicantService) allocateUserID(ctx context.Context) (string, error) {
	for attempt := 0; attempt < idAttempts; attempt++ {
		id, err := s.generateID()
		if err != nil {
			return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate applicant id")
		}
		exists, err := s.repo.Exists(ctx, id)
		if err != nil {
			return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check applicant id")
		}
		if !exists {
			return id, nil
		}
	}
	return "", appErrors.Clone(appErrors.ErrIDExhausted, "")
}

func (s *ApplicantService) invalidateReviewCache(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, "review:*"); err != nil {
		s.logger.Warn("failed to invalidate review cache", zap.Error(err))
	}
}
