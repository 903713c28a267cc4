package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/scintilla-cusat/recruit-api/internal/dto"
	"github.com/scintilla-cusat/recruit-api/internal/models"
	"github.com/scintilla-cusat/recruit-api/internal/notifier"
	appErrors "github.com/scintilla-cusat/recruit-api/pkg/errors"
)

const paymentCacheKey = "payment:active"

type paymentAdminRepository interface {
	FindPrimary(ctx context.Context) (*models.Admin, error)
	FindByID(ctx context.Context, id string) (*models.Admin, error)
	SetActivePaymentAccount(ctx context.Context, adminID, person string) error
}

// PaymentService manages which UPI account the public form advertises.
type PaymentService struct {
	repo     paymentAdminRepository
	cache    *CacheService
	logger   *zap.Logger
	notifier *notifier.Notifier
	cacheTTL time.Duration
}

// NewPaymentService constructs a PaymentService.
func NewPaymentService(repo paymentAdminRepository, cache *CacheService, logger *zap.Logger, n *notifier.Notifier, cacheTTL time.Duration) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &PaymentService{repo: repo, cache: cache, logger: logger, notifier: n, cacheTTL: cacheTTL}
}

// Active returns the UPI account currently shown on the public form. The
// primary admin's selection wins; with no admins or no selection yet, the
// first catalogued account is advertised.
func (s *PaymentService) Active(ctx context.Context) (*dto.PaymentAccountResponse, error) {
	if s.cache.Enabled() {
		var cached dto.PaymentAccountResponse
		if hit, err := s.cache.Get(ctx, paymentCacheKey, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	person := models.UPIAccounts[0].Name
	admin, err := s.repo.FindPrimary(ctx)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load payment account")
		}
	} else if admin.CurrentUPIPerson != "" {
		person = admin.CurrentUPIPerson
	}

	account, ok := models.UPIAccountByName(person)
	if !ok {
		account = models.UPIAccounts[0]
	}

	resp := &dto.PaymentAccountResponse{Person: account.Name, Details: account}

	if s.cache.Enabled() {
		if err := s.cache.Set(ctx, paymentCacheKey, resp, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache payment account", zap.Error(err))
		}
	}
	return resp, nil
}

// ActiveForAdmin returns the given admin's own selection.
func (s *PaymentService) ActiveForAdmin(ctx context.Context, adminID string) (*dto.PaymentAccountResponse, error) {
	admin, err := s.repo.FindByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "admin not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load admin")
	}

	account, ok := models.UPIAccountByName(admin.CurrentUPIPerson)
	if !ok {
		account = models.UPIAccounts[0]
	}
	return &dto.PaymentAccountResponse{Person: account.Name, Details: account}, nil
}

// SetActive switches the admin's advertised UPI account. An unknown person
// leaves the current selection untouched.
func (s *PaymentService) SetActive(ctx context.Context, admin *models.Admin, person string) (*dto.PaymentAccountResponse, error) {
	account, ok := models.UPIAccountByName(person)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrInvalidSelection, "")
	}

	if err := s.repo.SetActivePaymentAccount(ctx, admin.ID, account.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "admin not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update payment account")
	}

	if err := s.cache.Invalidate(ctx, paymentCacheKey); err != nil {
		s.logger.Warn("failed to invalidate payment cache", zap.Error(err))
	}

	s.notifier.Emit(notifier.EventPaymentAccountChange,
		notifier.EmbedField{Name: "Admin", Value: admin.Email, Inline: true},
		notifier.EmbedField{Name: "Previous", Value: orUnknown(admin.CurrentUPIPerson), Inline: true},
		notifier.EmbedField{Name: "New", Value: account.Name, Inline: true},
	)

	return &dto.PaymentAccountResponse{Person: account.Name, Details: account}, nil
}
