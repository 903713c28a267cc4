package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/scintilla-cusat/recruit-api/internal/dto"
	"github.com/scintilla-cusat/recruit-api/internal/models"
	appErrors "github.com/scintilla-cusat/recruit-api/pkg/errors"
)

// ComputeDuplicateGroups partitions the snapshot by email and, separately, by
// transaction id. Values are the user ids sharing the key.
func ComputeDuplicateGroups(records []models.Applicant) (map[string][]string, map[string][]string) {
	emailGroups := make(map[string][]string)
	txGroups := make(map[string][]string)
	for _, rec := range records {
		emailGroups[rec.Email] = append(emailGroups[rec.Email], rec.UserID)
		txGroups[rec.TransactionID] = append(txGroups[rec.TransactionID], rec.UserID)
	}
	return emailGroups, txGroups
}

// IsDuplicate flags a record when its email group OR its transaction-id group
// has more than one member. Either signal alone marks the record suspect.
func IsDuplicate(rec models.Applicant, emailGroups, txGroups map[string][]string) bool {
	return len(emailGroups[rec.Email]) > 1 || len(txGroups[rec.TransactionID]) > 1
}

// FilterAndSort applies the filter's conjunctive predicates and returns the
// matches sorted descending by creation time. The sort is stable so ties keep
// their snapshot order. Duplicate groups are computed over the full snapshot,
// not the filtered subset.
func FilterAndSort(records []models.Applicant, filter models.ApplicantFilter) []models.Applicant {
	emailGroups, txGroups := ComputeDuplicateGroups(records)

	out := make([]models.Applicant, 0, len(records))
	for _, rec := range records {
		if matches(rec, filter, emailGroups, txGroups, true) {
			out = append(out, rec)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// CountByStatus computes the status-tab badge counts. Every filter except
// status itself is applied first, so each count answers "how many would match
// if this tab were selected".
func CountByStatus(records []models.Applicant, filter models.ApplicantFilter) models.StatusCounts {
	emailGroups, txGroups := ComputeDuplicateGroups(records)

	var counts models.StatusCounts
	for _, rec := range records {
		if !matches(rec, filter, emailGroups, txGroups, false) {
			continue
		}
		counts.All++
		switch rec.Status {
		case models.StatusPending:
			counts.Pending++
		case models.StatusVerified:
			counts.Verified++
		case models.StatusRejected:
			counts.Rejected++
		}
	}
	return counts
}

func matches(rec models.Applicant, filter models.ApplicantFilter, emailGroups, txGroups map[string][]string, withStatus bool) bool {
	if withStatus && filter.Status != "" && filter.Status != models.StatusAll && rec.Status != filter.Status {
		return false
	}
	if filter.Team != "" && rec.Team != filter.Team {
		return false
	}
	if filter.Department != "" && rec.Department != filter.Department {
		return false
	}
	if filter.Search != "" {
		q := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(rec.Name), q) &&
			!strings.Contains(strings.ToLower(rec.UserID), q) &&
			!strings.Contains(strings.ToLower(rec.Department), q) &&
			!strings.Contains(strings.ToLower(rec.Team), q) {
			return false
		}
	}
	if filter.DuplicatesOnly && !IsDuplicate(rec, emailGroups, txGroups) {
		return false
	}
	return true
}

type reviewApplicantLister interface {
	ListAll(ctx context.Context) ([]models.Applicant, error)
}

// ReviewService assembles the admin dashboard payload from an applicant
// snapshot, with optional caching.
type ReviewService struct {
	repo     reviewApplicantLister
	cache    *CacheService
	logger   *zap.Logger
	cacheTTL time.Duration
}

// NewReviewService constructs a ReviewService.
func NewReviewService(repo reviewApplicantLister, cache *CacheService, logger *zap.Logger, cacheTTL time.Duration) *ReviewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &ReviewService{repo: repo, cache: cache, logger: logger, cacheTTL: cacheTTL}
}

// List returns the filtered applicant views plus badge counts, indicating
// cache utilisation.
func (s *ReviewService) List(ctx context.Context, filter models.ApplicantFilter) (*dto.ReviewListResponse, bool, error) {
	cacheKey := reviewCacheKey(filter)
	if s.cache.Enabled() {
		var cached dto.ReviewListResponse
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return &cached, true, nil
		}
	}

	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load applicants")
	}

	emailGroups, txGroups := ComputeDuplicateGroups(records)
	filtered := FilterAndSort(records, filter)

	views := make([]dto.ApplicantView, 0, len(filtered))
	for _, rec := range filtered {
		views = append(views, dto.ApplicantView{
			Applicant: rec,
			Duplicate: IsDuplicate(rec, emailGroups, txGroups),
		})
	}

	resp := &dto.ReviewListResponse{
		Applicants: views,
		Counts:     CountByStatus(records, filter),
	}

	if s.cache.Enabled() {
		if err := s.cache.Set(ctx, cacheKey, resp, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache review list", zap.Error(err))
		}
	}

	return resp, false, nil
}

func reviewCacheKey(filter models.ApplicantFilter) string {
	return fmt.Sprintf("review:list:%s:%s:%s:%s:%t",
		filter.Status, filter.Team, filter.Department, strings.ToLower(filter.Search), filter.DuplicatesOnly)
}
