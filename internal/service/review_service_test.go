package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scintilla-cusat/recruit-api/internal/models"
)

func reviewFixture() []models.Applicant {
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	return []models.Applicant{
		{UserID: "SC_AAAAAAAAAA", Name: "Anju Thomas", Email: "anju@example.com", TransactionID: "TX1", Department: "Department of Physics", Team: "Tech", Status: models.StatusPending, CreatedAt: base},
		{UserID: "SC_BBBBBBBBBB", Name: "Rahul Nair", Email: "rahul@example.com", TransactionID: "TX2", Department: "Department of Physics", Team: "Media and Production", Status: models.StatusVerified, CreatedAt: base.Add(time.Hour)},
		{UserID: "SC_CCCCCCCCCC", Name: "Meera Das", Email: "anju@example.com", TransactionID: "TX3", Department: "Department of Chemistry", Team: "Tech", Status: models.StatusPending, CreatedAt: base.Add(2 * time.Hour)},
		{UserID: "SC_DDDDDDDDDD", Name: "Vishnu Menon", Email: "vishnu@example.com", TransactionID: "TX2", Department: "Department of Hindi", Team: "Content", Status: models.StatusRejected, CreatedAt: base.Add(3 * time.Hour)},
	}
}

func TestIsDuplicate(t *testing.T) {
	records := reviewFixture()
	emailGroups, txGroups := ComputeDuplicateGroups(records)

	tests := []struct {
		name   string
		userID string
		want   bool
	}{
		{name: "shared email", userID: "SC_AAAAAAAAAA", want: true},
		{name: "shared transaction id", userID: "SC_BBBBBBBBBB", want: true},
		{name: "shares email with first", userID: "SC_CCCCCCCCCC", want: true},
		{name: "shares transaction with second", userID: "SC_DDDDDDDDDD", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, rec := range records {
				if rec.UserID == tt.userID {
					assert.Equal(t, tt.want, IsDuplicate(rec, emailGroups, txGroups))
				}
			}
		})
	}

	unique := models.Applicant{UserID: "SC_EEEEEEEEEE", Email: "solo@example.com", TransactionID: "TX9"}
	all := append(records, unique)
	emailGroups, txGroups = ComputeDuplicateGroups(all)
	assert.False(t, IsDuplicate(unique, emailGroups, txGroups))
}

func TestFilterAndSort(t *testing.T) {
	records := reviewFixture()

	tests := []struct {
		name    string
		filter  models.ApplicantFilter
		wantIDs []string
	}{
		{
			name:    "no filter sorts newest first",
			filter:  models.ApplicantFilter{},
			wantIDs: []string{"SC_DDDDDDDDDD", "SC_CCCCCCCCCC", "SC_BBBBBBBBBB", "SC_AAAAAAAAAA"},
		},
		{
			name:    "status all behaves as no status filter",
			filter:  models.ApplicantFilter{Status: models.StatusAll},
			wantIDs: []string{"SC_DDDDDDDDDD", "SC_CCCCCCCCCC", "SC_BBBBBBBBBB", "SC_AAAAAAAAAA"},
		},
		{
			name:    "status pending",
			filter:  models.ApplicantFilter{Status: models.StatusPending},
			wantIDs: []string{"SC_CCCCCCCCCC", "SC_AAAAAAAAAA"},
		},
		{
			name:    "team and status combine conjunctively",
			filter:  models.ApplicantFilter{Status: models.StatusPending, Team: "Tech"},
			wantIDs: []string{"SC_CCCCCCCCCC", "SC_AAAAAAAAAA"},
		},
		{
			name:    "department filter",
			filter:  models.ApplicantFilter{Department: "Department of Physics"},
			wantIDs: []string{"SC_BBBBBBBBBB", "SC_AAAAAAAAAA"},
		},
		{
			name:    "search is case insensitive over name",
			filter:  models.ApplicantFilter{Search: "meera"},
			wantIDs: []string{"SC_CCCCCCCCCC"},
		},
		{
			name:    "search matches user id",
			filter:  models.ApplicantFilter{Search: "sc_bbbb"},
			wantIDs: []string{"SC_BBBBBBBBBB"},
		},
		{
			name:    "duplicates only",
			filter:  models.ApplicantFilter{DuplicatesOnly: true},
			wantIDs: []string{"SC_DDDDDDDDDD", "SC_CCCCCCCCCC", "SC_BBBBBBBBBB", "SC_AAAAAAAAAA"},
		},
		{
			name:    "no match",
			filter:  models.ApplicantFilter{Search: "zzz"},
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterAndSort(records, tt.filter)
			ids := make([]string, 0, len(got))
			for _, rec := range got {
				ids = append(ids, rec.UserID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestFilterAndSortStableOnEqualTimestamps(t *testing.T) {
	ts := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	records := []models.Applicant{
		{UserID: "SC_1111111111", Email: "a@x.com", TransactionID: "T1", CreatedAt: ts},
		{UserID: "SC_2222222222", Email: "b@x.com", TransactionID: "T2", CreatedAt: ts},
		{UserID: "SC_3333333333", Email: "c@x.com", TransactionID: "T3", CreatedAt: ts},
	}

	got := FilterAndSort(records, models.ApplicantFilter{})
	require.Len(t, got, 3)
	assert.Equal(t, "SC_1111111111", got[0].UserID)
	assert.Equal(t, "SC_2222222222", got[1].UserID)
	assert.Equal(t, "SC_3333333333", got[2].UserID)
}

func TestFilterAndSortIdempotent(t *testing.T) {
	records := reviewFixture()
	filter := models.ApplicantFilter{Status: models.StatusPending, Team: "Tech"}

	once := FilterAndSort(records, filter)
	twice := FilterAndSort(once, filter)
	assert.Equal(t, once, twice)
}

func TestCountByStatus(t *testing.T) {
	records := reviewFixture()

	t.Run("unfiltered", func(t *testing.T) {
		counts := CountByStatus(records, models.ApplicantFilter{})
		assert.Equal(t, models.StatusCounts{All: 4, Pending: 2, Verified: 1, Rejected: 1}, counts)
	})

	t.Run("status filter is ignored", func(t *testing.T) {
		withStatus := CountByStatus(records, models.ApplicantFilter{Status: models.StatusRejected})
		without := CountByStatus(records, models.ApplicantFilter{})
		assert.Equal(t, without, withStatus)
	})

	t.Run("other filters apply", func(t *testing.T) {
		counts := CountByStatus(records, models.ApplicantFilter{Team: "Tech"})
		assert.Equal(t, models.StatusCounts{All: 2, Pending: 2}, counts)
	})

	t.Run("all equals sum of the parts", func(t *testing.T) {
		counts := CountByStatus(records, models.ApplicantFilter{Department: "Department of Physics"})
		assert.Equal(t, counts.All, counts.Pending+counts.Verified+counts.Rejected)
	})
}

type fakeReviewLister struct {
	records []models.Applicant
	err     error
	calls   int
}

func (f *fakeReviewLister) ListAll(ctx context.Context) ([]models.Applicant, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func TestReviewServiceList(t *testing.T) {
	t.Run("returns views with duplicate flags and counts", func(t *testing.T) {
		repo := &fakeReviewLister{records: reviewFixture()}
		svc := NewReviewService(repo, nil, nil, 0)

		resp, cached, err := svc.List(context.Background(), models.ApplicantFilter{})
		require.NoError(t, err)
		assert.False(t, cached)
		require.Len(t, resp.Applicants, 4)
		assert.Equal(t, "SC_DDDDDDDDDD", resp.Applicants[0].UserID)
		for _, view := range resp.Applicants {
			assert.True(t, view.Duplicate)
		}
		assert.Equal(t, models.StatusCounts{All: 4, Pending: 2, Verified: 1, Rejected: 1}, resp.Counts)
	})

	t.Run("duplicate flag computed over full snapshot", func(t *testing.T) {
		repo := &fakeReviewLister{records: reviewFixture()}
		svc := NewReviewService(repo, nil, nil, 0)

		resp, _, err := svc.List(context.Background(), models.ApplicantFilter{Department: "Department of Chemistry"})
		require.NoError(t, err)
		require.Len(t, resp.Applicants, 1)
		assert.True(t, resp.Applicants[0].Duplicate)
	})

	t.Run("repository error surfaces", func(t *testing.T) {
		repo := &fakeReviewLister{err: errors.New("db down")}
		svc := NewReviewService(repo, nil, nil, 0)

		_, _, err := svc.List(context.Background(), models.ApplicantFilter{})
		assert.Error(t, err)
	})
}
