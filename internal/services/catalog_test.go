package services

import (
	"context"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ananth-NQI/govjobs-backend/internal/apperr"
	"github.com/Ananth-NQI/govjobs-backend/internal/models"
	"github.com/Ananth-NQI/govjobs-backend/internal/storage"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestNormalizeFillsDefaults(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	v := Normalize(&models.Job{ID: "j1", ApplicationFee: "abc"}, now)

	assert.Equal(t, "Untitled Job", v.Title)
	assert.Equal(t, "Unknown Organization", v.Organization)
	assert.Equal(t, "Not specified", v.Location)
	assert.Equal(t, "Not specified", v.Qualification)
	assert.Equal(t, "Not specified", v.Experience)
	assert.Equal(t, "Not specified", v.Salary)
	assert.Equal(t, "No description available", v.Description)
	assert.Equal(t, []string{"Basic eligibility criteria apply"}, v.Eligibility)
	assert.Equal(t, "Government", v.Category)
	assert.Equal(t, 1, v.Posts)
	assert.Equal(t, "2026-10-18", v.LastDate)
	assert.Equal(t, "2026-10-18", v.ImportantDates.ApplicationStart)
	assert.Equal(t, "2026-10-18", v.ImportantDates.ApplicationEnd)
	assert.Empty(t, v.ImportantDates.ExamDate)
	assert.Zero(t, v.ApplicationFee)
	assert.Empty(t, v.ExternalURL)
	assert.True(t, v.Expired, "a job closing today has no days remaining")
}

func TestNormalizeKeepsStoredValues(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	job := &models.Job{
		ID:               "j1",
		Title:            "Clerk",
		LastDate:         date(2026, 10, 28),
		ApplicationFee:   "250.5",
		Eligibility:      pq.StringArray{"Graduate"},
		Posts:            40,
		ApplicationStart: date(2026, 10, 1),
		ExamDate:         date(2026, 12, 5),
		CreatedAt:        time.Date(2026, 9, 30, 12, 0, 0, 0, time.UTC),
	}
	v := Normalize(job, now)

	assert.Equal(t, "Clerk", v.Title)
	assert.Equal(t, "2026-10-28", v.LastDate)
	assert.Equal(t, 250.5, v.ApplicationFee)
	assert.Equal(t, []string{"Graduate"}, v.Eligibility)
	assert.Equal(t, 40, v.Posts)
	assert.Equal(t, "2026-10-01", v.ImportantDates.ApplicationStart)
	assert.Equal(t, "2026-12-05", v.ImportantDates.ExamDate)
	assert.Equal(t, 10, v.DaysRemaining)
	assert.False(t, v.Expired)

	job.ApplicationStart = nil
	assert.Equal(t, "2026-09-30", Normalize(job, now).ImportantDates.ApplicationStart)
}

func TestParseFee(t *testing.T) {
	cases := map[string]float64{
		"":       0,
		"100":    100,
		" 99.5 ": 99.5,
		"₹100":   0,
		"free":   0,
		"-10":    0,
		"NaN":    0,
		"Inf":    0,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseFee(in), in)
	}
}

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysRemaining(*date(2026, 10, 19), now))
	assert.Equal(t, 0, DaysRemaining(*date(2026, 10, 18), now))
	assert.Equal(t, -1, DaysRemaining(*date(2026, 10, 17), now))
}

func TestListActiveFromPrimary(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	now := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	seedJob(store, &models.Job{Title: "Open", IsActive: true, LastDate: date(2026, 11, 1)})
	seedJob(store, &models.Job{Title: "Closed", IsActive: true, LastDate: date(2026, 10, 1)})
	seedJob(store, &models.Job{Title: "Hidden", IsActive: false, LastDate: date(2026, 11, 1)})

	svc := NewCatalogService(store, testLogger())
	svc.now = fixedClock(now)

	list := svc.ListActive(ctx)
	assert.Equal(t, SourcePrimary, list.Source)
	require.Len(t, list.Jobs, 1)
	assert.Equal(t, "Open", list.Jobs[0].Title)
	assert.Equal(t, 1, list.Count)

	all := svc.ListAll(ctx)
	assert.Equal(t, SourcePrimary, all.Source)
	assert.Len(t, all.Jobs, 3)
}

func TestCatalogFallsBackToSampleData(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	svc := NewCatalogService(brokenStore{Store: storage.NewMemoryStore()}, testLogger())
	svc.now = fixedClock(now)

	list := svc.ListActive(ctx)
	assert.Equal(t, SourceFallback, list.Source)
	require.NotEmpty(t, list.Jobs)
	for _, j := range list.Jobs {
		assert.False(t, j.Expired, j.ID)
	}

	all := svc.ListAll(ctx)
	assert.Equal(t, SourceFallback, all.Source)
	assert.Len(t, all.Jobs, len(SampleJobs(now)))

	v, err := svc.Get(ctx, "sample-1")
	require.NoError(t, err)
	assert.Equal(t, 100.0, v.ApplicationFee)

	_, err = svc.Get(ctx, "real-id")
	assert.Equal(t, apperr.KindPersistence, apperr.KindOf(err))
}

func TestCatalogGetNotFound(t *testing.T) {
	svc := NewCatalogService(storage.NewMemoryStore(), testLogger())
	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, apperr.ErrJobNotFound)
}
