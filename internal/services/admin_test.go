package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ananth-NQI/govjobs-backend/internal/apperr"
	"github.com/Ananth-NQI/govjobs-backend/internal/models"
	"github.com/Ananth-NQI/govjobs-backend/internal/storage"
)

func newAdmin(store storage.Store, now time.Time) *AdminService {
	catalog := NewCatalogService(store, testLogger())
	catalog.now = fixedClock(now)
	svc := NewAdminService(store, catalog, testLogger())
	svc.now = fixedClock(now)
	return svc
}

func TestFeeAcceptsNumbersAndStrings(t *testing.T) {
	var in JobInput
	require.NoError(t, json.Unmarshal([]byte(`{"applicationFee": 150}`), &in))
	assert.Equal(t, Fee("150"), in.ApplicationFee)

	require.NoError(t, json.Unmarshal([]byte(`{"applicationFee": " 99.5 "}`), &in))
	assert.Equal(t, Fee("99.5"), in.ApplicationFee)

	require.NoError(t, json.Unmarshal([]byte(`{"applicationFee": null}`), &in))
	assert.Equal(t, Fee(""), in.ApplicationFee)

	assert.Error(t, json.Unmarshal([]byte(`{"applicationFee": true}`), &in))
}

func TestCreateJobAppliesDefaults(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	now := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	svc := newAdmin(store, now)

	v, err := svc.CreateJob(ctx, JobInput{ApplicationFee: "not a number"})
	require.NoError(t, err)
	assert.Equal(t, "New Job", v.Title)
	assert.Equal(t, "Organization", v.Organization)
	assert.Equal(t, "Location", v.Location)
	assert.Equal(t, "Qualification required", v.Qualification)
	assert.Equal(t, "Salary not specified", v.Salary)
	assert.Equal(t, "2026-10-18", v.LastDate)
	assert.Zero(t, v.ApplicationFee)
	assert.True(t, v.IsActive)

	stored, err := store.GetJob(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "0", stored.ApplicationFee)

	inactive := false
	v, err = svc.CreateJob(ctx, JobInput{Title: "Clerk", LastDate: "2026-12-01", ApplicationFee: "200", IsActive: &inactive})
	require.NoError(t, err)
	assert.True(t, v.IsActive, "new jobs always start active")
	assert.Equal(t, "2026-12-01", v.LastDate)
	assert.Equal(t, 200.0, v.ApplicationFee)
}

func TestCreateJobValidation(t *testing.T) {
	svc := newAdmin(storage.NewMemoryStore(), time.Now())

	_, err := svc.CreateJob(context.Background(), JobInput{LastDate: "18/10/2026"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.CreateJob(context.Background(), JobInput{ExternalURL: "not a url"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.CreateJob(context.Background(), JobInput{ImportantDates: &JobDates{ExamDate: "soon"}})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestUpdateJobReplacesEditableFields(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	now := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	svc := newAdmin(store, now)

	created, err := svc.CreateJob(ctx, JobInput{Title: "Clerk", Salary: "₹20,000", LastDate: "2026-12-01"})
	require.NoError(t, err)

	updated, err := svc.UpdateJob(ctx, created.ID, JobInput{
		Title:          "Senior Clerk",
		LastDate:       "2026-12-15",
		ApplicationFee: "free",
		ImportantDates: &JobDates{ExamDate: "2027-01-10"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Senior Clerk", updated.Title)
	assert.Equal(t, "Not specified", updated.Salary, "fields left out are cleared")
	assert.Equal(t, "2026-12-15", updated.LastDate)
	assert.Equal(t, "2027-01-10", updated.ImportantDates.ExamDate)
	assert.Zero(t, updated.ApplicationFee)
	assert.True(t, updated.IsActive)

	stored, err := store.GetJob(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "free", stored.ApplicationFee, "raw fee text is kept")

	_, err = svc.UpdateJob(ctx, "missing", JobInput{Title: "x"})
	assert.ErrorIs(t, err, apperr.ErrJobNotFound)
}

func TestToggleAndDeleteJob(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	svc := newAdmin(store, time.Now())

	created, err := svc.CreateJob(ctx, JobInput{Title: "Clerk"})
	require.NoError(t, err)

	v, err := svc.ToggleJob(ctx, created.ID, nil)
	require.NoError(t, err)
	assert.False(t, v.IsActive)

	v, err = svc.ToggleJob(ctx, created.ID, nil)
	require.NoError(t, err)
	assert.True(t, v.IsActive)

	active := true
	v, err = svc.ToggleJob(ctx, created.ID, &active)
	require.NoError(t, err)
	assert.True(t, v.IsActive)

	_, err = svc.ToggleJob(ctx, "missing", nil)
	assert.ErrorIs(t, err, apperr.ErrJobNotFound)
	_, err = svc.ToggleJob(ctx, "missing", &active)
	assert.ErrorIs(t, err, apperr.ErrJobNotFound)

	require.NoError(t, svc.DeleteJob(ctx, created.ID))
	assert.ErrorIs(t, svc.DeleteJob(ctx, created.ID), apperr.ErrJobNotFound)
	assert.Empty(t, svc.ListJobs(ctx).Jobs)
}

func TestSettingsDefaultsAndReplace(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	svc := newAdmin(store, time.Now())

	s, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Cyber Cafe", s.MerchantName)
	assert.Empty(t, s.UPIID)
	assert.True(t, s.PaymentEnabled)
	assert.True(t, s.EmailNotifications)
	assert.True(t, s.SMSNotifications)

	saved, err := svc.ReplaceSettings(ctx, models.AdminSettings{UPIID: " shop@upi ", MerchantName: "Shop"})
	require.NoError(t, err)
	assert.Equal(t, "shop@upi", saved.UPIID)

	s, err = svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Shop", s.MerchantName)
	assert.False(t, s.PaymentEnabled, "settings are replaced as a whole")
}

func TestDashboardCounts(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	u := registerVerified(store, "9876543210")
	registerVerified(store, "9123456789")
	app := pendingApplication(t, store, u.ID, 100)
	pendingApplication(t, store, u.ID, 100)
	_, err := store.RecordPayment(ctx, &models.Payment{
		UserID: u.ID, ApplicationID: app.ID, Amount: 100,
		PaymentMethod: models.PaymentMethodUPI, TransactionID: "T1", Status: models.PaymentStatusCompleted,
	})
	require.NoError(t, err)

	stats := newAdmin(store, time.Now()).Dashboard(ctx)
	assert.EqualValues(t, 2, stats.TotalUsers)
	assert.EqualValues(t, 2, stats.TotalApplications)
	assert.EqualValues(t, 1, stats.TotalPayments)
	assert.EqualValues(t, 0, stats.PendingPayments)

	degraded := newAdmin(brokenStore{Store: store}, time.Now()).Dashboard(ctx)
	assert.Zero(t, degraded.TotalUsers, "a failed count reads as zero")
	assert.EqualValues(t, 2, degraded.TotalApplications)
}
