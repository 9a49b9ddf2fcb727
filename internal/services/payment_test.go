package services

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ananth-NQI/govjobs-backend/internal/apperr"
	"github.com/Ananth-NQI/govjobs-backend/internal/models"
	"github.com/Ananth-NQI/govjobs-backend/internal/storage"
)

func pendingApplication(t *testing.T, store storage.Store, userID string, fee float64) *models.JobApplication {
	t.Helper()
	app := &models.JobApplication{
		ReferenceNo:     "01JAB3C4D5E6F7G8H9J0KMNPQR",
		UserID:          userID,
		JobID:           "job-1",
		ApplicationData: models.ApplicationData{JobID: "job-1", ApplicationFee: fee},
		PaymentStatus:   models.PaymentStatusPending,
		Status:          models.ApplicationStatusSubmitted,
	}
	require.NoError(t, store.CreateApplication(context.Background(), app))
	return app
}

func TestVerifyPaymentMarksApplicationPaid(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	u := registerVerified(store, "9876543210")
	app := pendingApplication(t, store, u.ID, 100)
	sms := newRecordingSender()
	svc := NewPaymentService(store, sms, testLogger())

	p, err := svc.Verify(ctx, VerifyPaymentRequest{ApplicationID: app.ID, TransactionID: " UPI123 ", Amount: 100})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentMethodUPI, p.PaymentMethod)
	assert.Equal(t, models.PaymentStatusCompleted, p.Status)
	assert.Equal(t, "UPI123", p.TransactionID)
	assert.Equal(t, u.ID, p.UserID)

	got, err := store.GetApplication(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, got.PaymentStatus)
	assert.Equal(t, p.ID, got.PaymentID)

	require.Len(t, sms.sms, 1)
	assert.Equal(t, "9876543210", sms.sms[0].phone)
	assert.Contains(t, sms.sms[0].body, "UPI123")

	again, err := svc.Verify(ctx, VerifyPaymentRequest{ApplicationID: app.ID, TransactionID: "UPI123", Amount: 100})
	require.NoError(t, err)
	assert.Equal(t, p.ID, again.ID)
}

func TestVerifyPaymentValidation(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	svc := NewPaymentService(store, nil, testLogger())

	for _, req := range []VerifyPaymentRequest{
		{TransactionID: "T", Amount: 1},
		{ApplicationID: "a", Amount: 1},
		{ApplicationID: "a", TransactionID: "T"},
	} {
		_, err := svc.Verify(ctx, req)
		assert.ErrorIs(t, err, apperr.ErrMissingField)
	}

	_, err := svc.Verify(ctx, VerifyPaymentRequest{ApplicationID: "missing", TransactionID: "T", Amount: 1})
	assert.ErrorIs(t, err, apperr.ErrApplicationNotFound)

	n, err := store.CountPaymentsByStatus(ctx, models.PaymentStatusCompleted)
	require.NoError(t, err)
	assert.Zero(t, n, "no payment is recorded for an unknown application")
}

func TestVerifyPaymentSkipsSMSWhenDisabled(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	u := registerVerified(store, "9876543210")
	app := pendingApplication(t, store, u.ID, 100)
	require.NoError(t, store.SaveSettings(ctx, &models.AdminSettings{UPIID: "shop@upi", PaymentEnabled: true}))
	sms := newRecordingSender()
	svc := NewPaymentService(store, sms, testLogger())

	_, err := svc.Verify(ctx, VerifyPaymentRequest{ApplicationID: app.ID, TransactionID: "T1", Amount: 100})
	require.NoError(t, err)
	assert.Empty(t, sms.sms)
}

func TestVerifyPaymentIgnoresSMSFailure(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	u := registerVerified(store, "9876543210")
	app := pendingApplication(t, store, u.ID, 100)
	sms := newRecordingSender()
	sms.fail = true
	svc := NewPaymentService(store, sms, testLogger())

	_, err := svc.Verify(ctx, VerifyPaymentRequest{ApplicationID: app.ID, TransactionID: "T1", Amount: 100})
	assert.NoError(t, err)
}

func TestPaymentInstructions(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	app := pendingApplication(t, store, "u1", 250)
	svc := NewPaymentService(store, nil, testLogger())

	_, err := svc.Instructions(ctx, app.ID)
	assert.ErrorIs(t, err, apperr.ErrPaymentsDisabled, "default settings carry no UPI id")

	require.NoError(t, store.SaveSettings(ctx, &models.AdminSettings{UPIID: "shop@upi", MerchantName: "Cyber Cafe", PaymentEnabled: true}))
	ins, err := svc.Instructions(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, 250.0, ins.Amount)
	assert.Equal(t, "shop@upi", ins.UPIID)
	assert.Equal(t, models.PaymentStatusPending, ins.PaymentStatus)

	require.True(t, strings.HasPrefix(ins.UPILink, "upi://pay?"))
	q, err := url.ParseQuery(strings.TrimPrefix(ins.UPILink, "upi://pay?"))
	require.NoError(t, err)
	assert.Equal(t, "shop@upi", q.Get("pa"))
	assert.Equal(t, "Cyber Cafe", q.Get("pn"))
	assert.Equal(t, "250.00", q.Get("am"))
	assert.Equal(t, "INR", q.Get("cu"))
	assert.Contains(t, q.Get("tn"), app.ReferenceNo)

	require.NoError(t, store.SaveSettings(ctx, &models.AdminSettings{UPIID: "shop@upi", PaymentEnabled: false}))
	_, err = svc.Instructions(ctx, app.ID)
	assert.ErrorIs(t, err, apperr.ErrPaymentsDisabled)

	_, err = svc.Instructions(ctx, "missing")
	assert.ErrorIs(t, err, apperr.ErrApplicationNotFound)
}
