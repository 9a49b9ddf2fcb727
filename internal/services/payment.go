package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Ananth-NQI/govjobs-backend/internal/apperr"
	"github.com/Ananth-NQI/govjobs-backend/internal/models"
	"github.com/Ananth-NQI/govjobs-backend/internal/storage"
)

// VerifyPaymentRequest is what the applicant submits after paying through their UPI app.
type VerifyPaymentRequest struct {
	ApplicationID string  `json:"applicationId"`
	TransactionID string  `json:"transactionId"`
	Amount        float64 `json:"amount"`
}

// PaymentInstructions tell the applicant where and how much to pay.
type PaymentInstructions struct {
	ApplicationID string  `json:"applicationId"`
	ReferenceNo   string  `json:"referenceNo"`
	UPIID         string  `json:"upiId"`
	MerchantName  string  `json:"merchantName"`
	Amount        float64 `json:"amount"`
	PaymentStatus string  `json:"paymentStatus"`
	UPILink       string  `json:"upiLink"`
}

type PaymentService struct {
	store    storage.Store
	notifier Notifier
	logger   *zap.Logger
}

// NewPaymentService creates a payment service. notifier may be nil.
func NewPaymentService(store storage.Store, notifier Notifier, logger *zap.Logger) *PaymentService {
	return &PaymentService{store: store, notifier: notifier, logger: logger}
}

// Verify records a UPI payment the applicant says they made and marks the application
// paid. The transaction id is trusted as given.
func (s *PaymentService) Verify(ctx context.Context, req VerifyPaymentRequest) (*models.Payment, error) {
	req.ApplicationID = strings.TrimSpace(req.ApplicationID)
	req.TransactionID = strings.TrimSpace(req.TransactionID)

	var missing []string
	if req.ApplicationID == "" {
		missing = append(missing, "applicationId")
	}
	if req.TransactionID == "" {
		missing = append(missing, "transactionId")
	}
	if req.Amount == 0 {
		missing = append(missing, "amount")
	}
	if len(missing) > 0 {
		return nil, apperr.Detail(apperr.ErrMissingField, "%s", strings.Join(missing, ", "))
	}

	app, err := s.store.GetApplication(ctx, req.ApplicationID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperr.ErrApplicationNotFound
	}
	if err != nil {
		return nil, apperr.Persistence(err, "Failed to fetch application")
	}

	payment, err := s.store.RecordPayment(ctx, &models.Payment{
		UserID:        app.UserID,
		ApplicationID: app.ID,
		Amount:        req.Amount,
		PaymentMethod: models.PaymentMethodUPI,
		TransactionID: req.TransactionID,
		Status:        models.PaymentStatusCompleted,
	})
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperr.ErrApplicationNotFound
	}
	if err != nil {
		return nil, apperr.Persistence(err, "Failed to record payment")
	}
	s.logger.Info("payment recorded",
		zap.String("payment_id", payment.ID),
		zap.String("application_id", app.ID),
		zap.String("transaction_id", payment.TransactionID),
		zap.Float64("amount", payment.Amount))

	s.confirm(ctx, app, payment)
	return payment, nil
}

// confirm texts the applicant when SMS notifications are on. Failures are only logged.
func (s *PaymentService) confirm(ctx context.Context, app *models.JobApplication, payment *models.Payment) {
	if s.notifier == nil {
		return
	}
	settings, err := loadSettings(ctx, s.store)
	if err != nil {
		s.logger.Warn("settings unavailable, skipping payment sms", zap.Error(err))
		return
	}
	if !settings.SMSNotifications {
		return
	}
	user, err := s.store.GetUserByID(ctx, app.UserID)
	if err != nil {
		s.logger.Warn("payment sms recipient lookup failed", zap.String("user_id", app.UserID), zap.Error(err))
		return
	}
	body := fmt.Sprintf("Payment of Rs.%.2f received for application %s. Transaction ID: %s.",
		payment.Amount, app.ReferenceNo, payment.TransactionID)
	if err := s.notifier.SendSMS(ctx, user.Phone, body); err != nil {
		s.logger.Warn("payment sms failed", zap.String("application_id", app.ID), zap.Error(err))
	}
}

// Instructions returns the UPI details for paying an application's fee.
func (s *PaymentService) Instructions(ctx context.Context, applicationID string) (*PaymentInstructions, error) {
	app, err := s.store.GetApplication(ctx, applicationID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperr.ErrApplicationNotFound
	}
	if err != nil {
		return nil, apperr.Persistence(err, "Failed to fetch application")
	}

	settings, err := loadSettings(ctx, s.store)
	if err != nil {
		return nil, err
	}
	if !settings.PaymentEnabled || strings.TrimSpace(settings.UPIID) == "" {
		return nil, apperr.ErrPaymentsDisabled
	}

	amount := app.ApplicationData.ApplicationFee
	return &PaymentInstructions{
		ApplicationID: app.ID,
		ReferenceNo:   app.ReferenceNo,
		UPIID:         settings.UPIID,
		MerchantName:  settings.MerchantName,
		Amount:        amount,
		PaymentStatus: app.PaymentStatus,
		UPILink:       UPILink(settings.UPIID, settings.MerchantName, amount, "Application "+app.ReferenceNo),
	}, nil
}

// UPILink builds a upi://pay deep link understood by Indian UPI apps.
func UPILink(payee, name string, amount float64, note string) string {
	q := url.Values{}
	q.Set("pa", payee)
	q.Set("pn", name)
	q.Set("am", strconv.FormatFloat(amount, 'f', 2, 64))
	q.Set("cu", "INR")
	if note != "" {
		q.Set("tn", note)
	}
	return "upi://pay?" + q.Encode()
}

// loadSettings returns the stored settings, or the defaults while none are saved.
func loadSettings(ctx context.Context, store storage.Store) (*models.AdminSettings, error) {
	settings, err := store.GetSettings(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		def := models.DefaultAdminSettings()
		return &def, nil
	}
	if err != nil {
		return nil, apperr.Persistence(err, "Failed to fetch settings")
	}
	return settings, nil
}
