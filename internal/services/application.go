package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Ananth-NQI/govjobs-backend/internal/apperr"
	"github.com/Ananth-NQI/govjobs-backend/internal/models"
	"github.com/Ananth-NQI/govjobs-backend/internal/storage"
	"github.com/Ananth-NQI/govjobs-backend/internal/utils"
	"github.com/Ananth-NQI/govjobs-backend/internal/wizard"
)

// What the client should do after a successful submission.
const (
	NextStepPayment = "payment"
	NextStepDone    = "done"
)

// ApplicationForm is everything the applicant filled in, with uploads reduced to metadata.
type ApplicationForm struct {
	Personal   models.PersonalInfo
	Additional models.AdditionalInfo
	Documents  []UploadedDocument
}

type UploadedDocument struct {
	SlotID string
	Meta   models.DocumentMeta
}

type SubmitResult struct {
	Application *models.JobApplication
	Next        string
	Amount      float64
	// Rejected optional uploads that did not block submission.
	DocumentErrors []string
}

type ApplicationService struct {
	store   storage.Store
	catalog *CatalogService
	logger  *zap.Logger
	now     func() time.Time
}

func NewApplicationService(store storage.Store, catalog *CatalogService, logger *zap.Logger) *ApplicationService {
	return &ApplicationService{store: store, catalog: catalog, logger: logger, now: time.Now}
}

// Submit runs the form through the wizard and persists the result. Each call creates a
// new application, even for a job the user already applied to.
func (s *ApplicationService) Submit(ctx context.Context, sess *SessionContext, jobID string, form ApplicationForm) (*SubmitResult, error) {
	job, err := s.catalog.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !job.Open {
		return nil, apperr.ErrJobClosed
	}

	w := wizard.New(job.ID, job.ApplicationFee)
	if err := w.SetPersonalInfo(form.Personal); err != nil {
		return nil, err
	}
	if err := w.SetAdditionalInfo(form.Additional); err != nil {
		return nil, err
	}
	if err := w.Next(); err != nil {
		return nil, err
	}

	var docErrs []string
	for _, d := range form.Documents {
		if err := w.Stage(d.SlotID, d.Meta); err != nil {
			msg, details := apperr.Describe(err)
			docErrs = append(docErrs, d.SlotID+": "+msg+" ("+details+")")
		}
	}
	if err := w.Next(); err != nil {
		if len(docErrs) == 0 {
			return nil, err
		}
		_, details := apperr.Describe(err)
		return nil, apperr.Validation("Please upload all required documents", details+"; "+strings.Join(docErrs, "; "))
	}

	now := s.now()
	sub, err := w.Submit(now)
	if err != nil {
		return nil, err
	}

	paymentStatus := models.PaymentStatusPending
	next := NextStepPayment
	if !sub.RequiresPayment() {
		paymentStatus = models.PaymentStatusCompleted
		next = NextStepDone
	}

	app := &models.JobApplication{
		ReferenceNo:     utils.NewReferenceNumber(now),
		UserID:          sess.UserID,
		JobID:           job.ID,
		ApplicationData: sub.Data,
		PaymentStatus:   paymentStatus,
		Status:          models.ApplicationStatusSubmitted,
	}
	if err := s.store.CreateApplication(ctx, app); err != nil {
		return nil, apperr.Persistence(err, "Failed to submit application")
	}
	s.logger.Info("application submitted",
		zap.String("application_id", app.ID),
		zap.String("reference_no", app.ReferenceNo),
		zap.String("job_id", job.ID),
		zap.String("user_id", sess.UserID))

	return &SubmitResult{
		Application:    app,
		Next:           next,
		Amount:         sub.Data.ApplicationFee,
		DocumentErrors: docErrs,
	}, nil
}

// ListMine returns the session user's applications, newest first.
func (s *ApplicationService) ListMine(ctx context.Context, sess *SessionContext) ([]*models.JobApplication, error) {
	apps, err := s.store.ListApplicationsByUser(ctx, sess.UserID)
	if err != nil {
		return nil, apperr.Persistence(err, "Failed to fetch applications")
	}
	return apps, nil
}

// Get returns one application. Only its owner or an admin may see it.
func (s *ApplicationService) Get(ctx context.Context, sess *SessionContext, id string) (*models.JobApplication, error) {
	app, err := s.store.GetApplication(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperr.ErrApplicationNotFound
	}
	if err != nil {
		return nil, apperr.Persistence(err, "Failed to fetch application")
	}
	if app.UserID != sess.UserID && !sess.Admin {
		return nil, apperr.ErrApplicationNotFound
	}
	return app, nil
}
