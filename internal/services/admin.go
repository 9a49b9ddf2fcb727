package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Ananth-NQI/govjobs-backend/internal/apperr"
	"github.com/Ananth-NQI/govjobs-backend/internal/models"
	"github.com/Ananth-NQI/govjobs-backend/internal/storage"
)

// Fee accepts a JSON number or string and keeps its text.
type Fee string

func (f *Fee) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = Fee(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("applicationFee must be a number or string: %w", err)
	}
	*f = Fee(n.String())
	return nil
}

type JobDates struct {
	ApplicationStart string `json:"applicationStart" validate:"omitempty,datetime=2006-01-02"`
	ExamDate         string `json:"examDate" validate:"omitempty,datetime=2006-01-02"`
}

// JobInput is the admin's job form.
type JobInput struct {
	Title          string    `json:"title" validate:"max=255"`
	Organization   string    `json:"organization" validate:"max=255"`
	Location       string    `json:"location"`
	Qualification  string    `json:"qualification"`
	Experience     string    `json:"experience"`
	Salary         string    `json:"salary"`
	LastDate       string    `json:"lastDate" validate:"omitempty,datetime=2006-01-02"`
	ApplicationFee Fee       `json:"applicationFee"`
	Description    string    `json:"description"`
	Eligibility    []string  `json:"eligibility"`
	ExternalURL    string    `json:"externalUrl" validate:"omitempty,url"`
	Category       string    `json:"category"`
	Posts          int       `json:"posts" validate:"gte=0"`
	ImportantDates *JobDates `json:"importantDates"`
	IsActive       *bool     `json:"isActive"`
}

type AdminService struct {
	store    storage.Store
	catalog  *CatalogService
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time
}

func NewAdminService(store storage.Store, catalog *CatalogService, logger *zap.Logger) *AdminService {
	return &AdminService{
		store:    store,
		catalog:  catalog,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
		now:      time.Now,
	}
}

func (s *AdminService) ListJobs(ctx context.Context) Listing {
	return s.catalog.ListAll(ctx)
}

func (s *AdminService) GetJob(ctx context.Context, id string) (*JobView, error) {
	return s.catalog.Get(ctx, id)
}

// CreateJob stores a new active posting, filling the admin form's defaults.
func (s *AdminService) CreateJob(ctx context.Context, in JobInput) (*JobView, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}
	now := s.now()
	today := models.TruncateDay(now)

	job := &models.Job{
		Title:          orDefault(in.Title, "New Job"),
		Organization:   orDefault(in.Organization, "Organization"),
		Location:       orDefault(in.Location, "Location"),
		Qualification:  orDefault(in.Qualification, "Qualification required"),
		Experience:     orDefault(in.Experience, "Not specified"),
		Salary:         orDefault(in.Salary, "Salary not specified"),
		LastDate:       &today,
		ApplicationFee: strconv.FormatFloat(ParseFee(string(in.ApplicationFee)), 'f', -1, 64),
		ExternalURL:    in.ExternalURL,
		IsActive:       true,
		Description:    in.Description,
		Eligibility:    in.Eligibility,
		Category:       in.Category,
		Posts:          in.Posts,
	}
	if err := applyDates(job, in); err != nil {
		return nil, err
	}

	if err := s.store.CreateJob(ctx, job); err != nil {
		return nil, apperr.Persistence(err, "Failed to create job")
	}
	s.logger.Info("job created", zap.String("job_id", job.ID), zap.String("title", job.Title))

	v := Normalize(job, now)
	return &v, nil
}

// UpdateJob replaces every editable field of a posting with the form's values.
// The active flag only changes when the form carries one.
func (s *AdminService) UpdateJob(ctx context.Context, id string, in JobInput) (*JobView, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}
	job, err := s.store.GetJob(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperr.ErrJobNotFound
	}
	if err != nil {
		return nil, apperr.Persistence(err, "Failed to update job")
	}

	job.Title = in.Title
	job.Organization = in.Organization
	job.Location = in.Location
	job.Qualification = in.Qualification
	job.Experience = in.Experience
	job.Salary = in.Salary
	job.ApplicationFee = string(in.ApplicationFee)
	job.Description = in.Description
	job.Eligibility = in.Eligibility
	job.ExternalURL = in.ExternalURL
	job.Category = in.Category
	job.Posts = in.Posts
	job.LastDate = nil
	job.ApplicationStart = nil
	job.ExamDate = nil
	if in.IsActive != nil {
		job.IsActive = *in.IsActive
	}
	if err := applyDates(job, in); err != nil {
		return nil, err
	}

	if err := s.store.UpdateJob(ctx, job); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.ErrJobNotFound
		}
		return nil, apperr.Persistence(err, "Failed to update job")
	}
	s.logger.Info("job updated", zap.String("job_id", job.ID))

	v := Normalize(job, s.now())
	return &v, nil
}

func (s *AdminService) DeleteJob(ctx context.Context, id string) error {
	err := s.store.DeleteJob(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.ErrJobNotFound
	}
	if err != nil {
		return apperr.Persistence(err, "Failed to delete job")
	}
	s.logger.Info("job deleted", zap.String("job_id", id))
	return nil
}

// ToggleJob sets the active flag to active, or flips it when active is nil.
func (s *AdminService) ToggleJob(ctx context.Context, id string, active *bool) (*JobView, error) {
	var target bool
	if active != nil {
		target = *active
	} else {
		job, err := s.store.GetJob(ctx, id)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.ErrJobNotFound
		}
		if err != nil {
			return nil, apperr.Persistence(err, "Failed to update job status")
		}
		target = !job.IsActive
	}

	job, err := s.store.SetJobActive(ctx, id, target)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperr.ErrJobNotFound
	}
	if err != nil {
		return nil, apperr.Persistence(err, "Failed to update job status")
	}
	s.logger.Info("job status changed", zap.String("job_id", id), zap.Bool("is_active", job.IsActive))

	v := Normalize(job, s.now())
	return &v, nil
}

// GetSettings returns the stored settings or the defaults when none were saved.
func (s *AdminService) GetSettings(ctx context.Context) (*models.AdminSettings, error) {
	return loadSettings(ctx, s.store)
}

// ReplaceSettings overwrites the settings row as a whole.
func (s *AdminService) ReplaceSettings(ctx context.Context, in models.AdminSettings) (*models.AdminSettings, error) {
	in.ID = models.SettingsSingletonID
	in.UPIID = strings.TrimSpace(in.UPIID)
	in.MerchantName = strings.TrimSpace(in.MerchantName)
	if err := s.store.SaveSettings(ctx, &in); err != nil {
		return nil, apperr.Persistence(err, "Failed to update settings")
	}
	s.logger.Info("settings updated", zap.Bool("payment_enabled", in.PaymentEnabled))
	return &in, nil
}

// Dashboard recomputes the headline counts. A failing count is logged and shown as 0.
func (s *AdminService) Dashboard(ctx context.Context) models.DashboardStats {
	count := func(name string, fn func() (int64, error)) int64 {
		n, err := fn()
		if err != nil {
			s.logger.Error("dashboard count failed", zap.String("count", name), zap.Error(err))
			return 0
		}
		return n
	}

	return models.DashboardStats{
		TotalUsers:        count("users", func() (int64, error) { return s.store.CountUsers(ctx) }),
		TotalApplications: count("applications", func() (int64, error) { return s.store.CountApplications(ctx) }),
		TotalPayments: count("payments", func() (int64, error) {
			return s.store.CountPaymentsByStatus(ctx, models.PaymentStatusCompleted)
		}),
		PendingPayments: count("pending_payments", func() (int64, error) {
			return s.store.CountPaymentsByStatus(ctx, models.PaymentStatusPending)
		}),
	}
}

func applyDates(job *models.Job, in JobInput) error {
	parse := func(field, v string) (*time.Time, error) {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return nil, apperr.Validation("Invalid date", field)
		}
		return &t, nil
	}

	var err error
	if in.LastDate != "" {
		if job.LastDate, err = parse("lastDate", in.LastDate); err != nil {
			return err
		}
	}
	if in.ImportantDates == nil {
		return nil
	}
	if in.ImportantDates.ApplicationStart != "" {
		if job.ApplicationStart, err = parse("applicationStart", in.ImportantDates.ApplicationStart); err != nil {
			return err
		}
	}
	if in.ImportantDates.ExamDate != "" {
		if job.ExamDate, err = parse("examDate", in.ImportantDates.ExamDate); err != nil {
			return err
		}
	}
	return nil
}
