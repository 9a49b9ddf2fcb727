package storage

import (
	"context"
	"errors"
	"time"

	"github.com/Ananth-NQI/govjobs-backend/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// Store is the persistence gateway. Implementations must be safe for concurrent use.
type Store interface {
	Name() string
	Ping(ctx context.Context) error

	// User operations
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByPhone(ctx context.Context, phone string) (*models.User, error)
	MarkUserVerified(ctx context.Context, phone string) (*models.User, error)
	CountUsers(ctx context.Context) (int64, error)

	// OTP operations
	ReplaceOTP(ctx context.Context, challenge *models.OTPChallenge) error
	ConsumeOTP(ctx context.Context, phone, code string, now time.Time) (*models.OTPChallenge, error)

	// Job operations
	ListJobs(ctx context.Context) ([]*models.Job, error)
	ListActiveJobs(ctx context.Context, today time.Time) ([]*models.Job, error)
	GetJob(ctx context.Context, id string) (*models.Job, error)
	CreateJob(ctx context.Context, job *models.Job) error
	UpdateJob(ctx context.Context, job *models.Job) error
	DeleteJob(ctx context.Context, id string) error
	SetJobActive(ctx context.Context, id string, active bool) (*models.Job, error)

	// Application operations
	CreateApplication(ctx context.Context, app *models.JobApplication) error
	GetApplication(ctx context.Context, id string) (*models.JobApplication, error)
	ListApplicationsByUser(ctx context.Context, userID string) ([]*models.JobApplication, error)
	CountApplications(ctx context.Context) (int64, error)

	// Payment operations
	RecordPayment(ctx context.Context, payment *models.Payment) (*models.Payment, error)
	CountPaymentsByStatus(ctx context.Context, status string) (int64, error)

	// Settings operations
	GetSettings(ctx context.Context) (*models.AdminSettings, error)
	SaveSettings(ctx context.Context, settings *models.AdminSettings) error
}
