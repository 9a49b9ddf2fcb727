package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Ananth-NQI/govjobs-backend/internal/models"
)

const pgUniqueViolation = "23505"

// DatabaseStore is the PostgreSQL-backed Store.
type DatabaseStore struct {
	db *gorm.DB
}

func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

func (s *DatabaseStore) Name() string { return "PostgreSQL" }

func (s *DatabaseStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// translate maps driver errors onto the package sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrDuplicate
	}
	return err
}

func affected(res *gorm.DB) error {
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// User operations

func (s *DatabaseStore) CreateUser(ctx context.Context, user *models.User) error {
	return translate(s.db.WithContext(ctx).Create(user).Error)
}

func (s *DatabaseStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *DatabaseStore) GetUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("phone = ?", phone).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *DatabaseStore) MarkUserVerified(ctx context.Context, phone string) (*models.User, error) {
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("phone = ?", phone).
		Update("is_verified", true)
	if err := affected(res); err != nil {
		return nil, err
	}
	return s.GetUserByPhone(ctx, phone)
}

func (s *DatabaseStore) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error
	return n, translate(err)
}

// OTP operations

// ReplaceOTP upserts on the unique phone column, so a phone never holds more than one
// challenge even when two requests race.
func (s *DatabaseStore) ReplaceOTP(ctx context.Context, challenge *models.OTPChallenge) error {
	if challenge.ID == "" {
		challenge.ID = uuid.NewString()
	}
	if challenge.CreatedAt.IsZero() {
		challenge.CreatedAt = time.Now()
	}
	return translate(s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "phone"}},
			DoUpdates: clause.AssignmentColumns([]string{"id", "code", "expires_at", "is_used", "created_at"}),
		}).
		Create(challenge).Error)
}

// ConsumeOTP marks the matching challenge used with a conditional update, so only one
// concurrent caller can win.
func (s *DatabaseStore) ConsumeOTP(ctx context.Context, phone, code string, now time.Time) (*models.OTPChallenge, error) {
	var c models.OTPChallenge
	err := s.db.WithContext(ctx).
		Where("phone = ? AND code = ? AND is_used = ? AND expires_at > ?", phone, code, false, now).
		Order("created_at DESC").
		First(&c).Error
	if err != nil {
		return nil, translate(err)
	}

	res := s.db.WithContext(ctx).Model(&models.OTPChallenge{}).
		Where("id = ? AND is_used = ?", c.ID, false).
		Update("is_used", true)
	if err := affected(res); err != nil {
		return nil, err
	}
	c.IsUsed = true
	return &c, nil
}

// Job operations

func (s *DatabaseStore) ListJobs(ctx context.Context) ([]*models.Job, error) {
	var jobs []*models.Job
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&jobs).Error
	return jobs, translate(err)
}

func (s *DatabaseStore) ListActiveJobs(ctx context.Context, today time.Time) ([]*models.Job, error) {
	var jobs []*models.Job
	err := s.db.WithContext(ctx).
		Where("is_active = ? AND last_date >= ?", true, today.Format(time.DateOnly)).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, translate(err)
}

func (s *DatabaseStore) GetJob(ctx context.Context, id string) (*models.Job, error) {
	var j models.Job
	if err := s.db.WithContext(ctx).First(&j, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &j, nil
}

func (s *DatabaseStore) CreateJob(ctx context.Context, job *models.Job) error {
	return translate(s.db.WithContext(ctx).Create(job).Error)
}

// UpdateJob writes every editable column, including zero values.
func (s *DatabaseStore) UpdateJob(ctx context.Context, job *models.Job) error {
	res := s.db.WithContext(ctx).Model(&models.Job{ID: job.ID}).
		Select("*").
		Omit("id", "created_at").
		Updates(job)
	return affected(res)
}

func (s *DatabaseStore) DeleteJob(ctx context.Context, id string) error {
	return affected(s.db.WithContext(ctx).Delete(&models.Job{}, "id = ?", id))
}

func (s *DatabaseStore) SetJobActive(ctx context.Context, id string, active bool) (*models.Job, error) {
	res := s.db.WithContext(ctx).Model(&models.Job{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": active, "updated_at": time.Now()})
	if err := affected(res); err != nil {
		return nil, err
	}
	return s.GetJob(ctx, id)
}

// Application operations

func (s *DatabaseStore) CreateApplication(ctx context.Context, app *models.JobApplication) error {
	return translate(s.db.WithContext(ctx).Create(app).Error)
}

func (s *DatabaseStore) GetApplication(ctx context.Context, id string) (*models.JobApplication, error) {
	var a models.JobApplication
	if err := s.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (s *DatabaseStore) ListApplicationsByUser(ctx context.Context, userID string) ([]*models.JobApplication, error) {
	var apps []*models.JobApplication
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, translate(err)
}

func (s *DatabaseStore) CountApplications(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.JobApplication{}).Count(&n).Error
	return n, translate(err)
}

// Payment operations

// RecordPayment inserts the payment and completes its application in one transaction.
// Replaying the same transaction id for an application returns the stored payment.
func (s *DatabaseStore) RecordPayment(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var app models.JobApplication
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&app, "id = ?", payment.ApplicationID).Error; err != nil {
			return translate(err)
		}

		if app.PaymentID != "" {
			var prev models.Payment
			err := tx.First(&prev, "id = ?", app.PaymentID).Error
			if err == nil && prev.TransactionID == payment.TransactionID {
				*payment = prev
				return nil
			}
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		if err := tx.Create(payment).Error; err != nil {
			return translate(err)
		}
		return tx.Model(&app).Updates(map[string]interface{}{
			"payment_status": models.PaymentStatusCompleted,
			"payment_id":     payment.ID,
		}).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return payment, nil
}

func (s *DatabaseStore) CountPaymentsByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Payment{}).Where("status = ?", status).Count(&n).Error
	return n, translate(err)
}

// Settings operations

func (s *DatabaseStore) GetSettings(ctx context.Context) (*models.AdminSettings, error) {
	var st models.AdminSettings
	if err := s.db.WithContext(ctx).First(&st, models.SettingsSingletonID).Error; err != nil {
		return nil, translate(err)
	}
	return &st, nil
}

// SaveSettings upserts the singleton row wholesale.
func (s *DatabaseStore) SaveSettings(ctx context.Context, settings *models.AdminSettings) error {
	settings.ID = models.SettingsSingletonID
	return translate(s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(settings).Error)
}
