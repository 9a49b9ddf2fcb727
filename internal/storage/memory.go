package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Ananth-NQI/govjobs-backend/internal/models"
)

// MemoryStore keeps everything in process memory. Data is lost on restart; it backs
// demo deployments and tests.
type MemoryStore struct {
	mu sync.RWMutex

	users        map[string]*models.User
	otps         map[string]*models.OTPChallenge // by phone
	jobs         map[string]*models.Job
	applications map[string]*models.JobApplication
	payments     map[string]*models.Payment
	settings     *models.AdminSettings
}

// NewMemoryStore creates a new in-memory storage
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:        make(map[string]*models.User),
		otps:         make(map[string]*models.OTPChallenge),
		jobs:         make(map[string]*models.Job),
		applications: make(map[string]*models.JobApplication),
		payments:     make(map[string]*models.Payment),
	}
}

func (m *MemoryStore) Name() string { return "In-Memory" }

func (m *MemoryStore) Ping(ctx context.Context) error { return ctx.Err() }

// User operations

func (m *MemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Phone == user.Phone {
			return ErrDuplicate
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *MemoryStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *MemoryStore) GetUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if u := m.userByPhone(phone); u != nil {
		cp := *u
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) MarkUserVerified(ctx context.Context, phone string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u := m.userByPhone(phone)
	if u == nil {
		return nil, ErrNotFound
	}
	u.IsVerified = true
	u.UpdatedAt = time.Now()
	cp := *u
	return &cp, nil
}

func (m *MemoryStore) CountUsers(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.users)), nil
}

func (m *MemoryStore) userByPhone(phone string) *models.User {
	for _, u := range m.users {
		if u.Phone == phone {
			return u
		}
	}
	return nil
}

// OTP operations

func (m *MemoryStore) ReplaceOTP(ctx context.Context, challenge *models.OTPChallenge) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if challenge.ID == "" {
		challenge.ID = uuid.NewString()
	}
	if challenge.CreatedAt.IsZero() {
		challenge.CreatedAt = time.Now()
	}
	cp := *challenge
	m.otps[challenge.Phone] = &cp
	return nil
}

func (m *MemoryStore) ConsumeOTP(ctx context.Context, phone, code string, now time.Time) (*models.OTPChallenge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.otps[phone]
	if !ok || c.Code != code || !c.IsValid(now) {
		return nil, ErrNotFound
	}
	c.IsUsed = true
	cp := *c
	return &cp, nil
}

// Job operations

func (m *MemoryStore) ListJobs(ctx context.Context) ([]*models.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	jobs := make([]*models.Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		cp := *j
		jobs = append(jobs, &cp)
	}
	sortNewestFirst(jobs)
	return jobs, nil
}

func (m *MemoryStore) ListActiveJobs(ctx context.Context, today time.Time) ([]*models.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var jobs []*models.Job
	for _, j := range m.jobs {
		if j.IsOpen(today) {
			cp := *j
			jobs = append(jobs, &cp)
		}
	}
	sortNewestFirst(jobs)
	return jobs, nil
}

func (m *MemoryStore) GetJob(ctx context.Context, id string) (*models.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	j, ok := m.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *j
	return &cp, nil
}

func (m *MemoryStore) CreateJob(ctx context.Context, job *models.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if _, exists := m.jobs[job.ID]; exists {
		return ErrDuplicate
	}
	now := time.Now()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	job.UpdatedAt = now
	cp := *job
	m.jobs[job.ID] = &cp
	return nil
}

func (m *MemoryStore) UpdateJob(ctx context.Context, job *models.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.jobs[job.ID]
	if !ok {
		return ErrNotFound
	}
	job.CreatedAt = existing.CreatedAt
	job.UpdatedAt = time.Now()
	cp := *job
	m.jobs[job.ID] = &cp
	return nil
}

func (m *MemoryStore) DeleteJob(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.jobs[id]; !ok {
		return ErrNotFound
	}
	delete(m.jobs, id)
	return nil
}

func (m *MemoryStore) SetJobActive(ctx context.Context, id string, active bool) (*models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	j, ok := m.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	j.IsActive = active
	j.UpdatedAt = time.Now()
	cp := *j
	return &cp, nil
}

// Application operations

func (m *MemoryStore) CreateApplication(ctx context.Context, app *models.JobApplication) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	now := time.Now()
	app.CreatedAt = now
	app.UpdatedAt = now
	cp := *app
	m.applications[app.ID] = &cp
	return nil
}

func (m *MemoryStore) GetApplication(ctx context.Context, id string) (*models.JobApplication, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.applications[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *MemoryStore) ListApplicationsByUser(ctx context.Context, userID string) ([]*models.JobApplication, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var apps []*models.JobApplication
	for _, a := range m.applications {
		if a.UserID == userID {
			cp := *a
			apps = append(apps, &cp)
		}
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].CreatedAt.After(apps[j].CreatedAt) })
	return apps, nil
}

func (m *MemoryStore) CountApplications(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.applications)), nil
}

// Payment operations

// RecordPayment inserts the payment and completes the application under one lock.
func (m *MemoryStore) RecordPayment(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	app, ok := m.applications[payment.ApplicationID]
	if !ok {
		return nil, ErrNotFound
	}
	if prev, ok := m.payments[app.PaymentID]; ok && prev.TransactionID == payment.TransactionID {
		cp := *prev
		return &cp, nil
	}

	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	payment.CreatedAt = time.Now()
	cp := *payment
	m.payments[payment.ID] = &cp

	app.PaymentStatus = models.PaymentStatusCompleted
	app.PaymentID = payment.ID
	app.UpdatedAt = payment.CreatedAt

	out := cp
	return &out, nil
}

func (m *MemoryStore) CountPaymentsByStatus(ctx context.Context, status string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var n int64
	for _, p := range m.payments {
		if p.Status == status {
			n++
		}
	}
	return n, nil
}

// Settings operations

func (m *MemoryStore) GetSettings(ctx context.Context) (*models.AdminSettings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.settings == nil {
		return nil, ErrNotFound
	}
	cp := *m.settings
	return &cp, nil
}

func (m *MemoryStore) SaveSettings(ctx context.Context, settings *models.AdminSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	settings.ID = models.SettingsSingletonID
	settings.UpdatedAt = time.Now()
	cp := *settings
	m.settings = &cp
	return nil
}

func sortNewestFirst(jobs []*models.Job) {
	sort.SliceStable(jobs, func(i, j int) bool { return jobs[i].CreatedAt.After(jobs[j].CreatedAt) })
}
