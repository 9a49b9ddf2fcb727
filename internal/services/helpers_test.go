package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Ananth-NQI/govjobs-backend/internal/models"
	"github.com/Ananth-NQI/govjobs-backend/internal/storage"
)

var errStoreDown = errors.New("connection refused")

type sentMessage struct {
	phone string
	body  string
}

// recordingSender captures every code and message it is asked to deliver.
type recordingSender struct {
	mu    sync.Mutex
	codes map[string]string
	sms   []sentMessage
	fail  bool
}

func newRecordingSender() *recordingSender {
	return &recordingSender{codes: make(map[string]string)}
}

func (r *recordingSender) SendOTP(ctx context.Context, phone, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.New("gateway unavailable")
	}
	r.codes[phone] = code
	return nil
}

func (r *recordingSender) SendSMS(ctx context.Context, phone, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.New("gateway unavailable")
	}
	r.sms = append(r.sms, sentMessage{phone: phone, body: body})
	return nil
}

func (r *recordingSender) lastCode(phone string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.codes[phone]
}

// brokenStore fails every job read and every count.
type brokenStore struct {
	storage.Store
}

func (brokenStore) ListJobs(ctx context.Context) ([]*models.Job, error) { return nil, errStoreDown }
func (brokenStore) ListActiveJobs(ctx context.Context, today time.Time) ([]*models.Job, error) {
	return nil, errStoreDown
}
func (brokenStore) GetJob(ctx context.Context, id string) (*models.Job, error) {
	return nil, errStoreDown
}
func (brokenStore) CountUsers(ctx context.Context) (int64, error) { return 0, errStoreDown }

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func testLogger() *zap.Logger { return zap.NewNop() }

func seedJob(store storage.Store, job *models.Job) *models.Job {
	if err := store.CreateJob(context.Background(), job); err != nil {
		panic(err)
	}
	return job
}

func registerVerified(store storage.Store, phone string) *models.User {
	ctx := context.Background()
	u := &models.User{Name: "Asha", FatherName: "Ravi", MotherName: "Meena", Phone: phone}
	if err := store.CreateUser(ctx, u); err != nil {
		panic(err)
	}
	u, err := store.MarkUserVerified(ctx, phone)
	if err != nil {
		panic(err)
	}
	return u
}
