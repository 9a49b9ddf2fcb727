package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const mailboxNamespace = "demo_otp"

// ErrMailboxEmpty is returned by Peek when no unexpired code is held for the phone.
var ErrMailboxEmpty = errors.New("no demo otp for phone")

// Mailbox keeps the latest code per phone so demo deployments can show it on screen
// instead of sending a real SMS.
type Mailbox interface {
	OTPSender
	Peek(ctx context.Context, phone string) (string, error)
}

type mailboxEntry struct {
	code      string
	expiresAt time.Time
}

type MemoryMailbox struct {
	mu      sync.Mutex
	entries map[string]mailboxEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryMailbox(ttl time.Duration) *MemoryMailbox {
	return &MemoryMailbox{
		entries: make(map[string]mailboxEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *MemoryMailbox) SendOTP(ctx context.Context, phone, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[phone] = mailboxEntry{code: code, expiresAt: m.now().Add(m.ttl)}
	return nil
}

func (m *MemoryMailbox) Peek(ctx context.Context, phone string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[phone]
	if !ok {
		return "", ErrMailboxEmpty
	}
	if !m.now().Before(e.expiresAt) {
		delete(m.entries, phone)
		return "", ErrMailboxEmpty
	}
	return e.code, nil
}

// RedisMailbox stores codes under demo_otp:<phone> with the OTP lifetime as TTL.
type RedisMailbox struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisMailbox(client redis.UniversalClient, ttl time.Duration) *RedisMailbox {
	return &RedisMailbox{client: client, ttl: ttl}
}

func (r *RedisMailbox) SendOTP(ctx context.Context, phone, code string) error {
	return r.client.Set(ctx, mailboxNamespace+":"+phone, code, r.ttl).Err()
}

func (r *RedisMailbox) Peek(ctx context.Context, phone string) (string, error) {
	code, err := r.client.Get(ctx, mailboxNamespace+":"+phone).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMailboxEmpty
	}
	return code, err
}

func (r *RedisMailbox) Close() error {
	return r.client.Close()
}
