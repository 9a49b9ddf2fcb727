package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Ananth-NQI/govjobs-backend/internal/apperr"
	"github.com/Ananth-NQI/govjobs-backend/internal/models"
)

// DefaultSessionTTL is the lifetime of a session cookie.
const DefaultSessionTTL = 30 * 24 * time.Hour

// SessionContext is the identity attached to a request once its cookie has been parsed.
type SessionContext struct {
	UserID    string    `json:"userId"`
	Phone     string    `json:"phone"`
	Verified  bool      `json:"isVerified"`
	Admin     bool      `json:"isAdmin"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type sessionClaims struct {
	UserID   string `json:"uid"`
	Phone    string `json:"phone"`
	Verified bool   `json:"verified"`
	jwt.RegisteredClaims
}

// SessionManager signs and parses HS256 session tokens.
type SessionManager struct {
	secret     []byte
	ttl        time.Duration
	adminPhone string
	now        func() time.Time
}

func NewSessionManager(secret string, ttl time.Duration, adminPhone string) *SessionManager {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionManager{secret: []byte(secret), ttl: ttl, adminPhone: adminPhone, now: time.Now}
}

// Issue signs a session for user and returns the token with its expiry.
func (m *SessionManager) Issue(user *models.User) (string, time.Time, error) {
	now := m.now()
	expires := now.Add(m.ttl)
	claims := &sessionClaims{
		UserID:   user.ID,
		Phone:    user.Phone,
		Verified: user.IsVerified,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// Parse validates a token. Any failure, including expiry, yields ErrNotAuthenticated.
func (m *SessionManager) Parse(token string) (*SessionContext, error) {
	if token == "" {
		return nil, apperr.ErrNotAuthenticated
	}
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, apperr.ErrNotAuthenticated
	}
	c, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid || c.UserID == "" {
		return nil, apperr.ErrNotAuthenticated
	}

	sess := &SessionContext{
		UserID:   c.UserID,
		Phone:    c.Phone,
		Verified: c.Verified,
		Admin:    c.Verified && m.adminPhone != "" && c.Phone == m.adminPhone,
	}
	if c.ExpiresAt != nil {
		sess.ExpiresAt = c.ExpiresAt.Time
	}
	return sess, nil
}
