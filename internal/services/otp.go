package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Ananth-NQI/govjobs-backend/internal/apperr"
	"github.com/Ananth-NQI/govjobs-backend/internal/models"
	"github.com/Ananth-NQI/govjobs-backend/internal/storage"
	"github.com/Ananth-NQI/govjobs-backend/internal/utils"
)

// DefaultOTPTTL is how long an issued code stays valid.
const DefaultOTPTTL = 5 * time.Minute

type OTPService struct {
	store  storage.Store
	sender OTPSender
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

func NewOTPService(store storage.Store, sender OTPSender, ttl time.Duration, logger *zap.Logger) *OTPService {
	if ttl <= 0 {
		ttl = DefaultOTPTTL
	}
	return &OTPService{store: store, sender: sender, ttl: ttl, logger: logger, now: time.Now}
}

// IssueResult reports the stored challenge and whether any channel accepted the code.
type IssueResult struct {
	Challenge *models.OTPChallenge
	Delivered bool
}

// Issue replaces any outstanding challenge for phone with a fresh code and hands it to
// the sender. A delivery failure does not undo the stored challenge.
func (s *OTPService) Issue(ctx context.Context, phone string) (*IssueResult, error) {
	code, err := utils.GenerateSecureOTP()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP: %w", err)
	}

	challenge := &models.OTPChallenge{
		Phone:     phone,
		Code:      code,
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err := s.store.ReplaceOTP(ctx, challenge); err != nil {
		return nil, apperr.Persistence(err, "Failed to generate OTP")
	}

	delivered := false
	if s.sender != nil {
		if err := s.sender.SendOTP(ctx, phone, code); err != nil {
			s.logger.Warn("otp delivery failed", zap.String("phone", phone), zap.Error(err))
		} else {
			delivered = true
		}
	}

	return &IssueResult{Challenge: challenge, Delivered: delivered}, nil
}

// Verify consumes the active challenge for phone if code matches it. Wrong, expired
// and already used codes are indistinguishable to the caller.
func (s *OTPService) Verify(ctx context.Context, phone, code string) (*models.OTPChallenge, error) {
	challenge, err := s.store.ConsumeOTP(ctx, phone, code, s.now())
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperr.ErrNoMatchingChallenge
	}
	if err != nil {
		return nil, apperr.Persistence(err, "Failed to verify OTP")
	}
	return challenge, nil
}
