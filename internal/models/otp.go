package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OTPChallenge is the single active one-time code for a phone.
type OTPChallenge struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	Phone     string    `json:"phone" gorm:"not null;uniqueIndex"`
	Code      string    `json:"-" gorm:"not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	IsUsed    bool      `json:"is_used" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (OTPChallenge) TableName() string { return "otp_verifications" }

func (o *OTPChallenge) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// IsValid reports whether the challenge can still be consumed at now.
func (o *OTPChallenge) IsValid(now time.Time) bool {
	return !o.IsUsed && now.Before(o.ExpiresAt)
}
