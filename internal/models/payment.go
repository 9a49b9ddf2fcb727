package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const PaymentMethodUPI = "UPI"

// Payment records a user-asserted UPI transfer. Rows are never updated.
type Payment struct {
	ID            string    `json:"id" gorm:"primaryKey;type:uuid"`
	UserID        string    `json:"user_id" gorm:"not null;index"`
	ApplicationID string    `json:"application_id" gorm:"not null;index"`
	Amount        float64   `json:"amount" gorm:"not null"`
	PaymentMethod string    `json:"payment_method" gorm:"not null"`
	TransactionID string    `json:"transaction_id" gorm:"not null"`
	Status        string    `json:"status" gorm:"not null;index"`
	CreatedAt     time.Time `json:"created_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
