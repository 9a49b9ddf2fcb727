package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an applicant identified by a 10-digit phone number.
type User struct {
	ID         string    `json:"id" gorm:"primaryKey;type:uuid"`
	Name       string    `json:"name" gorm:"not null"`
	FatherName string    `json:"father_name" gorm:"not null"`
	MotherName string    `json:"mother_name" gorm:"not null"`
	Phone      string    `json:"phone" gorm:"uniqueIndex;size:10;not null"`
	Email      string    `json:"email,omitempty"`
	IsVerified bool      `json:"is_verified" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BeforeCreate assigns the ID if the caller has not.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// RegistrationRequest is the body of POST /auth/register.
type RegistrationRequest struct {
	Name       string `json:"name" validate:"required"`
	FatherName string `json:"father_name" validate:"required"`
	MotherName string `json:"mother_name" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	Email      string `json:"email" validate:"omitempty,max=254"`
}
