package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"

	ApplicationStatusSubmitted   = "submitted"
	ApplicationStatusUnderReview = "under_review"
	ApplicationStatusApproved    = "approved"
	ApplicationStatusRejected    = "rejected"
)

// JobApplication is created once the wizard is submitted.
type JobApplication struct {
	ID              string          `json:"id" gorm:"primaryKey;type:uuid"`
	ReferenceNo     string          `json:"reference_no" gorm:"uniqueIndex;size:26"`
	UserID          string          `json:"user_id" gorm:"not null;index"`
	JobID           string          `json:"job_id" gorm:"not null;index"`
	ApplicationData ApplicationData `json:"application_data" gorm:"type:jsonb;serializer:json"`
	PaymentStatus   string          `json:"payment_status" gorm:"not null;index"`
	PaymentID       string          `json:"payment_id,omitempty"`
	Status          string          `json:"status" gorm:"not null"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (a *JobApplication) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// ApplicationData is the opaque blob persisted with an application.
type ApplicationData struct {
	JobID          string         `json:"jobId"`
	PersonalInfo   PersonalInfo   `json:"personalInfo"`
	AdditionalInfo AdditionalInfo `json:"additionalInfo"`
	Documents      []DocumentMeta `json:"documents"`
	ApplicationFee float64        `json:"applicationFee"`
	SubmittedAt    time.Time      `json:"submittedAt"`
}

type PersonalInfo struct {
	FullName    string `json:"fullName" form:"fullName"`
	FatherName  string `json:"fatherName" form:"fatherName"`
	MotherName  string `json:"motherName" form:"motherName"`
	DateOfBirth string `json:"dateOfBirth" form:"dateOfBirth"`
	Gender      string `json:"gender" form:"gender"`
	Category    string `json:"category" form:"category"`
	Address     string `json:"address" form:"address"`
	Pincode     string `json:"pincode" form:"pincode"`
	Phone       string `json:"phone" form:"phone"`
	Email       string `json:"email" form:"email"`
}

type AdditionalInfo struct {
	Experience string `json:"experience" form:"experience"`
	Skills     string `json:"skills" form:"skills"`
	WhyApply   string `json:"whyApply" form:"whyApply"`
}

// DocumentMeta describes a staged file. The file content itself is never stored.
type DocumentMeta struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}
