package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Job is a stored job posting. Text fields may be empty; the catalog fills defaults on read.
// ApplicationFee keeps whatever the admin entered and is coerced to a number on read.
type Job struct {
	ID               string         `json:"id" gorm:"primaryKey;type:uuid"`
	Title            string         `json:"title"`
	Organization     string         `json:"organization"`
	Location         string         `json:"location"`
	Qualification    string         `json:"qualification"`
	Experience       string         `json:"experience"`
	Salary           string         `json:"salary"`
	LastDate         *time.Time     `json:"last_date" gorm:"type:date;index"`
	ApplicationFee   string         `json:"application_fee" gorm:"size:32"`
	ExternalURL      string         `json:"external_url"`
	IsActive         bool           `json:"is_active" gorm:"not null;index"`
	Description      string         `json:"description" gorm:"type:text"`
	Eligibility      pq.StringArray `json:"eligibility" gorm:"type:text[]"`
	Category         string         `json:"category"`
	Posts            int            `json:"posts"`
	ApplicationStart *time.Time     `json:"application_start" gorm:"type:date"`
	ExamDate         *time.Time     `json:"exam_date" gorm:"type:date"`
	CreatedAt        time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	return nil
}

// IsOpen reports whether the posting accepts applications on the given day.
func (j *Job) IsOpen(today time.Time) bool {
	if !j.IsActive || j.LastDate == nil {
		return false
	}
	return !TruncateDay(*j.LastDate).Before(TruncateDay(today))
}

// TruncateDay drops the clock part of t, keeping its location.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
