package services

import (
	"time"

	"github.com/Ananth-NQI/govjobs-backend/internal/models"
)

// SampleJobs is the fixed catalog served when the store cannot be read. Dates are
// relative to now so the sample postings always look open.
func SampleJobs(now time.Time) []*models.Job {
	day := func(offset int) *time.Time {
		t := models.TruncateDay(now).AddDate(0, 0, offset)
		return &t
	}
	created := models.TruncateDay(now).AddDate(0, 0, -7)

	return []*models.Job{
		{
			ID:             "sample-1",
			Title:          "Staff Selection Commission - Multi Tasking Staff",
			Organization:   "Staff Selection Commission",
			Location:       "All India",
			Qualification:  "10th Pass",
			Experience:     "No experience required",
			Salary:         "₹18,000 - ₹22,000",
			LastDate:       day(30),
			ApplicationFee: "100",
			ExternalURL:    "https://ssc.nic.in",
			IsActive:       true,
			Category:       "Central Government",
			Posts:          1000,
			CreatedAt:      created,
		},
		{
			ID:             "sample-2",
			Title:          "Railway Recruitment Board - Assistant Loco Pilot",
			Organization:   "Indian Railways",
			Location:       "All India",
			Qualification:  "ITI/Diploma",
			Experience:     "0-3 years",
			Salary:         "₹35,000 - ₹40,000",
			LastDate:       day(35),
			ApplicationFee: "500",
			ExternalURL:    "https://rrbcdg.gov.in",
			IsActive:       true,
			Category:       "Railways",
			Posts:          500,
			CreatedAt:      created,
		},
	}
}
