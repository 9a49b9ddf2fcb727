package services

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Ananth-NQI/govjobs-backend/internal/apperr"
	"github.com/Ananth-NQI/govjobs-backend/internal/models"
	"github.com/Ananth-NQI/govjobs-backend/internal/storage"
)

// Provenance of a catalog read.
const (
	SourcePrimary  = "primary"
	SourceFallback = "sample_data"
)

const dateLayout = time.DateOnly

// JobView is a posting as presented to clients, with every display field filled in.
type JobView struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Organization   string         `json:"organization"`
	Location       string         `json:"location"`
	Qualification  string         `json:"qualification"`
	Experience     string         `json:"experience"`
	Salary         string         `json:"salary"`
	LastDate       string         `json:"lastDate"`
	ApplicationFee float64        `json:"applicationFee"`
	Description    string         `json:"description"`
	Eligibility    []string       `json:"eligibility"`
	ImportantDates ImportantDates `json:"importantDates"`
	ExternalURL    string         `json:"externalUrl"`
	Category       string         `json:"category"`
	Posts          int            `json:"posts"`
	IsActive       bool           `json:"isActive"`
	DaysRemaining  int            `json:"daysRemaining"`
	Expired        bool           `json:"expired"`
	CreatedAt      time.Time      `json:"createdAt"`

	// Open is the listing predicate: active with a last date not before today.
	Open bool `json:"-"`
}

type ImportantDates struct {
	ApplicationStart string `json:"applicationStart"`
	ApplicationEnd   string `json:"applicationEnd"`
	ExamDate         string `json:"examDate,omitempty"`
}

// Listing is a catalog read tagged with where the jobs came from.
type Listing struct {
	Jobs   []JobView `json:"jobs"`
	Count  int       `json:"count"`
	Source string    `json:"source"`
}

type CatalogService struct {
	store  storage.Store
	logger *zap.Logger
	now    func() time.Time
}

func NewCatalogService(store storage.Store, logger *zap.Logger) *CatalogService {
	return &CatalogService{store: store, logger: logger, now: time.Now}
}

// ListActive returns open postings, newest first. A store failure degrades to the
// sample set instead of an error.
func (s *CatalogService) ListActive(ctx context.Context) Listing {
	now := s.now()
	jobs, err := s.store.ListActiveJobs(ctx, now)
	if err != nil {
		s.logger.Warn("jobs fetch failed, serving sample data", zap.Error(err))
		var open []*models.Job
		for _, j := range SampleJobs(now) {
			if j.IsOpen(now) {
				open = append(open, j)
			}
		}
		return s.listing(open, now, SourceFallback)
	}
	return s.listing(jobs, now, SourcePrimary)
}

// ListAll returns every posting for management screens, with the same fallback.
func (s *CatalogService) ListAll(ctx context.Context) Listing {
	now := s.now()
	jobs, err := s.store.ListJobs(ctx)
	if err != nil {
		s.logger.Warn("jobs fetch failed, serving sample data", zap.Error(err))
		return s.listing(SampleJobs(now), now, SourceFallback)
	}
	return s.listing(jobs, now, SourcePrimary)
}

// Get returns one posting. When the store is unreachable the sample set is consulted.
func (s *CatalogService) Get(ctx context.Context, id string) (*JobView, error) {
	now := s.now()
	job, err := s.store.GetJob(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperr.ErrJobNotFound
	}
	if err != nil {
		for _, j := range SampleJobs(now) {
			if j.ID == id {
				s.logger.Warn("job fetch failed, serving sample data", zap.String("job_id", id), zap.Error(err))
				v := Normalize(j, now)
				return &v, nil
			}
		}
		return nil, apperr.Persistence(err, "Failed to fetch job")
	}
	v := Normalize(job, now)
	return &v, nil
}

func (s *CatalogService) listing(jobs []*models.Job, now time.Time, source string) Listing {
	views := make([]JobView, 0, len(jobs))
	for _, j := range jobs {
		views = append(views, Normalize(j, now))
	}
	return Listing{Jobs: views, Count: len(views), Source: source}
}

// Normalize fills display defaults for a stored job. Missing dates fall back to the
// calendar day of now.
func Normalize(job *models.Job, now time.Time) JobView {
	today := models.TruncateDay(now)

	lastDate := today
	if job.LastDate != nil {
		lastDate = calendarDay(*job.LastDate, now.Location())
	}

	start := today
	switch {
	case job.ApplicationStart != nil:
		start = calendarDay(*job.ApplicationStart, now.Location())
	case !job.CreatedAt.IsZero():
		start = calendarDay(job.CreatedAt, now.Location())
	}

	eligibility := []string(job.Eligibility)
	if len(eligibility) == 0 {
		eligibility = []string{"Basic eligibility criteria apply"}
	}

	posts := job.Posts
	if posts <= 0 {
		posts = 1
	}

	days := DaysRemaining(lastDate, now)
	v := JobView{
		ID:             job.ID,
		Title:          orDefault(job.Title, "Untitled Job"),
		Organization:   orDefault(job.Organization, "Unknown Organization"),
		Location:       orDefault(job.Location, "Not specified"),
		Qualification:  orDefault(job.Qualification, "Not specified"),
		Experience:     orDefault(job.Experience, "Not specified"),
		Salary:         orDefault(job.Salary, "Not specified"),
		LastDate:       lastDate.Format(dateLayout),
		ApplicationFee: ParseFee(job.ApplicationFee),
		Description:    orDefault(job.Description, "No description available"),
		Eligibility:    eligibility,
		ImportantDates: ImportantDates{
			ApplicationStart: start.Format(dateLayout),
			ApplicationEnd:   lastDate.Format(dateLayout),
		},
		ExternalURL:   job.ExternalURL,
		Category:      orDefault(job.Category, "Government"),
		Posts:         posts,
		IsActive:      job.IsActive,
		DaysRemaining: days,
		Expired:       days <= 0,
		CreatedAt:     job.CreatedAt,
		Open:          job.IsOpen(now),
	}
	if job.ExamDate != nil {
		v.ImportantDates.ExamDate = calendarDay(*job.ExamDate, now.Location()).Format(dateLayout)
	}
	return v
}

// ParseFee reads a stored fee. Anything that is not a finite non-negative number is 0.
func ParseFee(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

// DaysRemaining is the ceiling of the days between now and the start of lastDate.
func DaysRemaining(lastDate, now time.Time) int {
	diff := lastDate.Sub(now)
	return int(math.Ceil(diff.Hours() / 24))
}

// calendarDay re-anchors a stored date at midnight in loc, keeping its year, month and day.
func calendarDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
