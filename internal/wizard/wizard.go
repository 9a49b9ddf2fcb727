// Package wizard models the three-step job application form as a finite state machine.
//
// The flow is strictly linear: PersonalInfo -> Documents -> Review -> Submitted. Moving
// forward requires the current step's gate to hold; moving back is allowed from Documents
// and Review. Nothing is persisted until Submit returns the bundled application data.
package wizard

import (
	"strings"
	"time"

	"github.com/Ananth-NQI/govjobs-backend/internal/apperr"
	"github.com/Ananth-NQI/govjobs-backend/internal/models"
)

type Step int

const (
	StepPersonalInfo Step = iota + 1
	StepDocuments
	StepReview
	StepSubmitted
)

func (s Step) String() string {
	switch s {
	case StepPersonalInfo:
		return "personal_info"
	case StepDocuments:
		return "documents"
	case StepReview:
		return "review"
	case StepSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

type Event string

const (
	EventNext     Event = "next"
	EventPrevious Event = "previous"
	EventSubmit   Event = "submit"
)

var transitions = map[Step]map[Event]Step{
	StepPersonalInfo: {EventNext: StepDocuments},
	StepDocuments:    {EventNext: StepReview, EventPrevious: StepPersonalInfo},
	StepReview:       {EventPrevious: StepDocuments, EventSubmit: StepSubmitted},
}

// Wizard holds the in-progress form for one job.
type Wizard struct {
	jobID string
	fee   float64
	step  Step

	personal   models.PersonalInfo
	additional models.AdditionalInfo
	staged     map[string]models.DocumentMeta
}

func New(jobID string, applicationFee float64) *Wizard {
	return &Wizard{
		jobID:  jobID,
		fee:    applicationFee,
		step:   StepPersonalInfo,
		staged: make(map[string]models.DocumentMeta),
	}
}

func (w *Wizard) Step() Step { return w.step }

func (w *Wizard) PersonalInfo() models.PersonalInfo { return w.personal }

// SetPersonalInfo replaces the personal details. Only allowed on the first step.
func (w *Wizard) SetPersonalInfo(p models.PersonalInfo) error {
	if w.step != StepPersonalInfo {
		return apperr.Detail(apperr.ErrInvalidTransition, "personal info can only be edited on step %s", StepPersonalInfo)
	}
	w.personal = p
	return nil
}

func (w *Wizard) SetAdditionalInfo(a models.AdditionalInfo) error {
	if w.step == StepSubmitted {
		return apperr.Detail(apperr.ErrInvalidTransition, "application already submitted")
	}
	w.additional = a
	return nil
}

// Stage puts a file into a checklist slot, replacing any earlier file in that slot.
// A rejected file leaves every other slot untouched.
func (w *Wizard) Stage(slotID string, doc models.DocumentMeta) error {
	if w.step != StepDocuments {
		return apperr.Detail(apperr.ErrInvalidTransition, "documents can only be staged on step %s", StepDocuments)
	}
	if _, ok := slotByID(slotID); !ok {
		return apperr.Detail(apperr.ErrUnknownDocument, "%s", slotID)
	}
	if doc.Size > MaxDocumentSize {
		return apperr.Detail(apperr.ErrFileTooLarge, "%s is larger than 5MB", doc.Name)
	}
	doc.ID = slotID
	w.staged[slotID] = doc
	return nil
}

func (w *Wizard) Unstage(slotID string) {
	if w.step == StepDocuments {
		delete(w.staged, slotID)
	}
}

// Staged returns the staged documents in checklist order.
func (w *Wizard) Staged() []models.DocumentMeta {
	docs := make([]models.DocumentMeta, 0, len(w.staged))
	for _, slot := range checklist {
		if d, ok := w.staged[slot.ID]; ok {
			docs = append(docs, d)
		}
	}
	return docs
}

// Missing lists what blocks the gate of step. Later steps have no gate.
func (w *Wizard) Missing(step Step) []string {
	var missing []string
	switch step {
	case StepPersonalInfo:
		p := w.personal
		fields := []struct{ name, value string }{
			{"fullName", p.FullName},
			{"fatherName", p.FatherName},
			{"motherName", p.MotherName},
			{"dateOfBirth", p.DateOfBirth},
			{"phone", p.Phone},
			{"email", p.Email},
		}
		for _, f := range fields {
			if f.value == "" {
				missing = append(missing, f.name)
			}
		}
	case StepDocuments:
		for _, slot := range checklist {
			if slot.Required {
				if _, ok := w.staged[slot.ID]; !ok {
					missing = append(missing, slot.ID)
				}
			}
		}
	}
	return missing
}

func (w *Wizard) StepValid(step Step) bool {
	return len(w.Missing(step)) == 0
}

func (w *Wizard) CanNext() bool {
	_, ok := transitions[w.step][EventNext]
	return ok && w.StepValid(w.step)
}

func (w *Wizard) Next() error {
	if missing := w.Missing(w.step); len(missing) > 0 {
		return apperr.Detail(apperr.ErrStepIncomplete, "missing %s", strings.Join(missing, ", "))
	}
	return w.fire(EventNext)
}

func (w *Wizard) Previous() error {
	return w.fire(EventPrevious)
}

// Submit bundles the form into application data. Only valid from the review step.
func (w *Wizard) Submit(now time.Time) (*Submission, error) {
	if err := w.fire(EventSubmit); err != nil {
		return nil, err
	}
	return &Submission{Data: models.ApplicationData{
		JobID:          w.jobID,
		PersonalInfo:   w.personal,
		AdditionalInfo: w.additional,
		Documents:      w.Staged(),
		ApplicationFee: w.fee,
		SubmittedAt:    now,
	}}, nil
}

func (w *Wizard) fire(ev Event) error {
	next, ok := transitions[w.step][ev]
	if !ok {
		return apperr.Detail(apperr.ErrInvalidTransition, "cannot %s from %s", ev, w.step)
	}
	w.step = next
	return nil
}

// Submission is the output of a completed wizard.
type Submission struct {
	Data models.ApplicationData
}

// RequiresPayment reports whether the applicant must go through payment verification.
func (s *Submission) RequiresPayment() bool {
	return s.Data.ApplicationFee > 0
}
