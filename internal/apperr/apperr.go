// Package apperr defines the error taxonomy shared by services and handlers.
package apperr

import (
	"errors"
	"fmt"
)

type Kind uint8

const (
	KindUnclassified Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindPersistence
	KindUnauthorized
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindPersistence:
		return "persistence"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	default:
		return "unclassified"
	}
}

// Error is a classified error. Message is safe to show to clients; Details carries the
// underlying cause when one exists.
type Error struct {
	Kind    Kind
	Message string
	Details string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Validation builds a client-recoverable error with field-level details.
func Validation(msg, details string) *Error {
	return &Error{Kind: KindValidation, Message: msg, Details: details}
}

// Persistence wraps a gateway/driver failure.
func Persistence(err error, msg string) *Error {
	e := &Error{Kind: KindPersistence, Message: msg, Err: err}
	if err != nil {
		e.Details = err.Error()
	}
	return e
}

// Detail attaches a detail string to a sentinel while keeping errors.Is working.
func Detail(sentinel *Error, format string, args ...any) error {
	return &detailed{sentinel: sentinel, details: fmt.Sprintf(format, args...)}
}

type detailed struct {
	sentinel *Error
	details  string
}

func (d *detailed) Error() string { return d.sentinel.Message + ": " + d.details }
func (d *detailed) Unwrap() error { return d.sentinel }

// KindOf returns the kind of the first classified error in the chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnclassified
}

// Describe returns the client message and details for err.
func Describe(err error) (message, details string) {
	var d *detailed
	if errors.As(err, &d) {
		return d.sentinel.Message, d.details
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message, e.Details
	}
	return "Internal server error", ""
}

// Registration / login
var (
	ErrMissingField           = New(KindValidation, "All required fields must be provided")
	ErrInvalidPhoneFormat     = New(KindValidation, "Invalid phone number format")
	ErrPhoneAlreadyRegistered = New(KindConflict, "Phone number already registered")
	ErrPhoneNotRegistered     = New(KindNotFound, "Phone number not registered")
	ErrUserNotFound           = New(KindNotFound, "User not found")
)

// Verification / session
var (
	ErrNoMatchingChallenge = New(KindValidation, "Invalid or expired OTP")
	ErrNotAuthenticated    = New(KindUnauthorized, "Authentication required")
	ErrNotVerified         = New(KindUnauthorized, "Phone number not verified")
	ErrAdminOnly           = New(KindForbidden, "Admin access required")
	ErrDemoDisabled        = New(KindNotFound, "Demo mode is not enabled")
)

// Catalog / applications
var (
	ErrJobNotFound         = New(KindNotFound, "Job not found")
	ErrJobClosed           = New(KindValidation, "Applications for this job are closed")
	ErrApplicationNotFound = New(KindNotFound, "Application not found")
	ErrStepIncomplete      = New(KindValidation, "Please fill all required fields before proceeding")
	ErrInvalidTransition   = New(KindValidation, "Invalid step transition")
	ErrFileTooLarge        = New(KindValidation, "File too large")
	ErrUnknownDocument     = New(KindValidation, "Unknown document type")
)

// Payments
var (
	ErrPaymentsDisabled = New(KindValidation, "Payments are not configured")
)
