package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// GenerateSecureOTP generates a cryptographically secure 6-digit OTP
func GenerateSecureOTP() (string, error) {
	// 100000..999999 so the code never starts with zero
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate random number: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// IsValidPhone reports whether phone is exactly ten ASCII digits.
func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// E164India formats a 10-digit national number for SMS delivery.
func E164India(phone string) string {
	if strings.HasPrefix(phone, "+") {
		return phone
	}
	return "+91" + phone
}

// NewReferenceNumber returns a sortable application reference such as
// 01JAB3C4D5E6F7G8H9J0KMNPQR.
func NewReferenceNumber(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), rand.Reader).String()
}
