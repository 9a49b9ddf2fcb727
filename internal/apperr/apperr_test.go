package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(ErrInvalidPhoneFormat))
	assert.Equal(t, KindConflict, KindOf(fmt.Errorf("register: %w", ErrPhoneAlreadyRegistered)))
	assert.Equal(t, KindPersistence, KindOf(Persistence(errors.New("conn refused"), "Failed to create user")))
	assert.Equal(t, KindUnclassified, KindOf(errors.New("boom")))
	assert.Equal(t, KindUnclassified, KindOf(nil))
}

func TestDetailKeepsSentinel(t *testing.T) {
	err := Detail(ErrMissingField, "transactionId")

	assert.ErrorIs(t, err, ErrMissingField)
	assert.Equal(t, KindValidation, KindOf(err))

	msg, details := Describe(err)
	assert.Equal(t, ErrMissingField.Message, msg)
	assert.Equal(t, "transactionId", details)
}

func TestDescribe(t *testing.T) {
	msg, details := Describe(Persistence(errors.New("timeout"), "Failed to record payment"))
	assert.Equal(t, "Failed to record payment", msg)
	assert.Equal(t, "timeout", details)

	msg, details = Describe(errors.New("secret driver text"))
	assert.Equal(t, "Internal server error", msg)
	assert.Empty(t, details)
}
