package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeOf(t *testing.T) {
	assert.Equal(t, ErrorTypeValidation, TypeOf(NewValidationError("Please enter patient name")))
	assert.Equal(t, ErrorTypeNotFound, TypeOf(fmt.Errorf("wrapped: %w", NewNotFoundError("invoice not found"))))
	assert.Equal(t, ErrorTypeInternal, TypeOf(errors.New("boom")))
}

func TestMessageAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewInternalError("failed to save invoice", cause)

	assert.Equal(t, "failed to save invoice", Message(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "INTERNAL: failed to save invoice: connection refused", err.Error())
	assert.Equal(t, "plain", Message(errors.New("plain")))
	assert.True(t, IsValidation(NewValidationError("x")))
	assert.False(t, IsValidation(err))
}
