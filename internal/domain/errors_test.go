package domain

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestIsValidation(t *testing.T) {
	err := NewValidationError("price", "must be greater than zero")
	assert.True(t, IsValidation(err))
	assert.Equal(t, "validation failed on price: must be greater than zero", err.Error())

	// Wrapped validation errors are still recognized.
	assert.True(t, IsValidation(errors.Wrap(err, "create product")))

	assert.False(t, IsValidation(ErrNotFound))
	assert.False(t, IsValidation(ErrInvalidID))
	assert.False(t, IsValidation(nil))
}
