package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Is(t *testing.T) {
	notFound := NewNotFoundError("bank", "SBI")
	assert.True(t, errors.Is(notFound, ErrNotFound))
	assert.False(t, errors.Is(notFound, ErrInvalidInput))
	assert.Equal(t, `bank "SBI" not found`, notFound.Error())

	wrapped := fmt.Errorf("lookup: %w", NewValidationError("top_n must not be negative"))
	assert.True(t, IsValidation(wrapped))
	assert.False(t, IsNotFound(wrapped))

	var de *DomainError
	assert.True(t, errors.As(wrapped, &de))
	assert.Equal(t, CodeValidation, de.Code)
}

func TestDomainError_PlainErrors(t *testing.T) {
	assert.False(t, IsNotFound(errors.New("boom")))
	assert.False(t, IsValidation(nil))
}
