package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	err := fmt.Errorf("add favourite: %w", NotFound("book", 42))

	assert.True(t, IsNotFound(err))
	assert.False(t, IsPermission(err))
	assert.Equal(t, "add favourite: book 42 not found", err.Error())
	assert.Equal(t, "user not found", NotFound("user", 0).Error())
}

func TestPermissionError(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", Forbidden("edit", "book", 3))

	assert.True(t, IsPermission(err))
	assert.Contains(t, err.Error(), "permission to edit book 3")
}

func TestInvalid(t *testing.T) {
	err := Invalid("title is required")

	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Equal(t, "invalid input: title is required", err.Error())
}
