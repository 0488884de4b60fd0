package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoriesSurviveWrapping(t *testing.T) {
	err := fmt.Errorf("error deleting quiz: %w", ErrQuizNotFound)
	assert.ErrorIs(t, err, ErrResourceNotFound)
	assert.ErrorIs(t, ErrInvalidParent, ErrValidationFailed)
	assert.ErrorIs(t, ErrInvalidSignature, ErrPermissionDenied)
	assert.False(t, errors.Is(ErrQuizNotFound, ErrConflict))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "quiz not found", Message(fmt.Errorf("wrapped: %w", ErrQuizNotFound), "fallback"))
	assert.Equal(t, "fallback", Message(ErrConflict, "fallback"))
	assert.Equal(t, "fallback", Message(&CustomError{Err: ErrConflict}, "fallback"))
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", ErrMediaNotFound)
	assert.True(t, Is(err, ErrConflict, ErrResourceNotFound))
	assert.False(t, Is(err, ErrConflict, ErrPermissionDenied))
}
