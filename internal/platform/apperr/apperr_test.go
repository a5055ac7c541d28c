// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shelfmark/internal/platform/apperr"
)

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "Goal not found", apperr.NotFound("Goal").Error())
	assert.Equal(t, "Validation failed: rating must be between 1 and 5",
		apperr.InvalidField("rating", "must be between 1 and 5").Error())

	multi := apperr.ValidationError("Validation failed",
		apperr.FieldError{Field: "title", Message: "is required"},
		apperr.FieldError{Field: "target_books", Message: "must be at least 1"},
	)
	assert.Equal(t, "Validation failed", multi.Error())
}

func TestAppError_Chain(t *testing.T) {
	cause := errors.New("connection reset")
	wrapped := fmt.Errorf("sync goal: %w", apperr.Internal(cause))

	assert.ErrorIs(t, wrapped, cause)
	assert.ErrorIs(t, wrapped, apperr.Internal(nil), "codes match regardless of cause")
	assert.NotErrorIs(t, wrapped, apperr.NotFound("Goal"))

	extracted := apperr.As(wrapped)
	require.NotNil(t, extracted)
	assert.Equal(t, http.StatusInternalServerError, extracted.HTTPStatus)
	assert.True(t, apperr.HasCode(wrapped, apperr.CodeInternal))

	assert.Nil(t, apperr.As(cause))
	assert.False(t, apperr.HasCode(cause, apperr.CodeInternal))
	assert.False(t, apperr.HasCode(nil, apperr.CodeInternal))
}
