package errors_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stocklens/stocklens/core/shared/errors"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *errors.AppError
		expected string
	}{
		{
			name:     "error without wrapped error",
			err:      errors.NewAppError(errors.ErrCodeUnbuildable, "no table detected", nil),
			expected: "UNBUILDABLE: no table detected",
		},
		{
			name:     "error with wrapped error",
			err:      errors.NewAppError(errors.ErrCodeExecutionFailed, "query failed", fmt.Errorf("syntax error")),
			expected: "EXECUTION_FAILED: query failed (syntax error)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError_StatusMapping(t *testing.T) {
	tests := []struct {
		code   errors.ErrorCode
		status int
	}{
		{errors.ErrCodeNotFound, http.StatusNotFound},
		{errors.ErrCodeMappingNotFound, http.StatusNotFound},
		{errors.ErrCodeInvalidInput, http.StatusBadRequest},
		{errors.ErrCodeUnbuildable, http.StatusBadRequest},
		{errors.ErrCodeExecutionFailed, http.StatusInternalServerError},
		{errors.ErrCodeSchemaUnavailable, http.StatusInternalServerError},
		{errors.ErrCodeInternalError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := errors.NewAppError(tt.code, "msg", nil)
			assert.Equal(t, tt.status, err.Status)
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("connection refused")
	err := errors.WrapError(errors.ErrCodeConnectionFailed, "store unreachable", inner)
	assert.Equal(t, inner, err.Unwrap())
}

func TestIsSchemaUnavailable(t *testing.T) {
	assert.True(t, errors.IsSchemaUnavailable(errors.NewAppError(errors.ErrCodeSchemaUnavailable, "store down", nil)))
	assert.False(t, errors.IsSchemaUnavailable(errors.NewAppError(errors.ErrCodeNotFound, "missing", nil)))
	assert.False(t, errors.IsSchemaUnavailable(fmt.Errorf("plain error")))
}
