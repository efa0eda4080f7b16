package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"erp/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDomainError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   ErrorCode
		status int
	}{
		{"not found", shared.NewNotFoundError("customer"), CodeNotFound, http.StatusNotFound},
		{"conflict", shared.NewConflictError("customer", "customer already exists", nil), CodeConflict, http.StatusConflict},
		{"validation", shared.NewValidationError("customer", "code", "customer code is required"), CodeValidation, http.StatusBadRequest},
		{"transient", shared.NewTransientError("invoice", errors.New("dial tcp: timeout")), CodeUnavailable, http.StatusServiceUnavailable},
		{"wrapped sentinel", fmt.Errorf("lookup: %w", shared.ErrNotFound), CodeNotFound, http.StatusNotFound},
		{"unknown", errors.New("boom"), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := FromDomainError(tt.err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.code, appErr.Code)
			assert.Equal(t, tt.status, appErr.HTTPStatusCode())
		})
	}
}

func TestFromDomainError_KeepsFieldAndHidesDriverDetail(t *testing.T) {
	appErr := FromDomainError(shared.NewValidationError("invoice line", "refund", "refund must not be negative"))
	assert.Equal(t, "refund", appErr.Field)
	assert.Equal(t, "refund must not be negative", appErr.Message)

	internal := FromDomainError(errors.New("pq: relation does not exist"))
	assert.Equal(t, "internal server error", internal.Message)
}

func TestFromDomainError_NilAndAppError(t *testing.T) {
	assert.Nil(t, FromDomainError(nil))

	original := TooManyRequests("slow down")
	assert.Same(t, original, FromDomainError(fmt.Errorf("wrapped: %w", original)))
	assert.True(t, Is(original, CodeTooManyRequest))
}
