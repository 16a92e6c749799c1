package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/parish/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeUnavailable, http.StatusServiceUnavailable},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeForbidden, http.StatusForbidden},
		{"ERR_SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode(shared.CodeNotFound))
	assert.Equal(t, ErrCodeValidation, NormalizeErrorCode(shared.CodeValidation))
	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode(ErrCodeNotFound))
	assert.Equal(t, "CUSTOM_ERROR", NormalizeErrorCode("CUSTOM_ERROR"))

	for domainCode := range domainCodes {
		_, ok := httpStatusByCode[NormalizeErrorCode(domainCode)]
		assert.True(t, ok, "domain code %s maps to a code without status", domainCode)
	}
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID("NOT_FOUND", `bank "Federal" not found`, "req-123")

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "req-123", resp.Error.RequestID)
}

func TestNewValidationErrorResponse(t *testing.T) {
	details := []ValidationDetail{
		{Field: "start_date", Message: "start_date is required"},
		{Field: "top_n", Message: "top_n must be at least 0"},
	}
	resp := NewValidationErrorResponse("Request validation failed", "req-789", details)

	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Len(t, resp.Error.Details, 2)
	assert.Equal(t, "start_date", resp.Error.Details[0].Field)
}

func TestResponseJSON(t *testing.T) {
	data, err := json.Marshal(NewSuccessResponse(map[string]int{"banks": 2}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":{"banks":2}}`, string(data))

	data, err = json.Marshal(NewErrorResponse(ErrCodeInternal, "An unexpected error occurred"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":{"code":"ERR_INTERNAL","message":"An unexpected error occurred"}}`, string(data))
}
