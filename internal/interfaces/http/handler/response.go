package handler

import (
	"github.com/google/uuid"
	"github.com/parish/backend/internal/interfaces/http/dto"
)

// APIResponse is the envelope of every successful report, typed for the
// OpenAPI document.
type APIResponse[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data,omitempty"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
}

// ErrorResponse is the envelope of a rejected or failed request
type ErrorResponse struct {
	Success bool           `json:"success" example:"false"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
}

// CacheInvalidation confirms which parish had its cached reports dropped
type CacheInvalidation struct {
	ParishID    uuid.UUID `json:"parish_id"`
	Invalidated bool      `json:"invalidated"`
}
