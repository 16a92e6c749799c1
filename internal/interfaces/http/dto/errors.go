package dto

import (
	"net/http"

	"github.com/parish/backend/internal/domain/shared"
)

// API error codes, ERR_<CATEGORY>.
const (
	ErrCodeInternal    = "ERR_INTERNAL"
	ErrCodeUnavailable = "ERR_UNAVAILABLE" // database unreachable
	ErrCodeValidation  = "ERR_VALIDATION"  // query rejected before any ledger read
	ErrCodeNotFound    = "ERR_NOT_FOUND"   // bank, head or family unknown to the parish
	ErrCodeForbidden   = "ERR_FORBIDDEN"
)

var httpStatusByCode = map[string]int{
	ErrCodeInternal:    http.StatusInternalServerError,
	ErrCodeUnavailable: http.StatusServiceUnavailable,
	ErrCodeValidation:  http.StatusBadRequest,
	ErrCodeNotFound:    http.StatusNotFound,
	ErrCodeForbidden:   http.StatusForbidden,
}

// domainCodes maps shared.DomainError codes onto API codes
var domainCodes = map[string]string{
	shared.CodeNotFound:   ErrCodeNotFound,
	shared.CodeValidation: ErrCodeValidation,
}

// GetHTTPStatus returns the status for an API error code, 500 when the code
// is unknown.
func GetHTTPStatus(code string) int {
	if status, ok := httpStatusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// NormalizeErrorCode translates a domain error code into its API code.
// API codes and unknown codes pass through.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := domainCodes[code]; ok {
		return apiCode
	}
	return code
}
