package dto

import "net/http"

// General error codes
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
)

// Authentication error codes
const (
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes originate in the domain and application layers; anything not listed
// here is treated as an internal error.
var errorCodeHTTPStatus = map[string]int{
	// General
	ErrCodeInternal:       http.StatusInternalServerError,
	"PASSWORD_HASH_ERROR": http.StatusInternalServerError,

	// Input validation -> 400 Bad Request
	ErrCodeBadRequest:  http.StatusBadRequest,
	"INVALID_INPUT":    http.StatusBadRequest,
	"INVALID_TITLE":    http.StatusBadRequest,
	"INVALID_SLUG":     http.StatusBadRequest,
	"INVALID_DATE":     http.StatusBadRequest,
	"INVALID_VENUE":    http.StatusBadRequest,
	"INVALID_NAME":     http.StatusBadRequest,
	"INVALID_EMAIL":    http.StatusBadRequest,
	"INVALID_PHONE":    http.StatusBadRequest,
	"INVALID_PASSWORD": http.StatusBadRequest,
	"INVALID_MESSAGE":  http.StatusBadRequest,
	"INVALID_EVENT":    http.StatusBadRequest,
	"INVALID_OWNER":    http.StatusBadRequest,
	"INVALID_FILE_URL": http.StatusBadRequest,

	// Authentication -> 401 Unauthorized
	ErrCodeUnauthorized:   http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_REVOKED":       http.StatusUnauthorized,
	"TOKEN_MAX_REFRESH":   http.StatusUnauthorized,
	"TOKEN_ERROR":         http.StatusUnauthorized,

	// Authorization and account state -> 403 Forbidden
	ErrCodeForbidden:      http.StatusForbidden,
	"ACCOUNT_LOCKED":      http.StatusForbidden,
	"ACCOUNT_DEACTIVATED": http.StatusForbidden,
	"ACCOUNT_INACTIVE":    http.StatusForbidden,

	// Missing resources -> 404 Not Found
	ErrCodeNotFound:    http.StatusNotFound,
	"USER_NOT_FOUND":   http.StatusNotFound,
	"EVENT_NOT_FOUND":  http.StatusNotFound,
	"INVALID_PASSCODE": http.StatusNotFound,

	// Conflicts -> 409 Conflict
	"ALREADY_EXISTS":       http.StatusConflict,
	"ALREADY_REGISTERED":   http.StatusConflict,
	"AMBIGUOUS_TITLE":      http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	// Business rules -> 422 Unprocessable Entity
	"REGISTRATION_CLOSED": http.StatusUnprocessableEntity,
	"ALREADY_CLOSED":      http.StatusUnprocessableEntity,
	"ALREADY_DEACTIVATED": http.StatusUnprocessableEntity,
	"NOT_LOCKED":          http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
