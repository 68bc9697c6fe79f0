package dto

import "net/http"

// General error codes used directly by the HTTP layer
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHENTICATED"
	ErrCodeNotFound     = "NOT_FOUND"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes absent from the map fall back to 400 Bad Request: every unmapped
// domain error is a rejected input, not a server fault.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,

	// Missing resources
	"NOT_FOUND":      http.StatusNotFound,
	"USER_NOT_FOUND": http.StatusNotFound,

	// Authentication
	"INVALID_CREDENTIALS":   http.StatusUnauthorized,
	"INVALID_REFRESH_TOKEN": http.StatusUnauthorized,
	"EXPIRED_REFRESH_TOKEN": http.StatusUnauthorized,

	// Ownership violations surface as forbidden, not unauthenticated
	"UNAUTHORIZED": http.StatusForbidden,

	// Conflicts
	"ALREADY_EXISTS":       http.StatusConflict,
	"EMAIL_TAKEN":          http.StatusConflict,
	"USERNAME_TAKEN":       http.StatusConflict,
	"INVITATION_EXISTS":    http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	// Business rules the request cannot satisfy as stated
	"INSUFFICIENT_STOCK":         http.StatusUnprocessableEntity,
	"EXCHANGE_RATE_UNAVAILABLE":  http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status for a domain error code
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusBadRequest
}
