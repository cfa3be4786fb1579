package dto

import (
	"net/http"
	"strings"
)

// Transport-level error codes. Domain errors keep their own codes and are
// mapped to HTTP statuses below.
const (
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeForbidden       = "FORBIDDEN"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeConflict        = "CONFLICT"
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS"
	ErrCodePayloadTooLarge = "PAYLOAD_TOO_LARGE"
)

// errorCodeHTTPStatus maps error codes to HTTP status codes. Codes not
// listed fall through to the prefix rules in GetHTTPStatus.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeUnauthorized:    http.StatusUnauthorized,
	ErrCodeForbidden:       http.StatusForbidden,
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeConflict:        http.StatusConflict,
	ErrCodeTooManyRequests: http.StatusTooManyRequests,
	ErrCodePayloadTooLarge: http.StatusRequestEntityTooLarge,

	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"INVALID_CREDENTIALS":  http.StatusUnauthorized,
	"ACCOUNT_DISABLED":     http.StatusForbidden,

	// Business rule violations
	"INVALID_STATE":         http.StatusUnprocessableEntity,
	"INVALID_TRANSITION":    http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":    http.StatusUnprocessableEntity,
	"ORDERS_PAUSED":         http.StatusUnprocessableEntity,
	"EMPTY_CART":            http.StatusUnprocessableEntity,
	"CARD_EXPIRED":          http.StatusUnprocessableEntity,
	"TICKET_CLOSED":         http.StatusUnprocessableEntity,
	"SUPPLIER_NOT_APPROVED": http.StatusUnprocessableEntity,
	"TEMPLATE_INACTIVE":     http.StatusUnprocessableEntity,
	"CATEGORY_NOT_EMPTY":    http.StatusUnprocessableEntity,
	"ATTACHMENT_LIMIT":      http.StatusUnprocessableEntity,
	"ATTACHMENT_TOO_LARGE":  http.StatusRequestEntityTooLarge,
}

// GetHTTPStatus returns the HTTP status for an error code. Validation-style
// codes (INVALID_*) map to 400; any other unknown domain code is treated as
// a business rule violation.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusUnprocessableEntity
}
