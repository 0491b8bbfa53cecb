// Package errors provides the structured API error type used at the
// HTTP boundary, adapted from tradSys's pkg/errors/errors.go down to
// the codes this engine's domain actually raises. The matching engine
// itself never imports this package — it returns plain sentinel errors
// (see internal/matching/errors.go); only internal/api translates those
// into APIError for the client.
package errors

import (
	"fmt"
	"net/http"
)

// Code identifies a category of API-facing error.
type Code string

const (
	CodeMalformed          Code = "MALFORMED"
	CodeUnknownSymbol      Code = "UNKNOWN_SYMBOL"
	CodeUnknownOrderID     Code = "UNKNOWN_ORDER_ID"
	CodeDuplicateOrderID   Code = "DUPLICATE_ORDER_ID"
	CodeQueueInvariant     Code = "QUEUE_INVARIANT_VIOLATION"
	CodeInternal           Code = "INTERNAL_ERROR"
)

// HTTPStatus maps an API error code to the HTTP status reported to the
// client, grounded in order_handler.go's status-by-error-string switch.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeMalformed:
		return http.StatusBadRequest
	case CodeUnknownSymbol, CodeUnknownOrderID:
		return http.StatusNotFound
	case CodeDuplicateOrderID:
		return http.StatusConflict
	case CodeQueueInvariant, CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// APIError is the structured error returned to HTTP clients.
type APIError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error { return e.Cause }

// New creates an APIError with no wrapped cause.
func New(code Code, message string) *APIError {
	return &APIError{Code: code, Message: message}
}

// Wrap creates an APIError carrying cause as its underlying error.
func Wrap(code Code, message string, cause error) *APIError {
	return &APIError{Code: code, Message: message, Cause: cause}
}
