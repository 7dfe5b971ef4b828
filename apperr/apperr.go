package apperr

import (
	"fmt"
	"net/http"
)

const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeInvalidJSON     = "INVALID_JSON"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeLimitExceeded   = "LIMIT_EXCEEDED"
	CodeMissingToken    = "MISSING_TOKEN"
	CodeAlreadyVerified = "EMAIL_ALREADY_VERIFIED"
	CodeEmailSendFailed = "EMAIL_SEND_FAILED"
	CodeInternal        = "INTERNAL_ERROR"
)

// Error is a tagged application error carrying a stable code and the HTTP
// status it maps to. Field is set on validation errors only.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Status  int    `json:"-"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code, message string, status int) *Error {
	return &Error{Code: code, Message: message, Status: status}
}

func Validation(message, field string) *Error {
	return &Error{Code: CodeValidation, Message: message, Field: field, Status: http.StatusUnprocessableEntity}
}

func InvalidJSON() *Error {
	return New(CodeInvalidJSON, "Invalid JSON", http.StatusBadRequest)
}

func Unauthorized(message string) *Error {
	if message == "" {
		message = "Unauthorized"
	}
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}

func Forbidden(message string) *Error {
	if message == "" {
		message = "Forbidden"
	}
	return New(CodeForbidden, message, http.StatusForbidden)
}

func NotFound(message string) *Error {
	if message == "" {
		message = "Not Found"
	}
	return New(CodeNotFound, message, http.StatusNotFound)
}

func Conflict(message string) *Error {
	if message == "" {
		message = "Conflict"
	}
	return New(CodeConflict, message, http.StatusConflict)
}

func LimitExceeded(message string) *Error {
	if message == "" {
		message = "Limit exceeded"
	}
	return New(CodeLimitExceeded, message, http.StatusRequestEntityTooLarge)
}

func Internal(message string) *Error {
	if message == "" {
		message = "Internal server error"
	}
	return New(CodeInternal, message, http.StatusInternalServerError)
}
