package apperrors

import "net/http"

// Code is a stable, machine-readable error code surfaced in the response
// envelope alongside the HTTP status.
type Code string

const (
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeForbidden          Code = "FORBIDDEN"
	CodeNotFound           Code = "NOT_FOUND"
	CodeValidationError    Code = "VALIDATION_ERROR"
	CodeDuplicateEmail     Code = "DUPLICATE_EMAIL"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeTokenExpired       Code = "TOKEN_EXPIRED"
	CodeRateLimitExceeded  Code = "RATE_LIMIT_EXCEEDED"
	CodeInternalError      Code = "INTERNAL_ERROR"
)

type Error struct {
	Code    Code
	Message string
	Status  int
	// Details carries field-level validation messages, keyed by field name.
	Details map[string]string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) WithCause(err error) *Error {
	e.cause = err
	return e
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message, Status: statusFor(code)}
}

func Unauthorized(message string) *Error {
	return New(CodeUnauthorized, message)
}

func Forbidden(message string) *Error {
	return New(CodeForbidden, message)
}

func NotFound(resource string) *Error {
	return New(CodeNotFound, resource+" not found")
}

func InvalidCredentials() *Error {
	return New(CodeInvalidCredentials, "invalid email or password")
}

func DuplicateEmail() *Error {
	return New(CodeDuplicateEmail, "an account with this email already exists")
}

func TokenExpired() *Error {
	return New(CodeTokenExpired, "token has expired")
}

func RateLimited() *Error {
	return New(CodeRateLimitExceeded, "rate limit exceeded, try again later")
}

func Internal(err error) *Error {
	e := New(CodeInternalError, "internal server error")
	e.cause = err
	return e
}

// BadRequest is a VALIDATION_ERROR with a 400 status, used for
// malformed bodies and unparseable query parameters.
func BadRequest(message string) *Error {
	return &Error{Code: CodeValidationError, Message: message, Status: http.StatusBadRequest}
}

// Validation is a VALIDATION_ERROR with a 422 status and per-field details.
func Validation(message string, details map[string]string) *Error {
	return &Error{
		Code:    CodeValidationError,
		Message: message,
		Status:  http.StatusUnprocessableEntity,
		Details: details,
	}
}

func statusFor(code Code) int {
	switch code {
	case CodeUnauthorized, CodeInvalidCredentials, CodeTokenExpired:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeDuplicateEmail:
		return http.StatusConflict
	case CodeValidationError:
		return http.StatusUnprocessableEntity
	case CodeRateLimitExceeded:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
