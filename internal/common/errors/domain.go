package commonerrors

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCategory string

const (
	CategoryValidation   ErrorCategory = "VALIDATION"
	CategoryNotFound     ErrorCategory = "NOT_FOUND"
	CategoryConflict     ErrorCategory = "CONFLICT"
	CategoryUnauthorized ErrorCategory = "UNAUTHORIZED"
	CategoryRateLimit    ErrorCategory = "RATE_LIMIT"
	CategoryInternal     ErrorCategory = "INTERNAL"
	CategoryExternal     ErrorCategory = "EXTERNAL"
)

// DomainError is a failure raised on purpose by the application. It carries
// the HTTP status the normalizer responds with and, for 400s, the
// field-issues map.
type DomainError interface {
	error
	Code() string
	Category() ErrorCategory
	HTTPStatus() int
	Message() string
	Issues() *Issues
	Unwrap() error
	WithCause(cause error) DomainError
}

type domainError struct {
	code     string
	category ErrorCategory
	status   int
	message  string
	issues   *Issues
	cause    error
}

func (e *domainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *domainError) Code() string {
	return e.code
}

func (e *domainError) Category() ErrorCategory {
	return e.category
}

func (e *domainError) HTTPStatus() int {
	return e.status
}

func (e *domainError) Message() string {
	return e.message
}

func (e *domainError) Issues() *Issues {
	return e.issues
}

func (e *domainError) Unwrap() error {
	return e.cause
}

func (e *domainError) WithCause(cause error) DomainError {
	return &domainError{
		code:     e.code,
		category: e.category,
		status:   e.status,
		message:  e.message,
		issues:   e.issues,
		cause:    cause,
	}
}

// Is matches domain errors by code so that sentinels survive WithCause.
func (e *domainError) Is(target error) bool {
	t, ok := target.(*domainError)
	if !ok {
		return false
	}
	return e.code == t.code && e.status == t.status && e.message == t.message
}

// NewDomainError builds a domain error. A status that is not a known HTTP
// status is replaced with 500.
func NewDomainError(code string, category ErrorCategory, status int, message string) DomainError {
	if http.StatusText(status) == "" {
		status = http.StatusInternalServerError
		category = CategoryInternal
	}
	return &domainError{
		code:     code,
		category: category,
		status:   status,
		message:  message,
	}
}

func IsDomainError(err error) bool {
	var de DomainError
	return errors.As(err, &de)
}

func AsDomainError(err error) (DomainError, bool) {
	var de DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

func BadRequest(message string, issues *Issues) DomainError {
	if issues != nil && issues.Len() == 0 {
		issues = nil
	}
	return &domainError{
		code:     "BAD_REQUEST",
		category: CategoryValidation,
		status:   http.StatusBadRequest,
		message:  message,
		issues:   issues,
	}
}

func Unauthorized(message ...string) DomainError {
	msg := "Unauthorized"
	if len(message) > 0 && message[0] != "" {
		msg = message[0]
	}
	return NewDomainError("UNAUTHORIZED", CategoryUnauthorized, http.StatusUnauthorized, msg)
}

func NotFound(resource string) DomainError {
	if resource == "" {
		resource = "Resource"
	}
	return NewDomainError("NOT_FOUND", CategoryNotFound, http.StatusNotFound, resource+" not found")
}

func Conflict(message string) DomainError {
	return NewDomainError("CONFLICT", CategoryConflict, http.StatusConflict, message)
}

func TooManyRequests(message string) DomainError {
	return NewDomainError("RATE_LIMITED", CategoryRateLimit, http.StatusTooManyRequests, message)
}

func PayloadTooLarge(message string) DomainError {
	return NewDomainError("PAYLOAD_TOO_LARGE", CategoryValidation, http.StatusRequestEntityTooLarge, message)
}

func ServiceUnavailable(message string) DomainError {
	return NewDomainError("SERVICE_UNAVAILABLE", CategoryExternal, http.StatusServiceUnavailable, message)
}

func Internal(message string, cause error) DomainError {
	err := NewDomainError("INTERNAL_ERROR", CategoryInternal, http.StatusInternalServerError, message)
	if cause != nil {
		err = err.WithCause(cause)
	}
	return err
}
