package http

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"

	"github.com/AlibekovAA/task-manager/internal/common/db"
	commonerrors "github.com/AlibekovAA/task-manager/internal/common/errors"
	"github.com/AlibekovAA/task-manager/internal/common/httpmetrics"
	"github.com/AlibekovAA/task-manager/internal/common/logger"
	"github.com/AlibekovAA/task-manager/internal/common/validation"
	"github.com/AlibekovAA/task-manager/internal/observability/metrics"
)

const (
	MessageValidationFailed = "Validation failed"
	MessageAlreadyExists    = "Resource already exists"
	MessageNotFound         = "Resource not found"
	MessageInternal         = "Internal Server Error"
)

// Normalized is the transport view of any error.
type Normalized struct {
	Status   int
	Code     string
	Category commonerrors.ErrorCategory
	Message  string
	Issues   *commonerrors.Issues
}

// Normalize maps every error to exactly one response. Errors it does not
// recognise become a generic 500.
func Normalize(err error) Normalized {
	if de, ok := commonerrors.AsDomainError(err); ok {
		return Normalized{
			Status:   de.HTTPStatus(),
			Code:     de.Code(),
			Category: de.Category(),
			Message:  de.Message(),
			Issues:   de.Issues(),
		}
	}

	if ve, ok := validation.AsError(err); ok {
		return Normalized{
			Status:   http.StatusBadRequest,
			Code:     "VALIDATION_FAILED",
			Category: commonerrors.CategoryValidation,
			Message:  MessageValidationFailed,
			Issues:   ve.Issues(),
		}
	}

	if db.IsUniqueViolation(err) {
		return Normalized{
			Status:   http.StatusConflict,
			Code:     "UNIQUE_VIOLATION",
			Category: commonerrors.CategoryConflict,
			Message:  MessageAlreadyExists,
		}
	}

	if db.IsNotFound(err) {
		return Normalized{
			Status:   http.StatusNotFound,
			Code:     "RECORD_NOT_FOUND",
			Category: commonerrors.CategoryNotFound,
			Message:  MessageNotFound,
		}
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return Normalized{
			Status:   http.StatusRequestEntityTooLarge,
			Code:     "PAYLOAD_TOO_LARGE",
			Category: commonerrors.CategoryValidation,
			Message:  "Request body too large",
		}
	}

	return Normalized{
		Status:   http.StatusInternalServerError,
		Code:     "INTERNAL_ERROR",
		Category: commonerrors.CategoryInternal,
		Message:  MessageInternal,
	}
}

// PanicError carries a recovered panic value and the stack it was raised on.
type PanicError struct {
	Value any
	stack []byte
}

func NewPanicError(value any) *PanicError {
	return &PanicError{Value: value, stack: debug.Stack()}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

func (e *PanicError) Stack() string {
	return string(e.stack)
}

type ErrorHandler struct {
	log         *logger.Logger
	development bool
}

// NewErrorHandler builds the single place where errors become responses. In
// development mode the internal error text is echoed as "stack".
func NewErrorHandler(log *logger.Logger, development bool) *ErrorHandler {
	return &ErrorHandler{log: log, development: development}
}

func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	ctx := r.Context()
	n := Normalize(err)
	requestID := RequestIDFromContext(ctx)
	path := httpmetrics.NormalizePath(r.URL.Path)

	logFields := logger.Fields{
		"error_code": n.Code,
		"category":   string(n.Category),
		"status":     n.Status,
		"method":     r.Method,
		"path":       r.URL.Path,
	}

	if n.Status >= http.StatusInternalServerError {
		logFields["action"] = "unhandled_error"
		h.log.WithFields(ctx, logFields).Errorf("request failed: %v", err)
	} else {
		logFields["action"] = "domain_error"
		h.log.WithFields(ctx, logFields).Warn(err.Error())
	}

	metrics.DomainErrorsTotal.WithLabelValues(string(n.Category), n.Code, strconv.Itoa(n.Status)).Inc()
	metrics.HTTPErrorsTotal.WithLabelValues(strconv.Itoa(n.Status), path, r.Method).Inc()

	resp := ErrorResponse{
		Success:   false,
		Error:     http.StatusText(n.Status),
		Message:   n.Message,
		Issues:    n.Issues,
		RequestID: requestID,
	}
	if h.development {
		resp.Stack = stackOf(err)
	}

	WriteJSON(w, n.Status, resp)
}

func stackOf(err error) string {
	var pe *PanicError
	if errors.As(err, &pe) {
		return pe.Error() + "\n" + pe.Stack()
	}
	return err.Error()
}
