package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlibekovAA/task-manager/internal/common/constants"
	"github.com/AlibekovAA/task-manager/internal/common/db"
	commonerrors "github.com/AlibekovAA/task-manager/internal/common/errors"
	"github.com/AlibekovAA/task-manager/internal/common/logger"
	"github.com/AlibekovAA/task-manager/internal/common/validation"
)

func testLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, "test", "debug")
}

func validationError(t *testing.T) error {
	t.Helper()
	_, err := validation.New().Validate(
		&validation.Schema{Body: []validation.Field{{Name: "title", Required: true, RequiredMsg: "Title is required"}}},
		validation.Raw{},
	)
	require.Error(t, err)
	return err
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"domain not found", commonerrors.NotFound("Task"), http.StatusNotFound, "Task not found"},
		{"domain conflict", commonerrors.Conflict("Username already exists"), http.StatusConflict, "Username already exists"},
		{"wrapped domain", fmt.Errorf("svc: %w", commonerrors.Unauthorized()), http.StatusUnauthorized, "Unauthorized"},
		{"validation", validationError(t), http.StatusBadRequest, MessageValidationFailed},
		{"pg unique", &pgconn.PgError{Code: "23505"}, http.StatusConflict, MessageAlreadyExists},
		{"unique sentinel", fmt.Errorf("create: %w", db.ErrUniqueViolation), http.StatusConflict, MessageAlreadyExists},
		{"no rows", pgx.ErrNoRows, http.StatusNotFound, MessageNotFound},
		{"not found sentinel", db.ErrNotFound, http.StatusNotFound, MessageNotFound},
		{"body too large", &http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge, "Request body too large"},
		{"unknown", errors.New("dial tcp: connection refused"), http.StatusInternalServerError, MessageInternal},
		{"panic", NewPanicError("boom"), http.StatusInternalServerError, MessageInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Normalize(tt.err)
			assert.Equal(t, tt.status, n.Status)
			assert.Equal(t, tt.message, n.Message)
			assert.NotEmpty(t, http.StatusText(n.Status))
		})
	}
}

func TestNormalize_ValidationCarriesIssues(t *testing.T) {
	n := Normalize(validationError(t))
	assert.Equal(t, []string{"Title is required"}, n.Issues.Get("title"))

	assert.Nil(t, Normalize(commonerrors.Conflict("x")).Issues)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestErrorHandler_HidesInternalDetail(t *testing.T) {
	h := NewErrorHandler(testLogger(), false)
	r := httptest.NewRequest(http.MethodGet, "/v1/tasks", nil)
	r = r.WithContext(context.WithValue(r.Context(), constants.RequestIDKey, "req-1"))
	rec := httptest.NewRecorder()

	h.HandleError(rec, r, errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Internal Server Error", body["error"])
	assert.Equal(t, MessageInternal, body["message"])
	assert.Equal(t, "req-1", body["requestId"])
	assert.NotContains(t, body, "stack")
	assert.NotContains(t, body, "issues")
	assert.NotContains(t, rec.Body.String(), "password authentication")
}

func TestErrorHandler_DevelopmentEchoesStack(t *testing.T) {
	h := NewErrorHandler(testLogger(), true)
	rec := httptest.NewRecorder()

	h.HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("driver exploded"))

	body := decodeError(t, rec)
	assert.Equal(t, MessageInternal, body["message"])
	assert.Equal(t, "driver exploded", body["stack"])
}

func TestErrorHandler_ValidationIssuesInOrder(t *testing.T) {
	h := NewErrorHandler(testLogger(), false)
	rec := httptest.NewRecorder()

	issues := commonerrors.NewIssues()
	issues.Add("title", "Title cannot be empty")
	issues.Add("description", "Description must be less than 1000 characters")
	h.HandleError(rec, httptest.NewRequest(http.MethodPost, "/v1/tasks", nil), commonerrors.BadRequest("Validation failed", issues))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(),
		`"issues":{"title":["Title cannot be empty"],"description":["Description must be less than 1000 characters"]}`)
}

func TestErrorHandler_NilError(t *testing.T) {
	rec := httptest.NewRecorder()
	NewErrorHandler(testLogger(), false).HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	assert.Equal(t, 0, rec.Body.Len())
}
