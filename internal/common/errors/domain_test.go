package commonerrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactories(t *testing.T) {
	cases := []struct {
		name    string
		err     DomainError
		status  int
		message string
	}{
		{"bad request", BadRequest("bad input", nil), http.StatusBadRequest, "bad input"},
		{"unauthorized default", Unauthorized(), http.StatusUnauthorized, "Unauthorized"},
		{"unauthorized custom", Unauthorized("Invalid credentials"), http.StatusUnauthorized, "Invalid credentials"},
		{"not found", NotFound("Task"), http.StatusNotFound, "Task not found"},
		{"not found default", NotFound(""), http.StatusNotFound, "Resource not found"},
		{"conflict", Conflict("Username already exists"), http.StatusConflict, "Username already exists"},
		{"too many", TooManyRequests("slow down"), http.StatusTooManyRequests, "slow down"},
		{"unavailable", ServiceUnavailable("down"), http.StatusServiceUnavailable, "down"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, tc.err.HTTPStatus())
			assert.Equal(t, tc.message, tc.err.Message())
			assert.Nil(t, tc.err.Issues())
		})
	}
}

func TestNewDomainError_InvalidStatusBecomes500(t *testing.T) {
	err := NewDomainError("WEIRD", CategoryValidation, 999, "weird")
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus())
	assert.Equal(t, CategoryInternal, err.Category())
}

func TestBadRequest_CarriesIssues(t *testing.T) {
	issues := NewIssues()
	issues.Add("title", "Title cannot be empty")

	err := BadRequest("Validation failed", issues)
	require.NotNil(t, err.Issues())
	assert.Equal(t, []string{"Title cannot be empty"}, err.Issues().Get("title"))

	assert.Nil(t, BadRequest("empty", NewIssues()).Issues())
}

func TestWithCause_KeepsIdentityAndUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	base := NotFound("Task")
	wrapped := base.WithCause(cause)

	assert.ErrorIs(t, wrapped, base)
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, "Task not found: connection reset", wrapped.Error())

	de, ok := AsDomainError(fmt.Errorf("service: %w", wrapped))
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, de.HTTPStatus())
	assert.False(t, IsDomainError(cause))
}

func TestIssues_PreservesOrderInJSON(t *testing.T) {
	issues := NewIssues()
	issues.Add("username", "Username must be at least 3 characters")
	issues.Add("password", "Password must be at least 8 characters")
	issues.Add("username", "Username can only contain letters, numbers and underscores")

	raw, err := json.Marshal(issues)
	require.NoError(t, err)
	assert.Equal(t,
		`{"username":["Username must be at least 3 characters","Username can only contain letters, numbers and underscores"],"password":["Password must be at least 8 characters"]}`,
		string(raw),
	)
	assert.Equal(t, []string{"username", "password"}, issues.Fields())
	assert.Equal(t, 2, issues.Len())
}

func TestIssues_NilSafe(t *testing.T) {
	var issues *Issues
	assert.Equal(t, 0, issues.Len())
	assert.Nil(t, issues.Get("x"))
	assert.Empty(t, issues.Map())

	merged := NewIssues()
	merged.Merge(nil)
	other := NewIssues()
	other.Add("id", "ID must be a number")
	merged.Merge(other)
	assert.Equal(t, map[string][]string{"id": {"ID must be a number"}}, merged.Map())
}
