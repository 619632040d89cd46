package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlibekovAA/task-manager/internal/common/config"
	"github.com/AlibekovAA/task-manager/internal/common/logger"
)

type envelope struct {
	Success   bool                `json:"success"`
	Data      json.RawMessage     `json:"data"`
	Error     string              `json:"error"`
	Message   string              `json:"message"`
	Issues    map[string][]string `json:"issues"`
	RequestID string              `json:"requestId"`
}

type authData struct {
	User  map[string]any `json:"user"`
	Token string         `json:"token"`
}

type taskData struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"userId"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := config.Config{
		AppEnv:             "test",
		StoreDriver:        config.StoreDriverMemory,
		JWTSecret:          "0123456789abcdef0123456789abcdef",
		JWTExpiresIn:       time.Hour,
		BcryptCost:         4,
		CORSAllowedOrigins: []string{"*"},
		RequestTimeout:     5 * time.Second,
		MaxRequestBodySize: 1 << 20,
		AuthRateLimitRPS:   1000,
		AuthRateLimitBurst: 1000,
	}
	app, err := NewApp(context.Background(), cfg, logger.NewWithWriter(io.Discard, "test", "error"))
	require.NoError(t, err)
	t.Cleanup(app.Close)
	return app
}

func do(t *testing.T, app *App, method, path, token, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Handler.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func signup(t *testing.T, app *App, username string) string {
	t.Helper()
	rec, env := do(t, app, http.MethodPost, "/v1/auth/signup", "",
		`{"username":"`+username+`","password":"Passw0rd"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var data authData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data.Token
}

func TestSignupAndLogin(t *testing.T) {
	app := newTestApp(t)

	rec, env := do(t, app, http.MethodPost, "/v1/auth/signup", "", `{"username":"ann123","password":"Passw0rd"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var data authData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.Token)
	assert.Equal(t, "ann123", data.User["username"])

	rec, env = do(t, app, http.MethodPost, "/v1/auth/signup", "", `{"username":"ann123","password":"Passw0rd"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Username already exists", env.Message)
	assert.False(t, env.Success)

	rec, env = do(t, app, http.MethodPost, "/v1/auth/login", "", `{"username":"ann123","password":"Passw0rd"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.Token)

	rec, env = do(t, app, http.MethodPost, "/v1/auth/login", "", `{"username":"ann123","password":"Wrong000"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", env.Message)

	rec, env = do(t, app, http.MethodGet, "/v1/auth/me", data.Token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"username":"ann123"`)
}

func TestSignup_ValidationIssues(t *testing.T) {
	app := newTestApp(t)

	rec, env := do(t, app, http.MethodPost, "/v1/auth/signup", "",
		`{"username":"a!","password":"`+strings.Repeat("a", 101)+`"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Validation failed", env.Message)
	assert.Contains(t, env.Issues["username"], "Username must be at least 3 characters")
	assert.Contains(t, env.Issues["username"], "Username can only contain letters, numbers and underscores")
	assert.Contains(t, env.Issues["password"], "Password must be less than 100 characters")

	rec, env = do(t, app, http.MethodPost, "/v1/auth/signup", "", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"Username is required"}, env.Issues["username"])
	assert.Equal(t, []string{"Password is required"}, env.Issues["password"])
}

func TestTasks_RequireAuthentication(t *testing.T) {
	app := newTestApp(t)

	rec, env := do(t, app, http.MethodPost, "/v1/tasks", "", `{"title":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "No authorization header provided", env.Message)

	rec, _ = do(t, app, http.MethodGet, "/v1/tasks", "not-a-token", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTasks_AuthenticationBeforeValidation(t *testing.T) {
	app := newTestApp(t)

	rec, env := do(t, app, http.MethodPost, "/v1/tasks", "", `{"title":""}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, env.Issues)
}

func TestTasks_CRUD(t *testing.T) {
	app := newTestApp(t)
	token := signup(t, app, "ann123")

	rec, env := do(t, app, http.MethodPost, "/v1/tasks", token, `{"title":""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Issues["title"], "Title cannot be empty")

	rec, env = do(t, app, http.MethodPost, "/v1/tasks", token, `{"title":"Buy milk","description":"2 liters"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created taskData
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "Buy milk", created.Title)
	assert.False(t, created.Completed)
	require.NotNil(t, created.Description)

	id := strconv.FormatInt(created.ID, 10)

	rec, env = do(t, app, http.MethodGet, "/v1/tasks", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []taskData
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)

	rec, env = do(t, app, http.MethodPatch, "/v1/tasks/"+id, token, `{"completed":true,"description":null}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated taskData
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.True(t, updated.Completed)
	assert.Nil(t, updated.Description)
	assert.Equal(t, "Buy milk", updated.Title)

	rec, _ = do(t, app, http.MethodDelete, "/v1/tasks/"+id, token, "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, rec.Body.Len())

	rec, env = do(t, app, http.MethodGet, "/v1/tasks/"+id, token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Task not found", env.Message)

	rec, _ = do(t, app, http.MethodDelete, "/v1/tasks/"+id, token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTasks_OwnershipIsolation(t *testing.T) {
	app := newTestApp(t)
	ann := signup(t, app, "ann123")
	bob := signup(t, app, "bob456")

	rec, env := do(t, app, http.MethodPost, "/v1/tasks", ann, `{"title":"private"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created taskData
	require.NoError(t, json.Unmarshal(env.Data, &created))
	id := strconv.FormatInt(created.ID, 10)

	rec, _ = do(t, app, http.MethodGet, "/v1/tasks/"+id, bob, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, app, http.MethodPut, "/v1/tasks/"+id, bob, `{"title":"mine now"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = do(t, app, http.MethodGet, "/v1/tasks", bob, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestTasks_InvalidID(t *testing.T) {
	app := newTestApp(t)
	token := signup(t, app, "ann123")

	rec, env := do(t, app, http.MethodGet, "/v1/tasks/abc", token, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"ID must be a number"}, env.Issues["id"])
}

func TestTasks_MalformedJSON(t *testing.T) {
	app := newTestApp(t)
	token := signup(t, app, "ann123")

	rec, env := do(t, app, http.MethodPost, "/v1/tasks", token, `{"title":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, env.Issues["body"])
}

func TestHealthAndUnknownRoutes(t *testing.T) {
	app := newTestApp(t)

	rec, _ := do(t, app, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	rec, _ = do(t, app, http.MethodGet, "/health/ready", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ready"`)

	rec, env := do(t, app, http.MethodGet, "/v1/nothing", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route GET /v1/nothing not found", env.Message)

	rec, _ = do(t, app, http.MethodDelete, "/v1/tasks", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
