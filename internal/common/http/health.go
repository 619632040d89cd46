package http

import (
	"context"
	"net/http"

	"github.com/AlibekovAA/task-manager/internal/common/clock"
	"github.com/AlibekovAA/task-manager/internal/common/constants"
	commonerrors "github.com/AlibekovAA/task-manager/internal/common/errors"
)

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Pinger is the store dependency probed by the readiness check.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Database  string `json:"database,omitempty"`
}

func HealthHandler(clk clock.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, HealthResponse{
			Status:    "ok",
			Timestamp: clk.Now().UTC().Format(timestampLayout),
		})
	}
}

// ReadyHandler reports ready only when the store answers a ping.
func ReadyHandler(pinger Pinger, clk clock.Clock, errHandler *ErrorHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), constants.ReadinessTimeout)
		defer cancel()

		if err := pinger.Ping(ctx); err != nil {
			errHandler.HandleError(w, r, commonerrors.ServiceUnavailable("Database not reachable").WithCause(err))
			return
		}

		WriteJSON(w, http.StatusOK, HealthResponse{
			Status:    "ready",
			Timestamp: clk.Now().UTC().Format(timestampLayout),
			Database:  "connected",
		})
	}
}

type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

