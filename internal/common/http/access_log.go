package http

import (
	"net/http"
	"time"

	"github.com/AlibekovAA/task-manager/internal/common/httpmetrics"
	"github.com/AlibekovAA/task-manager/internal/common/logger"
)

// AccessLogMiddleware logs one line per request, at warn for 4xx and error
// for 5xx.
func AccessLogMiddleware(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := httpmetrics.NewStatusRecorder(w)

			next.ServeHTTP(rec, r)

			entry := log.WithFields(r.Context(), logger.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      rec.Status,
				"duration_ms": time.Since(start).Milliseconds(),
				"remote_ip":   GetClientIP(r),
			})
			switch {
			case rec.Status >= http.StatusInternalServerError:
				entry.Errorf("%s %s %d", r.Method, r.URL.Path, rec.Status)
			case rec.Status >= http.StatusBadRequest:
				entry.Warnf("%s %s %d", r.Method, r.URL.Path, rec.Status)
			default:
				entry.Infof("%s %s %d", r.Method, r.URL.Path, rec.Status)
			}
		})
	}
}
