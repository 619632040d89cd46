package http

import (
	"net/http"

	"github.com/AlibekovAA/task-manager/internal/common/logger"
)

func RecoveryMiddleware(log *logger.Logger, errHandler *ErrorHandler) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					pe := NewPanicError(rec)
					log.WithFields(r.Context(), logger.Fields{"path": r.URL.Path}).
						Criticalf("panic recovered: %v\n%s", rec, pe.Stack())
					errHandler.HandleError(w, r, pe)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
