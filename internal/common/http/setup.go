package http

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"

	"github.com/AlibekovAA/task-manager/internal/common/crypto"
	"github.com/AlibekovAA/task-manager/internal/common/httpmetrics"
	"github.com/AlibekovAA/task-manager/internal/common/logger"
)

type BaseHandlerConfig struct {
	Log            *logger.Logger
	Errors         *ErrorHandler
	IDs            crypto.IDGenerator
	AllowedOrigins []string
	MaxBodyBytes   int64
	RequestTimeout time.Duration
}

// BuildBaseHandler wraps handler with the middleware every request passes
// through, outermost first.
func BuildBaseHandler(cfg BaseHandlerConfig, handler http.Handler) http.Handler {
	chain := []func(http.Handler) http.Handler{
		SecurityHeadersMiddleware,
		ContentSecurityPolicyMiddleware(""),
		corsMiddleware(cfg.AllowedOrigins),
		RecoveryMiddleware(cfg.Log, cfg.Errors),
		RequestIDMiddleware(cfg.IDs),
		AccessLogMiddleware(cfg.Log),
		TimeoutMiddleware(cfg.RequestTimeout),
		MaxRequestSizeMiddleware(cfg.MaxBodyBytes, cfg.Errors),
		httpmetrics.New().Wrap,
	}

	for i := len(chain) - 1; i >= 0; i-- {
		handler = chain[i](handler)
	}
	return handler
}

func corsMiddleware(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}
