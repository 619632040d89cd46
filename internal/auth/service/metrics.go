package service

import (
	"github.com/AlibekovAA/task-manager/internal/observability/metrics"
)

func recordAuthAttempt(operation, result string) {
	metrics.AuthAttemptsTotal.WithLabelValues(operation, result).Inc()
}
