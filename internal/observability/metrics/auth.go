package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TokensIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_tokens_issued_total",
			Help: "Total number of identity credentials issued",
		},
	)

	AuthAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Total number of signup and login attempts by outcome",
		},
		[]string{"operation", "result"},
	)

	TasksMutatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tasks_mutated_total",
			Help: "Total number of task writes by operation",
		},
		[]string{"operation"},
	)
)
