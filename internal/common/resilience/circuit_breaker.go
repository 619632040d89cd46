package resilience

import (
	"context"
	"sync"
	"time"

	"github.com/AlibekovAA/task-manager/internal/common/clock"
	commonerrors "github.com/AlibekovAA/task-manager/internal/common/errors"
	"github.com/AlibekovAA/task-manager/internal/common/logger"
	"github.com/AlibekovAA/task-manager/internal/observability/metrics"
)

var ErrCircuitOpen = commonerrors.ServiceUnavailable("Service temporarily unavailable")

// CircuitBreaker opens after Threshold consecutive failures and rejects calls
// until ResetAfter has passed since the last one.
type CircuitBreaker struct {
	mu          sync.Mutex
	failures    int
	lastFailure time.Time

	threshold  int
	timeout    time.Duration
	resetAfter time.Duration
	isFailure  func(error) bool
	name       string
	clk        clock.Clock
	log        *logger.Logger
}

type CircuitBreakerConfig struct {
	Name       string
	Threshold  int
	Timeout    time.Duration
	ResetAfter time.Duration
	// IsFailure decides which errors count toward opening. Nil counts every
	// non-nil error.
	IsFailure func(error) bool
	Clock     clock.Clock
	Logger    *logger.Logger
}

func NewCircuitBreaker(config CircuitBreakerConfig) *CircuitBreaker {
	cb := &CircuitBreaker{
		threshold:  config.Threshold,
		timeout:    config.Timeout,
		resetAfter: config.ResetAfter,
		isFailure:  config.IsFailure,
		name:       config.Name,
		clk:        config.Clock,
		log:        config.Logger,
	}
	if cb.threshold <= 0 {
		cb.threshold = 1
	}
	if cb.isFailure == nil {
		cb.isFailure = func(err error) bool { return err != nil }
	}
	if cb.clk == nil {
		cb.clk = clock.NewRealClock()
	}
	cb.setState(0)
	return cb
}

func (cb *CircuitBreaker) IsOpen() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.isOpenLocked()
}

func (cb *CircuitBreaker) isOpenLocked() bool {
	if cb.failures < cb.threshold {
		return false
	}
	if cb.clk.Now().Sub(cb.lastFailure) > cb.resetAfter {
		cb.failures = 0
		cb.lastFailure = time.Time{}
		cb.setState(0)
		if cb.log != nil {
			cb.log.Infof("circuit breaker [%s]: half-open, allowing calls", cb.name)
		}
		return false
	}
	return true
}

func (cb *CircuitBreaker) setState(state float64) {
	if cb.name != "" {
		metrics.CircuitBreakerState.WithLabelValues(cb.name).Set(state)
	}
}

func (cb *CircuitBreaker) record(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if !cb.isFailure(err) {
		cb.failures = 0
		return
	}

	cb.failures++
	cb.lastFailure = cb.clk.Now()
	if cb.name != "" {
		metrics.CircuitBreakerFailures.WithLabelValues(cb.name).Inc()
	}
	if cb.failures == cb.threshold {
		cb.setState(1)
		if cb.log != nil {
			cb.log.Warnf("circuit breaker [%s]: opened after %d failures", cb.name, cb.failures)
		}
	}
}

// Call runs fn unless the circuit is open, bounding it by the configured
// timeout when one is set.
func (cb *CircuitBreaker) Call(ctx context.Context, fn func(context.Context) error) error {
	if cb.IsOpen() {
		if cb.name != "" {
			metrics.CircuitBreakerRejections.WithLabelValues(cb.name).Inc()
		}
		return ErrCircuitOpen
	}

	callCtx := ctx
	if cb.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, cb.timeout)
		defer cancel()
	}

	err := fn(callCtx)
	cb.record(err)
	return err
}
