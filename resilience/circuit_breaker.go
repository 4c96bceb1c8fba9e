package resilience

import (
	"context"
	"sync"
	"time"

	"github.com/subham11/farmer-advisor-go/core"
)

type state int

const (
	stateClosed state = iota
	stateOpen
	stateHalfOpen
)

func (s state) String() string {
	switch s {
	case stateOpen:
		return "open"
	case stateHalfOpen:
		return "half-open"
	default:
		return "closed"
	}
}

// CircuitBreaker is a consecutive-failure-count circuit breaker: it opens
// after Threshold consecutive failures, waits Timeout, then allows
// HalfOpenRequests probes before deciding whether to close or reopen.
// Protects one external dependency per instance.
type CircuitBreaker struct {
	name   string
	config core.CircuitBreakerConfig
	logger core.Logger

	mu              sync.Mutex
	current         state
	consecutiveFail int
	openedAt        time.Time
	halfOpenInFlight int
	halfOpenSuccess  int
	halfOpenFailure  int

	totalSuccess int64
	totalFailure int64
	totalReject  int64
}

// NewCircuitBreaker constructs a CircuitBreaker for one named dependency.
func NewCircuitBreaker(name string, config core.CircuitBreakerConfig, logger core.Logger) *CircuitBreaker {
	if logger == nil {
		logger = core.NoOpLogger{}
	}
	return &CircuitBreaker{name: name, config: config, logger: logger, current: stateClosed}
}

// CanExecute reports whether a call would be allowed right now, advancing
// open -> half-open once the sleep window has elapsed.
func (cb *CircuitBreaker) CanExecute() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.canExecuteLocked()
}

func (cb *CircuitBreaker) canExecuteLocked() bool {
	if !cb.config.Enabled {
		return true
	}
	switch cb.current {
	case stateClosed:
		return true
	case stateOpen:
		if time.Since(cb.openedAt) >= cb.config.Timeout {
			cb.transitionLocked(stateHalfOpen)
			return true
		}
		return false
	case stateHalfOpen:
		return cb.halfOpenInFlight < cb.config.HalfOpenRequests
	}
	return true
}

func (cb *CircuitBreaker) transitionLocked(to state) {
	from := cb.current
	cb.current = to
	if to == stateHalfOpen {
		cb.halfOpenInFlight, cb.halfOpenSuccess, cb.halfOpenFailure = 0, 0, 0
	}
	if to == stateOpen {
		cb.openedAt = time.Now()
	}
	if from != to {
		cb.logger.Warn("circuit breaker state change", map[string]interface{}{
			"name": cb.name, "from": from.String(), "to": to.String(),
		})
	}
}

// Execute runs fn under circuit-breaker protection.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func() error) error {
	cb.mu.Lock()
	if !cb.canExecuteLocked() {
		cb.totalReject++
		cb.mu.Unlock()
		return core.ErrCircuitBreakerOpen
	}
	if cb.current == stateHalfOpen {
		cb.halfOpenInFlight++
	}
	cb.mu.Unlock()

	err := fn()
	cb.record(err)
	return err
}

// ExecuteWithTimeout runs fn with both circuit-breaker protection and a
// hard deadline, for operations that might otherwise hang.
func (cb *CircuitBreaker) ExecuteWithTimeout(ctx context.Context, timeout time.Duration, fn func() error) error {
	return cb.Execute(ctx, func() error {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		done := make(chan error, 1)
		go func() { done <- fn() }()

		select {
		case err := <-done:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}

func (cb *CircuitBreaker) record(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err == nil {
		cb.totalSuccess++
		cb.consecutiveFail = 0
		if cb.current == stateHalfOpen {
			cb.halfOpenSuccess++
			if cb.halfOpenSuccess >= cb.config.HalfOpenRequests {
				cb.transitionLocked(stateClosed)
			}
		}
		return
	}

	cb.totalFailure++
	cb.consecutiveFail++
	if cb.current == stateHalfOpen {
		cb.halfOpenFailure++
		cb.transitionLocked(stateOpen)
		return
	}
	if cb.current == stateClosed && cb.consecutiveFail >= cb.config.Threshold {
		cb.transitionLocked(stateOpen)
	}
}

func (cb *CircuitBreaker) GetState() string {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.current.String()
}

func (cb *CircuitBreaker) GetMetrics() map[string]interface{} {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return map[string]interface{}{
		"name":             cb.name,
		"state":            cb.current.String(),
		"consecutive_fail": cb.consecutiveFail,
		"total_success":    cb.totalSuccess,
		"total_failure":    cb.totalFailure,
		"total_reject":     cb.totalReject,
	}
}

func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.current = stateClosed
	cb.consecutiveFail = 0
	cb.halfOpenInFlight, cb.halfOpenSuccess, cb.halfOpenFailure = 0, 0, 0
}
