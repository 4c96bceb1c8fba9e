package core

import (
	"context"
	"time"
)

// CircuitBreaker protects an external dependency from cascading failures.
// States: closed (normal), open (rejecting), half-open (probing recovery).
type CircuitBreaker interface {
	Execute(ctx context.Context, fn func() error) error
	ExecuteWithTimeout(ctx context.Context, timeout time.Duration, fn func() error) error
	GetState() string
	GetMetrics() map[string]interface{}
	Reset()
	CanExecute() bool
}

// CircuitBreakerConfig configures a CircuitBreaker implementation.
type CircuitBreakerConfig struct {
	Enabled          bool
	Threshold        int           // consecutive failures before opening
	Timeout          time.Duration // sleep window before half-open probing
	HalfOpenRequests int           // probes allowed while half-open
}

// DefaultCircuitBreakerConfig returns sensible defaults for protecting an
// external advisory dependency (directories, weather, retrieval).
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		Threshold:        5,
		Timeout:          30 * time.Second,
		HalfOpenRequests: 3,
	}
}
