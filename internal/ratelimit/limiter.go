// Package ratelimit implements the per-session fixed-window counter
// protecting upstream speech services.
package ratelimit

import (
	"time"

	"github.com/subham11/farmer-advisor-go/core"
	"github.com/subham11/farmer-advisor-go/pkg/memory"
)

const (
	defaultWindowSeconds = 3600
	defaultMaxPerWindow  = 5
	gracePeriod          = 300 * time.Second
)

// Status is the outcome of a rate-limit check.
type Status struct {
	Allowed       bool
	Remaining     int
	ResetSeconds  int64
}

// Limiter is the fixed-window rate limiter, backed by the Learning Store.
type Limiter struct {
	store         memory.Store
	windowSeconds int64
	maxPerWindow  int
	logger        core.Logger
	now           func() time.Time
}

// New builds a Limiter with the given window and per-window cap; zero
// values fall back to the defaults (3600s window, 5 requests).
func New(store memory.Store, windowSeconds int64, maxPerWindow int, logger core.Logger) *Limiter {
	if windowSeconds <= 0 {
		windowSeconds = defaultWindowSeconds
	}
	if maxPerWindow <= 0 {
		maxPerWindow = defaultMaxPerWindow
	}
	if logger == nil {
		logger = core.NoOpLogger{}
	}
	return &Limiter{store: store, windowSeconds: windowSeconds, maxPerWindow: maxPerWindow, logger: logger, now: time.Now}
}

// CheckAndIncrement implements 's checkAndIncrement operation. Storage
// failures fail open: the request is allowed and the failure is logged.
func (l *Limiter) CheckAndIncrement(sessionKind string) Status {
	now := l.now().Unix()

	state, found := l.store.RateLimitRead(sessionKind)
	count := 1
	windowStart := now

	if found && now-state.WindowStart < l.windowSeconds {
		windowStart = state.WindowStart
		if state.Count >= l.maxPerWindow {
			reset := l.windowSeconds - (now - windowStart)
			return Status{Allowed: false, Remaining: 0, ResetSeconds: reset}
		}
		count = state.Count + 1
	}

	ttl := time.Duration(l.windowSeconds)*time.Second + gracePeriod
	ok := l.store.RateLimitWrite(sessionKind, memory.RateLimitState{Count: count, WindowStart: windowStart}, ttl)
	if !ok {
		l.logger.Warn("rate limit store write failed, failing open", map[string]interface{}{"key": sessionKind})
	}

	return Status{
		Allowed:      true,
		Remaining:    l.maxPerWindow - count,
		ResetSeconds: l.windowSeconds - (now - windowStart),
	}
}

// Status reads the current window state without writing.
func (l *Limiter) Status(sessionKind string) Status {
	now := l.now().Unix()
	state, found := l.store.RateLimitRead(sessionKind)
	if !found || now-state.WindowStart >= l.windowSeconds {
		return Status{Allowed: true, Remaining: l.maxPerWindow, ResetSeconds: l.windowSeconds}
	}
	remaining := l.maxPerWindow - state.Count
	if remaining < 0 {
		remaining = 0
	}
	return Status{
		Allowed:      state.Count < l.maxPerWindow,
		Remaining:    remaining,
		ResetSeconds: l.windowSeconds - (now - state.WindowStart),
	}
}
