package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/subham11/farmer-advisor-go/pkg/memory"
)

func TestCheckAndIncrementAllowsUpToMax(t *testing.T) {
	store := memory.NewInMemoryStore()
	limiter := New(store, 3600, 3, nil)

	for i := 0; i < 3; i++ {
		status := limiter.CheckAndIncrement("session-1#asr")
		assert.True(t, status.Allowed)
	}

	status := limiter.CheckAndIncrement("session-1#asr")
	assert.False(t, status.Allowed)
	assert.Greater(t, status.ResetSeconds, int64(0))
}

func TestCheckAndIncrementNewWindowAfterExpiry(t *testing.T) {
	store := memory.NewInMemoryStore()
	limiter := New(store, 1, 1, nil)
	limiter.now = func() time.Time { return time.Unix(1000, 0) }

	first := limiter.CheckAndIncrement("session-2#tts")
	assert.True(t, first.Allowed)

	limiter.now = func() time.Time { return time.Unix(1005, 0) }
	second := limiter.CheckAndIncrement("session-2#tts")
	assert.True(t, second.Allowed)
}

func TestStatusWithoutWriting(t *testing.T) {
	store := memory.NewInMemoryStore()
	limiter := New(store, 3600, 5, nil)

	limiter.CheckAndIncrement("session-3#asr")
	before := limiter.Status("session-3#asr")
	after := limiter.Status("session-3#asr")
	assert.Equal(t, before, after)
}
