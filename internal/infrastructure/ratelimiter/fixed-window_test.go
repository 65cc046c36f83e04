package ratelimiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedWindowRateLimiter(t *testing.T) {
	window := 200 * time.Millisecond
	rl := NewFixedWindowRateLimiter(3, window)
	defer rl.Close()

	// Align to a window boundary so the burst cannot straddle two windows.
	time.Sleep(time.Until(time.Now().Truncate(window).Add(window)) + 10*time.Millisecond)

	for i := 0; i < 3; i++ {
		allowed, _ := rl.Allow("1.2.3.4")
		assert.True(t, allowed, "request %d should pass", i+1)
	}

	allowed, retryAfter := rl.Allow("1.2.3.4")
	assert.False(t, allowed)
	assert.Greater(t, retryAfter, time.Duration(0))

	// Other sources are tracked independently.
	allowed, _ = rl.Allow("5.6.7.8")
	assert.True(t, allowed)

	// The count resets once the window rolls over.
	time.Sleep(window + 20*time.Millisecond)
	allowed, _ = rl.Allow("1.2.3.4")
	assert.True(t, allowed)
}
