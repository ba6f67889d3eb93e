package rate_limiter

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClientRateLimiter_PerClientBudget(t *testing.T) {
	limiter := NewClientRateLimiter(time.Hour, 2, 10)

	assert.True(t, limiter.Allow("203.0.113.7"))
	assert.True(t, limiter.Allow("203.0.113.7"))
	assert.False(t, limiter.Allow("203.0.113.7"))

	assert.True(t, limiter.Allow("198.51.100.1"))
}

func TestClientRateLimiter_BoundedClients(t *testing.T) {
	limiter := NewClientRateLimiter(time.Hour, 1, 3)

	for i := 0; i < 100; i++ {
		limiter.Allow(fmt.Sprintf("10.0.0.%d", i))
	}

	assert.Equal(t, 3, limiter.Len())
}

func TestClientRateLimiter_RecentClientKept(t *testing.T) {
	limiter := NewClientRateLimiter(time.Hour, 1, 2)

	assert.True(t, limiter.Allow("a"))
	assert.True(t, limiter.Allow("b"))
	assert.False(t, limiter.Allow("a"), "a is now most recent")
	assert.True(t, limiter.Allow("c"), "evicts b, the least recent")
	assert.False(t, limiter.Allow("a"))
}

func TestNewClientRateLimiter_Defaults(t *testing.T) {
	limiter := NewClientRateLimiter(0, 0, 0)
	for i := 0; i < 50; i++ {
		assert.True(t, limiter.Allow("same"), "zero interval means unlimited")
	}
}
