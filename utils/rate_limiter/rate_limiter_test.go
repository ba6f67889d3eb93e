package rate_limiter

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostRateLimiter_SpacesSameHost(t *testing.T) {
	limiter := NewHostRateLimiter(50*time.Millisecond, 1)
	ctx := context.Background()

	start := time.Now()
	require.NoError(t, limiter.WaitForHost(ctx, "https://techcrunch.com/feed/"))
	require.NoError(t, limiter.WaitForHost(ctx, "https://techcrunch.com/other/"))
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 40*time.Millisecond)
	assert.Equal(t, 1, limiter.Len())
}

func TestHostRateLimiter_IndependentHosts(t *testing.T) {
	limiter := NewHostRateLimiter(time.Hour, 1)
	ctx := context.Background()

	require.NoError(t, limiter.WaitForHost(ctx, "https://a.example.com/rss"))
	require.NoError(t, limiter.WaitForHost(ctx, "https://b.example.com/rss"))

	assert.Equal(t, 2, limiter.Len())
}

func TestHostRateLimiter_RespectsContext(t *testing.T) {
	limiter := NewHostRateLimiter(time.Hour, 1)
	require.NoError(t, limiter.WaitForHost(context.Background(), "https://a.example.com"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.Error(t, limiter.WaitForHost(ctx, "https://a.example.com"))
}

func TestHostRateLimiter_InvalidURL(t *testing.T) {
	limiter := NewHostRateLimiter(time.Second, 1)

	assert.Error(t, limiter.WaitForHost(context.Background(), "/relative/only"))
	assert.Error(t, limiter.WaitForHost(context.Background(), "://bad"))
}

func TestHostRateLimiter_DisabledAndAllow(t *testing.T) {
	unlimited := NewHostRateLimiter(0, 1)
	for i := 0; i < 100; i++ {
		assert.True(t, unlimited.Allow("10.0.0.1"))
	}

	limited := NewHostRateLimiter(time.Hour, 2)
	assert.True(t, limited.Allow("10.0.0.1"))
	assert.True(t, limited.Allow("10.0.0.1"))
	assert.False(t, limited.Allow("10.0.0.1"))
	assert.True(t, limited.Allow("10.0.0.2"))
}

func TestHostRateLimiter_ConcurrentAccess(t *testing.T) {
	limiter := NewHostRateLimiter(0, 1)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = limiter.WaitForHost(context.Background(), "https://same.example.com/feed")
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, limiter.Len())
}
