package rate_limiter

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

const DefaultMaxClients = 10000

// ClientRateLimiter keeps one token bucket per client key. Only the
// maxClients most recently seen keys are remembered; an evicted client
// starts again with a full bucket.
type ClientRateLimiter struct {
	mu       sync.Mutex
	limiters *lru.Cache[string, *rate.Limiter]
	limit    rate.Limit
	burst    int
}

func NewClientRateLimiter(interval time.Duration, burst, maxClients int) *ClientRateLimiter {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	if burst < 1 {
		burst = 1
	}
	if maxClients < 1 {
		maxClients = DefaultMaxClients
	}
	// lru.New only fails for a non-positive size.
	limiters, _ := lru.New[string, *rate.Limiter](maxClients)
	return &ClientRateLimiter{
		limiters: limiters,
		limit:    limit,
		burst:    burst,
	}
}

func (l *ClientRateLimiter) Allow(key string) bool {
	l.mu.Lock()
	limiter, ok := l.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters.Add(key, limiter)
	}
	l.mu.Unlock()
	return limiter.Allow()
}

func (l *ClientRateLimiter) Len() int {
	return l.limiters.Len()
}
