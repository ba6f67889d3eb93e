package article_cache_gateway

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Kalefullycode/roots-tech-news-sub000/domain"
	"github.com/Kalefullycode/roots-tech-news-sub000/port/article_cache_port"
	"github.com/Kalefullycode/roots-tech-news-sub000/utils/metrics"
)

const tierMemory = "memory"

// MemoryCacheGateway is the per-process cache tier. Expiry is checked lazily
// on read against the entry timestamp.
type MemoryCacheGateway struct {
	entries *lru.Cache[string, domain.CacheEntry]
	ttl     time.Duration
	now     func() time.Time
}

var _ article_cache_port.ArticleCachePort = (*MemoryCacheGateway)(nil)

func NewMemoryCacheGateway(maxKeys int, ttl time.Duration) (*MemoryCacheGateway, error) {
	if maxKeys <= 0 {
		maxKeys = 128
	}
	entries, err := lru.New[string, domain.CacheEntry](maxKeys)
	if err != nil {
		return nil, err
	}
	return &MemoryCacheGateway{entries: entries, ttl: ttl, now: time.Now}, nil
}

// WithClock replaces the time source; used by tests.
func (g *MemoryCacheGateway) WithClock(now func() time.Time) *MemoryCacheGateway {
	g.now = now
	return g
}

func (g *MemoryCacheGateway) Get(_ context.Context, key string) (*domain.CacheEntry, bool) {
	entry, ok := g.entries.Get(key)
	if !ok {
		metrics.RecordCacheLookup(tierMemory, false)
		return nil, false
	}
	if !entry.IsValid(g.now(), g.ttl) {
		g.entries.Remove(key)
		metrics.RecordCacheLookup(tierMemory, false)
		return nil, false
	}
	metrics.RecordCacheLookup(tierMemory, true)
	return &entry, true
}

func (g *MemoryCacheGateway) Set(_ context.Context, key string, entry domain.CacheEntry) error {
	g.entries.Add(key, entry)
	return nil
}

func (g *MemoryCacheGateway) Purge(_ context.Context) error {
	g.entries.Purge()
	return nil
}

func (g *MemoryCacheGateway) Len() int {
	return g.entries.Len()
}
