package article_cache_port

//go:generate go run go.uber.org/mock/mockgen -source=article_cache_port.go -destination=../../mocks/mock_article_cache_port.go -package=mocks ArticleCachePort

import (
	"context"

	"github.com/Kalefullycode/roots-tech-news-sub000/domain"
)

// ArticleCachePort is one cache tier. Get reports a miss for absent and
// expired entries alike; implementations own their TTL.
type ArticleCachePort interface {
	Get(ctx context.Context, key string) (*domain.CacheEntry, bool)
	Set(ctx context.Context, key string, entry domain.CacheEntry) error
	Purge(ctx context.Context) error
}
