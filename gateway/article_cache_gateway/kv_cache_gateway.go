package article_cache_gateway

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Kalefullycode/roots-tech-news-sub000/domain"
	"github.com/Kalefullycode/roots-tech-news-sub000/port/article_cache_port"
	"github.com/Kalefullycode/roots-tech-news-sub000/utils/errors"
	"github.com/Kalefullycode/roots-tech-news-sub000/utils/logger"
	"github.com/Kalefullycode/roots-tech-news-sub000/utils/metrics"
)

const tierKV = "kv"

// KVStore is the subset of the Redis driver the KV tier needs.
type KVStore interface {
	GetBytes(ctx context.Context, key string) ([]byte, bool, error)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error
	ScanKeys(ctx context.Context, pattern string) ([]string, error)
	Delete(ctx context.Context, keys ...string) error
}

// KVCacheGateway is the shared cache tier. Entries are stored as JSON and
// validated against their own timestamp, so a store-side TTL longer than ours
// never serves stale data.
type KVCacheGateway struct {
	store KVStore
	ttl   time.Duration
	now   func() time.Time
}

var _ article_cache_port.ArticleCachePort = (*KVCacheGateway)(nil)

func NewKVCacheGateway(store KVStore, ttl time.Duration) *KVCacheGateway {
	return &KVCacheGateway{store: store, ttl: ttl, now: time.Now}
}

func (g *KVCacheGateway) WithClock(now func() time.Time) *KVCacheGateway {
	g.now = now
	return g
}

// Get treats read and decode failures as misses.
func (g *KVCacheGateway) Get(ctx context.Context, key string) (*domain.CacheEntry, bool) {
	raw, found, err := g.store.GetBytes(ctx, key)
	if err != nil {
		logger.Logger.WarnContext(ctx, "kv cache read failed", "key", key, "error", err)
		metrics.RecordCacheLookup(tierKV, false)
		return nil, false
	}
	if !found {
		metrics.RecordCacheLookup(tierKV, false)
		return nil, false
	}

	var entry domain.CacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		logger.Logger.WarnContext(ctx, "kv cache entry is corrupt", "key", key, "error", err)
		metrics.RecordCacheLookup(tierKV, false)
		return nil, false
	}
	if !entry.IsValid(g.now(), g.ttl) {
		metrics.RecordCacheLookup(tierKV, false)
		return nil, false
	}

	metrics.RecordCacheLookup(tierKV, true)
	return &entry, true
}

func (g *KVCacheGateway) Set(ctx context.Context, key string, entry domain.CacheEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return errors.NewUnknownContextError(
			"failed to encode cache entry",
			"gateway", "KVCacheGateway", "Set",
			err, map[string]any{"key": key},
		)
	}
	if err := g.store.SetBytes(ctx, key, payload, g.ttl); err != nil {
		metrics.RecordCacheWriteError(tierKV)
		return errors.NewDatabaseContextError(
			"failed to write cache entry",
			"gateway", "KVCacheGateway", "Set",
			err, map[string]any{"key": key},
		)
	}
	return nil
}

// Purge removes the aggregate and every per-category view.
func (g *KVCacheGateway) Purge(ctx context.Context) error {
	keys, err := g.store.ScanKeys(ctx, domain.AggregateCacheKey+"*")
	if err != nil {
		return errors.NewDatabaseContextError(
			"failed to list cache keys",
			"gateway", "KVCacheGateway", "Purge",
			err, nil,
		)
	}
	if err := g.store.Delete(ctx, keys...); err != nil {
		return errors.NewDatabaseContextError(
			"failed to delete cache keys",
			"gateway", "KVCacheGateway", "Purge",
			err, map[string]any{"keys": len(keys)},
		)
	}
	logger.Logger.InfoContext(ctx, "kv cache purged", "keys", len(keys))
	return nil
}
