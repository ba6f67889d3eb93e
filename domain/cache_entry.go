package domain

import (
	"strings"
	"time"
)

// AggregateCacheKey is the fixed key of the aggregated article list.
const AggregateCacheKey = "rss-feeds-aggregated"

// CategoryCacheKey keys the per-category view of the aggregate.
func CategoryCacheKey(c Category) string {
	if c == "" {
		return AggregateCacheKey
	}
	return AggregateCacheKey + ":" + strings.ToLower(string(c))
}

type CacheEntry struct {
	Data              []Article     `json:"data"`
	Timestamp         int64         `json:"timestamp"`
	Sources           int           `json:"sources,omitempty"`
	SuccessfulSources int           `json:"successfulSources,omitempty"`
	Errors            []string      `json:"errors,omitempty"`
	Strategy          FetchStrategy `json:"strategy,omitempty"`
}

func NewCacheEntry(articles []Article, now time.Time) CacheEntry {
	return CacheEntry{Data: articles, Timestamp: now.UnixMilli()}
}

// IsValid reports whether the entry is still fresh: now - timestamp < ttl.
func (e CacheEntry) IsValid(now time.Time, ttl time.Duration) bool {
	return now.UnixMilli()-e.Timestamp < ttl.Milliseconds()
}

func (e CacheEntry) StoredAt() time.Time {
	return time.UnixMilli(e.Timestamp).UTC()
}
