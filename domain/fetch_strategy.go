package domain

import "time"

// FetchStrategy records which source produced an aggregate.
type FetchStrategy string

const (
	StrategyRSS        FetchStrategy = "rss"
	StrategyDevTo      FetchStrategy = "devto-api"
	StrategyHackerNews FetchStrategy = "hackernews-api"
	StrategyReddit     FetchStrategy = "reddit-api"
)

// FallbackOrder is the order alternate strategies are tried after RSS.
var FallbackOrder = []FetchStrategy{StrategyDevTo, StrategyHackerNews, StrategyReddit}

type AggregateOptions struct {
	Category Category
	Limit    int
	// ByRelevance orders the result by keyword score instead of date.
	ByRelevance bool
}

type AggregateResult struct {
	Success           bool          `json:"success"`
	Articles          []Article     `json:"articles"`
	Count             int           `json:"count"`
	Sources           int           `json:"sources"`
	SuccessfulSources int           `json:"successfulSources"`
	Errors            []string      `json:"errors,omitempty"`
	LastUpdated       time.Time     `json:"lastUpdated"`
	Strategy          FetchStrategy `json:"strategy"`
	Cached            bool          `json:"cached"`
}

func (r AggregateResult) ToCacheEntry() CacheEntry {
	return CacheEntry{
		Data:              r.Articles,
		Timestamp:         r.LastUpdated.UnixMilli(),
		Sources:           r.Sources,
		SuccessfulSources: r.SuccessfulSources,
		Errors:            r.Errors,
		Strategy:          r.Strategy,
	}
}

// ResultFromCacheEntry rebuilds a result, keeping at most limit articles
// when limit is positive.
func ResultFromCacheEntry(e CacheEntry, limit int) AggregateResult {
	articles := e.Data
	if limit > 0 && len(articles) > limit {
		articles = articles[:limit]
	}
	if articles == nil {
		articles = []Article{}
	}
	strategy := e.Strategy
	if strategy == "" {
		strategy = StrategyRSS
	}
	return AggregateResult{
		Success:           true,
		Articles:          articles,
		Count:             len(articles),
		Sources:           e.Sources,
		SuccessfulSources: e.SuccessfulSources,
		Errors:            e.Errors,
		LastUpdated:       e.StoredAt(),
		Strategy:          strategy,
		Cached:            true,
	}
}
