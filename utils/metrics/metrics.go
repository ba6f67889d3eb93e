// Package metrics provides Prometheus metrics for the feed service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FeedFetchTotal counts upstream fetches by outcome ("ok" or a failure kind).
	FeedFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rootstech",
			Name:      "feed_fetch_total",
			Help:      "Total number of upstream feed fetches",
		},
		[]string{"outcome"},
	)

	FeedFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "rootstech",
			Name:      "feed_fetch_duration_seconds",
			Help:      "Duration of upstream feed fetches in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 12, 20},
		},
	)

	// CacheLookupsTotal counts cache reads per tier.
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rootstech",
			Name:      "cache_lookups_total",
			Help:      "Total number of cache lookups",
		},
		[]string{"tier", "result"},
	)

	CacheWriteErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rootstech",
			Name:      "cache_write_errors_total",
			Help:      "Total number of dropped cache writes",
		},
		[]string{"tier"},
	)

	AggregateRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rootstech",
			Name:      "aggregate_runs_total",
			Help:      "Total number of aggregation runs by strategy",
		},
		[]string{"strategy", "status"},
	)

	AggregateArticles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "rootstech",
			Name:      "aggregate_articles",
			Help:      "Number of articles in the last aggregate",
		},
	)

	// FeedsFailed is the number of feeds that failed in the last run.
	FeedsFailed = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "rootstech",
			Name:      "aggregate_feeds_failed",
			Help:      "Number of feeds that failed during the last aggregation",
		},
	)

	RedisConnectionStatus = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "rootstech",
			Name:      "redis_connection_status",
			Help:      "Redis connection status (1 = connected, 0 = disconnected)",
		},
	)
)

func RecordFeedFetch(outcome string, duration float64) {
	FeedFetchTotal.WithLabelValues(outcome).Inc()
	FeedFetchDuration.Observe(duration)
}

func RecordCacheLookup(tier string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookupsTotal.WithLabelValues(tier, result).Inc()
}

func RecordCacheWriteError(tier string) {
	CacheWriteErrorsTotal.WithLabelValues(tier).Inc()
}

func RecordAggregate(strategy, status string, articles, failedFeeds int) {
	AggregateRuns.WithLabelValues(strategy, status).Inc()
	AggregateArticles.Set(float64(articles))
	FeedsFailed.Set(float64(failedFeeds))
}

func SetRedisConnected(connected bool) {
	if connected {
		RedisConnectionStatus.Set(1)
	} else {
		RedisConnectionStatus.Set(0)
	}
}
