package feed_fetch_gateway

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Kalefullycode/roots-tech-news-sub000/domain"
	"github.com/Kalefullycode/roots-tech-news-sub000/port/feed_fetch_port"
	"github.com/Kalefullycode/roots-tech-news-sub000/utils/logger"
	"github.com/Kalefullycode/roots-tech-news-sub000/utils/metrics"
	"github.com/Kalefullycode/roots-tech-news-sub000/utils/rate_limiter"
	"github.com/Kalefullycode/roots-tech-news-sub000/utils/security"
)

// HTTPGetter is the transport seam used by the gateway.
type HTTPGetter interface {
	Get(ctx context.Context, feedURL string) (*domain.FetchedFeed, error)
}

// FeedFetchGateway acts as an Anti-Corruption Layer in front of the feed
// HTTP driver. It validates URLs against the domain allowlist before any
// network I/O and applies the per-fetch deadline and per-host spacing.
type FeedFetchGateway struct {
	getter      HTTPGetter
	allowlist   *security.DomainAllowlist
	hostLimiter *rate_limiter.HostRateLimiter
	timeout     time.Duration
}

var _ feed_fetch_port.FeedFetchPort = (*FeedFetchGateway)(nil)

func NewFeedFetchGateway(
	getter HTTPGetter,
	allowlist *security.DomainAllowlist,
	hostLimiter *rate_limiter.HostRateLimiter,
	timeout time.Duration,
) *FeedFetchGateway {
	return &FeedFetchGateway{
		getter:      getter,
		allowlist:   allowlist,
		hostLimiter: hostLimiter,
		timeout:     timeout,
	}
}

func (g *FeedFetchGateway) FetchFeed(ctx context.Context, feedURL string) (*domain.FetchedFeed, error) {
	u, err := g.allowlist.Check(feedURL)
	if err != nil {
		kind := domain.FailureInvalidURL
		if errors.Is(err, security.ErrDomainNotAllowed) {
			kind = domain.FailureDomainNotAllowed
		}
		logger.Logger.WarnContext(ctx, "feed url rejected", "url", feedURL, "reason", kind)
		metrics.RecordFeedFetch(string(kind), 0)
		return nil, &domain.FetchFailure{Kind: kind, URL: feedURL, Cause: err}
	}

	fetchCtx := ctx
	if g.timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	if g.hostLimiter != nil {
		if err := g.hostLimiter.WaitForHost(fetchCtx, u.String()); err != nil {
			failure := &domain.FetchFailure{Kind: domain.FailureTimeout, URL: feedURL, Cause: err}
			metrics.RecordFeedFetch(string(failure.Kind), time.Since(start).Seconds())
			return nil, failure
		}
	}

	feed, err := g.getter.Get(fetchCtx, u.String())
	elapsed := time.Since(start)
	if err != nil {
		failure, ok := domain.AsFetchFailure(err)
		if !ok {
			failure = &domain.FetchFailure{Kind: domain.FailureNetwork, URL: feedURL, Cause: err}
		}
		metrics.RecordFeedFetch(string(failure.Kind), elapsed.Seconds())
		logger.Logger.InfoContext(ctx, "feed fetch failed",
			"url", feedURL,
			"failure", failure.Label(),
			"duration_ms", elapsed.Milliseconds())
		return nil, failure
	}

	metrics.RecordFeedFetch("ok", elapsed.Seconds())
	if logger.Logger.Enabled(ctx, slog.LevelDebug) {
		logger.Logger.DebugContext(ctx, "feed fetched",
			"url", feedURL,
			"bytes", len(feed.Body),
			"duration_ms", elapsed.Milliseconds())
	}
	return feed, nil
}
