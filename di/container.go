package di

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/Kalefullycode/roots-tech-news-sub000/config"
	"github.com/Kalefullycode/roots-tech-news-sub000/domain"
	"github.com/Kalefullycode/roots-tech-news-sub000/driver/fallback_api_driver"
	"github.com/Kalefullycode/roots-tech-news-sub000/driver/feed_db"
	"github.com/Kalefullycode/roots-tech-news-sub000/driver/feed_http_driver"
	"github.com/Kalefullycode/roots-tech-news-sub000/driver/kv_cache_driver"
	"github.com/Kalefullycode/roots-tech-news-sub000/driver/newsletter_driver"
	"github.com/Kalefullycode/roots-tech-news-sub000/gateway/article_cache_gateway"
	"github.com/Kalefullycode/roots-tech-news-sub000/gateway/fallback_source_gateway"
	"github.com/Kalefullycode/roots-tech-news-sub000/gateway/feed_fetch_gateway"
	"github.com/Kalefullycode/roots-tech-news-sub000/gateway/feed_registry_gateway"
	"github.com/Kalefullycode/roots-tech-news-sub000/gateway/newsletter_gateway"
	"github.com/Kalefullycode/roots-tech-news-sub000/port/article_cache_port"
	"github.com/Kalefullycode/roots-tech-news-sub000/port/fallback_source_port"
	"github.com/Kalefullycode/roots-tech-news-sub000/port/feed_fetch_port"
	"github.com/Kalefullycode/roots-tech-news-sub000/port/feed_parse_port"
	"github.com/Kalefullycode/roots-tech-news-sub000/port/feed_registry_port"
	"github.com/Kalefullycode/roots-tech-news-sub000/usecase/aggregate_feeds_usecase"
	"github.com/Kalefullycode/roots-tech-news-sub000/usecase/newsletter_usecase"
	"github.com/Kalefullycode/roots-tech-news-sub000/usecase/proxy_feed_usecase"
	"github.com/Kalefullycode/roots-tech-news-sub000/utils/feed_parser"
	"github.com/Kalefullycode/roots-tech-news-sub000/utils/logger"
	"github.com/Kalefullycode/roots-tech-news-sub000/utils/metrics"
	"github.com/Kalefullycode/roots-tech-news-sub000/utils/rate_limiter"
	"github.com/Kalefullycode/roots-tech-news-sub000/utils/security"
)

type ApplicationComponents struct {
	AggregateFeedsUsecase aggregate_feeds_usecase.AggregateFeedsUsecaseInterface
	ProxyFeedUsecase      proxy_feed_usecase.ProxyFeedUsecaseInterface
	NewsletterUsecase     newsletter_usecase.NewsletterUsecaseInterface

	// Used directly by the operator CLI.
	FeedRegistry feed_registry_port.FeedRegistryPort
	FeedFetcher  feed_fetch_port.FeedFetchPort
	FeedParser   feed_parse_port.FeedParsePort
	Allowlist    *security.DomainAllowlist

	aggregator *aggregate_feeds_usecase.AggregateFeedsUsecase
	closers    []func() error
}

// NewApplicationComponents wires every layer from cfg. Redis and Postgres
// are optional; when unset or unreachable the service runs on the memory
// cache and the built-in registry.
func NewApplicationComponents(ctx context.Context, cfg *config.Config) (*ApplicationComponents, error) {
	c := &ApplicationComponents{}

	staticFeeds := domain.DefaultFeedRegistry()
	allowlist := security.NewDomainAllowlist(domain.DefaultAllowedDomains...)
	allowlist.Add(cfg.Feed.ExtraAllowedDomains...)
	allowlist.Add(domain.FeedHosts(staticFeeds)...)
	c.Allowlist = allowlist

	c.FeedRegistry = c.newRegistry(ctx, cfg, staticFeeds, allowlist)

	httpClient := feed_http_driver.NewHTTPClient()
	httpDriver := feed_http_driver.NewFeedHTTPDriver(httpClient, allowlist, cfg.Feed.UserAgent, cfg.Feed.MaxBodyBytes)
	hostLimiter := rate_limiter.NewHostRateLimiter(cfg.Feed.HostInterval, 1)
	c.FeedFetcher = feed_fetch_gateway.NewFeedFetchGateway(httpDriver, allowlist, hostLimiter, cfg.Feed.FetchTimeout)

	c.FeedParser = feed_parser.NewParser(feed_parser.Options{
		MaxItems:          cfg.Feed.MaxItemsPerFeed,
		DescriptionMaxLen: cfg.Feed.DescriptionMaxLength,
		RegexFallback:     cfg.Feed.RegexFallback,
	})

	memoryCache, err := article_cache_gateway.NewMemoryCacheGateway(cfg.Cache.MemoryMaxKeys, cfg.Cache.MemoryTTL)
	if err != nil {
		return nil, err
	}

	c.aggregator = aggregate_feeds_usecase.NewAggregateFeedsUsecase(
		aggregate_feeds_usecase.Dependencies{
			Registry:    c.FeedRegistry,
			Fetcher:     c.FeedFetcher,
			Parser:      c.FeedParser,
			MemoryCache: memoryCache,
			KVCache:     c.newKVCache(ctx, cfg),
			Fallbacks:   newFallbacks(cfg, httpClient),
			Filter:      domain.NewContentFilter(),
		},
		aggregate_feeds_usecase.Options{
			MaxArticles:     cfg.Aggregator.MaxArticles,
			MaxConcurrency:  cfg.Aggregator.MaxConcurrency,
			TopicFilter:     cfg.Aggregator.TopicFilter,
			FallbackEnabled: cfg.Aggregator.FallbackEnabled,
			KVWriteTimeout:  cfg.Cache.KVWriteTimeout,
		},
	)
	c.AggregateFeedsUsecase = c.aggregator

	c.ProxyFeedUsecase = proxy_feed_usecase.NewProxyFeedUsecase(c.FeedFetcher, allowlist)

	resend, err := newsletter_driver.NewResendClient(httpClient, cfg.Newsletter.BaseURL, cfg.Newsletter.APIKey)
	if err != nil {
		return nil, err
	}
	newsletterGateway := newsletter_gateway.NewNewsletterGateway(
		resend,
		cfg.Newsletter.AudienceID,
		cfg.Newsletter.FromAddress,
		cfg.Newsletter.Configured(),
		cfg.Newsletter.Timeout,
	)
	c.NewsletterUsecase = newsletter_usecase.NewNewsletterUsecase(newsletterGateway)

	return c, nil
}

func (c *ApplicationComponents) newRegistry(
	ctx context.Context,
	cfg *config.Config,
	staticFeeds []domain.FeedDescriptor,
	allowlist *security.DomainAllowlist,
) feed_registry_port.FeedRegistryPort {
	if cfg.Database.URL == "" {
		return feed_registry_gateway.NewStaticFeedRegistryGateway(staticFeeds)
	}

	pool, err := feed_db.InitPool(ctx, cfg.Database.URL, cfg.Database.MaxConnections, cfg.Database.ConnectionTimeout)
	if err != nil {
		logger.Logger.Warn("feed database unavailable, using built-in registry", "error", err)
		return feed_registry_gateway.NewStaticFeedRegistryGateway(staticFeeds)
	}
	repo := feed_db.NewFeedSourceRepository(pool)
	c.closers = append(c.closers, func() error {
		repo.Close()
		return nil
	})
	logger.Logger.Info("feed registry backed by database")
	registry := feed_registry_gateway.NewDBFeedRegistryGateway(repo, staticFeeds, allowlist)
	registry.SeedAllowlist(ctx)
	return registry
}

func (c *ApplicationComponents) newKVCache(ctx context.Context, cfg *config.Config) article_cache_port.ArticleCachePort {
	if cfg.Redis.URL == "" {
		metrics.SetRedisConnected(false)
		return nil
	}

	driver, err := kv_cache_driver.NewRedisKVDriverWithURL(cfg.Redis.URL, cfg.Redis.DialTimeout)
	if err != nil {
		logger.Logger.Warn("invalid redis url, kv cache disabled", "error", err)
		metrics.SetRedisConnected(false)
		return nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Redis.DialTimeout)
	defer cancel()
	if err := driver.Ping(pingCtx); err != nil {
		logger.Logger.Warn("redis unreachable, kv cache disabled", "error", err)
		metrics.SetRedisConnected(false)
		_ = driver.Close()
		return nil
	}

	metrics.SetRedisConnected(true)
	c.closers = append(c.closers, driver.Close)
	logger.Logger.Info("kv cache enabled")
	return article_cache_gateway.NewKVCacheGateway(driver, cfg.Cache.KVTTL)
}

func newFallbacks(cfg *config.Config, httpClient *http.Client) []fallback_source_port.FallbackSourcePort {
	client := fallback_api_driver.NewClient(httpClient, cfg.Feed.UserAgent)
	opts := func(baseURL, query string) fallback_source_gateway.Options {
		return fallback_source_gateway.Options{
			BaseURL:           baseURL,
			Query:             query,
			Category:          domain.CategoryAI,
			Timeout:           cfg.Fallback.Timeout,
			DescriptionMaxLen: cfg.Feed.DescriptionMaxLength,
		}
	}

	byStrategy := map[domain.FetchStrategy]fallback_source_port.FallbackSourcePort{
		domain.StrategyDevTo:      fallback_source_gateway.NewDevToGateway(client, opts(cfg.Fallback.DevToBaseURL, cfg.Fallback.DevToTag)),
		domain.StrategyHackerNews: fallback_source_gateway.NewHackerNewsGateway(client, opts(cfg.Fallback.HackerNewsURL, cfg.Fallback.HackerNewsQuery)),
		domain.StrategyReddit:     fallback_source_gateway.NewRedditGateway(client, opts(cfg.Fallback.RedditBaseURL, cfg.Fallback.Subreddit)),
	}

	out := make([]fallback_source_port.FallbackSourcePort, 0, len(domain.FallbackOrder))
	for _, s := range domain.FallbackOrder {
		out = append(out, byStrategy[s])
	}
	return out
}

// Close waits for pending cache writes and releases external connections.
func (c *ApplicationComponents) Close() error {
	if c.aggregator != nil {
		c.aggregator.WaitForBackgroundWrites()
	}
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}
