package aggregate_feeds_usecase

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/singleflight"

	"github.com/Kalefullycode/roots-tech-news-sub000/domain"
	"github.com/Kalefullycode/roots-tech-news-sub000/port/article_cache_port"
	"github.com/Kalefullycode/roots-tech-news-sub000/port/fallback_source_port"
	"github.com/Kalefullycode/roots-tech-news-sub000/port/feed_fetch_port"
	"github.com/Kalefullycode/roots-tech-news-sub000/port/feed_parse_port"
	"github.com/Kalefullycode/roots-tech-news-sub000/port/feed_registry_port"
	"github.com/Kalefullycode/roots-tech-news-sub000/utils/logger"
)

// AggregateFeedsUsecaseInterface is consumed by the REST handlers and the
// cache warm job.
type AggregateFeedsUsecaseInterface interface {
	Execute(ctx context.Context, opts domain.AggregateOptions) (*domain.AggregateResult, error)
	Refresh(ctx context.Context) (*domain.AggregateResult, error)
	PurgeCache(ctx context.Context) error
}

type Dependencies struct {
	Registry    feed_registry_port.FeedRegistryPort
	Fetcher     feed_fetch_port.FeedFetchPort
	Parser      feed_parse_port.FeedParsePort
	MemoryCache article_cache_port.ArticleCachePort
	// KVCache is nil when no shared store is configured.
	KVCache   article_cache_port.ArticleCachePort
	Fallbacks []fallback_source_port.FallbackSourcePort
	Filter    *domain.ContentFilter
}

type Options struct {
	MaxArticles     int
	MaxConcurrency  int
	TopicFilter     bool
	FallbackEnabled bool
	KVWriteTimeout  time.Duration
	Now             func() time.Time
}

type AggregateFeedsUsecase struct {
	deps  Dependencies
	opts  Options
	group singleflight.Group
	// background KV writes
	writes sync.WaitGroup
}

var _ AggregateFeedsUsecaseInterface = (*AggregateFeedsUsecase)(nil)

func NewAggregateFeedsUsecase(deps Dependencies, opts Options) *AggregateFeedsUsecase {
	if opts.MaxArticles <= 0 {
		opts.MaxArticles = 50
	}
	if opts.MaxConcurrency <= 0 {
		opts.MaxConcurrency = 16
	}
	if opts.KVWriteTimeout <= 0 {
		opts.KVWriteTimeout = 3 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if deps.Filter == nil {
		deps.Filter = domain.NewContentFilter()
	}
	return &AggregateFeedsUsecase{deps: deps, opts: opts}
}

// Execute serves the aggregate from the memory tier, then the KV tier, and
// otherwise rebuilds it. Concurrent misses for the same key share one build.
// On total failure the returned result is non-nil with Success=false.
func (u *AggregateFeedsUsecase) Execute(ctx context.Context, opts domain.AggregateOptions) (*domain.AggregateResult, error) {
	key := domain.CategoryCacheKey(opts.Category)

	if res, ok := u.lookup(ctx, key); ok {
		return u.view(res, opts), nil
	}

	v, err, shared := u.group.Do(key, func() (any, error) {
		flightCtx := context.WithoutCancel(ctx)
		if opts.Category == "" {
			return u.buildAggregate(flightCtx)
		}
		return u.buildCategory(flightCtx, opts.Category)
	})
	if shared {
		logger.Logger.DebugContext(ctx, "aggregate build shared", "key", key)
	}

	res, _ := v.(*domain.AggregateResult)
	if res == nil {
		res = u.failureResult(0, nil)
	}
	return u.view(res, opts), err
}

// Refresh rebuilds the full aggregate regardless of cache state and stores it.
func (u *AggregateFeedsUsecase) Refresh(ctx context.Context) (*domain.AggregateResult, error) {
	v, err, _ := u.group.Do("refresh:"+domain.AggregateCacheKey, func() (any, error) {
		return u.buildAggregate(ctx)
	})
	res, _ := v.(*domain.AggregateResult)
	return res, err
}

// PurgeCache clears the memory tier and the KV aggregate keys. CDN copies
// are not affected.
func (u *AggregateFeedsUsecase) PurgeCache(ctx context.Context) error {
	var errs []error
	if err := u.deps.MemoryCache.Purge(ctx); err != nil {
		errs = append(errs, err)
	}
	if u.deps.KVCache != nil {
		if err := u.deps.KVCache.Purge(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

// WaitForBackgroundWrites blocks until pending KV writes finish.
func (u *AggregateFeedsUsecase) WaitForBackgroundWrites() {
	u.writes.Wait()
}

func (u *AggregateFeedsUsecase) lookup(ctx context.Context, key string) (*domain.AggregateResult, bool) {
	if entry, ok := u.deps.MemoryCache.Get(ctx, key); ok {
		res := domain.ResultFromCacheEntry(*entry, 0)
		return &res, true
	}
	if u.deps.KVCache == nil {
		return nil, false
	}
	entry, ok := u.deps.KVCache.Get(ctx, key)
	if !ok {
		return nil, false
	}
	if err := u.deps.MemoryCache.Set(ctx, key, *entry); err != nil {
		logger.Logger.WarnContext(ctx, "memory cache write failed", "key", key, "error", err)
	}
	res := domain.ResultFromCacheEntry(*entry, 0)
	return &res, true
}

func (u *AggregateFeedsUsecase) store(ctx context.Context, key string, res *domain.AggregateResult) {
	entry := res.ToCacheEntry()
	if err := u.deps.MemoryCache.Set(ctx, key, entry); err != nil {
		logger.Logger.WarnContext(ctx, "memory cache write failed", "key", key, "error", err)
	}
	if u.deps.KVCache == nil {
		return
	}

	u.writes.Add(1)
	go func() {
		defer u.writes.Done()
		writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), u.opts.KVWriteTimeout)
		defer cancel()
		if err := u.deps.KVCache.Set(writeCtx, key, entry); err != nil {
			logger.Logger.Warn("kv cache write dropped", "key", key, "error", err)
		}
	}()
}

func (u *AggregateFeedsUsecase) buildAggregate(ctx context.Context) (*domain.AggregateResult, error) {
	res, err := u.run(ctx)
	if err != nil {
		return res, err
	}
	u.store(ctx, domain.AggregateCacheKey, res)
	return res, nil
}

// buildCategory derives a category view from the full aggregate. The view
// keeps the aggregate's timestamp so both expire together.
func (u *AggregateFeedsUsecase) buildCategory(ctx context.Context, category domain.Category) (*domain.AggregateResult, error) {
	full, ok := u.lookup(ctx, domain.AggregateCacheKey)
	if !ok {
		var err error
		full, err = u.buildAggregate(ctx)
		if err != nil {
			return full, err
		}
	}

	view := *full
	view.Articles = lo.Filter(full.Articles, func(a domain.Article, _ int) bool {
		return a.Category == category
	})
	view.Count = len(view.Articles)
	u.store(ctx, domain.CategoryCacheKey(category), &view)
	return &view, nil
}

// view applies per-request ordering and limit without mutating the shared
// result.
func (u *AggregateFeedsUsecase) view(res *domain.AggregateResult, opts domain.AggregateOptions) *domain.AggregateResult {
	out := *res
	articles := res.Articles
	if opts.ByRelevance {
		articles = u.deps.Filter.SortByRelevance(articles)
	}
	if opts.Limit > 0 && len(articles) > opts.Limit {
		articles = articles[:opts.Limit]
	}
	if articles == nil {
		articles = []domain.Article{}
	}
	out.Articles = articles
	out.Count = len(articles)
	return &out
}
