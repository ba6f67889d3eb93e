package aggregate_feeds_usecase

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/Kalefullycode/roots-tech-news-sub000/domain"
	"github.com/Kalefullycode/roots-tech-news-sub000/utils"
	"github.com/Kalefullycode/roots-tech-news-sub000/utils/errors"
	"github.com/Kalefullycode/roots-tech-news-sub000/utils/logger"
	"github.com/Kalefullycode/roots-tech-news-sub000/utils/metrics"
)

type feedOutcome struct {
	articles []domain.Article
	err      error
}

// run fans out over the active registry. Every task returns nil so one
// feed's failure never cancels its siblings.
func (u *AggregateFeedsUsecase) run(ctx context.Context) (*domain.AggregateResult, error) {
	start := time.Now()

	feeds, err := u.deps.Registry.ListFeeds(ctx)
	if err != nil {
		logger.Logger.ErrorContext(ctx, "failed to list feeds", "error", err)
	}
	active := domain.ActiveFeeds(feeds)

	outcomes := make([]feedOutcome, len(active))
	var g errgroup.Group
	g.SetLimit(u.opts.MaxConcurrency)
	for i, feed := range active {
		g.Go(func() error {
			outcomes[i] = u.fetchFeed(ctx, feed)
			return nil
		})
	}
	_ = g.Wait()

	var (
		merged    []domain.Article
		failures  []string
		succeeded int
	)
	for i, out := range outcomes {
		if out.err != nil {
			failures = append(failures, fmt.Sprintf("%s: %s", active[i].Name, failureReason(out.err)))
			continue
		}
		succeeded++
		merged = append(merged, out.articles...)
	}

	logger.Logger.InfoContext(ctx, "feed aggregation finished",
		"sources", len(active),
		"successful_sources", succeeded,
		"articles", len(merged),
		"duration_ms", time.Since(start).Milliseconds())

	if succeeded == 0 {
		if len(active) == 0 {
			failures = append(failures, "no active feeds configured")
		}
		return u.fallback(ctx, len(active), failures)
	}

	articles := u.process(merged, u.opts.TopicFilter)
	metrics.RecordAggregate(string(domain.StrategyRSS), "success", len(articles), len(failures))

	return &domain.AggregateResult{
		Success:           true,
		Articles:          articles,
		Count:             len(articles),
		Sources:           len(active),
		SuccessfulSources: succeeded,
		Errors:            failures,
		LastUpdated:       u.opts.Now().UTC(),
		Strategy:          domain.StrategyRSS,
	}, nil
}

func (u *AggregateFeedsUsecase) fetchFeed(ctx context.Context, feed domain.FeedDescriptor) feedOutcome {
	fetched, err := u.deps.Fetcher.FetchFeed(ctx, feed.URL)
	if err != nil {
		logFeedFailure(ctx, feed, err)
		return feedOutcome{err: err}
	}

	articles, err := u.deps.Parser.Parse(fetched.Body, feed)
	if err != nil {
		logger.Logger.WarnContext(ctx, "feed parse failed", "feed", feed.ID, "error", err)
		return feedOutcome{err: fmt.Errorf("parse error: %w", err)}
	}
	return feedOutcome{articles: articles}
}

// logFeedFailure keeps expected upstream rejections out of the warn log.
func logFeedFailure(ctx context.Context, feed domain.FeedDescriptor, err error) {
	if f, ok := domain.AsFetchFailure(err); ok && f.IsPermanent() {
		logger.Logger.DebugContext(ctx, "feed unavailable", "feed", feed.ID, "failure", f.Label())
		return
	}
	logger.Logger.WarnContext(ctx, "feed fetch failed", "feed", feed.ID, "error", err)
}

func failureReason(err error) string {
	if f, ok := domain.AsFetchFailure(err); ok {
		return f.Label()
	}
	return err.Error()
}

// fallback tries the alternate sources in order; the first non-empty
// result wins.
func (u *AggregateFeedsUsecase) fallback(ctx context.Context, sources int, failures []string) (*domain.AggregateResult, error) {
	if u.opts.FallbackEnabled {
		for _, src := range u.deps.Fallbacks {
			articles, err := src.FetchArticles(ctx, u.opts.MaxArticles)
			if err != nil {
				logger.Logger.WarnContext(ctx, "fallback source failed", "strategy", src.Strategy(), "error", err)
				failures = append(failures, fmt.Sprintf("%s: %v", src.Strategy(), err))
				continue
			}
			articles = u.process(articles, false)
			if len(articles) == 0 {
				failures = append(failures, fmt.Sprintf("%s: no articles", src.Strategy()))
				continue
			}

			logger.Logger.InfoContext(ctx, "serving fallback articles", "strategy", src.Strategy(), "articles", len(articles))
			metrics.RecordAggregate(string(src.Strategy()), "fallback", len(articles), sources)
			return &domain.AggregateResult{
				Success:     true,
				Articles:    articles,
				Count:       len(articles),
				Sources:     sources,
				Errors:      failures,
				LastUpdated: u.opts.Now().UTC(),
				Strategy:    src.Strategy(),
			}, nil
		}
	}

	metrics.RecordAggregate(string(domain.StrategyRSS), "failure", 0, sources)
	return u.failureResult(sources, failures), errors.NewExternalAPIContextError(
		"all feed sources failed",
		"usecase", "AggregateFeedsUsecase", "Execute",
		errors.ErrAllSourcesFailed,
		map[string]any{"sources": sources, "errors": len(failures)},
	).WithStatus(http.StatusInternalServerError)
}

func (u *AggregateFeedsUsecase) failureResult(sources int, failures []string) *domain.AggregateResult {
	return &domain.AggregateResult{
		Success:     false,
		Articles:    []domain.Article{},
		Sources:     sources,
		Errors:      failures,
		LastUpdated: u.opts.Now().UTC(),
		Strategy:    domain.StrategyRSS,
	}
}

// process filters, categorizes, dedups, sorts newest first and truncates.
func (u *AggregateFeedsUsecase) process(articles []domain.Article, topicFilter bool) []domain.Article {
	if topicFilter {
		articles = u.deps.Filter.Filter(articles)
	}
	for i := range articles {
		if articles[i].Category == "" {
			articles[i].Category = u.deps.Filter.Categorize(articles[i], domain.CategoryTech)
		}
	}
	out := DedupeArticles(articles)
	SortByPublishedDesc(out)
	if len(out) > u.opts.MaxArticles {
		out = out[:u.opts.MaxArticles]
	}
	return out
}

// DedupeArticles drops an article when its normalized link or its folded
// title was already seen. The first occurrence wins. Either key alone is
// enough, so no folded title appears twice; the link key only decides for
// untitled items.
func DedupeArticles(articles []domain.Article) []domain.Article {
	seenLinks := make(map[string]struct{}, len(articles))
	seenTitles := make(map[string]struct{}, len(articles))
	out := make([]domain.Article, 0, len(articles))

	for _, a := range articles {
		link := linkKey(a.URL)
		title := titleKey(a.Title)

		if _, dup := seenLinks[link]; link != "" && dup {
			continue
		}
		if _, dup := seenTitles[title]; title != "" && dup {
			continue
		}

		if link != "" {
			seenLinks[link] = struct{}{}
		}
		if title != "" {
			seenTitles[title] = struct{}{}
		}
		out = append(out, a)
	}
	return out
}

// SortByPublishedDesc orders newest first; equal timestamps keep input order.
func SortByPublishedDesc(articles []domain.Article) {
	slices.SortStableFunc(articles, func(a, b domain.Article) int {
		return b.PublishedAt.Compare(a.PublishedAt)
	})
}

func linkKey(link string) string {
	link = strings.TrimSpace(link)
	if link == "" {
		return ""
	}
	normalized, err := utils.NormalizeURL(link)
	if err != nil {
		return strings.ToLower(link)
	}
	return normalized
}

func titleKey(title string) string {
	if title == "" || title == domain.UntitledArticle {
		return ""
	}
	// Casers carry state; one per call keeps this safe across goroutines.
	folded := cases.Fold().String(norm.NFKC.String(title))
	return strings.Join(strings.Fields(folded), " ")
}
