package aggregate_feeds_usecase

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Kalefullycode/roots-tech-news-sub000/domain"
	"github.com/Kalefullycode/roots-tech-news-sub000/gateway/article_cache_gateway"
	"github.com/Kalefullycode/roots-tech-news-sub000/mocks"
	"github.com/Kalefullycode/roots-tech-news-sub000/port/fallback_source_port"
	apperrors "github.com/Kalefullycode/roots-tech-news-sub000/utils/errors"
)

var fixedNow = time.Date(2026, 4, 10, 8, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func feed(id string, category domain.Category) domain.FeedDescriptor {
	return domain.FeedDescriptor{
		ID:       id,
		Name:     "Feed " + id,
		URL:      "https://" + id + ".example.com/rss",
		Category: category,
		Active:   true,
	}
}

func article(feedID string, n int, title string, age time.Duration, category domain.Category) domain.Article {
	link := fmt.Sprintf("https://%s.example.com/%d", feedID, n)
	return domain.Article{
		ID:          domain.DeriveArticleID(link, "", feedID, n, title),
		Title:       title,
		URL:         link,
		PublishedAt: fixedNow.Add(-age),
		Source:      domain.ArticleSource{ID: feedID, Name: "Feed " + feedID},
		Category:    category,
	}
}

type harness struct {
	ctrl      *gomock.Controller
	registry  *mocks.MockFeedRegistryPort
	fetcher   *mocks.MockFeedFetchPort
	parser    *mocks.MockFeedParsePort
	memory    *article_cache_gateway.MemoryCacheGateway
	kv        *mocks.MockArticleCachePort
	fallbacks []fallback_source_port.FallbackSourcePort
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)
	memory, err := article_cache_gateway.NewMemoryCacheGateway(16, 10*time.Minute)
	require.NoError(t, err)
	memory.WithClock(clock)
	return &harness{
		ctrl:     ctrl,
		registry: mocks.NewMockFeedRegistryPort(ctrl),
		fetcher:  mocks.NewMockFeedFetchPort(ctrl),
		parser:   mocks.NewMockFeedParsePort(ctrl),
		memory:   memory,
	}
}

func (h *harness) usecase(opts Options, withKV bool) *AggregateFeedsUsecase {
	deps := Dependencies{
		Registry:    h.registry,
		Fetcher:     h.fetcher,
		Parser:      h.parser,
		MemoryCache: h.memory,
		Fallbacks:   h.fallbacks,
	}
	if withKV {
		h.kv = mocks.NewMockArticleCachePort(h.ctrl)
		deps.KVCache = h.kv
	}
	if opts.Now == nil {
		opts.Now = clock
	}
	return NewAggregateFeedsUsecase(deps, opts)
}

// serve wires fetch and parse expectations for feeds that succeed.
func (h *harness) serve(f domain.FeedDescriptor, articles []domain.Article) {
	h.fetcher.EXPECT().FetchFeed(gomock.Any(), f.URL).
		Return(&domain.FetchedFeed{URL: f.URL, Body: []byte(f.ID), StatusCode: 200}, nil)
	h.parser.EXPECT().Parse([]byte(f.ID), f).Return(articles, nil)
}

func (h *harness) fail(f domain.FeedDescriptor, kind domain.FetchFailureKind, status int) {
	h.fetcher.EXPECT().FetchFeed(gomock.Any(), f.URL).
		Return(nil, &domain.FetchFailure{Kind: kind, URL: f.URL, StatusCode: status})
}

func TestExecute_OneFeedTimesOut(t *testing.T) {
	h := newHarness(t)
	ok, slow := feed("ok", domain.CategoryAI), feed("slow", domain.CategoryAI)
	h.registry.EXPECT().ListFeeds(gomock.Any()).Return([]domain.FeedDescriptor{ok, slow}, nil)
	h.serve(ok, []domain.Article{article("ok", 1, "OpenAI releases new model", time.Hour, domain.CategoryAI)})
	h.fail(slow, domain.FailureTimeout, 0)

	res, err := h.usecase(Options{}, false).Execute(context.Background(), domain.AggregateOptions{})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Len(t, res.Articles, 1)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, 2, res.Sources)
	assert.Equal(t, 1, res.SuccessfulSources)
	assert.Equal(t, []string{"Feed slow: timeout"}, res.Errors)
	assert.Equal(t, domain.StrategyRSS, res.Strategy)
	assert.False(t, res.Cached)
}

func TestExecute_PartialFailureReportsEveryFailedFeed(t *testing.T) {
	h := newHarness(t)
	var feeds []domain.FeedDescriptor
	for i := 0; i < 5; i++ {
		feeds = append(feeds, feed(fmt.Sprintf("f%d", i), domain.CategoryTech))
	}
	h.registry.EXPECT().ListFeeds(gomock.Any()).Return(feeds, nil)

	h.serve(feeds[0], []domain.Article{article("f0", 1, "Alpha", time.Hour, ""), article("f0", 2, "Beta", 2*time.Hour, "")})
	h.serve(feeds[1], []domain.Article{article("f1", 1, "Gamma", 3*time.Hour, "")})
	h.fail(feeds[2], domain.FailureHTTPError, 404)
	h.fail(feeds[3], domain.FailureNetwork, 0)
	h.fetcher.EXPECT().FetchFeed(gomock.Any(), feeds[4].URL).
		Return(&domain.FetchedFeed{Body: []byte("junk")}, nil)
	h.parser.EXPECT().Parse([]byte("junk"), feeds[4]).Return(nil, fmt.Errorf("no items"))

	res, err := h.usecase(Options{}, false).Execute(context.Background(), domain.AggregateOptions{})
	require.NoError(t, err)

	assert.Len(t, res.Articles, 3)
	assert.Len(t, res.Errors, 3)
	assert.Contains(t, res.Errors, "Feed f2: http-error:404")
	assert.Contains(t, res.Errors, "Feed f3: network-error")
	assert.Contains(t, res.Errors, "Feed f4: parse error: no items")
	assert.Equal(t, 2, res.SuccessfulSources)
}

func TestExecute_CachesInMemory(t *testing.T) {
	h := newHarness(t)
	f := feed("a", domain.CategoryAI)
	h.registry.EXPECT().ListFeeds(gomock.Any()).Return([]domain.FeedDescriptor{f}, nil).Times(1)
	h.serve(f, []domain.Article{article("a", 1, "One", time.Hour, domain.CategoryAI), article("a", 2, "Two", 2*time.Hour, domain.CategoryAI)})

	uc := h.usecase(Options{}, false)

	_, err := uc.Execute(context.Background(), domain.AggregateOptions{})
	require.NoError(t, err)

	res, err := uc.Execute(context.Background(), domain.AggregateOptions{Limit: 1})
	require.NoError(t, err)
	assert.True(t, res.Cached)
	assert.Len(t, res.Articles, 1)
	assert.Equal(t, "One", res.Articles[0].Title)
	assert.Equal(t, fixedNow, res.LastUpdated)
}

func TestExecute_KVHitWarmsMemory(t *testing.T) {
	h := newHarness(t)
	uc := h.usecase(Options{}, true)

	entry := domain.NewCacheEntry([]domain.Article{article("kv", 1, "From KV", time.Minute, domain.CategoryAI)}, fixedNow)
	h.kv.EXPECT().Get(gomock.Any(), domain.AggregateCacheKey).Return(&entry, true).Times(1)

	res, err := uc.Execute(context.Background(), domain.AggregateOptions{})
	require.NoError(t, err)
	assert.True(t, res.Cached)
	assert.Equal(t, "From KV", res.Articles[0].Title)

	res, err = uc.Execute(context.Background(), domain.AggregateOptions{})
	require.NoError(t, err)
	assert.Equal(t, "From KV", res.Articles[0].Title)
}

func TestExecute_WritesKVInBackground(t *testing.T) {
	h := newHarness(t)
	uc := h.usecase(Options{}, true)
	f := feed("a", domain.CategoryAI)

	h.kv.EXPECT().Get(gomock.Any(), domain.AggregateCacheKey).Return(nil, false)
	h.registry.EXPECT().ListFeeds(gomock.Any()).Return([]domain.FeedDescriptor{f}, nil)
	h.serve(f, []domain.Article{article("a", 1, "Stored", time.Hour, domain.CategoryAI)})

	written := make(chan domain.CacheEntry, 1)
	h.kv.EXPECT().Set(gomock.Any(), domain.AggregateCacheKey, gomock.Any()).
		DoAndReturn(func(ctx context.Context, key string, entry domain.CacheEntry) error {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			written <- entry
			return fmt.Errorf("kv unavailable")
		})

	res, err := uc.Execute(context.Background(), domain.AggregateOptions{})
	require.NoError(t, err, "kv write failures are dropped")
	assert.Len(t, res.Articles, 1)

	uc.WaitForBackgroundWrites()
	entry := <-written
	assert.Equal(t, fixedNow.UnixMilli(), entry.Timestamp)
	assert.Equal(t, "Stored", entry.Data[0].Title)
}

func TestExecute_FallbackChain(t *testing.T) {
	h := newHarness(t)
	f := feed("down", domain.CategoryAI)
	h.registry.EXPECT().ListFeeds(gomock.Any()).Return([]domain.FeedDescriptor{f}, nil)
	h.fail(f, domain.FailureTimeout, 0)

	devto := mocks.NewMockFallbackSourcePort(h.ctrl)
	hn := mocks.NewMockFallbackSourcePort(h.ctrl)
	reddit := mocks.NewMockFallbackSourcePort(h.ctrl)
	devto.EXPECT().Strategy().Return(domain.StrategyDevTo).AnyTimes()
	hn.EXPECT().Strategy().Return(domain.StrategyHackerNews).AnyTimes()
	reddit.EXPECT().Strategy().Return(domain.StrategyReddit).AnyTimes()

	devto.EXPECT().FetchArticles(gomock.Any(), 50).Return(nil, fmt.Errorf("503"))
	hn.EXPECT().FetchArticles(gomock.Any(), 50).Return([]domain.Article{
		article("hn", 1, "Older story", 2*time.Hour, domain.CategoryAI),
		article("hn", 2, "Newer story", time.Hour, domain.CategoryAI),
	}, nil)
	h.fallbacks = []fallback_source_port.FallbackSourcePort{devto, hn, reddit}

	res, err := h.usecase(Options{FallbackEnabled: true, TopicFilter: true}, false).
		Execute(context.Background(), domain.AggregateOptions{})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, domain.StrategyHackerNews, res.Strategy)
	require.Len(t, res.Articles, 2)
	assert.Equal(t, "Newer story", res.Articles[0].Title)
	assert.Equal(t, []string{"Feed down: timeout", "devto-api: 503"}, res.Errors)
}

func TestExecute_TotalFailure(t *testing.T) {
	h := newHarness(t)
	f := feed("down", domain.CategoryAI)
	h.registry.EXPECT().ListFeeds(gomock.Any()).Return([]domain.FeedDescriptor{f}, nil).Times(2)
	h.fail(f, domain.FailureNetwork, 0)
	h.fail(f, domain.FailureNetwork, 0)

	uc := h.usecase(Options{FallbackEnabled: false}, false)

	res, err := uc.Execute(context.Background(), domain.AggregateOptions{})
	require.Error(t, err)
	assert.True(t, apperrors.IsAllSourcesFailed(err))
	require.NotNil(t, res)
	assert.False(t, res.Success)
	assert.NotNil(t, res.Articles)
	assert.Empty(t, res.Articles)
	assert.Equal(t, []string{"Feed down: network-error"}, res.Errors)

	// failures are not cached
	_, err = uc.Execute(context.Background(), domain.AggregateOptions{})
	assert.Error(t, err)
}

func TestExecute_NoActiveFeeds(t *testing.T) {
	h := newHarness(t)
	inactive := feed("off", domain.CategoryAI)
	inactive.Active = false
	h.registry.EXPECT().ListFeeds(gomock.Any()).Return([]domain.FeedDescriptor{inactive}, nil)

	res, err := h.usecase(Options{}, false).Execute(context.Background(), domain.AggregateOptions{})
	require.Error(t, err)
	assert.Equal(t, 0, res.Sources)
	assert.Equal(t, []string{"no active feeds configured"}, res.Errors)
}

func TestExecute_TopicFilterAndCategoryView(t *testing.T) {
	h := newHarness(t)
	f := feed("mixed", domain.CategoryTech)
	h.registry.EXPECT().ListFeeds(gomock.Any()).Return([]domain.FeedDescriptor{f}, nil).Times(1)
	h.serve(f, []domain.Article{
		article("mixed", 1, "Funny Cat Video Compilation", time.Hour, ""),
		article("mixed", 2, "OpenAI releases new model", 2*time.Hour, ""),
		article("mixed", 3, "New cloud computing chips for data centers", 3*time.Hour, ""),
	})

	uc := h.usecase(Options{TopicFilter: true}, false)

	ai, err := uc.Execute(context.Background(), domain.AggregateOptions{Category: domain.CategoryAI})
	require.NoError(t, err)
	require.Len(t, ai.Articles, 1)
	assert.Equal(t, "OpenAI releases new model", ai.Articles[0].Title)

	all, err := uc.Execute(context.Background(), domain.AggregateOptions{})
	require.NoError(t, err)
	assert.True(t, all.Cached)
	for _, a := range all.Articles {
		assert.NotEqual(t, "Funny Cat Video Compilation", a.Title)
	}
}

func TestExecute_ConcurrentMissesShareOneBuild(t *testing.T) {
	h := newHarness(t)
	f := feed("a", domain.CategoryAI)
	h.registry.EXPECT().ListFeeds(gomock.Any()).Return([]domain.FeedDescriptor{f}, nil).Times(1)

	release := make(chan struct{})
	h.fetcher.EXPECT().FetchFeed(gomock.Any(), f.URL).
		DoAndReturn(func(ctx context.Context, url string) (*domain.FetchedFeed, error) {
			<-release
			return &domain.FetchedFeed{Body: []byte("a")}, nil
		}).Times(1)
	h.parser.EXPECT().Parse(gomock.Any(), f).Return([]domain.Article{article("a", 1, "Shared", time.Hour, domain.CategoryAI)}, nil).Times(1)

	uc := h.usecase(Options{}, false)

	var wg sync.WaitGroup
	results := make([]*domain.AggregateResult, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := uc.Execute(context.Background(), domain.AggregateOptions{})
			assert.NoError(t, err)
			results[i] = res
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, res := range results {
		require.NotNil(t, res)
		assert.Equal(t, "Shared", res.Articles[0].Title)
	}
}

func TestRefreshAndPurge(t *testing.T) {
	h := newHarness(t)
	f := feed("a", domain.CategoryAI)
	h.registry.EXPECT().ListFeeds(gomock.Any()).Return([]domain.FeedDescriptor{f}, nil).Times(2)
	h.serve(f, []domain.Article{article("a", 1, "First", time.Hour, domain.CategoryAI)})
	h.serve(f, []domain.Article{article("a", 2, "Second", time.Hour, domain.CategoryAI)})

	uc := h.usecase(Options{}, true)
	h.kv.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	h.kv.EXPECT().Purge(gomock.Any()).Return(nil)

	_, err := uc.Refresh(context.Background())
	require.NoError(t, err)
	res, err := uc.Execute(context.Background(), domain.AggregateOptions{})
	require.NoError(t, err)
	assert.Equal(t, "First", res.Articles[0].Title)

	require.NoError(t, uc.PurgeCache(context.Background()))
	assert.Zero(t, h.memory.Len())

	res, err = uc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Second", res.Articles[0].Title)
	uc.WaitForBackgroundWrites()
}

func TestExecute_ByRelevance(t *testing.T) {
	h := newHarness(t)
	f := feed("a", domain.CategoryTech)
	h.registry.EXPECT().ListFeeds(gomock.Any()).Return([]domain.FeedDescriptor{f}, nil)
	h.serve(f, []domain.Article{
		article("a", 1, "Quarterly software update", time.Minute, domain.CategoryTech),
		article("a", 2, "Breaking: new LLM from OpenAI", time.Hour, domain.CategoryAI),
	})

	res, err := h.usecase(Options{}, false).Execute(context.Background(), domain.AggregateOptions{ByRelevance: true})
	require.NoError(t, err)
	require.Len(t, res.Articles, 2)
	assert.Equal(t, "Breaking: new LLM from OpenAI", res.Articles[0].Title)
}

func TestDedupeArticles(t *testing.T) {
	input := []domain.Article{
		{Title: "OpenAI Releases GPT", URL: "https://a.example.com/1?utm_source=rss"},
		{Title: "openai releases   gpt", URL: "https://b.example.com/other"},
		{Title: "Different title", URL: "https://A.example.com/1/"},
		{Title: "ＯｐｅｎＡＩ ｎｅｗｓ", URL: ""},
		{Title: "OpenAI news", URL: ""},
		{Title: domain.UntitledArticle, URL: "https://c.example.com/x"},
		{Title: domain.UntitledArticle, URL: "https://c.example.com/y"},
	}

	once := DedupeArticles(input)
	require.Len(t, once, 4)
	assert.Equal(t, "OpenAI Releases GPT", once[0].Title)
	assert.Equal(t, "ＯｐｅｎＡＩ ｎｅｗｓ", once[1].Title)

	twice := DedupeArticles(once)
	assert.Equal(t, once, twice)

	seen := map[string]bool{}
	for _, a := range twice {
		key := titleKey(a.Title)
		if key == "" {
			continue
		}
		assert.False(t, seen[key], "duplicate title %q", a.Title)
		seen[key] = true
	}
}

func TestSortByPublishedDesc_AnyPermutation(t *testing.T) {
	base := make([]domain.Article, 20)
	for i := range base {
		base[i] = domain.Article{Title: fmt.Sprintf("t%d", i), PublishedAt: fixedNow.Add(-time.Duration(i%7) * time.Hour)}
	}

	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 25; round++ {
		perm := make([]domain.Article, len(base))
		copy(perm, base)
		rng.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })

		SortByPublishedDesc(perm)
		for i := 1; i < len(perm); i++ {
			assert.False(t, perm[i].PublishedAt.After(perm[i-1].PublishedAt))
		}
	}
}

func TestProcess_TruncatesAfterSort(t *testing.T) {
	h := newHarness(t)
	uc := h.usecase(Options{MaxArticles: 3}, false)

	var in []domain.Article
	for i := 0; i < 10; i++ {
		in = append(in, article("x", i, fmt.Sprintf("Story %d", i), time.Duration(10-i)*time.Hour, domain.CategoryTech))
	}

	out := uc.process(in, false)
	require.Len(t, out, 3)
	assert.Equal(t, "Story 9", out[0].Title)
	assert.Equal(t, "Story 7", out[2].Title)
}
