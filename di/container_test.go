package di

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kalefullycode/roots-tech-news-sub000/config"
	"github.com/Kalefullycode/roots-tech-news-sub000/domain"
)

func loadConfig(t *testing.T, env map[string]string) *config.Config {
	t.Helper()
	t.Setenv("REDIS_URL", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("RESEND_API_KEY", "")
	for k, v := range env {
		t.Setenv(k, v)
	}
	cfg, err := config.NewConfig()
	require.NoError(t, err)
	return cfg
}

func TestNewApplicationComponents_Defaults(t *testing.T) {
	cfg := loadConfig(t, nil)

	c, err := NewApplicationComponents(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, c.Close()) })

	assert.NotNil(t, c.AggregateFeedsUsecase)
	assert.NotNil(t, c.ProxyFeedUsecase)
	assert.NotNil(t, c.NewsletterUsecase)

	feeds, err := c.FeedRegistry.ListFeeds(context.Background())
	require.NoError(t, err)
	assert.Len(t, feeds, len(domain.DefaultFeedRegistry()))

	assert.True(t, c.Allowlist.IsAllowedHost("techcrunch.com"))
	for _, host := range domain.FeedHosts(feeds) {
		assert.True(t, c.Allowlist.IsAllowedHost(host), host)
	}
	assert.False(t, c.Allowlist.IsAllowedHost("evil.example.com"))
}

func TestNewApplicationComponents_ExtraAllowedDomains(t *testing.T) {
	cfg := loadConfig(t, nil)
	cfg.Feed.ExtraAllowedDomains = []string{"blog.example.org"}

	c, err := NewApplicationComponents(context.Background(), cfg)
	require.NoError(t, err)
	defer c.Close()

	assert.True(t, c.Allowlist.IsAllowedHost("blog.example.org"))
}

func TestNewApplicationComponents_RedisTier(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := loadConfig(t, map[string]string{"REDIS_URL": "redis://" + mr.Addr()})

	articles := []domain.Article{{
		ID:          "a1",
		Title:       "Cached from another instance",
		URL:         "https://techcrunch.com/a1",
		PublishedAt: time.Now().Add(-time.Hour).UTC(),
		Source:      domain.ArticleSource{ID: "techcrunch", Name: "TechCrunch"},
		Category:    domain.CategoryTech,
	}}
	payload, err := json.Marshal(domain.NewCacheEntry(articles, time.Now()))
	require.NoError(t, err)
	require.NoError(t, mr.Set(domain.AggregateCacheKey, string(payload)))

	c, err := NewApplicationComponents(context.Background(), cfg)
	require.NoError(t, err)

	res, err := c.AggregateFeedsUsecase.Execute(context.Background(), domain.AggregateOptions{})
	require.NoError(t, err)
	assert.True(t, res.Cached)
	require.Len(t, res.Articles, 1)
	assert.Equal(t, "Cached from another instance", res.Articles[0].Title)

	require.NoError(t, c.AggregateFeedsUsecase.PurgeCache(context.Background()))
	assert.False(t, mr.Exists(domain.AggregateCacheKey))

	assert.NoError(t, c.Close())
}

func TestNewApplicationComponents_UnreachableRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := loadConfig(t, map[string]string{
		"REDIS_URL":          "redis://" + addr,
		"REDIS_DIAL_TIMEOUT": "200ms",
	})

	c, err := NewApplicationComponents(context.Background(), cfg)
	require.NoError(t, err, "redis is optional")
	assert.NoError(t, c.Close())
}
