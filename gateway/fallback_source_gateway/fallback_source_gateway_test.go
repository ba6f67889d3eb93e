package fallback_source_gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kalefullycode/roots-tech-news-sub000/domain"
	"github.com/Kalefullycode/roots-tech-news-sub000/driver/fallback_api_driver"
	apperrors "github.com/Kalefullycode/roots-tech-news-sub000/utils/errors"
)

var fixedNow = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

func serve(t *testing.T, body string, status int) (*httptest.Server, *fallback_api_driver.Client) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, fallback_api_driver.NewClient(server.Client(), "test")
}

func opts(baseURL, query string) Options {
	return Options{
		BaseURL:           baseURL,
		Query:             query,
		Category:          domain.CategoryAI,
		Timeout:           time.Second,
		DescriptionMaxLen: 50,
		Now:               func() time.Time { return fixedNow },
	}
}

func TestDevToGateway_FetchArticles(t *testing.T) {
	server, client := serve(t, `[
		{"id":7,"title":"<b>Agents</b> in prod","description":"An <i>overview</i>","url":"https://dev.to/ann/agents","cover_image":"","social_image":"https://dev.to/social.png","published_at":"2026-01-02T03:04:05Z"},
		{"id":8,"title":"","description":"","url":"https://dev.to/x","published_at":"bogus"}
	]`, http.StatusOK)

	gw := NewDevToGateway(client, opts(server.URL, "ai"))
	assert.Equal(t, domain.StrategyDevTo, gw.Strategy())

	articles, err := gw.FetchArticles(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, articles, 2)

	a := articles[0]
	assert.Equal(t, "Agents in prod", a.Title)
	assert.Equal(t, "An overview", a.Description)
	assert.Equal(t, "https://dev.to/social.png", a.ImageURL)
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), a.PublishedAt)
	assert.Equal(t, "devto", a.Source.ID)
	assert.Equal(t, domain.CategoryAI, a.Category)
	assert.Len(t, a.ID, 16)

	assert.Equal(t, domain.UntitledArticle, articles[1].Title)
	assert.Equal(t, fixedNow, articles[1].PublishedAt)
}

func TestHackerNewsGateway_FetchArticles(t *testing.T) {
	server, client := serve(t, `{"hits":[
		{"objectID":"1","title":"Launch HN: thing","url":"https://thing.dev","created_at_i":1767225600},
		{"objectID":"2","title":"Ask HN: how?","url":"","story_text":"<p>question</p>","created_at":"2026-01-01T00:00:00Z"},
		{"objectID":"3","title":"   "}
	]}`, http.StatusOK)

	articles, err := NewHackerNewsGateway(client, opts(server.URL, "AI")).FetchArticles(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, articles, 2)

	assert.Equal(t, "https://thing.dev", articles[0].URL)
	assert.Equal(t, time.Unix(1767225600, 0).UTC(), articles[0].PublishedAt)
	assert.Equal(t, "https://news.ycombinator.com/item?id=2", articles[1].URL)
	assert.Equal(t, "question", articles[1].Description)
}

func TestRedditGateway_FetchArticles(t *testing.T) {
	server, client := serve(t, `{"data":{"children":[
		{"kind":"t3","data":{"id":"s","title":"Rules","stickied":true}},
		{"kind":"t3","data":{"id":"n","title":"nsfw","over_18":true}},
		{"kind":"t3","data":{"id":"a","title":"Self post","url":"/r/artificial/comments/a/","permalink":"/r/artificial/comments/a/self_post/","selftext":"body","thumbnail":"self","created_utc":1767225600}},
		{"kind":"t3","data":{"id":"b","title":"Link post","url":"https://example.com/b","thumbnail":"https://thumbs/b.jpg","preview":{"images":[{"source":{"url":"https://preview.redd.it/b.jpg?a=1&amp;b=2"}}]}}}
	]}}`, http.StatusOK)

	articles, err := NewRedditGateway(client, opts(server.URL, "artificial")).FetchArticles(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, articles, 2)

	assert.True(t, strings.HasSuffix(articles[0].URL, "/r/artificial/comments/a/self_post/"))
	assert.Empty(t, articles[0].ImageURL)
	assert.Equal(t, "r/artificial", articles[0].Source.Name)
	assert.Equal(t, "https://preview.redd.it/b.jpg?a=1&b=2", articles[1].ImageURL)
	assert.Equal(t, fixedNow, articles[1].PublishedAt)
}

func TestFallbackGateways_UpstreamError(t *testing.T) {
	server, client := serve(t, `nope`, http.StatusServiceUnavailable)

	_, err := NewRedditGateway(client, opts(server.URL, "artificial")).FetchArticles(context.Background(), 5)
	require.Error(t, err)

	var appErr *apperrors.AppContextError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeExternalAPI, appErr.Code)
	assert.Equal(t, "reddit-api", appErr.Context["strategy"])
}
