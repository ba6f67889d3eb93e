package feed_fetch_gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Kalefullycode/roots-tech-news-sub000/domain"
	"github.com/Kalefullycode/roots-tech-news-sub000/driver/feed_http_driver"
	"github.com/Kalefullycode/roots-tech-news-sub000/utils/rate_limiter"
	"github.com/Kalefullycode/roots-tech-news-sub000/utils/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingGetter struct {
	calls atomic.Int32
	feed  *domain.FetchedFeed
	err   error
}

func (c *countingGetter) Get(ctx context.Context, feedURL string) (*domain.FetchedFeed, error) {
	c.calls.Add(1)
	return c.feed, c.err
}

func TestFeedFetchGateway_RejectsBeforeNetwork(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantKind domain.FetchFailureKind
	}{
		{name: "domain not on allowlist", url: "https://evil.example.com/rss", wantKind: domain.FailureDomainNotAllowed},
		{name: "lookalike suffix", url: "https://notopenai.com/feed", wantKind: domain.FailureDomainNotAllowed},
		{name: "unsupported scheme", url: "ftp://openai.com/feed", wantKind: domain.FailureInvalidURL},
		{name: "not a url", url: "::::", wantKind: domain.FailureInvalidURL},
		{name: "empty", url: "", wantKind: domain.FailureInvalidURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getter := &countingGetter{}
			gw := NewFeedFetchGateway(getter, security.NewDomainAllowlist("openai.com"), nil, time.Second)

			feed, err := gw.FetchFeed(context.Background(), tt.url)
			assert.Nil(t, feed)

			failure, ok := domain.AsFetchFailure(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, failure.Kind)
			assert.True(t, failure.IsPermanent())
			assert.Zero(t, getter.calls.Load(), "driver must not be called")
		})
	}
}

func TestFeedFetchGateway_AllowedSubdomain(t *testing.T) {
	getter := &countingGetter{feed: &domain.FetchedFeed{Body: []byte("<rss/>"), StatusCode: 200}}
	gw := NewFeedFetchGateway(getter, security.NewDomainAllowlist("openai.com"), rate_limiter.NewHostRateLimiter(0, 1), time.Second)

	feed, err := gw.FetchFeed(context.Background(), "https://blog.openai.com/rss.xml")
	require.NoError(t, err)
	assert.Equal(t, "<rss/>", string(feed.Body))
	assert.Equal(t, int32(1), getter.calls.Load())
}

func TestFeedFetchGateway_WithHTTPDriver(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte(`<rss version="2.0"><channel><title>t</title></channel></rss>`))
		case "/slow":
			select {
			case <-time.After(2 * time.Second):
			case <-r.Context().Done():
			}
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	u, err := url.Parse(server.URL)
	require.NoError(t, err)

	allowlist := security.NewDomainAllowlist(u.Hostname())
	driver := feed_http_driver.NewFeedHTTPDriver(server.Client(), allowlist, "test-agent", 1<<20)
	gw := NewFeedFetchGateway(driver, allowlist, rate_limiter.NewHostRateLimiter(0, 1), 100*time.Millisecond)

	feed, err := gw.FetchFeed(context.Background(), server.URL+"/ok")
	require.NoError(t, err)
	assert.Contains(t, string(feed.Body), "<rss")

	_, err = gw.FetchFeed(context.Background(), server.URL+"/missing")
	failure, ok := domain.AsFetchFailure(err)
	require.True(t, ok)
	assert.Equal(t, "http-error:404", failure.Label())

	_, err = gw.FetchFeed(context.Background(), server.URL+"/slow")
	failure, ok = domain.AsFetchFailure(err)
	require.True(t, ok)
	assert.Equal(t, domain.FailureTimeout, failure.Kind)
}

func TestFeedFetchGateway_WrapsUntypedErrors(t *testing.T) {
	getter := &countingGetter{err: assert.AnError}
	gw := NewFeedFetchGateway(getter, security.NewDomainAllowlist("openai.com"), nil, 0)

	_, err := gw.FetchFeed(context.Background(), "https://openai.com/news/rss.xml")

	failure, ok := domain.AsFetchFailure(err)
	require.True(t, ok)
	assert.Equal(t, domain.FailureNetwork, failure.Kind)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestFeedFetchGateway_RedirectOutsideAllowlist(t *testing.T) {
	var internalHits atomic.Int32
	internal := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		internalHits.Add(1)
		_, _ = w.Write([]byte(`<rss><channel><title>internal</title></channel></rss>`))
	}))
	defer internal.Close()

	internalURL, err := url.Parse(internal.URL)
	require.NoError(t, err)
	// Same listener, reached through a hostname the allowlist does not hold.
	hiddenTarget := "http://localhost:" + internalURL.Port() + "/meta-data"

	public := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/moved":
			http.Redirect(w, r, "/feed.xml", http.StatusFound)
		case "/feed.xml":
			_, _ = w.Write([]byte(`<rss><channel><title>public</title></channel></rss>`))
		default:
			http.Redirect(w, r, hiddenTarget, http.StatusFound)
		}
	}))
	defer public.Close()

	publicURL, err := url.Parse(public.URL)
	require.NoError(t, err)

	allowlist := security.NewDomainAllowlist(publicURL.Hostname())
	driver := feed_http_driver.NewFeedHTTPDriver(feed_http_driver.NewHTTPClient(), allowlist, "test-agent", 1<<20)
	gw := NewFeedFetchGateway(driver, allowlist, nil, time.Second)

	tests := []struct {
		name     string
		path     string
		wantBody string
		wantKind domain.FetchFailureKind
	}{
		{name: "redirect within allowlist is followed", path: "/moved", wantBody: "public"},
		{name: "redirect to other host is blocked", path: "/open-redirect", wantKind: domain.FailureDomainNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feed, err := gw.FetchFeed(context.Background(), public.URL+tt.path)
			if tt.wantKind == "" {
				require.NoError(t, err)
				assert.Contains(t, string(feed.Body), tt.wantBody)
				return
			}
			assert.Nil(t, feed)
			failure, ok := domain.AsFetchFailure(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, failure.Kind)
			assert.ErrorIs(t, err, security.ErrDomainNotAllowed)
		})
	}

	assert.Zero(t, internalHits.Load(), "redirect target must not be contacted")
}
