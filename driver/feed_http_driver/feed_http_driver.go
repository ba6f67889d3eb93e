package feed_http_driver

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/Kalefullycode/roots-tech-news-sub000/domain"
	"github.com/Kalefullycode/roots-tech-news-sub000/utils/security"
)

const (
	maxRedirects   = 5
	acceptFeeds    = "application/rss+xml, application/atom+xml, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.5"
	acceptLanguage = "en-US,en;q=0.9"
)

var ErrBodyTooLarge = errors.New("response body exceeds limit")

// FeedHTTPDriver performs the raw GET for a feed document and classifies
// every failure as a *domain.FetchFailure.
type FeedHTTPDriver struct {
	client       *http.Client
	userAgent    string
	maxBodyBytes int64
}

// NewFeedHTTPDriver copies client and, when allowlist is non-nil, makes every
// redirect hop pass the allowlist too. The shared client is left untouched
// because the fallback and newsletter APIs live outside the allowlist.
func NewFeedHTTPDriver(client *http.Client, allowlist *security.DomainAllowlist, userAgent string, maxBodyBytes int64) *FeedHTTPDriver {
	if client == nil {
		client = NewHTTPClient()
	}
	feedClient := *client
	if allowlist != nil {
		feedClient.CheckRedirect = allowlistRedirectPolicy(allowlist)
	}
	return &FeedHTTPDriver{
		client:       &feedClient,
		userAgent:    userAgent,
		maxBodyBytes: maxBodyBytes,
	}
}

func allowlistRedirectPolicy(allowlist *security.DomainAllowlist) func(*http.Request, []*http.Request) error {
	return func(req *http.Request, via []*http.Request) error {
		if err := limitRedirects(req, via); err != nil {
			return err
		}
		if !allowlist.IsAllowedURL(req.URL) {
			return fmt.Errorf("redirect blocked: %w: %s", security.ErrDomainNotAllowed, req.URL.Hostname())
		}
		return nil
	}
}

func limitRedirects(_ *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("stopped after %d redirects", len(via))
	}
	return nil
}

// NewHTTPClient builds the shared transport. Per-call deadlines come from
// the request context, so the client itself has no Timeout.
func NewHTTPClient() *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 15 * time.Second,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       90 * time.Second,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{
		Transport:     transport,
		CheckRedirect: limitRedirects,
	}
}

func (d *FeedHTTPDriver) Get(ctx context.Context, feedURL string) (*domain.FetchedFeed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, &domain.FetchFailure{Kind: domain.FailureInvalidURL, URL: feedURL, Cause: err}
	}
	req.Header.Set("User-Agent", d.userAgent)
	req.Header.Set("Accept", acceptFeeds)
	req.Header.Set("Accept-Language", acceptLanguage)
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, classifyTransportError(ctx, feedURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &domain.FetchFailure{
			Kind:       domain.FailureHTTPError,
			URL:        feedURL,
			StatusCode: resp.StatusCode,
			Cause:      errors.New(resp.Status),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, d.maxBodyBytes+1))
	if err != nil {
		return nil, classifyTransportError(ctx, feedURL, err)
	}
	if int64(len(body)) > d.maxBodyBytes {
		return nil, &domain.FetchFailure{Kind: domain.FailureNetwork, URL: feedURL, Cause: ErrBodyTooLarge}
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, &domain.FetchFailure{Kind: domain.FailureEmptyBody, URL: feedURL, StatusCode: resp.StatusCode}
	}

	return &domain.FetchedFeed{
		URL:         feedURL,
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}, nil
}

func classifyTransportError(ctx context.Context, feedURL string, err error) *domain.FetchFailure {
	if errors.Is(err, security.ErrDomainNotAllowed) {
		return &domain.FetchFailure{Kind: domain.FailureDomainNotAllowed, URL: feedURL, Cause: err}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &domain.FetchFailure{Kind: domain.FailureTimeout, URL: feedURL, Cause: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &domain.FetchFailure{Kind: domain.FailureTimeout, URL: feedURL, Cause: err}
	}
	return &domain.FetchFailure{Kind: domain.FailureNetwork, URL: feedURL, Cause: err}
}
