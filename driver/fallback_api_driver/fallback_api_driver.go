// Package fallback_api_driver calls the keyless JSON APIs used as alternate
// article sources.
package fallback_api_driver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const maxResponseBytes = 2 << 20

type Client struct {
	httpClient *http.Client
	userAgent  string
}

func NewClient(httpClient *http.Client, userAgent string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient, userAgent: userAgent}
}

// FetchDevToArticles lists the top articles of the last week for tag.
func (c *Client) FetchDevToArticles(ctx context.Context, baseURL, tag string, perPage int) ([]DevToArticle, error) {
	q := url.Values{}
	q.Set("tag", tag)
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("top", "7")

	var out []DevToArticle
	if err := c.getJSON(ctx, joinURL(baseURL, "/articles")+"?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchHackerNewsStories searches stories by date through the Algolia API.
func (c *Client) FetchHackerNewsStories(ctx context.Context, baseURL, query string, hits int) ([]AlgoliaHit, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("tags", "story")
	q.Set("hitsPerPage", strconv.Itoa(hits))

	var out AlgoliaResponse
	if err := c.getJSON(ctx, joinURL(baseURL, "/search_by_date")+"?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return out.Hits, nil
}

func (c *Client) FetchRedditHot(ctx context.Context, baseURL, subreddit string, limit int) ([]RedditPost, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	endpoint := joinURL(baseURL, "/r/"+url.PathEscape(subreddit)+"/hot.json") + "?" + q.Encode()

	var listing RedditListing
	if err := c.getJSON(ctx, endpoint, &listing); err != nil {
		return nil, err
	}
	posts := make([]RedditPost, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		posts = append(posts, child.Data)
	}
	return posts, nil
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &StatusError{URL: endpoint, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", endpoint, err)
	}
	return nil
}

func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + path
}
