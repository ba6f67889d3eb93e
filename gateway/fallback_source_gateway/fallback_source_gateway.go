package fallback_source_gateway

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/Kalefullycode/roots-tech-news-sub000/domain"
	"github.com/Kalefullycode/roots-tech-news-sub000/driver/fallback_api_driver"
	"github.com/Kalefullycode/roots-tech-news-sub000/port/fallback_source_port"
	"github.com/Kalefullycode/roots-tech-news-sub000/utils/errors"
	"github.com/Kalefullycode/roots-tech-news-sub000/utils/html_parser"
)

// Options is shared by every alternate source.
type Options struct {
	BaseURL           string
	Query             string // dev.to tag, HN search query or subreddit
	Category          domain.Category
	Timeout           time.Duration
	DescriptionMaxLen int
	Now               func() time.Time
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now().UTC()
	}
	return time.Now().UTC()
}

func (o Options) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, o.Timeout)
}

func (o Options) article(src domain.ArticleSource, index int, guid, title, description, link, image string, published time.Time) domain.Article {
	title = html_parser.SanitizeTitle(title)
	if title == "" {
		title = domain.UntitledArticle
	}
	if !html_parser.IsHTTPURL(image) {
		image = ""
	}
	if published.IsZero() {
		published = o.now()
	}
	return domain.Article{
		ID:          domain.DeriveArticleID(link, guid, src.ID, index, title),
		Title:       title,
		Description: html_parser.SanitizeDescription(description, o.DescriptionMaxLen),
		URL:         link,
		ImageURL:    image,
		PublishedAt: published.UTC(),
		Source:      src,
		Category:    o.Category,
	}
}

func wrapErr(component string, strategy domain.FetchStrategy, err error) error {
	return errors.NewExternalAPIContextError(
		"alternate source request failed",
		"gateway", component, "FetchArticles",
		err, map[string]any{"strategy": string(strategy)},
	)
}

// DevToGateway reads top dev.to articles for a tag.
type DevToGateway struct {
	client *fallback_api_driver.Client
	opts   Options
}

var _ fallback_source_port.FallbackSourcePort = (*DevToGateway)(nil)

func NewDevToGateway(client *fallback_api_driver.Client, opts Options) *DevToGateway {
	return &DevToGateway{client: client, opts: opts}
}

func (g *DevToGateway) Strategy() domain.FetchStrategy { return domain.StrategyDevTo }

func (g *DevToGateway) FetchArticles(ctx context.Context, limit int) ([]domain.Article, error) {
	ctx, cancel := g.opts.withTimeout(ctx)
	defer cancel()

	items, err := g.client.FetchDevToArticles(ctx, g.opts.BaseURL, g.opts.Query, limit)
	if err != nil {
		return nil, wrapErr("DevToGateway", g.Strategy(), err)
	}

	src := domain.ArticleSource{ID: "devto", Name: "DEV Community"}
	articles := make([]domain.Article, 0, len(items))
	for i, it := range items {
		published, _ := time.Parse(time.RFC3339, it.PublishedAt)
		image := lo.Ternary(it.CoverImage != "", it.CoverImage, it.SocialImage)
		articles = append(articles, g.opts.article(src, i, fmt.Sprintf("devto-%d", it.ID), it.Title, it.Description, it.URL, image, published))
	}
	return articles, nil
}

// HackerNewsGateway searches recent HN stories via Algolia.
type HackerNewsGateway struct {
	client *fallback_api_driver.Client
	opts   Options
}

var _ fallback_source_port.FallbackSourcePort = (*HackerNewsGateway)(nil)

func NewHackerNewsGateway(client *fallback_api_driver.Client, opts Options) *HackerNewsGateway {
	return &HackerNewsGateway{client: client, opts: opts}
}

func (g *HackerNewsGateway) Strategy() domain.FetchStrategy { return domain.StrategyHackerNews }

func (g *HackerNewsGateway) FetchArticles(ctx context.Context, limit int) ([]domain.Article, error) {
	ctx, cancel := g.opts.withTimeout(ctx)
	defer cancel()

	hits, err := g.client.FetchHackerNewsStories(ctx, g.opts.BaseURL, g.opts.Query, limit)
	if err != nil {
		return nil, wrapErr("HackerNewsGateway", g.Strategy(), err)
	}

	src := domain.ArticleSource{ID: "hackernews", Name: "Hacker News"}
	articles := make([]domain.Article, 0, len(hits))
	for i, h := range hits {
		if strings.TrimSpace(h.Title) == "" {
			continue
		}
		link := h.URL
		if link == "" {
			link = "https://news.ycombinator.com/item?id=" + h.ObjectID
		}
		var published time.Time
		if h.CreatedAtI > 0 {
			published = time.Unix(h.CreatedAtI, 0)
		} else {
			published, _ = time.Parse(time.RFC3339, h.CreatedAt)
		}
		articles = append(articles, g.opts.article(src, i, "hn-"+h.ObjectID, h.Title, h.StoryText, link, "", published))
	}
	return articles, nil
}

// RedditGateway reads the hot listing of one subreddit. Stickied and NSFW
// posts are skipped.
type RedditGateway struct {
	client *fallback_api_driver.Client
	opts   Options
}

var _ fallback_source_port.FallbackSourcePort = (*RedditGateway)(nil)

func NewRedditGateway(client *fallback_api_driver.Client, opts Options) *RedditGateway {
	return &RedditGateway{client: client, opts: opts}
}

func (g *RedditGateway) Strategy() domain.FetchStrategy { return domain.StrategyReddit }

func (g *RedditGateway) FetchArticles(ctx context.Context, limit int) ([]domain.Article, error) {
	ctx, cancel := g.opts.withTimeout(ctx)
	defer cancel()

	posts, err := g.client.FetchRedditHot(ctx, g.opts.BaseURL, g.opts.Query, limit)
	if err != nil {
		return nil, wrapErr("RedditGateway", g.Strategy(), err)
	}

	src := domain.ArticleSource{ID: "reddit-" + strings.ToLower(g.opts.Query), Name: "r/" + g.opts.Query}
	base := strings.TrimRight(g.opts.BaseURL, "/")
	articles := make([]domain.Article, 0, len(posts))
	for i, p := range posts {
		if p.Stickied || p.Over18 {
			continue
		}
		link := p.URL
		if !html_parser.IsHTTPURL(link) && p.Permalink != "" {
			link = base + p.Permalink
		}
		image := p.Thumbnail
		if p.Preview != nil && len(p.Preview.Images) > 0 {
			image = html.UnescapeString(p.Preview.Images[0].Source.URL)
		}
		var published time.Time
		if p.CreatedUTC > 0 {
			published = time.Unix(int64(p.CreatedUTC), 0)
		}
		articles = append(articles, g.opts.article(src, i, "reddit-"+p.ID, p.Title, p.SelfText, link, image, published))
	}
	return articles, nil
}
