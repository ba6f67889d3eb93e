package feed_parser

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Kalefullycode/roots-tech-news-sub000/domain"
	"github.com/Kalefullycode/roots-tech-news-sub000/utils/html_parser"

	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
)

var ErrEmptyDocument = errors.New("empty feed document")

const (
	DefaultMaxItems          = 10
	DefaultDescriptionMaxLen = 300
)

type Options struct {
	MaxItems          int
	DescriptionMaxLen int
	// RegexFallback enables <item>/<entry> extraction when the structured
	// parse fails.
	RegexFallback bool
	Now           func() time.Time
}

// Parser turns RSS 0.9x/1.0/2.0 and Atom documents into normalized
// articles. It is safe for concurrent use.
type Parser struct {
	opts Options
}

func NewParser(opts Options) *Parser {
	if opts.MaxItems <= 0 {
		opts.MaxItems = DefaultMaxItems
	}
	if opts.DescriptionMaxLen <= 0 {
		opts.DescriptionMaxLen = DefaultDescriptionMaxLen
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Parser{opts: opts}
}

// rawItem is the format independent view of one feed entry.
type rawItem struct {
	title        string
	link         string
	guid         string
	description  string
	content      string
	published    *time.Time
	publishedRaw string
	imageURL     string
}

func (p *Parser) Parse(raw []byte, source domain.FeedDescriptor) ([]domain.Article, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrEmptyDocument
	}

	// gofeed.Parser keeps per-parse state, so one per call.
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(raw))
	if err != nil {
		if !p.opts.RegexFallback {
			return nil, fmt.Errorf("parse feed %s: %w", source.ID, err)
		}
		items := extractWithRegex(raw)
		if len(items) == 0 {
			return nil, fmt.Errorf("parse feed %s: %w", source.ID, err)
		}
		return p.toArticles(items, source), nil
	}

	items := make([]rawItem, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		items = append(items, fromGofeed(item))
	}
	return p.toArticles(items, source), nil
}

func fromGofeed(item *gofeed.Item) rawItem {
	it := rawItem{
		title:       item.Title,
		link:        item.Link,
		guid:        item.GUID,
		description: item.Description,
		content:     item.Content,
	}
	if it.link == "" && len(item.Links) > 0 {
		it.link = item.Links[0]
	}

	switch {
	case item.PublishedParsed != nil:
		it.published = item.PublishedParsed
	case item.UpdatedParsed != nil:
		it.published = item.UpdatedParsed
	case item.Published != "":
		it.publishedRaw = item.Published
	default:
		it.publishedRaw = item.Updated
	}

	it.imageURL = enclosureImage(item.Enclosures)
	if it.imageURL == "" {
		it.imageURL = mediaImage(item.Extensions)
	}
	if it.imageURL == "" && item.Image != nil && html_parser.IsHTTPURL(item.Image.URL) {
		it.imageURL = item.Image.URL
	}
	return it
}

func enclosureImage(enclosures []*gofeed.Enclosure) string {
	for _, enc := range enclosures {
		if enc == nil || !html_parser.IsHTTPURL(enc.URL) {
			continue
		}
		if strings.HasPrefix(strings.ToLower(enc.Type), "image/") ||
			(enc.Type == "" && html_parser.LooksLikeImageURL(enc.URL)) {
			return enc.URL
		}
	}
	return ""
}

// mediaImage reads Media RSS content, thumbnail and group elements.
func mediaImage(extensions ext.Extensions) string {
	media, ok := extensions["media"]
	if !ok {
		return ""
	}
	if u := mediaURL(media); u != "" {
		return u
	}
	for _, group := range media["group"] {
		if u := mediaURL(group.Children); u != "" {
			return u
		}
	}
	return ""
}

func mediaURL(elements map[string][]ext.Extension) string {
	for _, c := range elements["content"] {
		u := c.Attrs["url"]
		if !html_parser.IsHTTPURL(u) {
			continue
		}
		medium := strings.ToLower(c.Attrs["medium"])
		mime := strings.ToLower(c.Attrs["type"])
		if medium == "image" || strings.HasPrefix(mime, "image/") ||
			(medium == "" && mime == "" && html_parser.LooksLikeImageURL(u)) {
			return u
		}
	}
	for _, th := range elements["thumbnail"] {
		if u := th.Attrs["url"]; html_parser.IsHTTPURL(u) {
			return u
		}
	}
	return ""
}

func (p *Parser) toArticles(items []rawItem, source domain.FeedDescriptor) []domain.Article {
	now := p.opts.Now().UTC()
	articles := make([]domain.Article, 0, min(len(items), p.opts.MaxItems))

	for i, it := range items {
		if len(articles) >= p.opts.MaxItems {
			break
		}

		link := resolveLink(source.URL, it.link)
		title := html_parser.SanitizeTitle(it.title)
		body := it.description
		if strings.TrimSpace(html_parser.PlainText(body)) == "" {
			body = it.content
		}

		// Nothing to show or link to.
		if title == "" && link == "" && strings.TrimSpace(body) == "" {
			continue
		}
		if title == "" {
			title = domain.UntitledArticle
		}

		image := it.imageURL
		if image == "" {
			image = html_parser.ExtractFirstImage(it.description)
		}
		if image == "" {
			image = html_parser.ExtractFirstImage(it.content)
		}

		published := now
		if it.published != nil && !it.published.IsZero() {
			published = it.published.UTC()
		} else if it.publishedRaw != "" {
			published = parseDate(it.publishedRaw, now)
		}

		articles = append(articles, domain.Article{
			ID:          domain.DeriveArticleID(link, strings.TrimSpace(it.guid), source.ID, i, title),
			Title:       title,
			Description: html_parser.SanitizeDescription(body, p.opts.DescriptionMaxLen),
			URL:         link,
			ImageURL:    image,
			PublishedAt: published,
			Source:      domain.ArticleSource{ID: source.ID, Name: source.Name},
			Category:    source.Category,
		})
	}
	return articles
}

// parseDate tries the loose formats dateparse understands and falls back
// to now for anything else.
func parseDate(raw string, now time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now
	}
	t, err := dateparse.ParseAny(raw)
	if err != nil || t.IsZero() {
		return now
	}
	return t.UTC()
}

// resolveLink makes relative item links absolute against the feed URL.
func resolveLink(feedURL, link string) string {
	link = strings.TrimSpace(link)
	if link == "" {
		return ""
	}
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	if u.IsAbs() {
		if u.Scheme != "http" && u.Scheme != "https" {
			return ""
		}
		return u.String()
	}
	base, err := url.Parse(feedURL)
	if err != nil || !base.IsAbs() {
		return ""
	}
	return base.ResolveReference(u).String()
}
