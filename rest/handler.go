package rest

import (
	"fmt"
	"time"

	"github.com/Kalefullycode/roots-tech-news-sub000/config"
	"github.com/Kalefullycode/roots-tech-news-sub000/di"
	"github.com/Kalefullycode/roots-tech-news-sub000/usecase/aggregate_feeds_usecase"
	"github.com/Kalefullycode/roots-tech-news-sub000/usecase/newsletter_usecase"
	"github.com/Kalefullycode/roots-tech-news-sub000/usecase/proxy_feed_usecase"
)

type handler struct {
	aggregate    aggregate_feeds_usecase.AggregateFeedsUsecaseInterface
	proxy        proxy_feed_usecase.ProxyFeedUsecaseInterface
	newsletter   newsletter_usecase.NewsletterUsecaseInterface
	cacheControl string
	publicURL    string
}

func newHandler(container *di.ApplicationComponents, cfg *config.Config) *handler {
	return &handler{
		aggregate:    container.AggregateFeedsUsecase,
		proxy:        container.ProxyFeedUsecase,
		newsletter:   container.NewsletterUsecase,
		cacheControl: cdnCacheControl(cfg.Cache.CDNMaxAge),
		publicURL:    cfg.Server.PublicURL,
	}
}

// cdnCacheControl lets shared caches keep successful responses as long as
// browsers do.
func cdnCacheControl(maxAge time.Duration) string {
	secs := int(maxAge.Seconds())
	if secs <= 0 {
		return "no-store"
	}
	return fmt.Sprintf("public, max-age=%d, s-maxage=%d", secs, secs)
}
