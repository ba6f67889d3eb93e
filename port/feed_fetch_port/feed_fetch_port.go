package feed_fetch_port

//go:generate go run go.uber.org/mock/mockgen -source=feed_fetch_port.go -destination=../../mocks/mock_feed_fetch_port.go -package=mocks FeedFetchPort

import (
	"context"

	"github.com/Kalefullycode/roots-tech-news-sub000/domain"
)

// FeedFetchPort retrieves raw feed documents. Failures are returned as
// *domain.FetchFailure.
type FeedFetchPort interface {
	FetchFeed(ctx context.Context, feedURL string) (*domain.FetchedFeed, error)
}
