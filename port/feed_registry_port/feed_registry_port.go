package feed_registry_port

//go:generate go run go.uber.org/mock/mockgen -source=feed_registry_port.go -destination=../../mocks/mock_feed_registry_port.go -package=mocks FeedRegistryPort

import (
	"context"

	"github.com/Kalefullycode/roots-tech-news-sub000/domain"
)

type FeedRegistryPort interface {
	ListFeeds(ctx context.Context) ([]domain.FeedDescriptor, error)
}
