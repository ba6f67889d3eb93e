package feed_parse_port

//go:generate go run go.uber.org/mock/mockgen -source=feed_parse_port.go -destination=../../mocks/mock_feed_parse_port.go -package=mocks FeedParsePort

import "github.com/Kalefullycode/roots-tech-news-sub000/domain"

type FeedParsePort interface {
	Parse(raw []byte, source domain.FeedDescriptor) ([]domain.Article, error)
}
