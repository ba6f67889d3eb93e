package fallback_source_port

//go:generate go run go.uber.org/mock/mockgen -source=fallback_source_port.go -destination=../../mocks/mock_fallback_source_port.go -package=mocks FallbackSourcePort

import (
	"context"

	"github.com/Kalefullycode/roots-tech-news-sub000/domain"
)

// FallbackSourcePort is an alternate article source tried when every RSS
// feed failed.
type FallbackSourcePort interface {
	Strategy() domain.FetchStrategy
	FetchArticles(ctx context.Context, limit int) ([]domain.Article, error)
}
