package newsletter_port

//go:generate go run go.uber.org/mock/mockgen -source=newsletter_port.go -destination=../../mocks/mock_newsletter_port.go -package=mocks NewsletterPort

import (
	"context"

	"github.com/Kalefullycode/roots-tech-news-sub000/domain"
)

// NewsletterPort talks to the email broadcast provider. Both methods return
// domain.ErrNewsletterNotConfigured when credentials are missing.
type NewsletterPort interface {
	SendBroadcast(ctx context.Context, req domain.BroadcastRequest) (*domain.BroadcastResult, error)
	AudienceStats(ctx context.Context) (*domain.AudienceStats, error)
}
