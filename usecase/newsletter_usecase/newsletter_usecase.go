package newsletter_usecase

import (
	"context"

	"github.com/Kalefullycode/roots-tech-news-sub000/domain"
	"github.com/Kalefullycode/roots-tech-news-sub000/port/newsletter_port"
	"github.com/Kalefullycode/roots-tech-news-sub000/utils/errors"
)

type NewsletterUsecaseInterface interface {
	SendBroadcast(ctx context.Context, req domain.BroadcastRequest) (*domain.BroadcastResult, error)
	Stats(ctx context.Context) (*domain.AudienceStats, error)
}

// NewsletterUsecase forwards caller supplied broadcasts to the provider.
// Content is never rendered here.
type NewsletterUsecase struct {
	newsletter newsletter_port.NewsletterPort
}

var _ NewsletterUsecaseInterface = (*NewsletterUsecase)(nil)

func NewNewsletterUsecase(newsletter newsletter_port.NewsletterPort) *NewsletterUsecase {
	return &NewsletterUsecase{newsletter: newsletter}
}

func (u *NewsletterUsecase) SendBroadcast(ctx context.Context, req domain.BroadcastRequest) (*domain.BroadcastResult, error) {
	if msg := req.Validate(); msg != "" {
		return nil, errors.NewValidationContextError(
			msg,
			"usecase", "NewsletterUsecase", "SendBroadcast",
			map[string]any{"type": string(req.Type)},
		)
	}
	return u.newsletter.SendBroadcast(ctx, req)
}

func (u *NewsletterUsecase) Stats(ctx context.Context) (*domain.AudienceStats, error) {
	return u.newsletter.AudienceStats(ctx)
}
