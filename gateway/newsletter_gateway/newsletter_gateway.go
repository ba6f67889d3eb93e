package newsletter_gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/Kalefullycode/roots-tech-news-sub000/domain"
	"github.com/Kalefullycode/roots-tech-news-sub000/driver/newsletter_driver"
	"github.com/Kalefullycode/roots-tech-news-sub000/port/newsletter_port"
	"github.com/Kalefullycode/roots-tech-news-sub000/utils/errors"
	"github.com/Kalefullycode/roots-tech-news-sub000/utils/logger"
)

// ResendAPI is the subset of the Resend client the gateway uses.
type ResendAPI interface {
	CreateBroadcast(ctx context.Context, req newsletter_driver.CreateBroadcastRequest) (string, error)
	SendBroadcast(ctx context.Context, broadcastID string) (string, error)
	GetAudience(ctx context.Context, audienceID string) (*newsletter_driver.Audience, error)
	ListContacts(ctx context.Context, audienceID string) ([]newsletter_driver.Contact, error)
}

type NewsletterGateway struct {
	api         ResendAPI
	audienceID  string
	fromAddress string
	configured  bool
	timeout     time.Duration
	now         func() time.Time
}

var (
	_ newsletter_port.NewsletterPort = (*NewsletterGateway)(nil)
	_ ResendAPI                      = (*newsletter_driver.ResendClient)(nil)
)

// NewNewsletterGateway builds the gateway. When configured is false every
// call fails with a config error and no request is made.
func NewNewsletterGateway(api ResendAPI, audienceID, fromAddress string, configured bool, timeout time.Duration) *NewsletterGateway {
	return &NewsletterGateway{
		api:         api,
		audienceID:  audienceID,
		fromAddress: fromAddress,
		configured:  configured,
		timeout:     timeout,
		now:         time.Now,
	}
}

func (g *NewsletterGateway) notConfigured(operation string) error {
	return errors.NewConfigContextError(
		"newsletter service is not configured",
		"gateway", "NewsletterGateway", operation,
		domain.ErrNewsletterNotConfigured, nil,
	)
}

func (g *NewsletterGateway) upstream(operation string, err error) error {
	return errors.NewExternalAPIContextError(
		"newsletter provider request failed",
		"gateway", "NewsletterGateway", operation,
		err, map[string]any{"audience_id": g.audienceID},
	).WithStatus(http.StatusInternalServerError)
}

func (g *NewsletterGateway) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.timeout)
}

func (g *NewsletterGateway) SendBroadcast(ctx context.Context, req domain.BroadcastRequest) (*domain.BroadcastResult, error) {
	if !g.configured {
		return nil, g.notConfigured("SendBroadcast")
	}

	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	id, err := g.api.CreateBroadcast(ctx, newsletter_driver.CreateBroadcastRequest{
		AudienceID: g.audienceID,
		From:       g.fromAddress,
		Subject:    req.Content.Subject,
		HTML:       req.Content.HTML,
		Text:       req.Content.Text,
		Name:       string(req.Type) + " " + g.now().UTC().Format("2006-01-02"),
	})
	if err != nil {
		return nil, g.upstream("SendBroadcast", err)
	}

	if _, err := g.api.SendBroadcast(ctx, id); err != nil {
		return nil, g.upstream("SendBroadcast", err)
	}

	logger.Logger.InfoContext(ctx, "newsletter broadcast sent", "broadcast_id", id, "type", req.Type)
	return &domain.BroadcastResult{BroadcastID: id}, nil
}

func (g *NewsletterGateway) AudienceStats(ctx context.Context) (*domain.AudienceStats, error) {
	if !g.configured {
		return nil, g.notConfigured("AudienceStats")
	}

	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	audience, err := g.api.GetAudience(ctx, g.audienceID)
	if err != nil {
		return nil, g.upstream("AudienceStats", err)
	}
	contacts, err := g.api.ListContacts(ctx, g.audienceID)
	if err != nil {
		return nil, g.upstream("AudienceStats", err)
	}

	active := 0
	for _, c := range contacts {
		if !c.Unsubscribed {
			active++
		}
	}

	return &domain.AudienceStats{
		AudienceID:       audience.ID,
		AudienceName:     audience.Name,
		TotalSubscribers: active,
	}, nil
}
