// Package newsletter_driver adapts the Resend SDK to the broadcast and
// audience calls the newsletter gateway makes.
package newsletter_driver

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/resend/resend-go/v2"
)

// contactsPageSize is the largest page the contacts endpoint serves.
const contactsPageSize = 100

type CreateBroadcastRequest struct {
	AudienceID string
	From       string
	Subject    string
	HTML       string
	Text       string
	Name       string
}

type Audience struct {
	ID        string
	Name      string
	CreatedAt string
}

type Contact struct {
	ID           string
	Email        string
	Unsubscribed bool
}

type ResendClient struct {
	client *resend.Client
}

// NewResendClient wraps the SDK client. An empty baseURL keeps the SDK
// default endpoint.
func NewResendClient(httpClient *http.Client, baseURL, apiKey string) (*ResendClient, error) {
	client := resend.NewCustomClient(httpClient, apiKey)
	if baseURL != "" {
		u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("parse resend base url: %w", err)
		}
		client.BaseURL = u
	}
	return &ResendClient{client: client}, nil
}

// CreateBroadcast creates a draft broadcast and returns its id.
func (c *ResendClient) CreateBroadcast(ctx context.Context, req CreateBroadcastRequest) (string, error) {
	resp, err := c.client.Broadcasts.CreateWithContext(ctx, &resend.CreateBroadcastRequest{
		AudienceId: req.AudienceID,
		From:       req.From,
		Subject:    req.Subject,
		Html:       req.HTML,
		Text:       req.Text,
		Name:       req.Name,
	})
	if err != nil {
		return "", fmt.Errorf("create broadcast: %w", err)
	}
	return resp.Id, nil
}

// SendBroadcast sends a previously created broadcast immediately.
func (c *ResendClient) SendBroadcast(ctx context.Context, broadcastID string) (string, error) {
	resp, err := c.client.Broadcasts.SendWithContext(ctx, &resend.SendBroadcastRequest{BroadcastId: broadcastID})
	if err != nil {
		return "", fmt.Errorf("send broadcast %s: %w", broadcastID, err)
	}
	return resp.Id, nil
}

func (c *ResendClient) GetAudience(ctx context.Context, audienceID string) (*Audience, error) {
	aud, err := c.client.Audiences.GetWithContext(ctx, url.PathEscape(audienceID))
	if err != nil {
		return nil, fmt.Errorf("get audience %s: %w", audienceID, err)
	}
	return &Audience{ID: aud.Id, Name: aud.Name, CreatedAt: aud.CreatedAt}, nil
}

// ListContacts walks every page of the audience's contacts.
func (c *ResendClient) ListContacts(ctx context.Context, audienceID string) ([]Contact, error) {
	var (
		out   []Contact
		after *string
	)
	limit := contactsPageSize
	for {
		page, err := c.client.Contacts.ListWithOptions(ctx, url.PathEscape(audienceID), &resend.ListOptions{Limit: &limit, After: after})
		if err != nil {
			return nil, fmt.Errorf("list contacts for %s: %w", audienceID, err)
		}
		for _, ct := range page.Data {
			out = append(out, Contact{ID: ct.Id, Email: ct.Email, Unsubscribed: ct.Unsubscribed})
		}
		if !page.HasMore || len(page.Data) == 0 {
			return out, nil
		}
		last := page.Data[len(page.Data)-1].Id
		after = &last
	}
}
