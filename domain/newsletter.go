package domain

import (
	"errors"
	"strings"
)

type BroadcastType string

const (
	BroadcastDaily       BroadcastType = "daily"
	BroadcastBreaking    BroadcastType = "breaking"
	BroadcastPromotional BroadcastType = "promotional"
)

var ErrNewsletterNotConfigured = errors.New("newsletter provider is not configured")

type BroadcastContent struct {
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text,omitempty"`
}

type BroadcastRequest struct {
	Type    BroadcastType    `json:"type"`
	Content BroadcastContent `json:"content"`
}

// Validate returns a message naming the first invalid field, or "".
func (r BroadcastRequest) Validate() string {
	switch r.Type {
	case BroadcastDaily, BroadcastBreaking, BroadcastPromotional:
	case "":
		return "type is required"
	default:
		return "type must be one of daily, breaking, promotional"
	}
	if strings.TrimSpace(r.Content.Subject) == "" {
		return "content.subject is required"
	}
	if strings.TrimSpace(r.Content.HTML) == "" {
		return "content.html is required"
	}
	return ""
}

type BroadcastResult struct {
	BroadcastID string `json:"broadcastId"`
}

type AudienceStats struct {
	AudienceID       string `json:"audienceId"`
	AudienceName     string `json:"audienceName"`
	TotalSubscribers int    `json:"totalSubscribers"`
}
