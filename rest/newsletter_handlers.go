package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Kalefullycode/roots-tech-news-sub000/domain"
)

type broadcastResponse struct {
	Success     bool   `json:"success"`
	BroadcastID string `json:"broadcastId,omitempty"`
	Message     string `json:"message"`
}

type statsResponse struct {
	Success          bool   `json:"success"`
	TotalSubscribers int    `json:"totalSubscribers"`
	AudienceID       string `json:"audienceId,omitempty"`
	AudienceName     string `json:"audienceName,omitempty"`
}

func (h *handler) sendBroadcast(c echo.Context) error {
	var req domain.BroadcastRequest
	if err := c.Bind(&req); err != nil {
		return handleValidationError(c, "request body must be JSON", "body", nil)
	}

	res, err := h.newsletter.SendBroadcast(c.Request().Context(), req)
	if err != nil {
		return handleError(c, err, "SendBroadcast")
	}

	return c.JSON(http.StatusOK, broadcastResponse{
		Success:     true,
		BroadcastID: res.BroadcastID,
		Message:     string(req.Type) + " newsletter broadcast sent",
	})
}

func (h *handler) newsletterStats(c echo.Context) error {
	stats, err := h.newsletter.Stats(c.Request().Context())
	if err != nil {
		return handleError(c, err, "NewsletterStats")
	}

	return c.JSON(http.StatusOK, statsResponse{
		Success:          true,
		TotalSubscribers: stats.TotalSubscribers,
		AudienceID:       stats.AudienceID,
		AudienceName:     stats.AudienceName,
	})
}
