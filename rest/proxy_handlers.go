package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const defaultFeedContentType = "application/xml; charset=utf-8"

// rssProxy relays an allowlisted feed document so browsers can read it
// cross-origin.
func (h *handler) rssProxy(c echo.Context) error {
	rawURL := c.QueryParam("url")
	if rawURL == "" {
		return handleValidationError(c, "url parameter is required", "url", rawURL)
	}

	feed, err := h.proxy.Execute(c.Request().Context(), rawURL)
	if err != nil {
		return handleError(c, err, "RSSProxy")
	}

	contentType := feed.ContentType
	if contentType == "" {
		contentType = defaultFeedContentType
	}
	c.Response().Header().Set("Cache-Control", h.cacheControl)
	return c.Blob(http.StatusOK, contentType, feed.Body)
}
