package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Kalefullycode/roots-tech-news-sub000/utils/errors"
	"github.com/Kalefullycode/roots-tech-news-sub000/utils/logger"
)

// purgeCache clears the memory and KV tiers. Copies held by the CDN stay
// until their max-age runs out.
func (h *handler) purgeCache(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.aggregate.PurgeCache(ctx); err != nil {
		return handleError(c, errors.NewDatabaseContextError(
			"cache purge failed",
			"rest", "RESTHandler", "PurgeCache",
			err, nil,
		), "PurgeCache")
	}

	logger.FromContext(ctx).Info("cache purged", "remote_addr", c.RealIP())
	return c.JSON(http.StatusOK, map[string]any{"success": true, "message": "cache purged"})
}
