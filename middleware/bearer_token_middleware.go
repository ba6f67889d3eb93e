package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Kalefullycode/roots-tech-news-sub000/utils/logger"
)

// BearerTokenMiddleware guards operator endpoints with a static token sent
// as "Authorization: Bearer <token>".
func BearerTokenMiddleware(token string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			presented, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || presented == "" {
				logger.Logger.Warn("operator auth failed: missing token",
					"path", c.Request().URL.Path,
					"remote_addr", c.RealIP(),
				)
				return echo.NewHTTPError(http.StatusUnauthorized, map[string]string{
					"error": "missing bearer token",
				})
			}

			if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(presented)), []byte(token)) != 1 {
				logger.Logger.Warn("operator auth failed: invalid token",
					"path", c.Request().URL.Path,
					"remote_addr", c.RealIP(),
				)
				return echo.NewHTTPError(http.StatusUnauthorized, map[string]string{
					"error": "invalid bearer token",
				})
			}

			return next(c)
		}
	}
}
