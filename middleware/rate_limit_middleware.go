package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Kalefullycode/roots-tech-news-sub000/utils/errors"
	"github.com/Kalefullycode/roots-tech-news-sub000/utils/logger"
	"github.com/Kalefullycode/roots-tech-news-sub000/utils/rate_limiter"
)

// IPRateLimitMiddleware allows requestsPerMinute per client IP with the
// given burst, tracking at most maxClients addresses. The client IP comes
// from the echo IPExtractor (see NewIPExtractor). A non-positive rate
// disables the limiter.
func IPRateLimitMiddleware(requestsPerMinute, burst, maxClients int) echo.MiddlewareFunc {
	if requestsPerMinute <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	limiter := rate_limiter.NewClientRateLimiter(time.Minute/time.Duration(requestsPerMinute), burst, maxClients)
	retryAfter := strconv.Itoa(max(1, 60/requestsPerMinute))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			if ip == "" {
				ip = "unknown"
			}
			if limiter.Allow(ip) {
				return next(c)
			}

			ctx := c.Request().Context()
			logger.Logger.WarnContext(ctx, "rate limit exceeded", "ip", ip, "path", c.Request().URL.Path)

			appErr := errors.NewRateLimitContextError(
				"too many requests",
				"middleware", "IPRateLimitMiddleware", c.Request().URL.Path,
				errors.ErrRateLimitExceeded,
				map[string]any{"ip": ip},
			)
			c.Response().Header().Set("Retry-After", retryAfter)
			return c.JSON(http.StatusTooManyRequests, appErr.ToHTTPResponse())
		}
	}
}
