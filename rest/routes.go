package rest

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Kalefullycode/roots-tech-news-sub000/config"
	"github.com/Kalefullycode/roots-tech-news-sub000/di"
	middleware_custom "github.com/Kalefullycode/roots-tech-news-sub000/middleware"
	"github.com/Kalefullycode/roots-tech-news-sub000/utils/logger"
)

func RegisterRoutes(e *echo.Echo, container *di.ApplicationComponents, cfg *config.Config) {
	// Client IPs come from the socket unless a trusted proxy forwarded them
	e.IPExtractor = middleware_custom.NewIPExtractor(cfg.Server.TrustedProxies)

	// 1. Request ID first so every log line carries it
	e.Use(middleware_custom.RequestIDMiddleware())

	// 2. Logging wraps recovery so panics are logged with their final status
	e.Use(middleware_custom.LoggingMiddleware(logger.Logger))
	e.Use(middleware.Recover())

	// 3. Security headers
	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
	}))

	// 4. CORS; preflights short-circuit with 204
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.CORS.AllowOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Cache-Control", "X-Requested-With"},
		ExposeHeaders: []string{middleware_custom.RequestIDHeader},
		MaxAge:        86400,
	}))

	// 5. Compression last; the proxy relays bytes untouched
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Path(), "/api/rss-proxy") || c.Path() == "/health"
		},
	}))

	h := newHandler(container, cfg)

	registerFeedRoutes(e, h)
	registerProxyRoutes(e, h, cfg)
	registerNewsletterRoutes(e, h, cfg)
	registerAdminRoutes(e, h, cfg)
}

func registerFeedRoutes(e *echo.Echo, h *handler) {
	for _, path := range []string{"/fetch-rss", "/functions/fetch-rss"} {
		e.GET(path, h.fetchRSS)
		e.OPTIONS(path, preflight)
	}
}

func registerProxyRoutes(e *echo.Echo, h *handler, cfg *config.Config) {
	limiter := middleware_custom.IPRateLimitMiddleware(
		cfg.RateLimit.ProxyRequestsPerMinute,
		cfg.RateLimit.ProxyBurst,
		cfg.RateLimit.ProxyMaxClients,
	)
	e.GET("/api/rss-proxy", h.rssProxy, limiter)
	e.OPTIONS("/api/rss-proxy", preflight)
}

func registerNewsletterRoutes(e *echo.Echo, h *handler, cfg *config.Config) {
	g := e.Group("/api/newsletter")
	var broadcastGuard []echo.MiddlewareFunc
	if cfg.Newsletter.BroadcastToken != "" {
		broadcastGuard = append(broadcastGuard, middleware_custom.BearerTokenMiddleware(cfg.Newsletter.BroadcastToken))
	} else {
		logger.Logger.Warn("newsletter broadcast endpoint is unauthenticated; set NEWSLETTER_BROADCAST_TOKEN")
	}
	g.POST("/broadcast", h.sendBroadcast, broadcastGuard...)
	g.GET("/stats", h.newsletterStats)
	g.OPTIONS("/*", preflight)
}

func registerAdminRoutes(e *echo.Echo, h *handler, cfg *config.Config) {
	e.GET("/health", health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	if cfg.Cache.PurgeToken != "" {
		e.DELETE("/api/cache", h.purgeCache, middleware_custom.BearerTokenMiddleware(cfg.Cache.PurgeToken))
	}
}

func preflight(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

func health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}
