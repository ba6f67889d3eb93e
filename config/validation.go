package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"
)

func validateConfig(config *Config) error {
	if err := validateServerConfig(&config.Server); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}

	if err := validateFeedConfig(&config.Feed); err != nil {
		return fmt.Errorf("feed config validation failed: %w", err)
	}

	if err := validateAggregatorConfig(&config.Aggregator); err != nil {
		return fmt.Errorf("aggregator config validation failed: %w", err)
	}

	if err := validateCacheConfig(&config.Cache); err != nil {
		return fmt.Errorf("cache config validation failed: %w", err)
	}

	if err := validateRateLimitConfig(&config.RateLimit); err != nil {
		return fmt.Errorf("rate limit config validation failed: %w", err)
	}

	if err := validateNewsletterConfig(&config.Newsletter); err != nil {
		return fmt.Errorf("newsletter config validation failed: %w", err)
	}

	if err := validateLoggingConfig(&config.Logging); err != nil {
		return fmt.Errorf("logging config validation failed: %w", err)
	}

	if config.Job.CacheWarmEnabled && config.Job.CacheWarmInterval <= 0 {
		return fmt.Errorf("job config validation failed: cache warm interval must be positive, got %v", config.Job.CacheWarmInterval)
	}

	return nil
}

func validateServerConfig(config *ServerConfig) error {
	if config.Port < 1 || config.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", config.Port)
	}

	for name, d := range map[string]time.Duration{
		"ReadTimeout":     config.ReadTimeout,
		"WriteTimeout":    config.WriteTimeout,
		"IdleTimeout":     config.IdleTimeout,
		"ShutdownTimeout": config.ShutdownTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("timeout values must be positive, got %s: %v", name, d)
		}
	}

	for _, entry := range config.TrustedProxies {
		if net.ParseIP(entry) != nil {
			continue
		}
		if _, _, err := net.ParseCIDR(entry); err != nil {
			return fmt.Errorf("trusted proxy must be an IP or CIDR, got %q", entry)
		}
	}

	return nil
}

func validateFeedConfig(config *FeedConfig) error {
	if config.FetchTimeout < time.Second || config.FetchTimeout > time.Minute {
		return fmt.Errorf("fetch timeout must be between 1s and 1m, got %v", config.FetchTimeout)
	}

	if config.MaxItemsPerFeed < 1 {
		return fmt.Errorf("max items per feed must be positive, got %d", config.MaxItemsPerFeed)
	}

	if config.MaxBodyBytes < 1024 {
		return fmt.Errorf("max body bytes must be at least 1024, got %d", config.MaxBodyBytes)
	}

	if config.DescriptionMaxLength < 10 {
		return fmt.Errorf("description max length must be at least 10, got %d", config.DescriptionMaxLength)
	}

	if config.HostInterval < 0 {
		return fmt.Errorf("host interval must not be negative, got %v", config.HostInterval)
	}

	if strings.TrimSpace(config.UserAgent) == "" {
		return fmt.Errorf("user agent must not be empty")
	}

	return nil
}

func validateAggregatorConfig(config *AggregatorConfig) error {
	if config.MaxArticles < 1 {
		return fmt.Errorf("max articles must be positive, got %d", config.MaxArticles)
	}

	if config.MaxConcurrency < 1 {
		return fmt.Errorf("max concurrency must be positive, got %d", config.MaxConcurrency)
	}

	return nil
}

func validateCacheConfig(config *CacheConfig) error {
	if config.MemoryTTL <= 0 || config.KVTTL <= 0 {
		return fmt.Errorf("cache TTLs must be positive, got memory=%v kv=%v", config.MemoryTTL, config.KVTTL)
	}

	if config.MemoryMaxKeys < 1 {
		return fmt.Errorf("memory max keys must be positive, got %d", config.MemoryMaxKeys)
	}

	if config.KVWriteTimeout <= 0 {
		return fmt.Errorf("kv write timeout must be positive, got %v", config.KVWriteTimeout)
	}

	if config.CDNMaxAge < 0 {
		return fmt.Errorf("cdn max age must not be negative, got %v", config.CDNMaxAge)
	}

	return nil
}

func validateRateLimitConfig(config *RateLimitConfig) error {
	if config.ProxyRequestsPerMinute < 1 {
		return fmt.Errorf("proxy requests per minute must be positive, got %d", config.ProxyRequestsPerMinute)
	}

	if config.ProxyBurst < 1 {
		return fmt.Errorf("proxy burst must be positive, got %d", config.ProxyBurst)
	}

	if config.ProxyMaxClients < 1 {
		return fmt.Errorf("proxy max clients must be positive, got %d", config.ProxyMaxClients)
	}

	return nil
}

func validateNewsletterConfig(config *NewsletterConfig) error {
	u, err := url.Parse(config.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base URL must be absolute, got %q", config.BaseURL)
	}

	if config.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", config.Timeout)
	}

	return nil
}

func validateLoggingConfig(config *LoggingConfig) error {
	switch strings.ToLower(config.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level %q", config.Level)
	}

	switch strings.ToLower(config.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log format %q", config.Format)
	}

	return nil
}
