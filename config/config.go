package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	Server     ServerConfig     `json:"server"`
	Feed       FeedConfig       `json:"feed"`
	Aggregator AggregatorConfig `json:"aggregator"`
	Fallback   FallbackConfig   `json:"fallback"`
	Cache      CacheConfig      `json:"cache"`
	Redis      RedisConfig      `json:"redis"`
	Database   DatabaseConfig   `json:"database"`
	CORS       CORSConfig       `json:"cors"`
	RateLimit  RateLimitConfig  `json:"rate_limit"`
	Newsletter NewsletterConfig `json:"newsletter"`
	Logging    LoggingConfig    `json:"logging"`
	Job        JobConfig        `json:"job"`
}

type ServerConfig struct {
	Port            int           `json:"port" env:"SERVER_PORT" default:"8788"`
	ReadTimeout     time.Duration `json:"read_timeout" env:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout    time.Duration `json:"write_timeout" env:"SERVER_WRITE_TIMEOUT" default:"60s"`
	IdleTimeout     time.Duration `json:"idle_timeout" env:"SERVER_IDLE_TIMEOUT" default:"120s"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
	PublicURL       string        `json:"public_url" env:"SERVER_PUBLIC_URL" default:"https://rootstechnews.com"`
	// TrustedProxies are CIDRs whose X-Forwarded-For is believed. Empty means
	// the socket peer is the client.
	TrustedProxies  []string      `json:"trusted_proxies" env:"SERVER_TRUSTED_PROXIES"`
}

type FeedConfig struct {
	FetchTimeout         time.Duration `json:"fetch_timeout" env:"FEED_FETCH_TIMEOUT" default:"12s"`
	MaxItemsPerFeed      int           `json:"max_items_per_feed" env:"FEED_MAX_ITEMS_PER_FEED" default:"10"`
	MaxBodyBytes         int64         `json:"max_body_bytes" env:"FEED_MAX_BODY_BYTES" default:"5242880"`
	DescriptionMaxLength int           `json:"description_max_length" env:"FEED_DESCRIPTION_MAX_LENGTH" default:"300"`
	UserAgent            string        `json:"user_agent" env:"FEED_USER_AGENT" default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"`
	HostInterval         time.Duration `json:"host_interval" env:"FEED_HOST_INTERVAL" default:"250ms"`
	RegexFallback        bool          `json:"regex_fallback" env:"FEED_REGEX_FALLBACK" default:"true"`
	ExtraAllowedDomains  []string      `json:"extra_allowed_domains" env:"FEED_EXTRA_ALLOWED_DOMAINS"`
}

type AggregatorConfig struct {
	MaxArticles     int  `json:"max_articles" env:"AGGREGATOR_MAX_ARTICLES" default:"50"`
	MaxConcurrency  int  `json:"max_concurrency" env:"AGGREGATOR_MAX_CONCURRENCY" default:"16"`
	TopicFilter     bool `json:"topic_filter" env:"AGGREGATOR_TOPIC_FILTER" default:"true"`
	FallbackEnabled bool `json:"fallback_enabled" env:"AGGREGATOR_FALLBACK_ENABLED" default:"true"`
}

// FallbackConfig points the keyless JSON APIs used when every feed fails.
type FallbackConfig struct {
	Timeout         time.Duration `json:"timeout" env:"FALLBACK_TIMEOUT" default:"10s"`
	DevToBaseURL    string        `json:"devto_base_url" env:"FALLBACK_DEVTO_BASE_URL" default:"https://dev.to/api"`
	DevToTag        string        `json:"devto_tag" env:"FALLBACK_DEVTO_TAG" default:"ai"`
	HackerNewsURL   string        `json:"hackernews_url" env:"FALLBACK_HACKERNEWS_URL" default:"https://hn.algolia.com/api/v1"`
	HackerNewsQuery string        `json:"hackernews_query" env:"FALLBACK_HACKERNEWS_QUERY" default:"AI"`
	RedditBaseURL   string        `json:"reddit_base_url" env:"FALLBACK_REDDIT_BASE_URL" default:"https://www.reddit.com"`
	Subreddit       string        `json:"subreddit" env:"FALLBACK_SUBREDDIT" default:"artificial"`
}

type CacheConfig struct {
	MemoryTTL      time.Duration `json:"memory_ttl" env:"CACHE_MEMORY_TTL" default:"10m"`
	MemoryMaxKeys  int           `json:"memory_max_keys" env:"CACHE_MEMORY_MAX_KEYS" default:"256"`
	KVTTL          time.Duration `json:"kv_ttl" env:"CACHE_KV_TTL" default:"10m"`
	KVWriteTimeout time.Duration `json:"kv_write_timeout" env:"CACHE_KV_WRITE_TIMEOUT" default:"3s"`
	CDNMaxAge      time.Duration `json:"cdn_max_age" env:"CACHE_CDN_MAX_AGE" default:"5m"`
	// PurgeToken guards DELETE /api/cache; the route is not registered when empty.
	PurgeToken     string        `json:"-" env:"CACHE_PURGE_TOKEN"`
}

// RedisConfig enables the shared KV tier when URL is set.
type RedisConfig struct {
	URL         string        `json:"url" env:"REDIS_URL"`
	DialTimeout time.Duration `json:"dial_timeout" env:"REDIS_DIAL_TIMEOUT" default:"2s"`
}

// DatabaseConfig enables the Postgres backed feed registry when URL is set.
type DatabaseConfig struct {
	URL               string        `json:"url" env:"DATABASE_URL"`
	MaxConnections    int           `json:"max_connections" env:"DB_MAX_CONNECTIONS" default:"10"`
	ConnectionTimeout time.Duration `json:"connection_timeout" env:"DB_CONNECTION_TIMEOUT" default:"10s"`
}

type CORSConfig struct {
	AllowOrigins []string `json:"allow_origins" env:"CORS_ALLOW_ORIGINS" default:"*"`
}

type RateLimitConfig struct {
	ProxyRequestsPerMinute int `json:"proxy_requests_per_minute" env:"RATE_LIMIT_PROXY_RPM" default:"60"`
	ProxyBurst             int `json:"proxy_burst" env:"RATE_LIMIT_PROXY_BURST" default:"20"`
	ProxyMaxClients        int `json:"proxy_max_clients" env:"RATE_LIMIT_PROXY_MAX_CLIENTS" default:"10000"`
}

type NewsletterConfig struct {
	APIKey      string        `json:"-" env:"RESEND_API_KEY"`
	APIKeyFile  string        `json:"-" env:"RESEND_API_KEY_FILE"`
	AudienceID  string        `json:"audience_id" env:"RESEND_AUDIENCE_ID"`
	FromAddress string        `json:"from_address" env:"NEWSLETTER_FROM" default:"RootsTechNews <newsletter@rootstechnews.com>"`
	BaseURL     string        `json:"base_url" env:"RESEND_BASE_URL" default:"https://api.resend.com"`
	Timeout     time.Duration `json:"timeout" env:"RESEND_TIMEOUT" default:"15s"`

	// BroadcastToken, when set, is required as a bearer token on
	// POST /api/newsletter/broadcast.
	BroadcastToken string `json:"-" env:"NEWSLETTER_BROADCAST_TOKEN"`
}

type LoggingConfig struct {
	Level  string `json:"level" env:"LOG_LEVEL" default:"info"`
	Format string `json:"format" env:"LOG_FORMAT" default:"json"`
}

type JobConfig struct {
	CacheWarmInterval time.Duration `json:"cache_warm_interval" env:"JOB_CACHE_WARM_INTERVAL" default:"10m"`
	CacheWarmTimeout  time.Duration `json:"cache_warm_timeout" env:"JOB_CACHE_WARM_TIMEOUT" default:"60s"`
	CacheWarmEnabled  bool          `json:"cache_warm_enabled" env:"JOB_CACHE_WARM_ENABLED" default:"true"`
}

// NewConfig loads configuration from environment variables, falling back
// to the default tags.
func NewConfig() (*Config, error) {
	config := &Config{}

	if err := loadFromEnvironment(config); err != nil {
		return nil, err
	}

	// Docker secrets
	if config.Newsletter.APIKeyFile != "" {
		content, err := os.ReadFile(config.Newsletter.APIKeyFile)
		if err == nil {
			config.Newsletter.APIKey = strings.TrimSpace(string(content))
		}
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// Configured reports whether broadcast credentials are present.
func (c NewsletterConfig) Configured() bool {
	return c.APIKey != "" && c.AudienceID != ""
}
