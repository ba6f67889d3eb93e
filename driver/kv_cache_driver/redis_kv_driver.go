// Package kv_cache_driver stores opaque blobs in Redis for the shared cache tier.
package kv_cache_driver

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisKVDriver is a thin key/value wrapper over a Redis client.
type RedisKVDriver struct {
	client *redis.Client
}

func NewRedisKVDriver(addr string) *RedisKVDriver {
	return &RedisKVDriver{client: redis.NewClient(&redis.Options{Addr: addr})}
}

// NewRedisKVDriverWithURL creates a driver from a redis:// URL.
func NewRedisKVDriverWithURL(url string, dialTimeout time.Duration) (*RedisKVDriver, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	if dialTimeout > 0 {
		opts.DialTimeout = dialTimeout
	}
	return &RedisKVDriver{client: redis.NewClient(opts)}, nil
}

func (d *RedisKVDriver) Close() error {
	return d.client.Close()
}

func (d *RedisKVDriver) Ping(ctx context.Context) error {
	return d.client.Ping(ctx).Err()
}

// GetBytes returns found=false with a nil error when the key is absent.
func (d *RedisKVDriver) GetBytes(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := d.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return val, true, nil
}

// SetBytes writes value with an expiry; ttl <= 0 keeps the key forever.
func (d *RedisKVDriver) SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return d.client.Set(ctx, key, value, ttl).Err()
}

func (d *RedisKVDriver) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return d.client.Del(ctx, keys...).Err()
}

// ScanKeys walks the keyspace with SCAN and returns every key matching pattern.
func (d *RedisKVDriver) ScanKeys(ctx context.Context, pattern string) ([]string, error) {
	var (
		keys   []string
		cursor uint64
	)
	for {
		batch, next, err := d.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return nil, err
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			return keys, nil
		}
	}
}
