// Package feed_db reads the feed registry from Postgres.
package feed_db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kalefullycode/roots-tech-news-sub000/utils/logger"
)

// PgxIface is satisfied by *pgxpool.Pool and by pgxmock pools.
type PgxIface interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Ping(ctx context.Context) error
	Close()
}

// FeedSourceRow mirrors one row of the feed_sources table.
type FeedSourceRow struct {
	ID                     string
	Name                   string
	URL                    string
	Category               string
	Active                 bool
	Priority               string
	UpdateFrequencyMinutes int
}

type FeedSourceRepository struct {
	pool PgxIface
}

func NewFeedSourceRepository(pool PgxIface) *FeedSourceRepository {
	return &FeedSourceRepository{pool: pool}
}

func InitPool(ctx context.Context, dsn string, maxConns int, connectTimeout time.Duration) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if maxConns > 0 {
		config.MaxConns = int32(maxConns)
	}
	config.MinConns = 1
	config.MaxConnLifetime = 1 * time.Hour
	config.MaxConnIdleTime = 30 * time.Minute
	if connectTimeout > 0 {
		config.ConnConfig.ConnectTimeout = connectTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	logger.Logger.Info("Connected to database pool", "max_conns", config.MaxConns)
	return pool, nil
}

const fetchFeedSourcesQuery = `
	SELECT id, name, url, category, active, priority, update_frequency_minutes
	FROM feed_sources
	ORDER BY id`

func (r *FeedSourceRepository) FetchFeedSources(ctx context.Context) ([]FeedSourceRow, error) {
	rows, err := r.pool.Query(ctx, fetchFeedSourcesQuery)
	if err != nil {
		return nil, fmt.Errorf("query feed_sources: %w", err)
	}
	defer rows.Close()

	var out []FeedSourceRow
	for rows.Next() {
		var row FeedSourceRow
		if err := rows.Scan(
			&row.ID,
			&row.Name,
			&row.URL,
			&row.Category,
			&row.Active,
			&row.Priority,
			&row.UpdateFrequencyMinutes,
		); err != nil {
			return nil, fmt.Errorf("scan feed_sources row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feed_sources: %w", err)
	}

	return out, nil
}

func (r *FeedSourceRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *FeedSourceRepository) Close() {
	r.pool.Close()
}
