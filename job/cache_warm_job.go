package job

import (
	"context"
	"time"

	"github.com/Kalefullycode/roots-tech-news-sub000/usecase/aggregate_feeds_usecase"
	"github.com/Kalefullycode/roots-tech-news-sub000/utils/logger"
)

const CacheWarmJobName = "cache-warm"

// CacheWarmJob rebuilds the aggregate ahead of cache expiry so requests
// rarely pay for a full fan-out.
func CacheWarmJob(aggregate aggregate_feeds_usecase.AggregateFeedsUsecaseInterface, interval, timeout time.Duration) Job {
	return Job{
		Name:     CacheWarmJobName,
		Interval: interval,
		Timeout:  timeout,
		Fn: func(ctx context.Context) error {
			res, err := aggregate.Refresh(ctx)
			if err != nil {
				return err
			}
			logger.Logger.InfoContext(ctx, "aggregate cache warmed",
				"articles", res.Count,
				"sources", res.Sources,
				"successful_sources", res.SuccessfulSources,
				"strategy", res.Strategy)
			return nil
		},
	}
}
