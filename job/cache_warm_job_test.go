package job

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kalefullycode/roots-tech-news-sub000/domain"
)

type fakeAggregate struct {
	refreshes atomic.Int32
	err       error
	deadline  atomic.Bool
}

func (f *fakeAggregate) Execute(ctx context.Context, opts domain.AggregateOptions) (*domain.AggregateResult, error) {
	return nil, errors.New("not used")
}

func (f *fakeAggregate) Refresh(ctx context.Context) (*domain.AggregateResult, error) {
	f.refreshes.Add(1)
	if _, ok := ctx.Deadline(); ok {
		f.deadline.Store(true)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &domain.AggregateResult{Success: true, Count: 3, Sources: 5, SuccessfulSources: 4, Strategy: domain.StrategyRSS}, nil
}

func (f *fakeAggregate) PurgeCache(ctx context.Context) error { return nil }

func TestCacheWarmJob(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{name: "refresh succeeds"},
		{name: "refresh error is returned", err: errors.New("all sources failed"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := &fakeAggregate{err: tt.err}
			j := CacheWarmJob(agg, 10*time.Minute, time.Minute)

			assert.Equal(t, CacheWarmJobName, j.Name)
			assert.Equal(t, 10*time.Minute, j.Interval)

			err := j.Fn(context.Background())
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, int32(1), agg.refreshes.Load())
		})
	}
}

func TestCacheWarmJob_ScheduledWithTimeout(t *testing.T) {
	agg := &fakeAggregate{}

	scheduler := NewJobScheduler()
	scheduler.Add(CacheWarmJob(agg, time.Hour, time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	scheduler.Start(ctx)

	assert.Eventually(t, func() bool { return agg.refreshes.Load() == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	scheduler.Shutdown()

	assert.True(t, agg.deadline.Load())
}
