package cache

import (
	"context"
	"time"

	"github.com/jhoicas/wholesale-api/internal/application/dto"
	"github.com/jhoicas/wholesale-api/internal/application/ports"
)

// NoopStatsCache never stores anything. Used when REDIS_ADDR is empty.
type NoopStatsCache struct{}

var _ ports.StatsCache = NoopStatsCache{}

func (NoopStatsCache) Get(_ context.Context, _ string) (*dto.DashboardStatsResponse, bool, error) {
	return nil, false, nil
}

func (NoopStatsCache) Set(_ context.Context, _ string, _ *dto.DashboardStatsResponse, _ time.Duration) error {
	return nil
}

func (NoopStatsCache) Delete(_ context.Context, _ string) error {
	return nil
}
