package ports

import (
	"context"
	"time"

	"github.com/jhoicas/wholesale-api/internal/application/dto"
)

// DashboardStatsKey cache key of the admin dashboard figures.
const DashboardStatsKey = "stats:dashboard"

// StatsCache short-lived cache of dashboard figures.
type StatsCache interface {
	Get(ctx context.Context, key string) (*dto.DashboardStatsResponse, bool, error)
	Set(ctx context.Context, key string, value *dto.DashboardStatsResponse, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
