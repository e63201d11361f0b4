package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wholesale-api/internal/application/dto"
)

func TestNoopStatsCache(t *testing.T) {
	ctx := context.Background()
	c := NoopStatsCache{}

	require.NoError(t, c.Set(ctx, "k", &dto.DashboardStatsResponse{Orders: 3}, time.Minute))
	v, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)
	assert.NoError(t, c.Delete(ctx, "k"))
}

func TestRedisStatsCache_Unreachable(t *testing.T) {
	c := NewRedisStatsCache("127.0.0.1:1", "", 0)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	assert.Error(t, c.Ping(ctx))
	v, ok, err := c.Get(ctx, "stats:dashboard")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestRedisStatsCache_SetNilIsNoop(t *testing.T) {
	c := NewRedisStatsCache("127.0.0.1:1", "", 0)
	defer c.Close()

	assert.NoError(t, c.Set(context.Background(), "k", nil, time.Minute))
}
