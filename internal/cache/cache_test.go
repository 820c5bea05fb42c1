package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"umkm-kembar-barokah/internal/cache"
	"umkm-kembar-barokah/internal/forecast"
)

func TestNoopForecastCache(t *testing.T) {
	var c cache.ForecastCache = cache.NoopForecastCache{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", &forecast.Result{}, time.Minute))
	got, ok, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestRedisForecastCache_Unreachable(t *testing.T) {
	c := cache.NewRedisForecastCache("127.0.0.1:1", "", 0)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	assert.Error(t, c.Ping(ctx))
	_, ok, err := c.Get(ctx, "forecast:x:1")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.NoError(t, c.Set(ctx, "forecast:x:1", nil, time.Minute))
}
