package cache

import (
	"context"
	"time"

	"umkm-kembar-barokah/internal/forecast"
)

type ForecastCache interface {
	Get(ctx context.Context, key string) (*forecast.Result, bool, error)
	Set(ctx context.Context, key string, value *forecast.Result, ttl time.Duration) error
}

type NoopForecastCache struct{}

func (NoopForecastCache) Get(_ context.Context, _ string) (*forecast.Result, bool, error) {
	return nil, false, nil
}

func (NoopForecastCache) Set(_ context.Context, _ string, _ *forecast.Result, _ time.Duration) error {
	return nil
}
