package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"umkm-kembar-barokah/internal/cache"
	"umkm-kembar-barokah/internal/forecast"
	"umkm-kembar-barokah/pkg/validator"

	"go.uber.org/zap"
)

type ForecastRequest struct {
	ProductName string `json:"product_name" validate:"required"`
	Weeks       int    `json:"forecast_weeks" validate:"required,gt=0,lte=12"`
}

type ForecastService interface {
	Forecast(ctx context.Context, req *ForecastRequest) (*forecast.Result, error)
}

type forecastService struct {
	predictor forecast.Predictor
	cache     cache.ForecastCache
	ttl       time.Duration
	log       *zap.Logger
}

func NewForecastService(p forecast.Predictor, c cache.ForecastCache, ttl time.Duration, log *zap.Logger) ForecastService {
	if c == nil {
		c = cache.NoopForecastCache{}
	}
	return &forecastService{predictor: p, cache: c, ttl: ttl, log: log}
}

func (s *forecastService) Forecast(ctx context.Context, req *ForecastRequest) (*forecast.Result, error) {
	req.ProductName = strings.TrimSpace(req.ProductName)
	if msgs := validator.Messages(req); len(msgs) > 0 {
		return nil, newValidationError(msgs...)
	}

	key := fmt.Sprintf("forecast:%s:%d", strings.ToLower(req.ProductName), req.Weeks)

	if cached, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		return cached, nil
	} else if err != nil {
		s.log.Warn("forecast cache read failed", zap.String("key", key), zap.Error(err))
	}

	res, err := s.predictor.Predict(ctx, forecast.Request{ProductName: req.ProductName, Weeks: req.Weeks})
	if err != nil {
		s.log.Warn("forecast failed", zap.String("product", req.ProductName), zap.Error(err))
		return nil, err
	}

	if err := s.cache.Set(ctx, key, res, s.ttl); err != nil {
		s.log.Warn("forecast cache write failed", zap.String("key", key), zap.Error(err))
	}
	return res, nil
}
