package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"umkm-kembar-barokah/internal/cache"
	"umkm-kembar-barokah/internal/forecast"
	"umkm-kembar-barokah/internal/service"
)

type memCache struct {
	mu   sync.Mutex
	data map[string]*forecast.Result
}

func (m *memCache) Get(_ context.Context, key string) (*forecast.Result, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, value *forecast.Result, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func TestForecastService_Forecast(t *testing.T) {
	result := &forecast.Result{
		Historical: []forecast.Point{{Date: "2024-03-04", Quantity: 12}},
		Forecast:   []forecast.Prediction{{Date: "2024-03-11", PredictedQuantity: 14, PredictedRevenue: 140000}},
	}

	type testCase struct {
		name      string
		req       service.ForecastRequest
		setupMock func(m *forecast.MockPredictor)
		check     func(t *testing.T, got *forecast.Result, err error)
	}

	tests := []testCase{
		{
			name: "Success",
			req:  service.ForecastRequest{ProductName: " Kerupuk Kulit ", Weeks: 4},
			setupMock: func(m *forecast.MockPredictor) {
				m.EXPECT().
					Predict(gomock.Any(), forecast.Request{ProductName: "Kerupuk Kulit", Weeks: 4}).
					Return(result, nil)
			},
			check: func(t *testing.T, got *forecast.Result, err error) {
				require.NoError(t, err)
				assert.Equal(t, result, got)
			},
		},
		{
			name: "TooManyWeeks",
			req:  service.ForecastRequest{ProductName: "Kerupuk Kulit", Weeks: 13},
			check: func(t *testing.T, got *forecast.Result, err error) {
				var vErr *service.ValidationError
				require.True(t, errors.As(err, &vErr))
				assert.Equal(t, []string{"forecast_weeks tidak boleh lebih dari 12"}, vErr.Errors)
				assert.Nil(t, got)
			},
		},
		{
			name: "ZeroWeeks",
			req:  service.ForecastRequest{ProductName: "Kerupuk Kulit"},
			check: func(t *testing.T, got *forecast.Result, err error) {
				var vErr *service.ValidationError
				assert.True(t, errors.As(err, &vErr))
			},
		},
		{
			name: "UpstreamError",
			req:  service.ForecastRequest{ProductName: "Dodol", Weeks: 1},
			setupMock: func(m *forecast.MockPredictor) {
				m.EXPECT().
					Predict(gomock.Any(), gomock.Any()).
					Return(nil, &forecast.UpstreamError{Status: 400, Message: "Model untuk Dodol belum tersedia."})
			},
			check: func(t *testing.T, got *forecast.Result, err error) {
				var upErr *forecast.UpstreamError
				require.True(t, errors.As(err, &upErr))
				assert.Nil(t, got)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			predictor := forecast.NewMockPredictor(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(predictor)
			}

			svc := service.NewForecastService(predictor, cache.NoopForecastCache{}, time.Minute, zap.NewNop())
			req := tt.req
			got, err := svc.Forecast(context.Background(), &req)
			tt.check(t, got, err)
		})
	}
}

func TestForecastService_UsesCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	predictor := forecast.NewMockPredictor(ctrl)
	predictor.EXPECT().
		Predict(gomock.Any(), gomock.Any()).
		Return(&forecast.Result{}, nil).
		Times(1)

	svc := service.NewForecastService(predictor, &memCache{data: map[string]*forecast.Result{}}, time.Minute, zap.NewNop())

	for i := 0; i < 3; i++ {
		_, err := svc.Forecast(context.Background(), &service.ForecastRequest{ProductName: "Stik Bawang", Weeks: 2})
		require.NoError(t, err)
	}
	// Product name lookup is case-insensitive.
	_, err := svc.Forecast(context.Background(), &service.ForecastRequest{ProductName: "STIK BAWANG", Weeks: 2})
	require.NoError(t, err)
}
