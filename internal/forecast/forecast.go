// Package forecast talks to the external sales prediction service.
package forecast

import (
	"context"
	"fmt"
)

//go:generate mockgen -source=forecast.go -destination=predictor_mock.go -package=forecast

// Predictor returns the sales history and forecast of one product.
type Predictor interface {
	Predict(ctx context.Context, req Request) (*Result, error)
}

type Request struct {
	ProductName string
	Weeks       int
}

type Point struct {
	Date     string `json:"date"`
	Quantity int64  `json:"quantity"`
}

type Prediction struct {
	Date              string `json:"date"`
	PredictedQuantity int64  `json:"predicted_quantity"`
	PredictedRevenue  int64  `json:"predicted_revenue"`
}

type Result struct {
	Historical []Point      `json:"historical"`
	Forecast   []Prediction `json:"forecast"`
}

// UpstreamError is a failure reported by, or reaching, the prediction service.
// Status is 0 when no response was received.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}
