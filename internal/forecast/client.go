package forecast

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const unreachableMessage = "Gagal mengambil data prediksi. Pastikan server prediksi berjalan."

type predictRequest struct {
	ProductName   string `json:"product_name"`
	ForecastSteps int    `json:"forecast_steps"`
}

type predictResponse struct {
	HistoricalData []struct {
		Date     string `json:"tanggal"`
		Quantity int64  `json:"jumlah"`
	} `json:"historical_data"`
	ForecastData []struct {
		Date              string `json:"tanggal_audit"`
		PredictedQuantity int64  `json:"prediksi_jumlah_terjual"`
		PredictedRevenue  int64  `json:"prediksi_pendapatan"`
	} `json:"forecast_data"`
	Error string `json:"error"`
}

// Client calls POST {baseURL}/predict.
type Client struct {
	baseURL string
	timeout time.Duration
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), timeout: timeout}
}

func (c *Client) Predict(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout || timeout <= 0 {
			timeout = left
		}
	}

	agent := fiber.Post(c.baseURL + "/predict").
		JSON(predictRequest{ProductName: req.ProductName, ForecastSteps: req.Weeks})
	if timeout > 0 {
		agent = agent.Timeout(timeout)
	}

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, &UpstreamError{Message: unreachableMessage}
	}

	var resp predictResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &UpstreamError{Status: status, Message: "respons server prediksi tidak valid"}
	}
	if status != fiber.StatusOK {
		msg := resp.Error
		if msg == "" {
			msg = unreachableMessage
		}
		return nil, &UpstreamError{Status: status, Message: msg}
	}

	out := &Result{
		Historical: make([]Point, 0, len(resp.HistoricalData)),
		Forecast:   make([]Prediction, 0, len(resp.ForecastData)),
	}
	for _, h := range resp.HistoricalData {
		out.Historical = append(out.Historical, Point{Date: h.Date, Quantity: h.Quantity})
	}
	for _, f := range resp.ForecastData {
		out.Forecast = append(out.Forecast, Prediction{
			Date:              f.Date,
			PredictedQuantity: f.PredictedQuantity,
			PredictedRevenue:  f.PredictedRevenue,
		})
	}
	return out, nil
}
