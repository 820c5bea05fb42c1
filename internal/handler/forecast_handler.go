package handler

import (
	"umkm-kembar-barokah/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ForecastHandler struct {
	service service.ForecastService
}

func NewForecastHandler(s service.ForecastService) *ForecastHandler {
	return &ForecastHandler{service: s}
}

// Forecast proxies a demand prediction for one product.
// POST /api/forecast
func (h *ForecastHandler) Forecast(c *fiber.Ctx) error {
	var req service.ForecastRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	result, err := h.service.Forecast(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}
