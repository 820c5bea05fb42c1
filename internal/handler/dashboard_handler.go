package handler

import (
	"umkm-kembar-barokah/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetStats handles GET /api/dashboard/stats
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// GetSummary handles GET /api/dashboard/summary?reference_date=YYYY-MM-DD
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.service.Summary(c.UserContext(), c.Query("reference_date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

func (h *DashboardHandler) GetCashFlow(c *fiber.Ctx) error {
	weeks, err := h.service.CashFlow(c.UserContext(), c.Query("reference_date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(weeks)
}

func (h *DashboardHandler) GetWeeklySales(c *fiber.Ctx) error {
	chart, err := h.service.WeeklySales(c.UserContext(), c.Query("reference_date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(chart)
}

func (h *DashboardHandler) GetProductShare(c *fiber.Ctx) error {
	share, err := h.service.ProductShare(c.UserContext(), c.Query("reference_date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(share)
}

// GetSalesTrend handles GET /api/dashboard/sales-trend?search=
func (h *DashboardHandler) GetSalesTrend(c *fiber.Ctx) error {
	rows, err := h.service.SalesTrend(c.UserContext(), c.Query("search"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}
