package handler

import (
	"errors"

	"umkm-kembar-barokah/internal/forecast"
	"umkm-kembar-barokah/internal/service"
	"umkm-kembar-barokah/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// respondError maps service errors onto status codes and the error body.
func respondError(c *fiber.Ctx, err error) error {
	var (
		validationErr *service.ValidationError
		notFoundErr   *service.NotFoundError
		stockErr      *service.InsufficientStockError
		upstreamErr   *forecast.UpstreamError
	)

	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Data tidak valid",
			"errors": validationErr.Errors,
		})
	case errors.As(err, &notFoundErr):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": notFoundErr.Error()})
	case errors.As(err, &stockErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":         stockErr.Error(),
			"stok_tersedia": stockErr.Available,
		})
	case errors.Is(err, service.ErrUsernameTaken):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrWrongPassword),
		errors.Is(err, jwt.ErrInvalidToken),
		errors.Is(err, jwt.ErrMissingToken):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &upstreamErr):
		status := fiber.StatusBadGateway
		if upstreamErr.Status >= 400 && upstreamErr.Status < 500 {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{"error": upstreamErr.Message})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Terjadi kesalahan pada server"})
}
