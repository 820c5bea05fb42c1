package middleware

import (
	"errors"
	"strings"

	"umkm-kembar-barokah/internal/service"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth is middleware that validates JWT token and sets user info in context
func RequireAuth(auth service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Token tidak ditemukan"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Format authorization salah. Gunakan: Bearer <token>"})
		}

		// Token must be valid and its user must still exist
		user, err := auth.Authenticate(c.UserContext(), parts[1])
		if err != nil {
			var storeErr *service.StoreError
			if errors.As(err, &storeErr) {
				return c.Status(500).JSON(fiber.Map{"error": "Terjadi kesalahan pada server"})
			}
			return c.Status(401).JSON(fiber.Map{"error": "Token tidak valid atau sudah kedaluwarsa"})
		}

		// Set user info in context for downstream handlers
		c.Locals("user_id", user.ID.String())
		c.Locals("user_name", user.Username)

		return c.Next()
	}
}
