package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"gudang/internal/services"
)

// AuthRequired is a Fiber middleware that checks for a valid session token.
func AuthRequired(issuer *services.Issuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		claims, err := issuer.Parse(parts[1])
		if err != nil {
			log.Printf("Token validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		// Store claims in the Fiber context for subsequent handlers
		c.Locals("user_id", claims["sub"])
		c.Locals("username", claims["username"])

		return c.Next()
	}
}
