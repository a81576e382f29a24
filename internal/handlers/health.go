package handlers

import (
	"github.com/gofiber/fiber/v2"
)

const Version = "1.0.0"

// HealthCheck reports liveness plus whatever component details the
// binary wants to expose.
func HealthCheck(details func() fiber.Map) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := fiber.Map{
			"status":  "ok",
			"version": Version,
		}
		if details != nil {
			for k, v := range details() {
				body[k] = v
			}
		}
		return c.JSON(body)
	}
}
