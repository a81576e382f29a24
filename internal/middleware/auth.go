// Package middleware provides HTTP middleware for the dashboard API.
package middleware

import (
	"log"
	"strings"

	"fraudshield/internal/models"
	"fraudshield/internal/services/session"

	"github.com/gofiber/fiber/v2"
)

const (
	LocalClaims    = "claims"
	LocalSessionID = "sessionID"
)

// AuthMiddleware validates the session token from the Authorization header
// and stores its claims in the request context.
type AuthMiddleware struct {
	sessions *session.Service
}

func NewAuthMiddleware(sessions *session.Service) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// Handler rejects requests without a valid Bearer session token.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
	}

	claims, err := m.sessions.Parse(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		log.Printf("Session token rejected: %v", err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid session"})
	}

	c.Locals(LocalClaims, claims)
	c.Locals(LocalSessionID, claims.SessionID)
	return c.Next()
}

// RequireScope allows the request only when the session holds scope.
func RequireScope(scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(LocalClaims).(*models.SessionClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid claims"})
		}
		if !claims.HasScope(scope) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "insufficient scope"})
		}
		return c.Next()
	}
}

// SessionID returns the session of an authenticated request.
func SessionID(c *fiber.Ctx) string {
	sid, _ := c.Locals(LocalSessionID).(string)
	return sid
}
