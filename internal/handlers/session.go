package handlers

import (
	"log"

	"fraudshield/internal/services/session"
	"fraudshield/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type SessionHandler struct {
	sessions *session.Service
}

func NewSessionHandler(sessions *session.Service) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Create starts a dashboard session.
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	token, claims, err := h.sessions.Issue()
	if err != nil {
		log.Printf("⚠️ Failed to issue session token: %v", err)
		return response.ServerError(c, "could not start session")
	}

	data := fiber.Map{
		"token":      token,
		"session_id": claims.SessionID,
		"scopes":     claims.Scopes,
	}
	if claims.ExpiresAt != nil {
		data["expires_at"] = claims.ExpiresAt.Time
	}
	return response.Created(c, "session started", data)
}
