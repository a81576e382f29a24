package notification

import (
	"context"
	"log"

	"fraudshield/internal/services/verification"
)

// Service is a minimal notification service implementation. A real
// deployment would hand the code to an SMS or email gateway; here the
// alert is only logged and the dashboard displays the code itself.
type Service struct {
	logCodes bool
}

// NewService creates a new notification service. logCodes controls
// whether the plaintext code is written to the log.
func NewService(logCodes bool) *Service { return &Service{logCodes: logCodes} }

// SendOTP logs the suspicious-transaction alert for a challenge.
func (s *Service) SendOTP(ctx context.Context, c *verification.Challenge, code string) error {
	log.Printf("⚠️ Suspicious transaction %s in session %s: amount %.0f, location %s. OTP sent to registered mobile/email",
		c.TransactionID, c.SessionID, c.Amount, c.Country)
	if s.logCodes {
		log.Printf("Demo OTP for transaction %s: %s", c.TransactionID, code)
	}
	return nil
}
