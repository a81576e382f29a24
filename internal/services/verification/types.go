package verification

import (
	"context"
	"time"

	"fraudshield/internal/models"
)

// State is a step of the OTP state machine.
type State string

const (
	StateNone       State = "NONE"
	StateCodeIssued State = "CODE_ISSUED"
	StateVerified   State = "VERIFIED"
	StateFailed     State = "FAILED"
)

// Challenge is the pending OTP slot of one transaction in one session.
// Only the bcrypt hash of the code is kept.
type Challenge struct {
	SessionID     string          `json:"session_id"`
	TransactionID string          `json:"transaction_id"`
	CodeHash      []byte          `json:"code_hash"`
	Decision      models.Decision `json:"decision"`
	Amount        float64         `json:"amount"`
	Country       string          `json:"country"`
	State         State           `json:"state"`
	IssuedAt      time.Time       `json:"issued_at"`

	// Transaction and Score let the ledger row be written once the code
	// is checked, possibly by another dashboard instance.
	Transaction *models.Transaction `json:"transaction,omitempty"`
	Score       models.ScoreResult  `json:"score"`
}

// Issued is returned when a code was generated. Code is the plaintext
// handed to the notifier; the demo UI displays it in place of an SMS.
type Issued struct {
	Challenge *Challenge
	Code      string
}

// Outcome is the terminal result of a verification attempt.
type Outcome struct {
	State         State           `json:"state"`
	FinalDecision models.Decision `json:"final_decision"`
	Challenge     *Challenge      `json:"-"`
}

// Store holds pending challenges keyed by (session, transaction).
type Store interface {
	// Create fails with ErrChallengePending when the slot is taken.
	Create(ctx context.Context, c *Challenge) error
	// Get fails with ErrChallengeNotFound when nothing is pending.
	Get(ctx context.Context, sessionID, transactionID string) (*Challenge, error)
	// Take returns the pending challenge and clears the slot.
	Take(ctx context.Context, sessionID, transactionID string) (*Challenge, error)
}

// Notifier delivers a freshly issued code out-of-band.
type Notifier interface {
	SendOTP(ctx context.Context, c *Challenge, code string) error
}

// MetricsCollector records workflow outcomes.
type MetricsCollector interface {
	RecordOTPIssued(decision models.Decision)
	RecordOTPResult(state State)
}

// Config tunes the workflow.
type Config struct {
	// HashCost is the bcrypt cost for stored codes.
	HashCost int
}
