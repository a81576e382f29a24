package verification

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"fraudshield/internal/models"

	"golang.org/x/crypto/bcrypt"
)

const (
	codeMin = 100000
	codeMax = 999999
)

// CodeGenerator returns a six digit code.
type CodeGenerator func() (string, error)

// Workflow runs the OTP step for VERIFY and BLOCK decisions:
// NONE -> CODE_ISSUED -> VERIFIED | FAILED. A single mismatch is terminal;
// there is no retry, lockout counter or expiry.
type Workflow struct {
	store    Store
	notifier Notifier
	metrics  MetricsCollector
	hashCost int
	generate CodeGenerator
	now      func() time.Time
}

// NewWorkflow creates a workflow. Notifier and metrics are optional.
func NewWorkflow(store Store, notifier Notifier, metrics MetricsCollector, cfg Config) *Workflow {
	if store == nil {
		panic("store is required")
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	cost := cfg.HashCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Workflow{
		store:    store,
		notifier: notifier,
		metrics:  metrics,
		hashCost: cost,
		generate: GenerateCode,
		now:      time.Now,
	}
}

// WithCodeGenerator replaces the random code source.
func (w *Workflow) WithCodeGenerator(gen CodeGenerator) *Workflow {
	w.generate = gen
	return w
}

// GenerateCode draws a code uniformly from [100000, 999999].
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeMax-codeMin+1))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+codeMin), nil
}

// Issue moves a transaction from NONE to CODE_ISSUED.
func (w *Workflow) Issue(ctx context.Context, tx *models.Transaction, sessionID string, score models.ScoreResult) (*Issued, error) {
	d := score.Decision
	if !d.RequiresVerification() {
		return nil, ErrVerificationNotRequired
	}
	if _, err := w.store.Get(ctx, sessionID, tx.ID); err == nil {
		return nil, ErrChallengePending
	} else if !errors.Is(err, ErrChallengeNotFound) {
		return nil, fmt.Errorf("lookup challenge: %w", err)
	}

	code, err := w.generate()
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), w.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash otp: %w", err)
	}

	c := &Challenge{
		SessionID:     sessionID,
		TransactionID: tx.ID,
		CodeHash:      hash,
		Decision:      d,
		Amount:        tx.Amount,
		Country:       tx.Country,
		State:         StateCodeIssued,
		IssuedAt:      w.now(),
		Transaction:   tx,
		Score:         score,
	}
	if err := w.store.Create(ctx, c); err != nil {
		return nil, err
	}
	w.metrics.RecordOTPIssued(d)

	if w.notifier != nil {
		if err := w.notifier.SendOTP(ctx, c, code); err != nil {
			// the code is still shown in the demo UI
			log.Printf("⚠️ Failed to deliver OTP for transaction %s: %v", tx.ID, err)
		}
	}
	return &Issued{Challenge: c, Code: code}, nil
}

// Pending reports the challenge awaiting a code, if any.
func (w *Workflow) Pending(ctx context.Context, sessionID, transactionID string) (*Challenge, error) {
	return w.store.Get(ctx, sessionID, transactionID)
}

// Verify consumes the pending challenge. A matching code ends in VERIFIED
// with APPROVED_AFTER_OTP; anything else ends in FAILED with BLOCK and
// returns ErrOtpMismatch alongside the outcome.
func (w *Workflow) Verify(ctx context.Context, sessionID, transactionID, code string) (*Outcome, error) {
	return w.VerifyAndCommit(ctx, sessionID, transactionID, code, nil)
}

// CommitFunc persists a verification outcome before it becomes final.
type CommitFunc func(ctx context.Context, out *Outcome) error

// VerifyAndCommit is Verify with a persistence step. The challenge is taken
// from the store, checked, and handed to commit; if commit fails the
// challenge is put back as CODE_ISSUED so the operator can retry.
func (w *Workflow) VerifyAndCommit(ctx context.Context, sessionID, transactionID, code string, commit CommitFunc) (*Outcome, error) {
	c, err := w.store.Take(ctx, sessionID, transactionID)
	if err != nil {
		return nil, err
	}

	out := &Outcome{State: StateFailed, FinalDecision: models.DecisionBlock, Challenge: c}
	if matches(c.CodeHash, code) {
		out.State = StateVerified
		out.FinalDecision = models.DecisionApprovedAfterOTP
	}

	if commit != nil {
		if err := commit(ctx, out); err != nil {
			w.restore(ctx, c)
			return nil, err
		}
	}

	c.State = out.State
	w.metrics.RecordOTPResult(out.State)
	if out.State == StateFailed {
		return out, ErrOtpMismatch
	}
	return out, nil
}

func (w *Workflow) restore(ctx context.Context, c *Challenge) {
	c.State = StateCodeIssued
	if err := w.store.Create(ctx, c); err != nil {
		log.Printf("⚠️ Failed to restore OTP challenge for transaction %s: %v", c.TransactionID, err)
	}
}

func matches(hash []byte, code string) bool {
	if code == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(code)) == nil
}
