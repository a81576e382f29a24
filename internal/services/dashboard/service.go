// Package dashboard runs the operator flow: simulate a transaction, score
// it through the API, apply the OTP step when needed and keep the ledger.
package dashboard

import (
	"context"
	"errors"
	"fmt"

	apperrors "fraudshield/internal/errors"
	"fraudshield/internal/models"
	"fraudshield/internal/services/decision"
	"fraudshield/internal/services/ledger"
	"fraudshield/internal/services/simulator"
	"fraudshield/internal/services/verification"
)

// Scorer is the scoring API as seen by the dashboard.
type Scorer interface {
	Predict(ctx context.Context, tx *models.Transaction) (*models.ScoreResult, error)
}

// Service orchestrates one dashboard session's transactions.
type Service struct {
	simulator *simulator.Simulator
	scorer    Scorer
	workflow  *verification.Workflow
	ledger    *ledger.Service
	metrics   MetricsCollector
}

func NewService(
	sim *simulator.Simulator,
	scorer Scorer,
	workflow *verification.Workflow,
	ledgerService *ledger.Service,
	metrics MetricsCollector,
) *Service {
	if sim == nil {
		panic("simulator is required")
	}
	if scorer == nil {
		panic("scorer is required")
	}
	if workflow == nil {
		panic("verification workflow is required")
	}
	if ledgerService == nil {
		panic("ledger service is required")
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	return &Service{
		simulator: sim,
		scorer:    scorer,
		workflow:  workflow,
		ledger:    ledgerService,
		metrics:   metrics,
	}
}

// Submit scores a new transaction and appends it to the ledger with the
// scored decision. APPROVE is final at once; VERIFY and BLOCK stay open
// until the operator enters the code.
func (s *Service) Submit(ctx context.Context, sessionID string, in models.TransactionInput) (*Outcome, error) {
	tx, err := s.simulator.Build(in)
	if err != nil {
		return nil, err
	}

	score, err := s.scorer.Predict(ctx, tx)
	if err != nil {
		if errors.Is(err, apperrors.ErrServiceUnreachable) {
			s.metrics.RecordUpstreamError()
		}
		return nil, fmt.Errorf("score transaction: %w", err)
	}

	out := newOutcome(tx, *score)
	if !score.Decision.RequiresVerification() {
		entry, err := s.record(ctx, sessionID, tx, *score)
		if err != nil {
			return nil, err
		}
		s.metrics.RecordLedgerEntry(entry)
		out.FinalDecision = score.Decision
		out.Entry = entry
		return out, nil
	}

	entry, err := s.record(ctx, sessionID, tx, *score)
	if err != nil {
		return nil, err
	}
	issued, err := s.workflow.Issue(ctx, tx, sessionID, *score)
	if err != nil {
		return nil, fmt.Errorf("issue otp: %w", err)
	}
	out.VerificationRequired = true
	out.VerificationState = issued.Challenge.State
	out.DemoOTP = issued.Code
	out.Entry = entry
	return out, nil
}

// Verify checks the code for a pending transaction and resolves its ledger
// entry. A wrong code returns ErrOtpMismatch together with the BLOCK
// outcome. The challenge stays pending when the ledger cannot be updated.
func (s *Service) Verify(ctx context.Context, sessionID, transactionID, code string) (*Outcome, error) {
	var entry *models.LedgerEntry
	result, verr := s.workflow.VerifyAndCommit(ctx, sessionID, transactionID, code,
		func(ctx context.Context, res *verification.Outcome) error {
			resolved, err := s.ledger.Resolve(ctx, sessionID, transactionID, res.FinalDecision)
			if err != nil {
				return err
			}
			entry = resolved
			return nil
		})
	if verr != nil && !errors.Is(verr, verification.ErrOtpMismatch) {
		return nil, verr
	}
	s.metrics.RecordLedgerEntry(entry)

	c := result.Challenge
	out := newOutcome(challengeTx(c), c.Score)
	out.VerificationRequired = true
	out.VerificationState = result.State
	out.FinalDecision = result.FinalDecision
	out.Entry = entry
	return out, verr
}

// Pending returns the transaction still waiting for its code. The code
// itself is not repeated.
func (s *Service) Pending(ctx context.Context, sessionID, transactionID string) (*Outcome, error) {
	c, err := s.workflow.Pending(ctx, sessionID, transactionID)
	if err != nil {
		return nil, err
	}
	out := newOutcome(challengeTx(c), c.Score)
	out.VerificationRequired = true
	out.VerificationState = c.State
	return out, nil
}

// Recent lists the latest ledger entries of a session, oldest first.
func (s *Service) Recent(ctx context.Context, sessionID string, limit int) ([]models.LedgerEntry, error) {
	return s.ledger.Recent(ctx, sessionID, limit)
}

// Summary returns the monitoring aggregates of a session.
func (s *Service) Summary(ctx context.Context, sessionID string) (*models.LedgerAggregate, error) {
	return s.ledger.Aggregate(ctx, sessionID)
}

func (s *Service) record(ctx context.Context, sessionID string, tx *models.Transaction, score models.ScoreResult) (*models.LedgerEntry, error) {
	entry := ledger.NewEntry(sessionID, tx, score, score.Decision)
	if err := s.ledger.Record(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func challengeTx(c *verification.Challenge) *models.Transaction {
	if c.Transaction != nil {
		return c.Transaction
	}
	return &models.Transaction{
		ID:               c.TransactionID,
		TransactionInput: models.TransactionInput{Amount: c.Amount, Country: c.Country},
	}
}

func newOutcome(tx *models.Transaction, score models.ScoreResult) *Outcome {
	return &Outcome{
		TransactionID:     tx.ID,
		Input:             tx.TransactionInput,
		FraudProbability:  score.FraudProbability,
		RiskScore:         score.RiskScore,
		RiskLabel:         decision.RiskLabel(score.RiskScore),
		Decision:          score.Decision,
		VerificationState: verification.StateNone,
	}
}
