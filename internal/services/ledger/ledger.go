// Package ledger keeps the history of scored transactions per dashboard
// session and derives the monitoring figures from it. Entries are only
// appended; the one later change is resolving an OTP-pending entry.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fraudshield/internal/models"
	"fraudshield/internal/services/decision"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultRecentLimit is the size of the recent-transactions table.
const DefaultRecentLimit = 10

var (
	ErrMissingSession = errors.New("ledger entry has no session")
	ErrEntryNotFound  = errors.New("ledger entry not found")
)

// Store persists entries in insertion order.
type Store interface {
	Append(ctx context.Context, entry *models.LedgerEntry) error
	List(ctx context.Context, sessionID string) ([]models.LedgerEntry, error)
	// Resolve replaces the final decision of an existing entry and returns
	// the updated row, or ErrEntryNotFound.
	Resolve(ctx context.Context, sessionID, transactionID string, final models.Decision) (*models.LedgerEntry, error)
}

// Service records entries and recomputes aggregates on every read.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates a ledger service over the given store.
func NewService(store Store) *Service {
	if store == nil {
		panic("store is required")
	}
	return &Service{store: store, now: time.Now}
}

// Record appends a scored transaction, stamping its id and time.
func (s *Service) Record(ctx context.Context, entry *models.LedgerEntry) error {
	if entry.SessionID == "" {
		return ErrMissingSession
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}
	if err := s.store.Append(ctx, entry); err != nil {
		return fmt.Errorf("append ledger entry: %w", err)
	}
	return nil
}

// Resolve sets the final decision of a transaction recorded while its OTP
// was pending.
func (s *Service) Resolve(ctx context.Context, sessionID, transactionID string, final models.Decision) (*models.LedgerEntry, error) {
	entry, err := s.store.Resolve(ctx, sessionID, transactionID, final)
	if err != nil {
		return nil, fmt.Errorf("resolve ledger entry: %w", err)
	}
	return entry, nil
}

// Recent returns the last n entries of a session, oldest first.
func (s *Service) Recent(ctx context.Context, sessionID string, n int) ([]models.LedgerEntry, error) {
	if n <= 0 {
		n = DefaultRecentLimit
	}
	entries, err := s.store.List(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}
	if len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return entries, nil
}

// Aggregate summarizes the full ledger of a session.
func (s *Service) Aggregate(ctx context.Context, sessionID string) (*models.LedgerAggregate, error) {
	entries, err := s.store.List(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}
	agg := Summarize(entries)
	return &agg, nil
}

// Summarize computes the monitoring figures in one pass. Blocked and
// review are matched on the final decision text, so an entry approved
// after OTP counts as approved.
func Summarize(entries []models.LedgerEntry) models.LedgerAggregate {
	var agg models.LedgerAggregate
	prevented := decimal.Zero
	for _, e := range entries {
		agg.TotalTx++
		final := string(e.FinalDecision)
		switch {
		case strings.Contains(final, string(models.DecisionBlock)):
			agg.Blocked++
			prevented = prevented.Add(decimal.NewFromFloat(e.Amount))
		case strings.Contains(final, string(models.DecisionVerify)):
			agg.Review++
		}

		switch decision.LevelFor(e.RiskScore) {
		case models.RiskLow:
			agg.RiskTrend.Low++
		case models.RiskMedium:
			agg.RiskTrend.Medium++
		default:
			agg.RiskTrend.High++
		}
	}
	agg.Approved = agg.TotalTx - agg.Blocked - agg.Review
	agg.FraudPrevented = prevented.InexactFloat64()
	return agg
}
