package repositories

import (
	"context"
	"fmt"

	"fraudshield/internal/models"
	"fraudshield/internal/services/ledger"

	"gorm.io/gorm"
)

// LedgerRepository persists ledger entries in PostgreSQL. It satisfies
// ledger.Store.
type LedgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a gorm-backed ledger repository.
func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Append inserts one entry; the database assigns Seq.
func (r *LedgerRepository) Append(ctx context.Context, entry *models.LedgerEntry) error {
	if err := r.insert(ctx, entry).Error; err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

func (r *LedgerRepository) insert(ctx context.Context, entry *models.LedgerEntry) *gorm.DB {
	return r.db.WithContext(ctx).Create(entry)
}

// List returns a session's entries in insertion order.
func (r *LedgerRepository) List(ctx context.Context, sessionID string) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	if err := r.sessionQuery(ctx, sessionID).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	return entries, nil
}

// Resolve updates the final decision of one transaction.
func (r *LedgerRepository) Resolve(ctx context.Context, sessionID, transactionID string, final models.Decision) (*models.LedgerEntry, error) {
	res := r.entryQuery(ctx, sessionID, transactionID).Update("final_decision", final)
	if res.Error != nil {
		return nil, fmt.Errorf("update ledger entry: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ledger.ErrEntryNotFound
	}

	var entry models.LedgerEntry
	if err := r.entryQuery(ctx, sessionID, transactionID).First(&entry).Error; err != nil {
		return nil, fmt.Errorf("load ledger entry: %w", err)
	}
	return &entry, nil
}

func (r *LedgerRepository) entryQuery(ctx context.Context, sessionID, transactionID string) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.LedgerEntry{}).
		Where("session_id = ? AND transaction_id = ?", sessionID, transactionID)
}

func (r *LedgerRepository) sessionQuery(ctx context.Context, sessionID string) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.LedgerEntry{}).
		Where("session_id = ?", sessionID).
		Order("seq ASC")
}
