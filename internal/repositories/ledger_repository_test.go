package repositories

import (
	"context"
	"strings"
	"testing"
	"time"

	"fraudshield/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=postgres dbname=fraudshield sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func TestLedgerRepository_ListQuery(t *testing.T) {
	repo := NewLedgerRepository(dryRunDB(t))

	var entries []models.LedgerEntry
	stmt := repo.sessionQuery(context.Background(), "s1").Find(&entries).Statement

	assert.Equal(t, `SELECT * FROM "ledger_entries" WHERE session_id = $1 ORDER BY seq ASC`, stmt.SQL.String())
	assert.Equal(t, []interface{}{"s1"}, stmt.Vars)
}

func TestLedgerRepository_AppendStatement(t *testing.T) {
	db := dryRunDB(t)
	entry := &models.LedgerEntry{
		ID:            "e1",
		SessionID:     "s1",
		TransactionID: "tx1",
		StatusIcon:    "🟢",
		Amount:        120,
		Country:       "India",
		FinalDecision: models.DecisionApprove,
		CreatedAt:     time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return NewLedgerRepository(tx).insert(context.Background(), entry)
	})

	require.True(t, strings.HasPrefix(sql, `INSERT INTO "ledger_entries" (`), sql)
	columns := sql[:strings.Index(sql, ") VALUES")]
	assert.NotContains(t, columns, `"seq"`)
	assert.Contains(t, columns, `"transaction_id"`)
	assert.Contains(t, sql, `'tx1'`)
	assert.True(t, strings.HasSuffix(sql, `RETURNING "seq"`), sql)
}

func TestLedgerRepository_ResolveStatement(t *testing.T) {
	db := dryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return NewLedgerRepository(tx).
			entryQuery(context.Background(), "s1", "tx1").
			Update("final_decision", models.DecisionApprovedAfterOTP)
	})

	assert.True(t, strings.HasPrefix(sql, `UPDATE "ledger_entries" SET "final_decision"='APPROVED_AFTER_OTP'`), sql)
	assert.Contains(t, sql, `WHERE session_id = 's1' AND transaction_id = 'tx1'`)
}
