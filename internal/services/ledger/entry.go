package ledger

import (
	"math"

	"fraudshield/internal/models"
	"fraudshield/internal/services/decision"
)

// NewEntry builds the ledger row of a scored transaction.
func NewEntry(sessionID string, tx *models.Transaction, score models.ScoreResult, final models.Decision) *models.LedgerEntry {
	return &models.LedgerEntry{
		SessionID:     sessionID,
		TransactionID: tx.ID,
		StatusIcon:    decision.StatusIcon(score.RiskScore),
		Amount:        tx.Amount,
		Country:       tx.Country,
		Channel:       tx.Channel,
		International: tx.International,
		CardType:      tx.CardType,
		Probability:   math.Round(score.FraudProbability*10000) / 10000,
		RiskScore:     score.RiskScore,
		RiskLabel:     decision.RiskLabel(score.RiskScore),
		Decision:      score.Decision,
		FinalDecision: final,
		Features:      models.FeaturesJSON(tx.Features),
	}
}
