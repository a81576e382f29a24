package dashboard

import (
	"fraudshield/internal/models"
	"fraudshield/internal/services/verification"
)

// Outcome is what the dashboard shows for one submitted transaction.
type Outcome struct {
	TransactionID        string                  `json:"transaction_id"`
	Input                models.TransactionInput `json:"input"`
	FraudProbability     float64                 `json:"fraud_probability"`
	RiskScore            int                     `json:"risk_score"`
	RiskLabel            string                  `json:"risk"`
	Decision             models.Decision         `json:"decision"`
	VerificationRequired bool                    `json:"verification_required"`
	VerificationState    verification.State      `json:"verification_state"`
	// DemoOTP stands in for the SMS a real deployment would send.
	DemoOTP       string              `json:"demo_otp,omitempty"`
	FinalDecision models.Decision     `json:"final_decision,omitempty"`
	Entry         *models.LedgerEntry `json:"entry,omitempty"`
}

// MetricsCollector records dashboard outcomes.
type MetricsCollector interface {
	RecordLedgerEntry(entry *models.LedgerEntry)
	RecordUpstreamError()
}

type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordLedgerEntry(*models.LedgerEntry) {}
func (n *NoopMetricsCollector) RecordUpstreamError()                  {}
