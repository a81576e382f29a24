package models

import "strings"

// Decision is the bank action taken on a scored transaction.
type Decision string

const (
	DecisionApprove          Decision = "APPROVE"
	DecisionVerify           Decision = "VERIFY"
	DecisionBlock            Decision = "BLOCK"
	DecisionApprovedAfterOTP Decision = "APPROVED_AFTER_OTP"
)

// RequiresVerification reports whether an OTP step applies.
func (d Decision) RequiresVerification() bool {
	return strings.Contains(string(d), string(DecisionVerify)) ||
		strings.Contains(string(d), string(DecisionBlock))
}

// RiskLevel buckets a risk score for display.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// ScoreResult is the response of the scoring API.
type ScoreResult struct {
	FraudProbability float64  `json:"fraud_probability"`
	RiskScore        int      `json:"risk_score"`
	Decision         Decision `json:"decision"`
}
