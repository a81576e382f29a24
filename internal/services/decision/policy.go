// Package decision maps a fraud probability to a 0-100 risk score and the
// bank action taken on the transaction.
package decision

import (
	"fmt"
	"math"

	"fraudshield/internal/models"
)

// Score thresholds. Lower bounds are inclusive: 30 is VERIFY, 70 is BLOCK.
const (
	VerifyThreshold = 30
	BlockThreshold  = 70
)

// RiskScore converts a probability to an integer percentage.
// It panics on NaN or values outside [0, 1]; callers only ever pass
// scorer output, so such a value is a programming error.
func RiskScore(probability float64) int {
	if math.IsNaN(probability) || probability < 0 || probability > 1 {
		panic(fmt.Sprintf("decision: probability %v out of range [0,1]", probability))
	}
	return int(math.RoundToEven(probability * 100))
}

// ForScore applies the fixed three-bucket rule to a risk score.
func ForScore(score int) models.Decision {
	switch {
	case score < VerifyThreshold:
		return models.DecisionApprove
	case score < BlockThreshold:
		return models.DecisionVerify
	default:
		return models.DecisionBlock
	}
}

// Decide returns the risk score and decision for a probability.
func Decide(probability float64) (int, models.Decision) {
	score := RiskScore(probability)
	return score, ForScore(score)
}

// Result builds the scoring API response for a probability.
func Result(probability float64) models.ScoreResult {
	score, d := Decide(probability)
	return models.ScoreResult{
		FraudProbability: probability,
		RiskScore:        score,
		Decision:         d,
	}
}

// LevelFor buckets a score with the same thresholds as ForScore.
func LevelFor(score int) models.RiskLevel {
	switch ForScore(score) {
	case models.DecisionApprove:
		return models.RiskLow
	case models.DecisionVerify:
		return models.RiskMedium
	default:
		return models.RiskHigh
	}
}

// StatusIcon is the traffic-light marker shown in the ledger table.
func StatusIcon(score int) string {
	switch LevelFor(score) {
	case models.RiskLow:
		return "🟢"
	case models.RiskMedium:
		return "🟡"
	default:
		return "🔴"
	}
}

// RiskLabel is the icon plus level, e.g. "🟡 MEDIUM".
func RiskLabel(score int) string {
	return StatusIcon(score) + " " + string(LevelFor(score))
}
