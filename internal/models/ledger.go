package models

import "time"

// LedgerEntry is one scored transaction in a dashboard session.
type LedgerEntry struct {
	ID            string    `gorm:"primarykey;size:36" json:"id"`
	Seq           int64     `gorm:"autoIncrement;index" json:"-"`
	SessionID     string    `gorm:"size:36;not null;index" json:"session_id"`
	TransactionID string    `gorm:"size:36;not null;uniqueIndex" json:"transaction_id"`
	StatusIcon    string    `gorm:"not null" json:"status"`
	Amount        float64   `gorm:"not null" json:"amount"`
	Country       string    `gorm:"not null" json:"country"`
	Channel       string    `json:"channel"`
	International bool      `json:"international"`
	CardType      string    `json:"card_type"`
	Probability   float64   `gorm:"not null" json:"probability"`
	RiskScore     int       `gorm:"not null" json:"risk_score"`
	RiskLabel     string    `gorm:"not null" json:"risk"`
	Decision      Decision  `gorm:"not null" json:"decision"`
	FinalDecision Decision  `gorm:"not null" json:"final_decision"`
	Features      JSON      `gorm:"type:jsonb" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
}

// RiskTrend counts entries per risk bucket.
type RiskTrend struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

// LedgerAggregate holds the monitoring figures of a session.
type LedgerAggregate struct {
	TotalTx        int       `json:"total_tx"`
	Approved       int       `json:"approved"`
	Review         int       `json:"review"`
	Blocked        int       `json:"blocked"`
	FraudPrevented float64   `json:"fraud_prevented"`
	RiskTrend      RiskTrend `json:"risk_trend"`
}
