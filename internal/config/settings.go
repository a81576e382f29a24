package config

import (
	"strings"
	"time"
)

// Backend names accepted by OTP_BACKEND and LEDGER_BACKEND.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// ScoringConfig holds the settings of the scoring API process.
type ScoringConfig struct {
	Port           string
	ScalerPath     string
	ModelPath      string
	CORSOrigins    string
	PredictLimit   int
	PredictWindow  time.Duration
	MetricsEnabled bool
}

// DashboardConfig holds the settings of the dashboard process.
type DashboardConfig struct {
	Port          string
	ScoringAPIURL string
	ClientTimeout time.Duration
	SessionSecret string
	SessionTTL    time.Duration
	OTPBackend    string
	OTPTTL        time.Duration
	OTPHashCost   int
	LedgerBackend string
	RecentLimit   int
	CORSOrigins   string
}

// LoadScoringConfig reads the scoring API settings from the environment.
func LoadScoringConfig() ScoringConfig {
	return ScoringConfig{
		Port:           GetEnv("PORT", "8000"),
		ScalerPath:     GetEnv("SCALER_PATH", "models/scaler.json"),
		ModelPath:      GetEnv("MODEL_PATH", "models/logistic_model.json"),
		CORSOrigins:    strings.Join(GetListEnv("CORS_ORIGINS", []string{"http://localhost:8501"}), ","),
		PredictLimit:   GetIntEnv("PREDICT_RATE_LIMIT", 0),
		PredictWindow:  GetDurationEnv("PREDICT_RATE_WINDOW", time.Minute),
		MetricsEnabled: GetEnv("METRICS_ENABLED", "true") == "true",
	}
}

// LoadDashboardConfig reads the dashboard settings from the environment.
func LoadDashboardConfig() DashboardConfig {
	return DashboardConfig{
		Port:          GetEnv("DASHBOARD_PORT", "8501"),
		ScoringAPIURL: GetEnv("SCORING_API_URL", "http://127.0.0.1:8000"),
		ClientTimeout: GetDurationEnv("SCORING_API_TIMEOUT", 10*time.Second),
		SessionSecret: GetEnv("SESSION_SECRET", "fraudshield-dev-secret"),
		SessionTTL:    GetDurationEnv("SESSION_TTL", 12*time.Hour),
		OTPBackend:    GetEnv("OTP_BACKEND", BackendMemory),
		OTPTTL:        GetDurationEnv("OTP_TTL", 0),
		OTPHashCost:   GetIntEnv("OTP_HASH_COST", 10),
		LedgerBackend: GetEnv("LEDGER_BACKEND", BackendMemory),
		RecentLimit:   GetIntEnv("RECENT_LIMIT", 10),
		CORSOrigins:   strings.Join(GetListEnv("CORS_ORIGINS", []string{"http://localhost:5173"}), ","),
	}
}
