// Package metrics provides Prometheus instrumentation for the scoring API
// and the dashboard.
package metrics

import (
	"strconv"
	"time"

	"fraudshield/internal/models"
	"fraudshield/internal/services/verification"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fraudshield"

// Collector owns one registry so tests and both binaries stay independent.
type Collector struct {
	registry *prometheus.Registry

	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	predictions     *prometheus.CounterVec
	riskScores      prometheus.Histogram
	schemaErrors    prometheus.Counter
	otpIssued       *prometheus.CounterVec
	otpResults      *prometheus.CounterVec
	ledgerDecisions *prometheus.CounterVec
	fraudPrevented  prometheus.Counter
	upstreamErrors  prometheus.Counter
}

// New registers every metric on a fresh registry.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests by method, route, and status code.",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		predictions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "predictions_total",
				Help:      "Scored transactions by decision.",
			},
			[]string{"decision"},
		),
		riskScores: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "risk_score",
				Help:      "Distribution of risk scores returned by /predict.",
				Buckets:   []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
			},
		),
		schemaErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "schema_mismatch_total",
				Help:      "Requests rejected for missing or non-numeric features.",
			},
		),
		otpIssued: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "otp_issued_total",
				Help:      "OTP challenges issued by triggering decision.",
			},
			[]string{"decision"},
		),
		otpResults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "otp_results_total",
				Help:      "OTP verification results by terminal state.",
			},
			[]string{"state"},
		),
		ledgerDecisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ledger_final_decisions_total",
				Help:      "Completed transactions by final decision.",
			},
			[]string{"final_decision"},
		),
		fraudPrevented: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fraud_prevented_amount_total",
				Help:      "Sum of amounts of blocked transactions.",
			},
		),
		upstreamErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "scoring_api_unreachable_total",
				Help:      "Dashboard calls to the scoring API that failed.",
			},
		),
	}

	c.registry.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.predictions,
		c.riskScores,
		c.schemaErrors,
		c.otpIssued,
		c.otpResults,
		c.ledgerDecisions,
		c.fraudPrevented,
		c.upstreamErrors,
	)
	return c
}

// Handler serves the exposition format through fiber.
func (c *Collector) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{}))
}

// Middleware records request counts and latency per matched route.
func (c *Collector) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		status := ctx.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := ctx.Route().Path
		c.httpRequests.WithLabelValues(ctx.Method(), route, strconv.Itoa(status)).Inc()
		c.httpDuration.WithLabelValues(ctx.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// RecordPrediction counts a successful /predict response.
func (c *Collector) RecordPrediction(r models.ScoreResult) {
	c.predictions.WithLabelValues(string(r.Decision)).Inc()
	c.riskScores.Observe(float64(r.RiskScore))
}

// RecordSchemaMismatch counts a rejected /predict request.
func (c *Collector) RecordSchemaMismatch() {
	c.schemaErrors.Inc()
}

// RecordOTPIssued implements verification.MetricsCollector.
func (c *Collector) RecordOTPIssued(d models.Decision) {
	c.otpIssued.WithLabelValues(string(d)).Inc()
}

// RecordOTPResult implements verification.MetricsCollector.
func (c *Collector) RecordOTPResult(s verification.State) {
	c.otpResults.WithLabelValues(string(s)).Inc()
}

// RecordLedgerEntry counts a transaction whose decision is final.
func (c *Collector) RecordLedgerEntry(e *models.LedgerEntry) {
	c.ledgerDecisions.WithLabelValues(string(e.FinalDecision)).Inc()
	if e.FinalDecision == models.DecisionBlock {
		c.fraudPrevented.Add(e.Amount)
	}
}

// RecordUpstreamError counts a failed call to the scoring API.
func (c *Collector) RecordUpstreamError() {
	c.upstreamErrors.Inc()
}
