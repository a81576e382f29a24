// Package routes wires handlers onto the scoring and dashboard apps.
package routes

import (
	"fraudshield/internal/handlers"
	"fraudshield/internal/metrics"
	"fraudshield/internal/middleware"
	"fraudshield/internal/models"
	"fraudshield/internal/services/dashboard"
	"fraudshield/internal/services/scoring"
	"fraudshield/internal/services/session"

	"github.com/gofiber/fiber/v2"
)

// ScoringDeps are the collaborators of the scoring API.
type ScoringDeps struct {
	Scorer  *scoring.Scorer
	Metrics *metrics.Collector
	// PredictLimiter guards POST /predict when set.
	PredictLimiter fiber.Handler
}

// SetupScoringRoutes registers GET /, /health, POST /predict and /metrics.
func SetupScoringRoutes(app *fiber.App, deps ScoringDeps) {
	var predictMetrics handlers.PredictionMetrics
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
		app.Get("/metrics", deps.Metrics.Handler())
		predictMetrics = deps.Metrics
	}

	predictHandler := handlers.NewPredictHandler(deps.Scorer, predictMetrics)

	app.Get("/", predictHandler.Root)
	app.Get("/health", handlers.HealthCheck(func() fiber.Map {
		return fiber.Map{"features": len(deps.Scorer.FeatureNames())}
	}))

	predict := []fiber.Handler{predictHandler.Predict}
	if deps.PredictLimiter != nil {
		predict = append([]fiber.Handler{deps.PredictLimiter}, predict...)
	}
	app.Post("/predict", predict...)
}

// DashboardDeps are the collaborators of the dashboard API.
type DashboardDeps struct {
	Sessions    *session.Service
	Dashboard   *dashboard.Service
	Metrics     *metrics.Collector
	RecentLimit int
	// Health adds backend details to /health.
	Health func() fiber.Map
}

// SetupDashboardRoutes registers the session and transaction endpoints.
func SetupDashboardRoutes(app *fiber.App, deps DashboardDeps) {
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
		app.Get("/metrics", deps.Metrics.Handler())
	}

	app.Get("/health", handlers.HealthCheck(deps.Health))

	sessionHandler := handlers.NewSessionHandler(deps.Sessions)
	dashboardHandler := handlers.NewDashboardHandler(deps.Dashboard, deps.RecentLimit)
	auth := middleware.NewAuthMiddleware(deps.Sessions)

	api := app.Group("/api")
	api.Post("/session", sessionHandler.Create)

	api.Post("/transactions", auth.Handler, middleware.RequireScope(models.ScopeTransactionWrite), dashboardHandler.SubmitTransaction)
	api.Post("/transactions/:id/verify", auth.Handler, middleware.RequireScope(models.ScopeTransactionWrite), dashboardHandler.VerifyTransaction)
	api.Get("/transactions/:id/verification", auth.Handler, middleware.RequireScope(models.ScopeTransactionRead), dashboardHandler.PendingVerification)
	api.Get("/transactions", auth.Handler, middleware.RequireScope(models.ScopeTransactionRead), dashboardHandler.RecentTransactions)
	api.Get("/monitoring", auth.Handler, middleware.RequireScope(models.ScopeMonitoringRead), dashboardHandler.Monitoring)
}
