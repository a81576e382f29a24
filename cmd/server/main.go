// Command server runs the fraud scoring API.
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"fraudshield/internal/artifacts"
	"fraudshield/internal/config"
	"fraudshield/internal/metrics"
	"fraudshield/internal/middleware"
	"fraudshield/internal/routes"
	"fraudshield/internal/services/scoring"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadEnv()
	cfg := config.LoadScoringConfig()

	// Artifacts are loaded once and shared read-only by every request.
	a, err := artifacts.Load(cfg.ScalerPath, cfg.ModelPath)
	if err != nil {
		log.Fatalf("Failed to load model artifacts: %v", err)
	}
	scorer, err := scoring.NewScorer(a)
	if err != nil {
		log.Fatalf("Failed to build scorer: %v", err)
	}
	log.Printf("✅ Loaded scaler and classifier (%d features)", len(scorer.FeatureNames()))

	app := fiber.New(fiber.Config{
		AppName:               "fraudshield-api",
		DisableStartupMessage: config.IsProduction(),
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	deps := routes.ScoringDeps{Scorer: scorer}
	if cfg.MetricsEnabled {
		deps.Metrics = metrics.New()
	}
	if cfg.PredictLimit > 0 {
		deps.PredictLimiter = middleware.RateLimit(cfg.PredictLimit, cfg.PredictWindow)
	}
	routes.SetupScoringRoutes(app, deps)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down scoring API")
		if err := app.Shutdown(); err != nil {
			log.Printf("⚠️ Shutdown error: %v", err)
		}
	}()

	log.Fatal(app.Listen(":" + cfg.Port))
}
