// Command dashboard runs the operator API: sessions, simulated
// transactions, OTP verification and monitoring.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fraudshield/internal/client"
	"fraudshield/internal/config"
	"fraudshield/internal/metrics"
	"fraudshield/internal/repositories"
	"fraudshield/internal/repositories/cache"
	"fraudshield/internal/routes"
	"fraudshield/internal/services/dashboard"
	"fraudshield/internal/services/ledger"
	"fraudshield/internal/services/notification"
	"fraudshield/internal/services/session"
	"fraudshield/internal/services/simulator"
	"fraudshield/internal/services/verification"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadEnv()
	cfg := config.LoadDashboardConfig()

	if config.IsProduction() && cfg.SessionSecret == "fraudshield-dev-secret" {
		log.Fatal("SESSION_SECRET must be set in production")
	}

	var closers []func()
	defer func() {
		for _, c := range closers {
			c()
		}
	}()
	health := fiber.Map{
		"otp_backend":    cfg.OTPBackend,
		"ledger_backend": cfg.LedgerBackend,
		"scoring_api":    cfg.ScoringAPIURL,
	}

	otpStore, redisCache := buildOTPStore(cfg)
	if redisCache != nil {
		closers = append(closers, func() {
			if err := redisCache.Close(); err != nil {
				log.Printf("⚠️ Failed to close Redis connection: %v", err)
			}
		})
	}

	ledgerStore := buildLedgerStore(cfg, &closers)

	collector := metrics.New()
	workflow := verification.NewWorkflow(
		otpStore,
		notification.NewService(!config.IsProduction()),
		collector,
		verification.Config{HashCost: cfg.OTPHashCost},
	)
	svc := dashboard.NewService(
		simulator.New(nil),
		client.NewScoringClient(cfg.ScoringAPIURL, cfg.ClientTimeout),
		workflow,
		ledger.NewService(ledgerStore),
		collector,
	)

	app := fiber.New(fiber.Config{
		AppName:               "fraudshield-dashboard",
		DisableStartupMessage: config.IsProduction(),
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.SetupDashboardRoutes(app, routes.DashboardDeps{
		Sessions:    session.NewService(cfg.SessionSecret, cfg.SessionTTL),
		Dashboard:   svc,
		Metrics:     collector,
		RecentLimit: cfg.RecentLimit,
		Health: func() fiber.Map {
			out := fiber.Map{}
			for k, v := range health {
				out[k] = v
			}
			if redisCache != nil {
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				out["redis"] = "connected"
				if err := redisCache.HealthCheck(ctx); err != nil {
					out["redis"] = err.Error()
				}
				stats := redisCache.GetStats()
				out["redis_pool"] = fiber.Map{
					"hits":        stats.Hits,
					"misses":      stats.Misses,
					"timeouts":    stats.Timeouts,
					"total_conns": stats.TotalConns,
					"idle_conns":  stats.IdleConns,
				}
			}
			return out
		},
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down dashboard")
		if err := app.Shutdown(); err != nil {
			log.Printf("⚠️ Shutdown error: %v", err)
		}
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Printf("⚠️ Dashboard stopped: %v", err)
	}
}

func buildOTPStore(cfg config.DashboardConfig) (verification.Store, *cache.CacheService) {
	switch cfg.OTPBackend {
	case config.BackendRedis:
		redisCfg := cache.LoadRedisConfig()
		svc := cache.NewCacheService(cache.NewRedisClient(redisCfg), cfg.OTPTTL)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := svc.HealthCheck(ctx); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		log.Println("✅ Connected to Redis, OTP challenges stored in Redis")
		return cache.NewOTPStore(svc), svc
	case config.BackendMemory:
		return verification.NewMemoryStore(), nil
	default:
		log.Fatalf("Unknown OTP_BACKEND %q", cfg.OTPBackend)
		return nil, nil
	}
}

func buildLedgerStore(cfg config.DashboardConfig, closers *[]func()) ledger.Store {
	switch cfg.LedgerBackend {
	case config.BackendPostgres:
		db, err := repositories.InitDB(repositories.LoadDBConfig())
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		*closers = append(*closers, func() { repositories.CloseDB(db) })
		return repositories.NewLedgerRepository(db)
	case config.BackendMemory:
		return ledger.NewMemoryStore()
	default:
		log.Fatalf("Unknown LEDGER_BACKEND %q", cfg.LedgerBackend)
		return nil
	}
}
