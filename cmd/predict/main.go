// Command predict is an offline smoke test: it scores one random
// transaction with the saved artifacts, or through a running API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"fraudshield/internal/artifacts"
	"fraudshield/internal/client"
	"fraudshield/internal/config"
	"fraudshield/internal/models"
	"fraudshield/internal/services/decision"
	"fraudshield/internal/services/scoring"
	"fraudshield/internal/services/simulator"

	"github.com/google/uuid"
)

func main() {
	config.LoadEnv()
	cfg := config.LoadScoringConfig()

	scalerPath := flag.String("scaler", cfg.ScalerPath, "path to the scaler artifact")
	modelPath := flag.String("model", cfg.ModelPath, "path to the classifier artifact")
	apiURL := flag.String("api", "", "score through this scoring API instead of locally")
	flag.Parse()

	a, err := artifacts.Load(*scalerPath, *modelPath)
	if err != nil {
		log.Fatalf("Failed to load model artifacts: %v", err)
	}
	scorer, err := scoring.NewScorer(a)
	if err != nil {
		log.Fatalf("Failed to build scorer: %v", err)
	}

	features := simulator.RandomFeatures(scorer.FeatureNames(), nil)

	var result models.ScoreResult
	if *apiURL != "" {
		tx := &models.Transaction{ID: uuid.NewString(), Features: features}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		res, err := client.NewScoringClient(*apiURL, 10*time.Second).Predict(ctx, tx)
		if err != nil {
			log.Fatalf("Scoring API call failed: %v", err)
		}
		result = *res
	} else {
		p, err := scorer.Score(features)
		if err != nil {
			log.Fatalf("Scoring failed: %v", err)
		}
		result = decision.Result(p)
	}

	fmt.Printf("Fraud Probability: %.4f\n", result.FraudProbability)
	fmt.Printf("Risk Score: %d (%s)\n", result.RiskScore, decision.RiskLabel(result.RiskScore))
	fmt.Printf("Decision: %s\n", result.Decision)
}
