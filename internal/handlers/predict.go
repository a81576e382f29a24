package handlers

import (
	"bytes"
	"encoding/json"

	"fraudshield/internal/models"
	"fraudshield/internal/services/decision"
	"fraudshield/internal/services/scoring"
	"fraudshield/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// PredictionMetrics records /predict outcomes.
type PredictionMetrics interface {
	RecordPrediction(r models.ScoreResult)
	RecordSchemaMismatch()
}

type noopPredictionMetrics struct{}

func (noopPredictionMetrics) RecordPrediction(models.ScoreResult) {}
func (noopPredictionMetrics) RecordSchemaMismatch()               {}

// PredictHandler serves the scoring API.
type PredictHandler struct {
	scorer  *scoring.Scorer
	metrics PredictionMetrics
}

func NewPredictHandler(scorer *scoring.Scorer, metrics PredictionMetrics) *PredictHandler {
	if metrics == nil {
		metrics = noopPredictionMetrics{}
	}
	return &PredictHandler{scorer: scorer, metrics: metrics}
}

// Root is the liveness banner at GET /.
func (h *PredictHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Fraud Detection API is running"})
}

// Predict scores one transaction. Unknown fields are ignored; every
// feature the scaler was fit on must be present and numeric.
func (h *PredictHandler) Predict(c *fiber.Ctx) error {
	var body map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil || body == nil {
		return response.BadRequest(c, "request body must be a JSON object")
	}

	features, err := h.scorer.ParseFeatures(body)
	if err != nil {
		h.metrics.RecordSchemaMismatch()
		return handleError(c, err)
	}
	p, err := h.scorer.Score(features)
	if err != nil {
		h.metrics.RecordSchemaMismatch()
		return handleError(c, err)
	}

	result := decision.Result(p)
	h.metrics.RecordPrediction(result)
	return c.JSON(result)
}
