// Package client calls the scoring API from the dashboard.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	apperrors "fraudshield/internal/errors"
	"fraudshield/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ScoringClient posts transactions to POST /predict. Failures are reported
// once and never retried.
type ScoringClient struct {
	baseURL string
	timeout time.Duration
}

// NewScoringClient creates a client for the API rooted at baseURL.
func NewScoringClient(baseURL string, timeout time.Duration) *ScoringClient {
	return &ScoringClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// Predict scores one transaction.
func (c *ScoringClient) Predict(ctx context.Context, tx *models.Transaction) (*models.ScoreResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrServiceUnreachable, err)
	}

	agent := fiber.Post(c.baseURL + "/predict").JSON(tx.Payload())
	if c.timeout > 0 {
		agent.Timeout(c.timeout)
	}

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrServiceUnreachable, errs[0])
	}

	switch status {
	case fiber.StatusOK:
	case fiber.StatusUnprocessableEntity:
		var eb errorBody
		_ = json.Unmarshal(body, &eb)
		return nil, fmt.Errorf("%w: %s", apperrors.ErrSchemaMismatch, eb.Error)
	default:
		return nil, fmt.Errorf("%w: scoring API returned status %d", apperrors.ErrServiceUnreachable, status)
	}

	var result models.ScoreResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", apperrors.ErrServiceUnreachable, err)
	}
	return &result, nil
}
