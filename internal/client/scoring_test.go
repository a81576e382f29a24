package client

import (
	"context"
	"net"
	"testing"
	"time"

	apperrors "fraudshield/internal/errors"
	"fraudshield/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startAPI(t *testing.T, handler fiber.Handler) string {
	t.Helper()
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Post("/predict", handler)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })
	return "http://" + ln.Addr().String()
}

func testTx() *models.Transaction {
	return &models.Transaction{
		ID:               "tx-1",
		TransactionInput: models.TransactionInput{Amount: 100, Country: "India", Channel: "Online", CardType: "Debit"},
		Features:         models.Features{"Time": 1, "Amount": 100},
	}
}

func TestPredict(t *testing.T) {
	var got map[string]interface{}
	base := startAPI(t, func(c *fiber.Ctx) error {
		if err := c.BodyParser(&got); err != nil {
			return err
		}
		return c.JSON(models.ScoreResult{FraudProbability: 0.45, RiskScore: 45, Decision: models.DecisionVerify})
	})

	res, err := NewScoringClient(base+"/", 5*time.Second).Predict(context.Background(), testTx())
	require.NoError(t, err)
	assert.Equal(t, 45, res.RiskScore)
	assert.Equal(t, models.DecisionVerify, res.Decision)
	assert.Equal(t, 100.0, got["Amount"])
	assert.Equal(t, "India", got["country"])
}

func TestPredictErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler fiber.Handler
		wantErr error
	}{
		{
			name: "server error",
			handler: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "boom"})
			},
			wantErr: apperrors.ErrServiceUnreachable,
		},
		{
			name: "schema mismatch",
			handler: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "missing V1"})
			},
			wantErr: apperrors.ErrSchemaMismatch,
		},
		{
			name: "garbage body",
			handler: func(c *fiber.Ctx) error {
				return c.SendString("not json")
			},
			wantErr: apperrors.ErrServiceUnreachable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := startAPI(t, tt.handler)
			_, err := NewScoringClient(base, 5*time.Second).Predict(context.Background(), testTx())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPredictUnreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	_, err = NewScoringClient("http://"+addr, time.Second).Predict(context.Background(), testTx())
	assert.ErrorIs(t, err, apperrors.ErrServiceUnreachable)
}

func TestPredictCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewScoringClient("http://127.0.0.1:1", time.Second).Predict(ctx, testTx())
	assert.ErrorIs(t, err, apperrors.ErrServiceUnreachable)
	assert.ErrorIs(t, err, context.Canceled)
}
