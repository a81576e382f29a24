package routes

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fraudshield/internal/artifacts"
	"fraudshield/internal/client"
	"fraudshield/internal/metrics"
	"fraudshield/internal/services/dashboard"
	"fraudshield/internal/services/ledger"
	"fraudshield/internal/services/scoring"
	"fraudshield/internal/services/session"
	"fraudshield/internal/services/simulator"
	"fraudshield/internal/services/verification"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Only Amount drives the score: 2 → 5 (APPROVE), 5 → 50 (VERIFY), 8 → 95 (BLOCK).
func amountScorer(t *testing.T) *scoring.Scorer {
	t.Helper()
	s, err := scoring.NewScorer(&artifacts.Artifacts{
		Scaler:     artifacts.Scaler{FeatureNames: []string{"Amount"}, Mean: []float64{0}, Scale: []float64{1}},
		Classifier: artifacts.Classifier{Coefficients: []float64{1}, Intercept: -5},
	})
	require.NoError(t, err)
	return s
}

func startScoringAPI(t *testing.T) string {
	t.Helper()
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	SetupScoringRoutes(app, ScoringDeps{Scorer: amountScorer(t), Metrics: metrics.New()})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })
	return "http://" + ln.Addr().String()
}

type call struct {
	app   *fiber.App
	token string
}

func (c call) do(t *testing.T, method, path, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.app.Test(req, 5000)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func TestScoringRoutes(t *testing.T) {
	app := fiber.New()
	SetupScoringRoutes(app, ScoringDeps{Scorer: amountScorer(t), Metrics: metrics.New()})
	c := call{app: app}

	status, body := c.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 1.0, body["features"])

	status, body = c.do(t, http.MethodPost, "/predict", `{"Amount": 8}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "BLOCK", body["decision"])

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), `fraudshield_predictions_total{decision="BLOCK"} 1`)
}

func TestDashboardEndToEnd(t *testing.T) {
	base := startScoringAPI(t)

	sessions := session.NewService("secret", time.Hour)
	collector := metrics.New()
	workflow := verification.NewWorkflow(verification.NewMemoryStore(), nil, collector, verification.Config{HashCost: bcrypt.MinCost})
	svc := dashboard.NewService(
		simulator.New(nil),
		client.NewScoringClient(base, 5*time.Second),
		workflow,
		ledger.NewService(ledger.NewMemoryStore()),
		collector,
	)

	app := fiber.New()
	SetupDashboardRoutes(app, DashboardDeps{Sessions: sessions, Dashboard: svc, Metrics: collector})

	anon := call{app: app}
	status, _ := anon.do(t, http.MethodGet, "/api/monitoring", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, body := anon.do(t, http.MethodPost, "/api/session", "")
	require.Equal(t, fiber.StatusCreated, status)
	c := call{app: app, token: body["data"].(map[string]interface{})["token"].(string)}

	submit := func(amount string) map[string]interface{} {
		_, body := c.do(t, http.MethodPost, "/api/transactions",
			`{"amount": `+amount+`, "country": "India", "channel": "Online", "international": false, "card_type": "Debit"}`)
		return body
	}

	// low risk goes straight to the ledger
	approved := submit("2")
	assert.Equal(t, "APPROVE", approved["final_decision"])

	// medium risk, correct code
	pending := submit("5")
	require.Equal(t, true, pending["verification_required"])
	status, body = c.do(t, http.MethodPost, "/api/transactions/"+pending["transaction_id"].(string)+"/verify",
		`{"otp": "`+pending["demo_otp"].(string)+`"}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "APPROVED_AFTER_OTP", body["final_decision"])

	// high risk, wrong code
	blocked := submit("8")
	require.Equal(t, "BLOCK", blocked["decision"])
	wrong := "000000"
	if blocked["demo_otp"] == wrong {
		wrong = "000001"
	}
	status, _ = c.do(t, http.MethodPost, "/api/transactions/"+blocked["transaction_id"].(string)+"/verify", `{"otp": "`+wrong+`"}`)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, body = c.do(t, http.MethodGet, "/api/monitoring", "")
	require.Equal(t, fiber.StatusOK, status)
	agg := body["data"].(map[string]interface{})
	assert.Equal(t, 3.0, agg["total_tx"])
	assert.Equal(t, 2.0, agg["approved"])
	assert.Equal(t, 0.0, agg["review"])
	assert.Equal(t, 1.0, agg["blocked"])
	assert.Equal(t, 8.0, agg["fraud_prevented"])

	// a second session starts with an empty ledger
	_, body = anon.do(t, http.MethodPost, "/api/session", "")
	other := call{app: app, token: body["data"].(map[string]interface{})["token"].(string)}
	_, body = other.do(t, http.MethodGet, "/api/monitoring", "")
	assert.Equal(t, 0.0, body["data"].(map[string]interface{})["total_tx"])
}
