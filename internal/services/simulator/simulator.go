// Package simulator synthesizes scorer payloads for the dashboard. Real
// anonymized card features are not available in the demo, so Time and
// V1..V28 are drawn at random and only Amount comes from the operator.
package simulator

import (
	"fmt"
	"math/rand"

	"fraudshield/internal/models"
	"fraudshield/internal/validation"

	"github.com/google/uuid"
)

const (
	maxTime         = 100000.0
	latentFeatures  = 28
	latentLowerBand = -2.0
	latentUpperBand = 2.0
)

// Source is the random stream used for synthetic features.
type Source interface {
	Float64() float64
}

// Simulator builds transactions from sidebar input.
type Simulator struct {
	rnd Source
}

// New returns a simulator. A nil source uses the global generator.
func New(rnd Source) *Simulator {
	if rnd == nil {
		rnd = globalSource{}
	}
	return &Simulator{rnd: rnd}
}

// Build validates the input and attaches synthetic features.
func (s *Simulator) Build(in models.TransactionInput) (*models.Transaction, error) {
	if err := validation.ValidateTransactionInput(&in); err != nil {
		return nil, err
	}

	features := make(models.Features, latentFeatures+2)
	features["Time"] = s.rnd.Float64() * maxTime
	features["Amount"] = in.Amount
	for i := 1; i <= latentFeatures; i++ {
		features[fmt.Sprintf("V%d", i)] = latentLowerBand + s.rnd.Float64()*(latentUpperBand-latentLowerBand)
	}

	return &models.Transaction{
		ID:               uuid.NewString(),
		TransactionInput: in,
		Features:         features,
	}, nil
}

// RandomFeatures draws every named feature uniformly from [0, 1), the way
// the offline smoke test builds a transaction straight from the scaler.
func RandomFeatures(names []string, rnd Source) models.Features {
	if rnd == nil {
		rnd = globalSource{}
	}
	f := make(models.Features, len(names))
	for _, name := range names {
		f[name] = rnd.Float64()
	}
	return f
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }
