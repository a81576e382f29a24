// Package scoring turns raw transaction features into a fraud probability
// using the exported standard scaler and logistic-regression classifier.
package scoring

import (
	"encoding/json"
	"math"

	"fraudshield/internal/artifacts"
	"fraudshield/internal/models"
)

// Scorer is safe for concurrent use; it never mutates its artifacts.
type Scorer struct {
	names     []string
	mean      []float64
	scale     []float64
	weights   []float64
	intercept float64
}

// NewScorer copies the artifact vectors so later edits cannot leak in.
func NewScorer(a *artifacts.Artifacts) (*Scorer, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	s := &Scorer{
		names:     append([]string(nil), a.Scaler.FeatureNames...),
		mean:      append([]float64(nil), a.Scaler.Mean...),
		scale:     append([]float64(nil), a.Scaler.Scale...),
		weights:   append([]float64(nil), a.Classifier.Coefficients...),
		intercept: a.Classifier.Intercept,
	}
	for i, sc := range s.scale {
		// constant training columns are exported with scale 0
		if sc == 0 {
			s.scale[i] = 1
		}
	}
	return s, nil
}

// FeatureNames returns the ordered feature list the scaler was fit on.
func (s *Scorer) FeatureNames() []string {
	return append([]string(nil), s.names...)
}

// Score returns P(fraud) for the given features. Extra features are
// ignored; any missing required feature fails with a *SchemaError.
func (s *Scorer) Score(features models.Features) (float64, error) {
	var missing []string
	for _, name := range s.names {
		if _, ok := features[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return 0, &SchemaError{Missing: missing}
	}

	z := s.intercept
	for i, name := range s.names {
		z += s.weights[i] * (features[name] - s.mean[i]) / s.scale[i]
	}
	return sigmoid(z), nil
}

// ParseFeatures extracts the required numeric features from a decoded JSON
// object. Unknown keys are dropped.
func (s *Scorer) ParseFeatures(raw map[string]interface{}) (models.Features, error) {
	features := make(models.Features, len(s.names))
	schemaErr := &SchemaError{}
	for _, name := range s.names {
		v, ok := raw[name]
		if !ok || v == nil {
			schemaErr.Missing = append(schemaErr.Missing, name)
			continue
		}
		f, ok := toFloat(v)
		if !ok {
			schemaErr.Invalid = append(schemaErr.Invalid, name)
			continue
		}
		features[name] = f
	}
	if len(schemaErr.Missing) > 0 || len(schemaErr.Invalid) > 0 {
		return nil, schemaErr
	}
	return features, nil
}

func toFloat(v interface{}) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
