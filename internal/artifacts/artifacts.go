// Package artifacts loads the exported (scaler, classifier) pair produced by
// the offline training job. Artifacts are read once at startup and shared
// read-only afterwards.
package artifacts

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

var (
	ErrEmptyScaler      = errors.New("scaler has no features")
	ErrLengthMismatch   = errors.New("artifact vector lengths differ")
	ErrDuplicateFeature = errors.New("duplicate feature name")
)

// Scaler is a per-feature standardization fit on the training data.
type Scaler struct {
	FeatureNames []string  `json:"feature_names"`
	Mean         []float64 `json:"mean"`
	Scale        []float64 `json:"scale"`
}

// Classifier is a fitted binary logistic-regression model.
type Classifier struct {
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

// Artifacts bundles the scaler and classifier used for scoring.
type Artifacts struct {
	Scaler     Scaler
	Classifier Classifier
}

// Load reads and validates both artifact files.
func Load(scalerPath, modelPath string) (*Artifacts, error) {
	var a Artifacts
	if err := readJSON(scalerPath, &a.Scaler); err != nil {
		return nil, fmt.Errorf("load scaler: %w", err)
	}
	if err := readJSON(modelPath, &a.Classifier); err != nil {
		return nil, fmt.Errorf("load classifier: %w", err)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// Validate checks the artifacts describe the same feature vector.
func (a *Artifacts) Validate() error {
	n := len(a.Scaler.FeatureNames)
	if n == 0 {
		return ErrEmptyScaler
	}
	if len(a.Scaler.Mean) != n || len(a.Scaler.Scale) != n {
		return fmt.Errorf("%w: scaler has %d names, %d means, %d scales",
			ErrLengthMismatch, n, len(a.Scaler.Mean), len(a.Scaler.Scale))
	}
	if len(a.Classifier.Coefficients) != n {
		return fmt.Errorf("%w: scaler has %d features, classifier has %d coefficients",
			ErrLengthMismatch, n, len(a.Classifier.Coefficients))
	}
	seen := make(map[string]struct{}, n)
	for _, name := range a.Scaler.FeatureNames {
		if _, ok := seen[name]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateFeature, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

func readJSON(path string, dest interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
