package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
)

// ErrInvalidModel is returned when a model artifact cannot be used.
var ErrInvalidModel = errors.New("invalid classifier model")

// LinearModel is a standardised logistic regression exported from the training pipeline.
// Each feature is scaled as (x - mean) / scale before the weighted sum.
type LinearModel struct {
	Mean      []float64 `json:"mean"`
	Scale     []float64 `json:"scale"`
	Coef      []float64 `json:"coef"`
	Intercept float64   `json:"intercept"`
	Threshold float64   `json:"threshold"`
}

// LoadLinearModel reads a JSON model artifact from path and validates it.
func LoadLinearModel(path string) (*LinearModel, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model %s: %w", path, err)
	}

	var model LinearModel
	if err = json.Unmarshal(raw, &model); err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %w", ErrInvalidModel, path, err)
	}

	if err = model.Validate(); err != nil {
		return nil, err
	}

	return &model, nil
}

// Validate checks that the model matches the feature vector layout.
func (m *LinearModel) Validate() error {
	if len(m.Mean) != FeatureCount || len(m.Scale) != FeatureCount || len(m.Coef) != FeatureCount {
		return fmt.Errorf("%w: expected %d means, scales and coefficients, got %d/%d/%d",
			ErrInvalidModel, FeatureCount, len(m.Mean), len(m.Scale), len(m.Coef))
	}

	for i, s := range m.Scale {
		if s == 0 || math.IsNaN(s) {
			return fmt.Errorf("%w: scale of feature %d must be non-zero", ErrInvalidModel, i)
		}
	}

	if m.Threshold <= 0 || m.Threshold >= 1 {
		return fmt.Errorf("%w: threshold %v must be in (0, 1)", ErrInvalidModel, m.Threshold)
	}

	return nil
}

// Probability returns the model's probability that the features describe suspicious behavior.
func (m *LinearModel) Probability(features Features) (float64, error) {
	if len(features) != len(m.Coef) {
		return 0, fmt.Errorf("expected %d features, got %d", len(m.Coef), len(features))
	}

	z := m.Intercept
	for i, x := range features {
		z += m.Coef[i] * (x - m.Mean[i]) / m.Scale[i]
	}

	return 1 / (1 + math.Exp(-z)), nil
}

// Predict returns 1 when the probability reaches the model threshold.
func (m *LinearModel) Predict(_ context.Context, features Features) (int, error) {
	p, err := m.Probability(features)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrClassifierUnavailable, err)
	}

	if p >= m.Threshold {
		return PredictionSuspicious, nil
	}

	return PredictionNormal, nil
}
