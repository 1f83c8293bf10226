package classifier

import (
	"errors"
	"fmt"
	"log/slog"
)

// Type represents the kind of behavioral classifier.
type Type string

const (
	// TypeNone disables behavioral classification; results are geometric only.
	TypeNone Type = "none"
	// TypeRemote asks a model server over HTTP.
	TypeRemote Type = "remote"
	// TypeLinear evaluates a logistic regression artifact in process.
	TypeLinear Type = "linear"
)

// Config holds configuration for creating a classifier.
type Config struct {
	Type      Type         // Type of classifier to create
	URL       string       // Prediction endpoint (remote)
	ModelPath string       // Model artifact path (linear)
	Retries   int          // Extra attempts on transient failures (remote)
	RateLimit int          // Requests per second, 0 for unlimited (remote)
	Logger    *slog.Logger // Logger for the classifier
}

// New creates a classifier based on the provided configuration.
// TypeNone yields a nil classifier and no error: the engine then runs geometry only.
func New(config Config) (Classifier, error) {
	switch config.Type {
	case TypeNone:
		return nil, nil //nolint:nilnil // no classifier is a supported configuration
	case TypeRemote:
		if config.URL == "" {
			return nil, errors.New("URL is required for remote classifier")
		}
		return NewRemoteClassifier(config.URL, config.Retries, config.RateLimit, config.Logger), nil
	case TypeLinear:
		if config.ModelPath == "" {
			return nil, errors.New("model path is required for linear classifier")
		}
		model, err := LoadLinearModel(config.ModelPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load linear classifier: %w", err)
		}
		return model, nil
	default:
		return nil, fmt.Errorf("unsupported classifier type: %s", config.Type)
	}
}
