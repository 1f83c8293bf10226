package classifier

import (
	"context"
	"errors"

	"github.com/UnknownOlympus/seawatch/internal/models"
)

// ErrClassifierUnavailable is returned when the behavioral model cannot give a verdict.
// Every adapter wraps its failures with it.
var ErrClassifierUnavailable = errors.New("behavioral classifier unavailable")

// Prediction values a classifier may return.
const (
	PredictionNormal     = 0
	PredictionSuspicious = 1
)

// Classifier is an interface that defines a method for classifying vessel behavior.
// Predict must be deterministic for identical features and return 0 or 1.
type Classifier interface {
	Predict(ctx context.Context, features Features) (int, error)
}

// Feature positions in the vector handed to a classifier.
const (
	FeatureLatitude = iota
	FeatureLongitude
	FeatureSpeed
	FeatureHeading
	FeatureZoneStatus
	FeatureBehaviorLabel
	FeatureCount
)

// Features is the fixed-order numeric vector a classifier consumes:
// latitude, longitude, speed, heading, zone status (1 inside the safe zone, 0 outside)
// and a behavior label that is always 0 at inference time.
type Features []float64

// NewFeatures projects a reading and its zone verdict onto a feature vector.
func NewFeatures(reading models.VesselReading, insideSafeZone bool) Features {
	zone := 0.0
	if insideSafeZone {
		zone = 1
	}

	features := make(Features, FeatureCount)
	features[FeatureLatitude] = reading.Position.Latitude
	features[FeatureLongitude] = reading.Position.Longitude
	features[FeatureSpeed] = reading.SpeedKnots
	features[FeatureHeading] = reading.HeadingDegrees
	features[FeatureZoneStatus] = zone
	features[FeatureBehaviorLabel] = 0

	return features
}
