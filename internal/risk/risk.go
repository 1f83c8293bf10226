// Package risk fuses the geofence verdict with the behavioral classifier into a single status.
//
// Evaluate has no side effects: it never notifies anyone and keeps no state between calls,
// so any number of evaluations may run in parallel against the same geofence.
package risk

import (
	"context"
	"errors"
	"fmt"

	"github.com/UnknownOlympus/seawatch/internal/boundary"
	"github.com/UnknownOlympus/seawatch/internal/classifier"
	"github.com/UnknownOlympus/seawatch/internal/models"
)

// SkipNoClassifier is the skip reason when no classifier is configured.
const SkipNoClassifier = "no behavioral classifier configured"

// Evaluate classifies a vessel reading against the geofence.
//
// The reading is validated first and an invalid one is rejected without a result.
// A nil classifier or one that fails leaves the model prediction at 0 and marks the
// result as geometry only; the classifier error never fails the evaluation.
// Deadlines for the classifier call come from ctx.
func Evaluate(
	ctx context.Context,
	reading models.VesselReading,
	geofence *boundary.GeofenceConfig,
	clf classifier.Classifier,
) (models.ClassificationResult, error) {
	if geofence == nil {
		return models.ClassificationResult{StatusCode: models.StatusError},
			fmt.Errorf("%w: no geofence configured", boundary.ErrInvalidBoundary)
	}

	if err := reading.Validate(); err != nil {
		return models.ClassificationResult{StatusCode: models.StatusError}, err
	}

	distance, inside := geofence.Zone(reading.Position)

	result := models.ClassificationResult{
		InsideSafeZone:       inside,
		DistanceToBoundaryKm: distance,
	}

	if clf == nil {
		result.ClassifierSkipped = true
		result.SkipReason = SkipNoClassifier
	} else {
		prediction, err := clf.Predict(ctx, classifier.NewFeatures(reading, inside))
		switch {
		case err != nil:
			if !errors.Is(err, classifier.ErrClassifierUnavailable) {
				err = fmt.Errorf("%w: %w", classifier.ErrClassifierUnavailable, err)
			}
			result.ClassifierSkipped = true
			result.SkipReason = err.Error()
		case prediction != classifier.PredictionNormal && prediction != classifier.PredictionSuspicious:
			result.ClassifierSkipped = true
			result.SkipReason = fmt.Sprintf("%v: unexpected prediction %d", classifier.ErrClassifierUnavailable, prediction)
		default:
			result.ModelPrediction = prediction
		}
	}

	result.IsSuspicious = !inside || result.ModelPrediction == classifier.PredictionSuspicious
	result.StatusCode = Status(inside, result.ModelPrediction)
	result.Message = Message(result)

	return result, nil
}

// Status maps the zone verdict and the model prediction onto a status code.
func Status(insideSafeZone bool, prediction int) models.StatusCode {
	suspicious := prediction == classifier.PredictionSuspicious

	switch {
	case insideSafeZone && !suspicious:
		return models.StatusSafe
	case insideSafeZone && suspicious:
		return models.StatusAlertBehavior
	case !insideSafeZone && !suspicious:
		return models.StatusAlertZone
	default:
		return models.StatusAlertBoth
	}
}

// Message renders the zone verdict, the distance and the behavior verdict of a result.
func Message(result models.ClassificationResult) string {
	zone := "vessel is in the safe zone"
	if !result.InsideSafeZone {
		zone = "vessel is in the restricted zone"
	}

	behavior := "behavior appears normal"
	switch {
	case result.ClassifierSkipped:
		behavior = "behavior check skipped"
	case result.ModelPrediction == classifier.PredictionSuspicious:
		behavior = "behavior appears suspicious"
	}

	return fmt.Sprintf("%s: %s, %.1f km from boundary; %s.",
		result.StatusCode, zone, result.DistanceToBoundaryKm, behavior)
}
