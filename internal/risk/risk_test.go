package risk_test

import (
	"context"
	"errors"
	"testing"

	"github.com/UnknownOlympus/seawatch/internal/boundary"
	"github.com/UnknownOlympus/seawatch/internal/classifier"
	"github.com/UnknownOlympus/seawatch/internal/models"
	"github.com/UnknownOlympus/seawatch/internal/risk"
	"github.com/UnknownOlympus/seawatch/test/mocks"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fixedClassifier always answers with the same verdict.
type fixedClassifier int

func (f fixedClassifier) Predict(context.Context, classifier.Features) (int, error) {
	return int(f), nil
}

// palkStraitNearRameswaram runs the boundary a few kilometres off Rameswaram.
func palkStraitNearRameswaram(t *testing.T) *boundary.GeofenceConfig {
	t.Helper()

	opts := boundary.PalkStraitOptions()
	opts.Boundary = []models.Coordinate{
		{Latitude: 9.40, Longitude: 79.35},
		{Latitude: 9.20, Longitude: 79.40},
		{Latitude: 9.00, Longitude: 79.45},
	}
	cfg, err := boundary.NewGeofenceConfig(opts)
	require.NoError(t, err)

	return cfg
}

func defaultGeofence(t *testing.T) *boundary.GeofenceConfig {
	t.Helper()

	cfg, err := boundary.NewGeofenceConfig(boundary.PalkStraitOptions())
	require.NoError(t, err)

	return cfg
}

var (
	cuddalore = models.VesselReading{
		Position:       models.Coordinate{Latitude: 11.4273, Longitude: 79.7662},
		SpeedKnots:     10,
		HeadingDegrees: 90,
	}
	rameswaram = models.VesselReading{
		Position:       models.Coordinate{Latitude: 9.2800, Longitude: 79.3100},
		SpeedKnots:     15.5,
		HeadingDegrees: 180,
	}
)

func TestEvaluate_Scenarios(t *testing.T) {
	ctx := t.Context()

	t.Run("safe", func(t *testing.T) {
		result, err := risk.Evaluate(ctx, cuddalore, defaultGeofence(t), fixedClassifier(0))

		require.NoError(t, err)
		assert.Equal(t, models.StatusSafe, result.StatusCode)
		assert.True(t, result.InsideSafeZone)
		assert.False(t, result.IsSuspicious)
		assert.False(t, result.ClassifierSkipped)
		assert.Equal(t, "SAFE: vessel is in the safe zone, 155.8 km from boundary; behavior appears normal.",
			result.Message)
	})

	t.Run("alert zone", func(t *testing.T) {
		result, err := risk.Evaluate(ctx, rameswaram, palkStraitNearRameswaram(t), fixedClassifier(0))

		require.NoError(t, err)
		assert.Less(t, result.DistanceToBoundaryKm, 12.0)
		assert.Equal(t, models.StatusAlertZone, result.StatusCode)
		assert.False(t, result.InsideSafeZone)
		assert.True(t, result.IsSuspicious)
		assert.Equal(t, 0, result.ModelPrediction)
	})

	t.Run("alert both", func(t *testing.T) {
		result, err := risk.Evaluate(ctx, rameswaram, palkStraitNearRameswaram(t), fixedClassifier(1))

		require.NoError(t, err)
		assert.Equal(t, models.StatusAlertBoth, result.StatusCode)
		assert.True(t, result.IsSuspicious)
		assert.Equal(t, 1, result.ModelPrediction)
		assert.Equal(t, "ALERT_BOTH: vessel is in the restricted zone, 7.5 km from boundary; behavior appears suspicious.",
			result.Message)
	})

	t.Run("alert behavior", func(t *testing.T) {
		result, err := risk.Evaluate(ctx, cuddalore, defaultGeofence(t), fixedClassifier(1))

		require.NoError(t, err)
		assert.Equal(t, models.StatusAlertBehavior, result.StatusCode)
		assert.True(t, result.InsideSafeZone)
		assert.True(t, result.IsSuspicious)
	})

	t.Run("invalid latitude", func(t *testing.T) {
		clf := mocks.NewClassifier(t)
		reading := cuddalore
		reading.Position.Latitude = 95.0

		result, err := risk.Evaluate(ctx, reading, defaultGeofence(t), clf)

		require.ErrorIs(t, err, models.ErrInvalidCoordinate)
		assert.Equal(t, models.ClassificationResult{}, result)
		clf.AssertNotCalled(t, "Predict", mock.Anything, mock.Anything)
	})

	t.Run("invalid heading", func(t *testing.T) {
		reading := cuddalore
		reading.HeadingDegrees = 360

		_, err := risk.Evaluate(ctx, reading, defaultGeofence(t), nil)

		require.ErrorIs(t, err, models.ErrInvalidReading)
	})

	t.Run("no geofence", func(t *testing.T) {
		_, err := risk.Evaluate(ctx, cuddalore, nil, nil)

		require.ErrorIs(t, err, boundary.ErrInvalidBoundary)
	})
}

func TestEvaluate_DegradedMode(t *testing.T) {
	ctx := t.Context()
	geofence := palkStraitNearRameswaram(t)

	t.Run("no classifier", func(t *testing.T) {
		result, err := risk.Evaluate(ctx, rameswaram, geofence, nil)

		require.NoError(t, err)
		assert.Equal(t, 0, result.ModelPrediction)
		assert.True(t, result.ClassifierSkipped)
		assert.Equal(t, risk.SkipNoClassifier, result.SkipReason)
		assert.Equal(t, models.StatusAlertZone, result.StatusCode)
		assert.Contains(t, result.Message, "behavior check skipped")
	})

	t.Run("classifier unavailable", func(t *testing.T) {
		clf := mocks.NewClassifier(t)
		clf.On("Predict", ctx, classifier.Features{9.28, 79.31, 15.5, 180, 0, 0}).
			Return(0, classifier.ErrClassifierUnavailable).Once()

		result, err := risk.Evaluate(ctx, rameswaram, geofence, clf)

		require.NoError(t, err)
		assert.Equal(t, 0, result.ModelPrediction)
		assert.True(t, result.ClassifierSkipped)
		assert.Equal(t, models.StatusAlertZone, result.StatusCode)
	})

	t.Run("unexpected classifier error is treated as unavailable", func(t *testing.T) {
		clf := mocks.NewClassifier(t)
		clf.On("Predict", ctx, mock.Anything).Return(1, errors.New("model not loaded")).Once()

		result, err := risk.Evaluate(ctx, cuddalore, defaultGeofence(t), clf)

		require.NoError(t, err)
		assert.Equal(t, 0, result.ModelPrediction)
		assert.Equal(t, models.StatusSafe, result.StatusCode)
		assert.Contains(t, result.SkipReason, classifier.ErrClassifierUnavailable.Error())
		assert.Contains(t, result.SkipReason, "model not loaded")
	})

	t.Run("out of range prediction is ignored", func(t *testing.T) {
		result, err := risk.Evaluate(ctx, cuddalore, defaultGeofence(t), fixedClassifier(2))

		require.NoError(t, err)
		assert.Equal(t, 0, result.ModelPrediction)
		assert.True(t, result.ClassifierSkipped)
		assert.Equal(t, models.StatusSafe, result.StatusCode)
	})

	t.Run("classifier sees the zone verdict", func(t *testing.T) {
		clf := mocks.NewClassifier(t)
		clf.On("Predict", ctx, classifier.Features{11.4273, 79.7662, 10, 90, 1, 0}).Return(0, nil).Once()

		_, err := risk.Evaluate(ctx, cuddalore, defaultGeofence(t), clf)

		require.NoError(t, err)
	})
}

func TestStatus(t *testing.T) {
	tests := []struct {
		inside     bool
		prediction int
		want       models.StatusCode
	}{
		{inside: true, prediction: 0, want: models.StatusSafe},
		{inside: true, prediction: 1, want: models.StatusAlertBehavior},
		{inside: false, prediction: 0, want: models.StatusAlertZone},
		{inside: false, prediction: 1, want: models.StatusAlertBoth},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, risk.Status(tt.inside, tt.prediction), "inside=%v prediction=%d", tt.inside, tt.prediction)
	}
}

func TestEvaluate_FusionIndependentOfDistance(t *testing.T) {
	ctx := t.Context()
	geofence := defaultGeofence(t)

	positions := []models.Coordinate{
		{Latitude: 9.22, Longitude: 79.80},      // on the boundary
		{Latitude: 9.30, Longitude: 79.75},      // a few km off
		{Latitude: 9.30, Longitude: 79.50},      // tens of km off
		{Latitude: 11.4273, Longitude: 79.7662}, // far away
		{Latitude: 20, Longitude: 60},           // open sea
	}

	for _, pos := range positions {
		for _, prediction := range []int{0, 1} {
			reading := models.VesselReading{Position: pos, SpeedKnots: 5, HeadingDegrees: 0}

			result, err := risk.Evaluate(ctx, reading, geofence, fixedClassifier(prediction))
			require.NoError(t, err)

			want := models.ClassificationResult{
				InsideSafeZone:       geofence.IsInsideSafeZone(pos),
				IsSuspicious:         !geofence.IsInsideSafeZone(pos) || prediction == 1,
				StatusCode:           risk.Status(geofence.IsInsideSafeZone(pos), prediction),
				DistanceToBoundaryKm: geofence.DistanceToBoundary(pos),
				ModelPrediction:      prediction,
			}
			if diff := cmp.Diff(want, result, cmpopts.IgnoreFields(models.ClassificationResult{}, "Message")); diff != "" {
				t.Errorf("Evaluate(%v, prediction=%d) mismatch (-want +got):\n%s", pos, prediction, diff)
			}
			assert.GreaterOrEqual(t, result.DistanceToBoundaryKm, 0.0)
		}
	}
}

func TestMessage(t *testing.T) {
	msg := risk.Message(models.ClassificationResult{
		InsideSafeZone:       false,
		StatusCode:           models.StatusAlertZone,
		DistanceToBoundaryKm: 3.14159,
		ClassifierSkipped:    true,
	})

	assert.Equal(t, "ALERT_ZONE: vessel is in the restricted zone, 3.1 km from boundary; behavior check skipped.", msg)
}
