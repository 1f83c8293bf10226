package models

import (
	"time"

	"github.com/google/uuid"
)

// StatusCode is the fused verdict of the zone and behavior checks.
type StatusCode int

const (
	StatusError         StatusCode = 0
	StatusSafe          StatusCode = 1
	StatusAlertZone     StatusCode = 2
	StatusAlertBehavior StatusCode = 3
	StatusAlertBoth     StatusCode = 4
)

// String returns the upper-case name of the status.
func (s StatusCode) String() string {
	switch s {
	case StatusSafe:
		return "SAFE"
	case StatusAlertZone:
		return "ALERT_ZONE"
	case StatusAlertBehavior:
		return "ALERT_BEHAVIOR"
	case StatusAlertBoth:
		return "ALERT_BOTH"
	default:
		return "ERROR"
	}
}

// IsAlert reports whether the status should be dispatched as an alert.
func (s StatusCode) IsAlert() bool {
	return s != StatusSafe && s != StatusError
}

// ClassificationResult is the outcome of evaluating one reading against the geofence.
type ClassificationResult struct {
	InsideSafeZone       bool
	IsSuspicious         bool
	StatusCode           StatusCode
	DistanceToBoundaryKm float64
	Message              string
	ModelPrediction      int
	// ClassifierSkipped is set when no behavioral verdict was available and
	// the result is based on geometry alone.
	ClassifierSkipped bool
	SkipReason        string
}

// AlertEvent is handed to a notifier when a result is not safe.
type AlertEvent struct {
	ID         uuid.UUID
	VesselID   string
	Reading    VesselReading
	Result     ClassificationResult
	Place      string // Place is a human readable location, empty when unknown.
	OccurredAt time.Time
}

// AlertRecord is a row of the alert audit log.
type AlertRecord struct {
	ID          uuid.UUID
	VesselID    string
	Latitude    float64
	Longitude   float64
	StatusCode  StatusCode
	DistanceKm  float64
	Message     string
	Notifier    string
	Delivered   bool
	DeliveryErr string
	OccurredAt  time.Time
}
