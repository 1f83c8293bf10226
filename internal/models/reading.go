package models

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidReading is returned when speed or heading of a reading is out of range.
var ErrInvalidReading = errors.New("invalid vessel reading")

// VesselReading is a single observation of a vessel: where it is, how fast and where it heads.
type VesselReading struct {
	Position       Coordinate // Position of the vessel.
	SpeedKnots     float64    // SpeedKnots is the speed over ground, non-negative.
	HeadingDegrees float64    // HeadingDegrees is the course in [0, 360).
}

// Validate checks the position, the speed and the heading of the reading.
func (r VesselReading) Validate() error {
	if err := r.Position.Validate(); err != nil {
		return err
	}
	if math.IsNaN(r.SpeedKnots) || math.IsInf(r.SpeedKnots, 0) || r.SpeedKnots < 0 {
		return fmt.Errorf("%w: speed %v must be a non-negative number", ErrInvalidReading, r.SpeedKnots)
	}
	if math.IsNaN(r.HeadingDegrees) || r.HeadingDegrees < 0 || r.HeadingDegrees >= 360 {
		return fmt.Errorf("%w: heading %v must be in [0, 360)", ErrInvalidReading, r.HeadingDegrees)
	}

	return nil
}

// VesselPosition is a reading reported by a named vessel, as received from the position feed.
type VesselPosition struct {
	VesselID   string
	Reading    VesselReading
	ReportedAt time.Time
}
