package models

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidCoordinate is returned when a latitude or longitude is outside its valid range.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Coordinate represents a geographical point in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"lat" mapstructure:"lat"` // Latitude in [-90, 90].
	Longitude float64 `json:"lng" mapstructure:"lng"` // Longitude in [-180, 180].
}

// NewCoordinate validates the given latitude and longitude and returns a Coordinate.
func NewCoordinate(lat, lon float64) (Coordinate, error) {
	c := Coordinate{Latitude: lat, Longitude: lon}
	if err := c.Validate(); err != nil {
		return Coordinate{}, err
	}

	return c, nil
}

// Validate reports ErrInvalidCoordinate when the point is out of range or not a number.
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Latitude) || c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v must be between -90 and 90", ErrInvalidCoordinate, c.Latitude)
	}
	if math.IsNaN(c.Longitude) || c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v must be between -180 and 180", ErrInvalidCoordinate, c.Longitude)
	}

	return nil
}
