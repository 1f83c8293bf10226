// Package boundary answers how far a point is from a maritime boundary and whether
// it keeps the configured safe distance.
package boundary

import (
	"fmt"
	"math"

	"github.com/UnknownOlympus/seawatch/internal/geomath"
	"github.com/UnknownOlympus/seawatch/internal/models"
)

// ErrInvalidBoundary is returned when a geofence configuration is malformed.
var ErrInvalidBoundary = geomath.ErrInvalidBoundary

// DefaultSafeDistanceKm is the safe margin used when none is configured.
const DefaultSafeDistanceKm = 12.0

// Options holds the raw values a GeofenceConfig is built from.
type Options struct {
	Boundary       []models.Coordinate            // Boundary is the international line, in geographic order.
	SafeDistanceKm float64                        // SafeDistanceKm is the minimum distance considered safe.
	MapCenter      models.Coordinate              // MapCenter is where the dashboard map is focused.
	ZoomLevel      int                            // ZoomLevel is the dashboard zoom.
	Coastlines     map[string][]models.Coordinate // Coastlines are display-only reference lines.
}

// GeofenceConfig is an immutable, validated geofence.
// Its accessors return copies so a shared value can never be patched in place.
type GeofenceConfig struct {
	boundary       []models.Coordinate
	safeDistanceKm float64
	mapCenter      models.Coordinate
	zoomLevel      int
	coastlines     map[string][]models.Coordinate
}

// NewGeofenceConfig validates opts and returns the geofence.
//
// The boundary needs at least two valid points and no duplicate consecutive points;
// the safe distance must be a positive finite number.
func NewGeofenceConfig(opts Options) (*GeofenceConfig, error) {
	if len(opts.Boundary) < 2 {
		return nil, fmt.Errorf("%w: boundary needs at least 2 points, got %d", ErrInvalidBoundary, len(opts.Boundary))
	}

	for i, p := range opts.Boundary {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("%w: point %d: %w", ErrInvalidBoundary, i, err)
		}
		if i > 0 && p == opts.Boundary[i-1] {
			return nil, fmt.Errorf("%w: duplicate consecutive point %d (%v, %v)",
				ErrInvalidBoundary, i, p.Latitude, p.Longitude)
		}
	}

	if math.IsNaN(opts.SafeDistanceKm) || math.IsInf(opts.SafeDistanceKm, 0) || opts.SafeDistanceKm <= 0 {
		return nil, fmt.Errorf("%w: safe distance must be positive, got %v", ErrInvalidBoundary, opts.SafeDistanceKm)
	}

	if err := opts.MapCenter.Validate(); err != nil {
		return nil, fmt.Errorf("%w: map center: %w", ErrInvalidBoundary, err)
	}

	coastlines := make(map[string][]models.Coordinate, len(opts.Coastlines))
	for name, line := range opts.Coastlines {
		coastlines[name] = append([]models.Coordinate(nil), line...)
	}

	return &GeofenceConfig{
		boundary:       append([]models.Coordinate(nil), opts.Boundary...),
		safeDistanceKm: opts.SafeDistanceKm,
		mapCenter:      opts.MapCenter,
		zoomLevel:      opts.ZoomLevel,
		coastlines:     coastlines,
	}, nil
}

// Boundary returns a copy of the boundary polyline.
func (g *GeofenceConfig) Boundary() []models.Coordinate {
	return append([]models.Coordinate(nil), g.boundary...)
}

// SafeDistanceKm returns the safe margin in kilometres.
func (g *GeofenceConfig) SafeDistanceKm() float64 { return g.safeDistanceKm }

// MapCenter returns the dashboard map centre.
func (g *GeofenceConfig) MapCenter() models.Coordinate { return g.mapCenter }

// ZoomLevel returns the dashboard zoom level.
func (g *GeofenceConfig) ZoomLevel() int { return g.zoomLevel }

// Coastlines returns a copy of the display-only coastlines.
func (g *GeofenceConfig) Coastlines() map[string][]models.Coordinate {
	out := make(map[string][]models.Coordinate, len(g.coastlines))
	for name, line := range g.coastlines {
		out[name] = append([]models.Coordinate(nil), line...)
	}

	return out
}

// DistanceToBoundary returns the distance from p to the nearest boundary segment in kilometres.
func (g *GeofenceConfig) DistanceToBoundary(p models.Coordinate) float64 {
	// The constructor guarantees at least two points, so the error is unreachable.
	d, _ := geomath.PointToPolylineKm(p, g.boundary)

	return d
}

// IsInsideSafeZone reports whether p keeps at least the safe distance from the boundary.
// A point exactly at the safe distance is inside: the safe zone is closed.
func (g *GeofenceConfig) IsInsideSafeZone(p models.Coordinate) bool {
	return g.DistanceToBoundary(p) >= g.safeDistanceKm
}

// Zone returns both the distance to the boundary and the safe-zone verdict for p.
func (g *GeofenceConfig) Zone(p models.Coordinate) (float64, bool) {
	d := g.DistanceToBoundary(p)

	return d, d >= g.safeDistanceKm
}
