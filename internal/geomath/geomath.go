// Package geomath provides great-circle distance primitives on a spherical Earth.
package geomath

import (
	"errors"
	"fmt"
	"math"

	"github.com/UnknownOlympus/seawatch/internal/models"
)

// EarthRadiusKm is the mean Earth radius used by every distance in this package.
const EarthRadiusKm = 6371.0

// ErrInvalidBoundary is returned when a polyline cannot form a boundary.
var ErrInvalidBoundary = errors.New("invalid boundary")

// HaversineKm returns the great-circle distance between a and b in kilometres.
func HaversineKm(a, b models.Coordinate) float64 {
	if a == b {
		return 0
	}

	lat1 := toRad(a.Latitude)
	lat2 := toRad(b.Latitude)
	dLat := lat2 - lat1
	dLon := toRad(b.Longitude - a.Longitude)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon

	return 2 * EarthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

// PointToSegmentKm approximates the shortest distance from p to the segment [start, end].
//
// The segment is projected onto an equirectangular plane tangent at p, the projection
// parameter is clamped to [0, 1] so the nearest point lies on the segment itself, and the
// distance to that point is measured with the haversine formula. The result is never larger
// than the distance to the nearest endpoint.
func PointToSegmentKm(p, start, end models.Coordinate) float64 {
	if start == end {
		return HaversineKm(p, start)
	}

	toStart := HaversineKm(p, start)
	toEnd := HaversineKm(p, end)
	nearestEnd := math.Min(toStart, toEnd)

	kx := math.Cos(toRad(p.Latitude))
	sx, sy := planar(p, start, kx)
	ex, ey := planar(p, end, kx)

	dx, dy := ex-sx, ey-sy
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return nearestEnd
	}

	// p is the origin of the plane.
	t := -(sx*dx + sy*dy) / lenSq
	if t <= 0 || t >= 1 {
		return nearestEnd
	}

	nearest := fromPlanar(p, sx+t*dx, sy+t*dy, kx)

	return math.Min(HaversineKm(p, nearest), nearestEnd)
}

// PointToPolylineKm returns the minimum distance from p to any segment of the polyline.
func PointToPolylineKm(p models.Coordinate, polyline []models.Coordinate) (float64, error) {
	if len(polyline) < 2 {
		return 0, fmt.Errorf("%w: polyline needs at least 2 points, got %d", ErrInvalidBoundary, len(polyline))
	}

	minDist := math.Inf(1)
	for i := 1; i < len(polyline); i++ {
		if d := PointToSegmentKm(p, polyline[i-1], polyline[i]); d < minDist {
			minDist = d
		}
	}

	return minDist, nil
}

// planar maps c to kilometres east (x) and north (y) of origin.
func planar(origin, c models.Coordinate, kx float64) (float64, float64) {
	x := toRad(normalizeLon(c.Longitude-origin.Longitude)) * kx * EarthRadiusKm
	y := toRad(c.Latitude-origin.Latitude) * EarthRadiusKm

	return x, y
}

func fromPlanar(origin models.Coordinate, x, y, kx float64) models.Coordinate {
	lat := origin.Latitude + toDeg(y/EarthRadiusKm)
	lon := origin.Longitude
	if kx > 0 {
		lon = normalizeLon(origin.Longitude + toDeg(x/(EarthRadiusKm*kx)))
	}

	return models.Coordinate{Latitude: math.Max(-90, math.Min(90, lat)), Longitude: lon}
}

// normalizeLon wraps a longitude difference into [-180, 180].
func normalizeLon(deg float64) float64 {
	if deg >= -180 && deg <= 180 {
		return deg
	}

	wrapped := math.Mod(deg+180, 360)
	if wrapped < 0 {
		wrapped += 360
	}

	return wrapped - 180
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func toDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
