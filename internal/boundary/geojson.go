package boundary

import (
	"fmt"
	"sort"

	"github.com/UnknownOlympus/seawatch/internal/models"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// Feature kinds used in the "kind" property of exported features.
const (
	KindBoundary  = "boundary"
	KindCoastline = "coastline"
	KindCenter    = "center"
)

// FeatureCollection exports the geofence as GeoJSON features: the boundary line,
// each coastline and the map centre. The boundary carries the safe distance as a property.
func (g *GeofenceConfig) FeatureCollection() (*geojson.FeatureCollection, error) {
	boundaryLine, err := lineString(g.boundary)
	if err != nil {
		return nil, fmt.Errorf("failed to encode boundary: %w", err)
	}

	features := []*geojson.Feature{{
		ID:       KindBoundary,
		Geometry: boundaryLine,
		Properties: map[string]any{
			"kind":             KindBoundary,
			"safe_distance_km": g.safeDistanceKm,
		},
	}}

	names := make([]string, 0, len(g.coastlines))
	for name := range g.coastlines {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		line := g.coastlines[name]
		if len(line) < 2 {
			continue
		}
		coast, errLine := lineString(line)
		if errLine != nil {
			return nil, fmt.Errorf("failed to encode coastline %s: %w", name, errLine)
		}
		features = append(features, &geojson.Feature{
			ID:         name,
			Geometry:   coast,
			Properties: map[string]any{"kind": KindCoastline},
		})
	}

	center := geom.NewPointFlat(geom.XY, []float64{g.mapCenter.Longitude, g.mapCenter.Latitude})
	features = append(features, &geojson.Feature{
		ID:         KindCenter,
		Geometry:   center,
		Properties: map[string]any{"kind": KindCenter, "zoom_level": g.zoomLevel},
	})

	return &geojson.FeatureCollection{Features: features}, nil
}

// lineString converts coordinates to an XY line string; GeoJSON orders positions lon, lat.
func lineString(points []models.Coordinate) (*geom.LineString, error) {
	coords := make([]geom.Coord, 0, len(points))
	for _, p := range points {
		coords = append(coords, geom.Coord{p.Longitude, p.Latitude})
	}

	return geom.NewLineString(geom.XY).SetCoords(coords)
}
