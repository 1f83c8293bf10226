package config

import (
	"fmt"
	"path/filepath"

	"github.com/UnknownOlympus/seawatch/internal/boundary"
	"github.com/UnknownOlympus/seawatch/internal/models"
	"github.com/spf13/viper"
)

// LoadGeofence builds the geofence from a YAML or JSON file.
//
// An empty path yields the built-in Palk Strait geofence. safeKm is used when
// the file does not set safe_distance_km. Recognised keys are boundary_line,
// safe_distance_km, center, zoom_level and the coastlines tamil_nadu_points and
// sri_lanka_points; a coastlines map adds further named lines.
func LoadGeofence(path string, safeKm float64) (*boundary.GeofenceConfig, error) {
	opts := boundary.PalkStraitOptions()
	opts.SafeDistanceKm = safeKm

	if path == "" {
		return boundary.NewGeofenceConfig(opts)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read geofence file %s: %w", path, err)
	}

	if v.IsSet("boundary_line") {
		opts.Boundary = nil
		if err := v.UnmarshalKey("boundary_line", &opts.Boundary); err != nil {
			return nil, fmt.Errorf("failed to decode boundary_line: %w", err)
		}
	}

	if v.IsSet("safe_distance_km") {
		opts.SafeDistanceKm = v.GetFloat64("safe_distance_km")
	}

	if v.IsSet("center") {
		if err := v.UnmarshalKey("center", &opts.MapCenter); err != nil {
			return nil, fmt.Errorf("failed to decode center: %w", err)
		}
	}

	if v.IsSet("zoom_level") {
		opts.ZoomLevel = v.GetInt("zoom_level")
	}

	for _, name := range []string{boundary.CoastTamilNadu, boundary.CoastSriLanka} {
		if !v.IsSet(name) {
			continue
		}
		var line []models.Coordinate
		if err := v.UnmarshalKey(name, &line); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", name, err)
		}
		opts.Coastlines[name] = line
	}

	if v.IsSet("coastlines") {
		var extra map[string][]models.Coordinate
		if err := v.UnmarshalKey("coastlines", &extra); err != nil {
			return nil, fmt.Errorf("failed to decode coastlines: %w", err)
		}
		for name, line := range extra {
			opts.Coastlines[name] = line
		}
	}

	return boundary.NewGeofenceConfig(opts)
}
