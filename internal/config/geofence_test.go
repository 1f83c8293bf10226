package config_test

import (
	"path/filepath"
	"testing"

	"github.com/Flaque/filet"
	"github.com/UnknownOlympus/seawatch/internal/boundary"
	"github.com/UnknownOlympus/seawatch/internal/config"
	"github.com/UnknownOlympus/seawatch/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nearRameswaramYAML = `
boundary_line:
  - {lat: 9.40, lng: 79.35}
  - {lat: 9.20, lng: 79.40}
  - {lat: 9.00, lng: 79.45}
safe_distance_km: 10
center: {lat: 9.2, lng: 79.4}
zoom_level: 9
coastlines:
  mannar_island:
    - {lat: 9.05, lng: 79.80}
    - {lat: 8.95, lng: 79.95}
`

func TestLoadGeofence(t *testing.T) {
	defer filet.CleanUp(t)

	t.Run("empty path uses the built-in geofence", func(t *testing.T) {
		cfg, err := config.LoadGeofence("", 12)

		require.NoError(t, err)
		assert.Len(t, cfg.Boundary(), 5)
		assert.InDelta(t, 12.0, cfg.SafeDistanceKm(), 1e-9)
		assert.Equal(t, 7, cfg.ZoomLevel())
	})

	t.Run("yaml file overrides the defaults", func(t *testing.T) {
		file := filet.TmpFile(t, "", nearRameswaramYAML)

		cfg, err := config.LoadGeofence(file.Name(), 12)

		require.NoError(t, err)
		assert.Equal(t, []models.Coordinate{
			{Latitude: 9.40, Longitude: 79.35},
			{Latitude: 9.20, Longitude: 79.40},
			{Latitude: 9.00, Longitude: 79.45},
		}, cfg.Boundary())
		assert.InDelta(t, 10.0, cfg.SafeDistanceKm(), 1e-9)
		assert.Equal(t, models.Coordinate{Latitude: 9.2, Longitude: 79.4}, cfg.MapCenter())
		assert.Equal(t, 9, cfg.ZoomLevel())

		coastlines := cfg.Coastlines()
		assert.Len(t, coastlines, 3)
		assert.Len(t, coastlines["mannar_island"], 2)
		assert.Contains(t, coastlines, boundary.CoastTamilNadu)
	})

	t.Run("json file with fallback safe distance", func(t *testing.T) {
		path := filepath.Join(filet.TmpDir(t, ""), "geofence.json")
		filet.File(t, path, `{"boundary_line":[{"lat":10.05,"lng":80.03},{"lat":9.5,"lng":79.9}]}`)

		cfg, err := config.LoadGeofence(path, 20)

		require.NoError(t, err)
		assert.Len(t, cfg.Boundary(), 2)
		assert.InDelta(t, 20.0, cfg.SafeDistanceKm(), 1e-9)
	})

	t.Run("single point boundary is rejected", func(t *testing.T) {
		file := filet.TmpFile(t, "", "boundary_line:\n  - {lat: 9.4, lng: 79.35}\n")

		cfg, err := config.LoadGeofence(file.Name(), 12)

		require.ErrorIs(t, err, boundary.ErrInvalidBoundary)
		assert.Nil(t, cfg)
	})

	t.Run("missing file", func(t *testing.T) {
		cfg, err := config.LoadGeofence(filepath.Join(filet.TmpDir(t, ""), "absent.yaml"), 12)

		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "failed to read geofence file")
	})
}
