package boundary_test

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/UnknownOlympus/seawatch/internal/boundary"
	"github.com/UnknownOlympus/seawatch/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

func TestNewGeofenceConfig(t *testing.T) {
	t.Run("default Palk Strait geofence", func(t *testing.T) {
		cfg, err := boundary.NewGeofenceConfig(boundary.PalkStraitOptions())

		require.NoError(t, err)
		assert.Len(t, cfg.Boundary(), 5)
		assert.InDelta(t, 12.0, cfg.SafeDistanceKm(), 0)
		assert.Equal(t, 7, cfg.ZoomLevel())
		assert.Equal(t, models.Coordinate{Latitude: 9, Longitude: 79.8}, cfg.MapCenter())
		assert.Len(t, cfg.Coastlines(), 2)
	})

	t.Run("fewer than two points", func(t *testing.T) {
		opts := boundary.PalkStraitOptions()
		opts.Boundary = opts.Boundary[:1]

		cfg, err := boundary.NewGeofenceConfig(opts)

		require.Nil(t, cfg)
		require.ErrorIs(t, err, boundary.ErrInvalidBoundary)
		assert.Contains(t, err.Error(), "at least 2 points")
	})

	t.Run("duplicate consecutive points", func(t *testing.T) {
		opts := boundary.PalkStraitOptions()
		opts.Boundary = append(opts.Boundary[:2:2], opts.Boundary[1])

		_, err := boundary.NewGeofenceConfig(opts)

		require.ErrorIs(t, err, boundary.ErrInvalidBoundary)
		assert.Contains(t, err.Error(), "duplicate consecutive point 2")
	})

	t.Run("out of range vertex", func(t *testing.T) {
		opts := boundary.PalkStraitOptions()
		opts.Boundary = []models.Coordinate{{Latitude: 91, Longitude: 0}, {Latitude: 0, Longitude: 0}}

		_, err := boundary.NewGeofenceConfig(opts)

		require.ErrorIs(t, err, boundary.ErrInvalidBoundary)
		require.ErrorIs(t, err, models.ErrInvalidCoordinate)
	})

	t.Run("non-positive safe distance", func(t *testing.T) {
		for _, km := range []float64{0, -1} {
			opts := boundary.PalkStraitOptions()
			opts.SafeDistanceKm = km

			_, err := boundary.NewGeofenceConfig(opts)

			require.ErrorIs(t, err, boundary.ErrInvalidBoundary)
		}
	})

	t.Run("caller cannot mutate the configuration", func(t *testing.T) {
		opts := boundary.PalkStraitOptions()
		cfg, err := boundary.NewGeofenceConfig(opts)
		require.NoError(t, err)

		opts.Boundary[0].Latitude = 0
		cfg.Boundary()[1].Latitude = 0
		cfg.Coastlines()[boundary.CoastSriLanka][0].Latitude = 0

		assert.InDelta(t, 10.05, cfg.Boundary()[0].Latitude, 0)
		assert.InDelta(t, 9.5, cfg.Boundary()[1].Latitude, 0)
		assert.InDelta(t, 9.8152, cfg.Coastlines()[boundary.CoastSriLanka][0].Latitude, 0)
	})
}

func TestSafeZone(t *testing.T) {
	cfg, err := boundary.NewGeofenceConfig(boundary.PalkStraitOptions())
	require.NoError(t, err)

	t.Run("far from the boundary", func(t *testing.T) {
		cuddalore := models.Coordinate{Latitude: 11.4273, Longitude: 79.7662}

		d, inside := cfg.Zone(cuddalore)

		assert.True(t, inside)
		assert.True(t, cfg.IsInsideSafeZone(cuddalore))
		assert.InDelta(t, 155.84, d, 0.01)
	})

	t.Run("on the boundary", func(t *testing.T) {
		p := cfg.Boundary()[3]

		assert.Zero(t, cfg.DistanceToBoundary(p))
		assert.False(t, cfg.IsInsideSafeZone(p))
	})

	t.Run("exactly at the safe distance is inside", func(t *testing.T) {
		p := models.Coordinate{Latitude: 9.3, Longitude: 79.5}
		opts := boundary.PalkStraitOptions()
		opts.SafeDistanceKm = cfg.DistanceToBoundary(p)
		tie, errTie := boundary.NewGeofenceConfig(opts)
		require.NoError(t, errTie)

		assert.Equal(t, tie.SafeDistanceKm(), tie.DistanceToBoundary(p))
		assert.True(t, tie.IsInsideSafeZone(p))
	})

	t.Run("just under the safe distance is outside", func(t *testing.T) {
		p := models.Coordinate{Latitude: 9.3, Longitude: 79.5}
		opts := boundary.PalkStraitOptions()
		opts.SafeDistanceKm = cfg.DistanceToBoundary(p) + 1e-9
		strict, errStrict := boundary.NewGeofenceConfig(opts)
		require.NoError(t, errStrict)

		assert.False(t, strict.IsInsideSafeZone(p))
	})

	t.Run("moving away never brings the boundary closer", func(t *testing.T) {
		prev := -1.0
		for lon := 79.5; lon >= 78.0; lon -= 0.05 {
			d := cfg.DistanceToBoundary(models.Coordinate{Latitude: 9.3, Longitude: lon})
			assert.GreaterOrEqual(t, d, prev)
			prev = d
		}
	})
}

func TestStore(t *testing.T) {
	first, err := boundary.NewGeofenceConfig(boundary.PalkStraitOptions())
	require.NoError(t, err)

	opts := boundary.PalkStraitOptions()
	opts.SafeDistanceKm = 20
	second, err := boundary.NewGeofenceConfig(opts)
	require.NoError(t, err)

	store := boundary.NewStore(first)
	assert.Same(t, first, store.Load())

	t.Run("nil replacement is rejected", func(t *testing.T) {
		prev, errNil := store.Replace(nil)

		require.Error(t, errNil)
		assert.Nil(t, prev)
		assert.Same(t, first, store.Load())
	})

	t.Run("concurrent readers see whole values", func(t *testing.T) {
		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 100 {
					km := store.Load().SafeDistanceKm()
					assert.True(t, km == 12 || km == 20)
				}
			}()
		}

		prev, errReplace := store.Replace(second)
		wg.Wait()

		require.NoError(t, errReplace)
		assert.Same(t, first, prev)
		assert.Same(t, second, store.Load())
	})
}

func TestFeatureCollection(t *testing.T) {
	cfg, err := boundary.NewGeofenceConfig(boundary.PalkStraitOptions())
	require.NoError(t, err)

	fc, err := cfg.FeatureCollection()
	require.NoError(t, err)
	require.Len(t, fc.Features, 4)

	line, ok := fc.Features[0].Geometry.(*geom.LineString)
	require.True(t, ok)
	assert.Equal(t, boundary.KindBoundary, fc.Features[0].ID)
	assert.Equal(t, 5, line.NumCoords())
	assert.Equal(t, geom.Coord{80.03, 10.05}, line.Coord(0))

	assert.Equal(t, boundary.CoastSriLanka, fc.Features[1].ID)
	assert.Equal(t, boundary.CoastTamilNadu, fc.Features[2].ID)
	assert.Equal(t, boundary.KindCenter, fc.Features[3].ID)

	raw, err := json.Marshal(fc)
	require.NoError(t, err)

	var decoded geojson.FeatureCollection
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Len(t, decoded.Features, 4)
	assert.InDelta(t, 12.0, decoded.Features[0].Properties["safe_distance_km"], 0)
}
