package locator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/seawatch/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider resolves places through the Google Maps Geocoding API.
type GoogleProvider struct {
	client GoogleAPIClient // client is the Google Maps API client
	log    *slog.Logger    // log is the logger for logging operations
}

// GoogleAPIClient is the part of maps.Client used for reverse lookups.
type GoogleAPIClient interface {
	ReverseGeocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// NewGoogleProvider wraps an existing Google Maps client.
func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// Reverse returns the formatted address of the first result.
func (gp *GoogleProvider) Reverse(ctx context.Context, position models.Coordinate) (string, error) {
	gp.log.DebugContext(ctx, "Reverse geocoding using Google Maps",
		"lat", position.Latitude, "lon", position.Longitude)

	req := maps.GeocodingRequest{LatLng: &maps.LatLng{Lat: position.Latitude, Lng: position.Longitude}}
	results, err := gp.client.ReverseGeocode(ctx, &req)
	if err != nil {
		return "", fmt.Errorf("failed to reverse geocode position: %w", err)
	}

	if len(results) == 0 || results[0].FormattedAddress == "" {
		return "", ErrNoPlace
	}

	return results[0].FormattedAddress, nil
}
