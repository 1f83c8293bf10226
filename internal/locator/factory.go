package locator

import (
	"errors"
	"fmt"
	"log/slog"

	"googlemaps.github.io/maps"
)

// ProviderType represents the type of reverse geocoding provider.
type ProviderType string

const (
	// ProviderTypeNone disables place lookup.
	ProviderTypeNone ProviderType = "none"
	// ProviderTypeGoogle represents Google Maps reverse geocoding.
	ProviderTypeGoogle ProviderType = "google"
	// ProviderTypeNominatim represents OpenStreetMap Nominatim reverse geocoding.
	ProviderTypeNominatim ProviderType = "nominatim"
)

// ProviderConfig holds configuration for creating a locator.
type ProviderConfig struct {
	Type      ProviderType // Type of provider to create
	APIKey    string       // API key (used by Google provider)
	RateLimit int          // Requests per second
	Logger    *slog.Logger // Logger for the provider
}

// NewProvider creates a locator based on the provided configuration.
// ProviderTypeNone yields a nil provider and no error.
func NewProvider(config ProviderConfig) (Provider, error) {
	switch config.Type {
	case ProviderTypeNone, "":
		return nil, nil //nolint:nilnil // place lookup is optional
	case ProviderTypeGoogle:
		return newGoogleProvider(config)
	case ProviderTypeNominatim:
		return newNominatimProvider(config), nil
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", config.Type)
	}
}

func newGoogleProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("API key is required for Google provider")
	}

	clientOpts := []maps.ClientOption{
		maps.WithAPIKey(config.APIKey),
	}
	if config.RateLimit > 0 {
		clientOpts = append(clientOpts, maps.WithRateLimit(config.RateLimit))
	}

	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return NewGoogleProvider(client, config.Logger), nil
}

func newNominatimProvider(config ProviderConfig) Provider {
	if config.RateLimit <= 0 {
		config.RateLimit = 1
	}

	return NewNominatimProvider(config.RateLimit, config.Logger)
}
