package locator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/UnknownOlympus/seawatch/internal/models"
	"golang.org/x/time/rate"
)

// NominatimBaseURL -- public Nominatim reverse endpoint.
const NominatimBaseURL = "https://nominatim.openstreetmap.org/reverse"

// userAgent identifies the service as required by the Nominatim usage policy.
const userAgent = "Seawatch-Boundary-Monitor/1.0 (https://github.com/UnknownOlympus/seawatch)"

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// NominatimProvider implements Provider using OpenStreetMap's Nominatim API.
// The public instance allows about one request per second.
type NominatimProvider struct {
	client  HTTPClient    // HTTP client for making requests
	baseURL string        // Reverse endpoint URL
	limiter *rate.Limiter // Rate limiter
	log     *slog.Logger  // Logger for logging operations
}

type nominatimResponse struct {
	DisplayName string `json:"display_name"`
	Error       string `json:"error"`
}

// NewNominatimProvider creates a provider against the public endpoint.
func NewNominatimProvider(rateLimit int, log *slog.Logger) *NominatimProvider {
	const timeout = 10

	return NewNominatimProviderWithClient(
		&http.Client{Timeout: timeout * time.Second},
		NominatimBaseURL,
		rate.NewLimiter(rate.Limit(rateLimit), 1),
		log,
	)
}

// NewNominatimProviderWithClient allows injecting custom HTTP client, endpoint and limiter.
func NewNominatimProviderWithClient(
	client HTTPClient,
	baseURL string,
	limiter *rate.Limiter,
	log *slog.Logger,
) *NominatimProvider {
	return &NominatimProvider{client: client, baseURL: baseURL, limiter: limiter, log: log}
}

// Reverse returns Nominatim's display name for the position.
// Open water usually has no result and yields ErrNoPlace.
func (np *NominatimProvider) Reverse(ctx context.Context, position models.Coordinate) (string, error) {
	if err := np.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	reqURL, err := url.Parse(np.baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("format", "jsonv2")
	query.Set("lat", strconv.FormatFloat(position.Latitude, 'f', 6, 64))
	query.Set("lon", strconv.FormatFloat(position.Longitude, 'f', 6, 64))
	query.Set("zoom", "10")
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en")

	resp, err := np.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute reverse request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		np.log.ErrorContext(ctx, "Nominatim API error", "status", resp.StatusCode, "body", string(body))
		return "", fmt.Errorf("nominatim API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result nominatimResponse
	if err = json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode nominatim response: %w", err)
	}

	if result.Error != "" || result.DisplayName == "" {
		np.log.DebugContext(ctx, "Nominatim has no place", "error", result.Error)
		return "", ErrNoPlace
	}

	return result.DisplayName, nil
}
