package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// RemoteClassifier asks a model server for a verdict over HTTP.
// Transient failures are retried a bounded number of times; the caller owns the deadline.
type RemoteClassifier struct {
	client  HTTPClient    // HTTP client for making requests
	url     string        // Prediction endpoint of the model server
	retries int           // Extra attempts after the first failure
	backoff time.Duration // Pause before the first retry, doubled on each attempt
	limiter *rate.Limiter // Rate limiter
	log     *slog.Logger  // Logger for logging operations
}

type predictRequest struct {
	Features Features `json:"features"`
}

type predictResponse struct {
	Prediction *int `json:"prediction"`
}

// NewRemoteClassifier creates a classifier backed by the model server at url.
func NewRemoteClassifier(url string, retries, rateLimit int, log *slog.Logger) *RemoteClassifier {
	const timeout = 10

	limit := rate.Inf
	if rateLimit > 0 {
		limit = rate.Limit(rateLimit)
	}

	return NewRemoteClassifierWithClient(
		&http.Client{Timeout: timeout * time.Second},
		url,
		retries,
		rate.NewLimiter(limit, max(rateLimit, 1)),
		log,
	)
}

// NewRemoteClassifierWithClient allows injecting custom HTTP client and limiter.
func NewRemoteClassifierWithClient(
	client HTTPClient,
	url string,
	retries int,
	limiter *rate.Limiter,
	log *slog.Logger,
) *RemoteClassifier {
	const defaultBackoff = 100 * time.Millisecond

	return &RemoteClassifier{
		client:  client,
		url:     url,
		retries: max(retries, 0),
		backoff: defaultBackoff,
		limiter: limiter,
		log:     log,
	}
}

// SetBackoff changes the pause before the first retry.
func (rc *RemoteClassifier) SetBackoff(d time.Duration) {
	rc.backoff = d
}

// Predict sends the features to the model server and returns its verdict.
func (rc *RemoteClassifier) Predict(ctx context.Context, features Features) (int, error) {
	body, err := json.Marshal(predictRequest{Features: features})
	if err != nil {
		return 0, fmt.Errorf("%w: failed to encode features: %w", ErrClassifierUnavailable, err)
	}

	var lastErr error
	for attempt := 0; attempt <= rc.retries; attempt++ {
		if attempt > 0 {
			pause := rc.backoff << (attempt - 1)
			rc.log.DebugContext(ctx, "Retrying classifier request", "attempt", attempt, "pause", pause)
			select {
			case <-ctx.Done():
				return 0, fmt.Errorf("%w: %w", ErrClassifierUnavailable, ctx.Err())
			case <-time.After(pause):
			}
		}

		prediction, retry, errAttempt := rc.predictOnce(ctx, body)
		if errAttempt == nil {
			return prediction, nil
		}
		lastErr = errAttempt
		if !retry {
			break
		}
		rc.log.WarnContext(ctx, "Classifier request failed", "attempt", attempt, "error", errAttempt)
	}

	return 0, fmt.Errorf("%w: %w", ErrClassifierUnavailable, lastErr)
}

// predictOnce performs a single request. The boolean reports whether the failure is transient.
func (rc *RemoteClassifier) predictOnce(ctx context.Context, body []byte) (int, bool, error) {
	if err := rc.limiter.Wait(ctx); err != nil {
		return 0, false, fmt.Errorf("rate limit exceeded: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rc.url, bytes.NewReader(body))
	if err != nil {
		return 0, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := rc.client.Do(req)
	if err != nil {
		return 0, ctx.Err() == nil, fmt.Errorf("failed to execute prediction request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, true, fmt.Errorf("failed to read response body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		// continue
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return 0, true, fmt.Errorf("model server returned status %d: %s", resp.StatusCode, string(respBody))
	default:
		return 0, false, fmt.Errorf("model server returned status %d: %s", resp.StatusCode, string(respBody))
	}

	rc.log.DebugContext(ctx, "Model server raw response", "body", string(respBody))

	var result predictResponse
	if err = json.Unmarshal(respBody, &result); err != nil {
		return 0, false, fmt.Errorf("failed to decode prediction response: %w", err)
	}

	if result.Prediction == nil {
		return 0, false, fmt.Errorf("prediction missing from response: %s", string(respBody))
	}

	switch *result.Prediction {
	case PredictionNormal, PredictionSuspicious:
		return *result.Prediction, false, nil
	default:
		return 0, false, fmt.Errorf("unexpected prediction %d", *result.Prediction)
	}
}
