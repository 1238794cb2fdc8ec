package authsdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrNotReady is returned by GetReadiness when the service answers 503.
// The degraded report is returned alongside it.
var ErrNotReady = errors.New("identity service not ready")

// GetLiveness reports whether the process is up. It does not touch the
// database.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	health, status, err := c.getHealth(ctx, "/livez")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("livez: unexpected status %d", status)
	}
	return health, nil
}

// GetReadiness reports whether the service can serve traffic. On 503 it
// returns the report, whose Checks name the failing dependency, together
// with ErrNotReady.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	health, status, err := c.getHealth(ctx, "/readyz")
	if err != nil {
		return nil, err
	}
	switch status {
	case http.StatusOK:
		return health, nil
	case http.StatusServiceUnavailable:
		return health, fmt.Errorf("%w: %s", ErrNotReady, health.Status)
	default:
		return nil, fmt.Errorf("readyz: unexpected status %d", status)
	}
}

// getHealth fetches a bare (non-enveloped) health report. Rate limiting
// and other enveloped failures come back as *APIError.
func (c *SDKClient) getHealth(ctx context.Context, path string) (*HealthResponse, int, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusServiceUnavailable:
	default:
		return nil, resp.StatusCode, parseErrorResponse(resp, body)
	}

	var health HealthResponse
	if err := json.Unmarshal(body, &health); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to decode health response: %w", err)
	}
	return &health, resp.StatusCode, nil
}
