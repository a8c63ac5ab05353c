// Package proxy forwards prediction requests from the gateway to the
// prediction service and probes its health.
package proxy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrUnavailable reports that the prediction service could not be reached.
// Any transport failure collapses to it; handlers answer 503.
var ErrUnavailable = errors.New("prediction service unavailable")

// Client talks to the prediction service.
type Client struct {
	baseURL     string
	predictHTTP *http.Client
	healthHTTP  *http.Client
}

// NewClient creates a prediction service client. predictTimeout bounds the
// forwarded predict call, healthTimeout the status probe.
func NewClient(baseURL string, predictTimeout, healthTimeout time.Duration) *Client {
	return &Client{
		baseURL:     baseURL,
		predictHTTP: &http.Client{Timeout: predictTimeout},
		healthHTTP:  &http.Client{Timeout: healthTimeout},
	}
}

// Predict forwards the payload verbatim to the prediction endpoint and
// returns the remote body and status code unchanged. Transport failures
// (connection refused, timeout) are mapped to ErrUnavailable.
func (c *Client) Predict(ctx context.Context, payload []byte) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/predict", bytes.NewReader(payload))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.predictHTTP.Do(req)
	if err != nil {
		return nil, 0, ErrUnavailable
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, ErrUnavailable
	}
	return body, resp.StatusCode, nil
}

// Health probes the prediction service. It reports "online" only on a 2xx
// response and downgrades every failure to "offline"; it never returns an
// error.
func (c *Client) Health(ctx context.Context) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return "offline"
	}

	resp, err := c.healthHTTP.Do(req)
	if err != nil {
		return "offline"
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return "online"
	}
	return "offline"
}
