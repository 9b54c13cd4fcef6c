// Copyright ClearInsights and each contributor to zoomreport.
// SPDX-License-Identifier: MIT

// Package zoomapi implements the low-level Zoom REST API plumbing: the
// Server-to-Server OAuth credential exchange, endpoint resolution, and the
// cursor-paginated fetch loop used by every report operation.
package zoomapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"github.com/clearinsights/zoomreport/internal/logging"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	// BaseURL is the base URL for the Zoom API
	BaseURL = "https://api.zoom.us/v2"
	// AuthURL is the OAuth token endpoint
	AuthURL = "https://zoom.us/oauth/token"
	// DefaultClientTimeout is the default HTTP client timeout for Zoom API requests
	DefaultClientTimeout = 30 * time.Second
	// Default retry configuration
	DefaultMaxRetries        = 3
	DefaultInitialBackoff    = 1 * time.Second
	DefaultMaxBackoff        = 30 * time.Second
	DefaultBackoffMultiplier = 2.0
)

// Client talks to the Zoom API. It holds no session state: a fresh bearer
// token is exchanged at the start of every report operation and discarded
// when the operation's call tree completes.
type Client struct {
	httpClient *http.Client
	config     Config
}

// Config holds the configuration for the Zoom client
type Config struct {
	AccountID    string
	ClientID     string
	ClientSecret string
	// Optional: override base URL for testing
	BaseURL string
	// Optional: override auth URL for testing
	AuthURL string
	// Optional: override timeout for HTTP requests
	Timeout time.Duration
	// Optional: retry configuration
	MaxRetries        int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	BackoffMultiplier float64
}

// NewClient creates a new Zoom API client
func NewClient(config Config) *Client {
	// Set defaults if not provided
	if config.BaseURL == "" {
		config.BaseURL = BaseURL
	}
	if config.AuthURL == "" {
		config.AuthURL = AuthURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultClientTimeout
	}
	if config.MaxRetries == 0 {
		config.MaxRetries = DefaultMaxRetries
	}
	if config.InitialBackoff == 0 {
		config.InitialBackoff = DefaultInitialBackoff
	}
	if config.MaxBackoff == 0 {
		config.MaxBackoff = DefaultMaxBackoff
	}
	if config.BackoffMultiplier == 0 {
		config.BackoffMultiplier = DefaultBackoffMultiplier
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		config: config,
	}
}

// knownAuthCauses maps token-endpoint status codes to human-readable causes.
var knownAuthCauses = map[int]string{
	http.StatusBadRequest:   "bad request - the account ID, client ID, or client secret is malformed or missing",
	http.StatusUnauthorized: "invalid client credentials - check the client ID and client secret",
	http.StatusForbidden:    "insufficient scope - the app is missing a required report or webinar scope",
	http.StatusNotFound:     "account not found - check the account ID",
}

// Token exchanges the account credentials for a short-lived bearer token.
// Zoom Server-to-Server OAuth requires grant_type=account_credentials plus the
// account_id as a form parameter. The token is not cached: callers acquire one
// per operation and let it fall out of scope.
func (c *Client) Token(ctx context.Context) (string, error) {
	oauthConfig := &clientcredentials.Config{
		ClientID:     c.config.ClientID,
		ClientSecret: c.config.ClientSecret,
		TokenURL:     c.config.AuthURL,
		EndpointParams: url.Values{
			"grant_type": []string{"account_credentials"},
			"account_id": []string{c.config.AccountID},
		},
		AuthStyle: oauth2.AuthStyleInParams,
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	tok, err := oauthConfig.TokenSource(ctx).Token()
	if err != nil {
		return "", c.classifyTokenError(ctx, err)
	}

	return tok.AccessToken, nil
}

// classifyTokenError maps a token retrieval failure to an AuthError with a
// known cause when the vendor status code is recognized.
func (c *Client) classifyTokenError(ctx context.Context, err error) error {
	var retrieveErr *oauth2.RetrieveError
	if !errors.As(err, &retrieveErr) {
		slog.ErrorContext(ctx, "token exchange failed before a response was received", logging.ErrKey, err)
		return NewAuthError(0, "token exchange failed", err)
	}

	status := retrieveErr.Response.StatusCode
	cause, ok := knownAuthCauses[status]
	if !ok {
		cause = fmt.Sprintf("unexpected status %d from the token endpoint (%s) - please open an issue at github.com/clearinsights/zoomreport with this message",
			status, string(retrieveErr.Body))
	}

	slog.ErrorContext(ctx, "token exchange rejected", "status", status, logging.ErrKey, err)
	return NewAuthError(status, cause, err)
}

// shouldRetry determines if an error or HTTP status code should be retried
func shouldRetry(statusCode int, err error) bool {
	// Don't retry if context was cancelled
	if err != nil {
		if ctx, ok := err.(interface{ Err() error }); ok {
			if ctx.Err() == context.Canceled || ctx.Err() == context.DeadlineExceeded {
				return false
			}
		}
	}

	// Retry on network/connection errors
	if err != nil {
		return true
	}

	// Retry on server errors (5xx)
	if statusCode >= 500 && statusCode < 600 {
		return true
	}

	// Retry on rate limiting (429)
	if statusCode == http.StatusTooManyRequests {
		return true
	}

	// Don't retry on client errors (4xx)
	return false
}

// calculateBackoff calculates the backoff duration for a retry attempt with jitter
func (c *Client) calculateBackoff(attempt int) time.Duration {
	if attempt <= 0 {
		return c.config.InitialBackoff
	}

	backoff := float64(c.config.InitialBackoff) * math.Pow(c.config.BackoffMultiplier, float64(attempt))

	if time.Duration(backoff) > c.config.MaxBackoff {
		backoff = float64(c.config.MaxBackoff)
	}

	// Add jitter (±25% of backoff duration) to prevent thundering herd
	jitter := backoff * 0.25 * (rand.Float64()*2 - 1)
	backoffWithJitter := time.Duration(backoff + jitter)

	if backoffWithJitter < c.config.InitialBackoff {
		backoffWithJitter = c.config.InitialBackoff
	}

	return backoffWithJitter
}

// get performs an authenticated GET against the Zoom API with bounded retry.
// The bearer token is set explicitly per request rather than through an
// oauth2.Transport so that the per-operation token lifecycle stays visible to
// the caller. Transient failures (network errors, 5xx, 429) are retried up to
// MaxRetries times with exponential backoff; other client errors terminate
// retries immediately and the response is returned for classification.
func (c *Client) get(ctx context.Context, token, path string, query url.Values) (*http.Response, error) {
	reqURL := c.config.BaseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var lastErr error
	var lastResp *http.Response

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")

		if attempt == 0 {
			slog.DebugContext(ctx, "making Zoom API request", "path", path, "max_retries", c.config.MaxRetries)
		} else {
			slog.DebugContext(ctx, "retrying Zoom API request", "path", path, "attempt", attempt, "max_retries", c.config.MaxRetries)
		}

		startTime := time.Now()
		resp, err := c.httpClient.Do(req)
		duration := time.Since(startTime)

		if err == nil && resp.StatusCode < http.StatusInternalServerError && resp.StatusCode != http.StatusTooManyRequests {
			slog.DebugContext(ctx, "Zoom API request completed",
				"path", path,
				"status", resp.StatusCode,
				"duration", duration.String(),
				"attempt", attempt+1,
			)
			return resp, nil
		}

		if lastResp != nil && resp != nil {
			_ = lastResp.Body.Close()
		}
		lastErr = err
		if resp != nil {
			lastResp = resp
		}

		statusCode := 0
		if resp != nil {
			statusCode = resp.StatusCode
		}

		if !shouldRetry(statusCode, err) {
			slog.ErrorContext(ctx, "Zoom API request failed (not retryable)",
				"path", path, "status", statusCode, "duration", duration.String(), "attempt", attempt+1,
				logging.ErrKey, err)
			break
		}

		if attempt < c.config.MaxRetries {
			backoff := c.calculateBackoff(attempt)
			slog.WarnContext(ctx, "Zoom API request failed, retrying",
				"path", path, "status", statusCode, "duration", duration.String(),
				"attempt", attempt+1, "max_retries", c.config.MaxRetries, "backoff", backoff.String(),
				logging.ErrKey, err)

			select {
			case <-ctx.Done():
				if lastResp != nil {
					_ = lastResp.Body.Close()
				}
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		} else {
			slog.ErrorContext(ctx, "Zoom API request failed after all retries",
				"path", path, "status", statusCode, "duration", duration.String(),
				"attempts", attempt+1, "max_retries", c.config.MaxRetries,
				logging.ErrKey, err)
		}
	}

	if lastErr != nil {
		if lastResp != nil {
			_ = lastResp.Body.Close()
		}
		return nil, fmt.Errorf("request failed after %d attempts: %w", c.config.MaxRetries+1, lastErr)
	}

	return lastResp, nil
}

// getOK performs a GET and requires a 200. On any other status the response
// body is drained and classified as an UpstreamError with the vendor status
// code and a known-cause text when available.
func (c *Client) getOK(ctx context.Context, token, path string, query url.Values) ([]byte, error) {
	resp, err := c.get(ctx, token, path, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, NewUpstreamError(resp.StatusCode, statusCause(resp.StatusCode, body), parseErrorResponse(body))
	}

	return body, nil
}

// parseErrorResponse attempts to parse a Zoom API error response
func parseErrorResponse(body []byte) error {
	var errResp struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return fmt.Errorf("zoom API error (code %d): %s", errResp.Code, errResp.Message)
	}
	return fmt.Errorf("zoom API error: %s", string(body))
}
