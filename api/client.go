package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

// StatusTransportFailed is the sentinel status reported when the request
// never completed: DNS failure, refused connection, timeout. It is distinct
// from every real HTTP status so callers can tell "transport died" apart
// from "server said no".
const StatusTransportFailed = -1

// Client is a thin HTTP client for the iSENSE API. One *http.Client is
// created per Client and reused for every request; there is no per-call
// setup or teardown, no retry, and no connection pooling beyond what
// net/http does on its own.
//
// A Client is safe to share, but the contributor state built on top of it
// is not; see contributor.Contributor.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// APIError represents a completed request that the server rejected. A
// request that never completed is reported as a plain wrapped error together
// with StatusTransportFailed, never as an APIError.
type APIError struct {
	StatusCode int
	Body       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
	}

	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Body)
}

// NewAPIError builds an APIError from a response, pulling a message out of
// the body when the server returned structured errors.
func NewAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		Body:       string(body),
	}

	var errResp struct {
		Error   string `json:"error"`
		Message string `json:"msg"`
	}

	if json.Unmarshal(body, &errResp) == nil {
		if errResp.Error != "" {
			apiErr.Message = errResp.Error
		} else if errResp.Message != "" {
			apiErr.Message = errResp.Message
		}
	}

	return apiErr
}

// NewClient creates a new API client. Zero-value config fields fall back to
// the package defaults.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// BaseURL returns the base URL of the API.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do performs one blocking round trip and returns the HTTP status and the
// full response body. The error return is non-nil only for transport-level
// failures, in which case the status is StatusTransportFailed; non-200
// statuses are returned as data for the caller to classify.
func (c *Client) Do(ctx context.Context, method, path string, body []byte) (int, []byte, error) {
	reqURL := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return StatusTransportFailed, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Charset", "utf-8")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	reqID := uuid.NewString()
	c.logger.Debug("api request", "id", reqID, "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("api transport failure", "id", reqID, "error", err)
		return StatusTransportFailed, nil, fmt.Errorf("request failed: %w", err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return StatusTransportFailed, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug("api response", "id", reqID, "status", resp.StatusCode, "bytes", len(respBody))

	return resp.StatusCode, respBody, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string) (int, []byte, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body []byte) (int, []byte, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

// IsUnauthorized checks if an error is a 401 Unauthorized error.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized
	}

	return false
}

// IsNotFoundError checks if an error is a 404 Not Found error.
func IsNotFoundError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}

	return false
}

// IsUnprocessable checks if an error is a 422 Unprocessable Entity error.
func IsUnprocessable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnprocessableEntity
	}

	return false
}
