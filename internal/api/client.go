package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://rapidcaptcha.xyz"

// defaultTimeout bounds a single network attempt, not the whole
// retry sequence. Solving can take minutes server-side, so the
// per-attempt budget is generous.
const defaultTimeout = 300 * time.Second

// Client is the HTTP API client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	retry      *RetryConfig
	logger     *zap.Logger
}

// Option configures the API client.
type Option func(*Client)

// WithBaseURL sets the base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithTimeout sets the per-attempt timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithRetries sets the number of retries after the initial attempt.
func WithRetries(retries int) Option {
	return func(c *Client) {
		c.retry.MaxRetries = retries
	}
}

// WithRetryDelay sets the fixed delay between attempts.
func WithRetryDelay(delay time.Duration) Option {
	return func(c *Client) {
		c.retry.Delay = delay
	}
}

// WithRetryOn sets the HTTP status codes that trigger a retry.
func WithRetryOn(statusCodes []int) Option {
	return func(c *Client) {
		retryable := make(map[int]struct{}, len(statusCodes))
		for _, code := range statusCodes {
			retryable[code] = struct{}{}
		}
		c.retry.RetryableOn = func(statusCode int) bool {
			_, ok := retryable[statusCode]
			return ok
		}
	}
}

// WithLogger sets the logger used for request and retry diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a new API client.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	c := &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		retry:  DefaultRetryConfig(),
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// SetHTTPClient sets a custom HTTP client. The custom client's own
// timeout then governs each attempt.
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// Do performs an authenticated JSON request against the API, retrying
// transient failures up to the configured bound. On success the
// response body is decoded into result (if non-nil). Terminal HTTP
// errors (auth, validation, not-found, rate limit) are returned after
// a single attempt; exhausted retries return a *RequestFailedError
// carrying the last observed error.
func (c *Client) Do(ctx context.Context, method, path string, body, result interface{}) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		payload = data
	}

	url := c.baseURL + path
	if _, err := http.NewRequest(method, url, nil); err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	attempts := 0
	var lastErr error

	for attempt := 0; attempt <= c.retry.MaxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Debug("retrying request",
				zap.String("method", method),
				zap.String("path", path),
				zap.Int("attempt", attempt+1),
				zap.Duration("delay", c.retry.Delay))
			if err := c.retry.Wait(ctx); err != nil {
				return err
			}
		}
		attempts++

		status, respBody, err := c.attempt(ctx, method, url, payload)
		if err != nil {
			lastErr = &NetworkError{Err: err, URL: url, Attempt: attempts}
			if ctx.Err() != nil {
				// Cancelled or deadline-exceeded mid-attempt:
				// no further attempts.
				break
			}
			c.logger.Warn("request attempt failed",
				zap.String("method", method),
				zap.String("path", path),
				zap.Int("attempt", attempts),
				zap.Error(err))
			continue
		}

		if status < 400 {
			if result != nil && len(respBody) > 0 {
				if err := json.Unmarshal(respBody, result); err != nil {
					return fmt.Errorf("decode response: %w", err)
				}
			}
			return nil
		}

		apiErr := parseErrorResponse(status, respBody)
		if !c.retry.RetryableOn(status) {
			// The request will not become valid by repeating it.
			return apiErr
		}
		lastErr = apiErr
		c.logger.Warn("request attempt failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("attempt", attempts),
			zap.Int("status", status))
	}

	return &RequestFailedError{Attempts: attempts, Last: lastErr}
}

// attempt performs a single HTTP round trip. The request is rebuilt
// from the marshalled payload so each attempt sends a fresh body.
func (c *Client) attempt(ctx context.Context, method, url string, payload []byte) (int, []byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return 0, nil, err
	}

	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}

	return resp.StatusCode, respBody, nil
}

// parseErrorResponse extracts a message from an error response body.
// The API uses {"error": ...} for auth/not-found/rate-limit responses
// and {"message": ...} for validation and server errors.
func parseErrorResponse(statusCode int, body []byte) *APIError {
	var errResp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}

	msg := string(bytes.TrimSpace(body))
	if err := json.Unmarshal(body, &errResp); err == nil {
		switch {
		case errResp.Error != "":
			msg = errResp.Error
		case errResp.Message != "":
			msg = errResp.Message
		}
	}

	return &APIError{StatusCode: statusCode, Message: msg}
}
