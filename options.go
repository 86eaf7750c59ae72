package rapidcaptcha

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	defaultBaseURL      = "https://rapidcaptcha.xyz"
	defaultTimeout      = 300 * time.Second
	defaultMaxRetries   = 3
	defaultRetryDelay   = 2 * time.Second
	defaultPollInterval = 5 * time.Second
)

// clientConfig holds configuration for the client.
type clientConfig struct {
	baseURL      string
	httpClient   *http.Client
	timeout      time.Duration
	maxRetries   int
	retryDelay   time.Duration
	retryOn      []int
	pollInterval time.Duration
	logger       *zap.Logger
}

// submitConfig holds configuration for a solve submission.
type submitConfig struct {
	sitekey    string
	action     string
	cdata      string
	autoDetect bool
}

// waitConfig holds configuration for waiting on a task result.
type waitConfig struct {
	timeout      time.Duration
	pollInterval time.Duration
}

// Option configures the client.
type Option func(*clientConfig)

// SubmitOption configures a solve submission.
type SubmitOption func(*submitConfig)

// WaitOption configures result waiting.
type WaitOption func(*waitConfig)

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client. The custom client's own
// timeout governs each attempt, overriding WithTimeout's per-attempt
// budget.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the timeout. It bounds a single network attempt and
// is the default deadline for WaitForResult and the Solve methods.
// Default: 300 seconds.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithMaxRetries sets the number of retries after the first attempt
// of each API call, so a request makes at most n+1 attempts.
// Default: 3.
func WithMaxRetries(n int) Option {
	return func(c *clientConfig) {
		c.maxRetries = n
	}
}

// WithRetryDelay sets the fixed delay between attempts. Zero means
// no enforced pause. Default: 2 seconds.
func WithRetryDelay(delay time.Duration) Option {
	return func(c *clientConfig) {
		c.retryDelay = delay
	}
}

// WithRetryOn sets the HTTP status codes that trigger a retry.
// Default: [408, 500, 502, 503, 504]. Rate-limit responses (429) are
// terminal by default; include 429 here to retry them instead.
func WithRetryOn(statusCodes []int) Option {
	return func(c *clientConfig) {
		c.retryOn = statusCodes
	}
}

// WithPollInterval sets the default interval between result polls in
// WaitForResult and the Solve methods. Default: 5 seconds.
func WithPollInterval(interval time.Duration) Option {
	return func(c *clientConfig) {
		c.pollInterval = interval
	}
}

// WithLogger sets a zap logger for request and retry diagnostics.
// The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithSitekey sets an explicit sitekey instead of server-side detection.
func WithSitekey(sitekey string) SubmitOption {
	return func(c *submitConfig) {
		c.sitekey = sitekey
	}
}

// WithAction sets the Turnstile action parameter.
func WithAction(action string) SubmitOption {
	return func(c *submitConfig) {
		c.action = action
	}
}

// WithCData sets the Turnstile cdata parameter.
func WithCData(cdata string) SubmitOption {
	return func(c *submitConfig) {
		c.cdata = cdata
	}
}

// WithAutoDetect asks the service to detect the sitekey on the page.
// Required when no explicit sitekey is provided.
func WithAutoDetect() SubmitOption {
	return func(c *submitConfig) {
		c.autoDetect = true
	}
}

// WithWaitTimeout sets the deadline for waiting on a result.
// Default: the client timeout.
func WithWaitTimeout(timeout time.Duration) WaitOption {
	return func(c *waitConfig) {
		c.timeout = timeout
	}
}

// WithWaitPollInterval sets the interval between result polls for a
// single wait, overriding the client's poll interval.
func WithWaitPollInterval(interval time.Duration) WaitOption {
	return func(c *waitConfig) {
		c.pollInterval = interval
	}
}
