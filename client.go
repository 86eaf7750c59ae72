package rapidcaptcha

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rapidcaptcha/client-go/internal/api"
)

// Client is the RapidCaptcha API client. It is safe for concurrent
// use: configuration is immutable after construction and each call is
// independent.
type Client struct {
	apiClient    *api.Client
	timeout      time.Duration
	pollInterval time.Duration
	logger       *zap.Logger
}

// HealthStatus is the service health report.
type HealthStatus struct {
	Status  string
	Message string
}

// buildAPIClient creates and configures an API client from the given config.
func buildAPIClient(apiKey string, cfg *clientConfig) (*api.Client, error) {
	apiOpts := []api.Option{
		api.WithBaseURL(cfg.baseURL),
		api.WithTimeout(cfg.timeout),
		api.WithRetries(cfg.maxRetries),
		api.WithRetryDelay(cfg.retryDelay),
	}
	if len(cfg.retryOn) > 0 {
		apiOpts = append(apiOpts, api.WithRetryOn(cfg.retryOn))
	}
	if cfg.logger != nil {
		apiOpts = append(apiOpts, api.WithLogger(cfg.logger))
	}

	apiClient, err := api.New(apiKey, apiOpts...)
	if err != nil {
		return nil, err
	}

	if cfg.httpClient != nil {
		apiClient.SetHTTPClient(cfg.httpClient)
	}

	return apiClient, nil
}

// validateConfig checks the configuration invariants. All violations
// are reported together.
func validateConfig(cfg *clientConfig) error {
	var problems []string
	if cfg.timeout <= 0 {
		problems = append(problems, fmt.Sprintf("timeout must be positive, got %v", cfg.timeout))
	}
	if cfg.maxRetries < 0 {
		problems = append(problems, fmt.Sprintf("max retries must be non-negative, got %d", cfg.maxRetries))
	}
	if cfg.retryDelay < 0 {
		problems = append(problems, fmt.Sprintf("retry delay must be non-negative, got %v", cfg.retryDelay))
	}
	if cfg.pollInterval <= 0 {
		problems = append(problems, fmt.Sprintf("poll interval must be positive, got %v", cfg.pollInterval))
	}
	if len(problems) > 0 {
		return &ValidationError{Errors: problems}
	}
	return nil
}

// New creates a new RapidCaptcha client with the given API key.
// Construction performs no network calls; the key is checked by the
// service on the first request.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	cfg := &clientConfig{
		baseURL:      defaultBaseURL,
		timeout:      defaultTimeout,
		maxRetries:   defaultMaxRetries,
		retryDelay:   defaultRetryDelay,
		pollInterval: defaultPollInterval,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	apiClient, err := buildAPIClient(apiKey, cfg)
	if err != nil {
		return nil, err
	}

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		apiClient:    apiClient,
		timeout:      cfg.timeout,
		pollInterval: cfg.pollInterval,
		logger:       logger,
	}, nil
}

// HealthCheck verifies the service is reachable and the API key is
// accepted.
func (c *Client) HealthCheck(ctx context.Context) (*HealthStatus, error) {
	resp, err := c.apiClient.CheckHealth(ctx)
	if err != nil {
		return nil, wrapError(err)
	}
	return &HealthStatus{
		Status:  resp.Status,
		Message: resp.Message,
	}, nil
}
