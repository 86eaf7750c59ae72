package api

import (
	"context"
	"time"
)

// RetryConfig configures retry behavior for failed HTTP requests.
// The delay between attempts is fixed, not exponential.
type RetryConfig struct {
	// MaxRetries is the maximum number of retry attempts after the
	// initial try. Total attempts = MaxRetries + 1.
	MaxRetries int
	// Delay is the pause between consecutive attempts.
	Delay time.Duration
	// RetryableOn determines if a status code should trigger a retry.
	RetryableOn func(statusCode int) bool
}

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries: 3,
		Delay:      2 * time.Second,
		RetryableOn: func(statusCode int) bool {
			switch statusCode {
			case 408, 500, 502, 503, 504:
				return true
			default:
				return false
			}
		},
	}
}

// ShouldRetry determines if a request should be retried after a
// response with the given status code.
func (r *RetryConfig) ShouldRetry(attempt int, statusCode int) bool {
	if attempt >= r.MaxRetries {
		return false
	}
	return r.RetryableOn(statusCode)
}

// Wait pauses for the configured delay before the next attempt.
// It returns early with the context's error if the context is done.
func (r *RetryConfig) Wait(ctx context.Context) error {
	if r.Delay <= 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return nil
		}
	}

	timer := time.NewTimer(r.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
