package rapidcaptcha

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rapidcaptcha/client-go/internal/api"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingAPIKey is returned when no API key is provided.
	ErrMissingAPIKey = errors.New("API key is required")

	// ErrInvalidAPIKey is returned when the service rejects the API key.
	ErrInvalidAPIKey = errors.New("invalid API key")

	// ErrTaskNotFound is returned when a task ID is unknown to the service.
	ErrTaskNotFound = errors.New("task not found")

	// ErrRateLimited is returned when the API rate limit is exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrServiceUnavailable is returned when every attempt of a request
	// failed and the retry budget is exhausted.
	ErrServiceUnavailable = errors.New("service unavailable")
)

// RapidCaptchaError is implemented by all SDK errors.
type RapidCaptchaError interface {
	error
	RapidCaptchaError() // marker method
}

// APIError represents an HTTP error from the RapidCaptcha API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error %d", e.StatusCode)
}

// RapidCaptchaError implements the RapidCaptchaError interface.
func (e *APIError) RapidCaptchaError() {}

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case 401, 403:
		return target == ErrInvalidAPIKey
	case 404:
		return target == ErrTaskNotFound
	case 429:
		return target == ErrRateLimited
	}
	return false
}

// NetworkError represents a network-level failure.
type NetworkError struct {
	Err     error
	URL     string
	Attempt int
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// RapidCaptchaError implements the RapidCaptchaError interface.
func (e *NetworkError) RapidCaptchaError() {}

// RequestFailedError reports that a request failed on every attempt.
// Err holds the error observed on the final attempt.
type RequestFailedError struct {
	Attempts int
	Err      error
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("request failed after %d attempts: %v", e.Attempts, e.Err)
}

// Unwrap returns the underlying error.
func (e *RequestFailedError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *RequestFailedError) Is(target error) bool {
	return target == ErrServiceUnavailable
}

// RapidCaptchaError implements the RapidCaptchaError interface.
func (e *RequestFailedError) RapidCaptchaError() {}

// TimeoutError represents an operation that exceeded its deadline.
type TimeoutError struct {
	Operation string
	Timeout   time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %v", e.Operation, e.Timeout)
}

// RapidCaptchaError implements the RapidCaptchaError interface.
func (e *TimeoutError) RapidCaptchaError() {}

// ValidationError reports invalid caller input. It is returned before
// any network call for client-side validation, and for 400 responses
// from the service.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// RapidCaptchaError implements the RapidCaptchaError interface.
func (e *ValidationError) RapidCaptchaError() {}

// wrapError converts internal API errors to public errors.
// This ensures that errors.Is() checks work with public sentinel errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) && !isRequestFailed(err) {
		if apiErr.StatusCode == 400 {
			return &ValidationError{Errors: []string{apiErr.Message}}
		}
		return &APIError{
			StatusCode: apiErr.StatusCode,
			Message:    apiErr.Message,
		}
	}

	var failedErr *api.RequestFailedError
	if errors.As(err, &failedErr) {
		return &RequestFailedError{
			Attempts: failedErr.Attempts,
			Err:      wrapError(failedErr.Last),
		}
	}

	var netErr *api.NetworkError
	if errors.As(err, &netErr) {
		return &NetworkError{
			Err:     netErr.Err,
			URL:     netErr.URL,
			Attempt: netErr.Attempt,
		}
	}

	return err
}

// isRequestFailed reports whether err is an exhausted-retries failure.
// RequestFailedError wraps the last attempt's error, so errors.As would
// otherwise see through it to the inner APIError.
func isRequestFailed(err error) bool {
	var failedErr *api.RequestFailedError
	return errors.As(err, &failedErr)
}
