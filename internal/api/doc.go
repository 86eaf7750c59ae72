// Package api provides HTTP client functionality for communicating with the
// RapidCaptcha API. It handles authentication, request/response serialization,
// and bounded retry with a fixed delay for transient failures.
//
// # Retry Behavior
//
// The client retries failed requests up to [RetryConfig.MaxRetries] times
// after the first attempt, waiting [RetryConfig.Delay] between attempts.
// By default retries trigger on network errors and these HTTP status codes:
//
//   - 408 Request Timeout
//   - 500 Internal Server Error
//   - 502 Bad Gateway
//   - 503 Service Unavailable
//   - 504 Gateway Timeout
//
// Authentication failures (401, 403) and other client errors (400, 404, 429)
// are terminal: they are returned after exactly one attempt, since repeating
// the request cannot make it valid.
//
// # Error Handling
//
// The package defines sentinel errors for common API error conditions:
//
//   - [ErrInvalidAPIKey]: API key rejected by the service (401, 403).
//   - [ErrTaskNotFound]: Task does not exist (404).
//   - [ErrRateLimited]: Rate limit exceeded (429).
//
// Use errors.Is to check for specific error conditions:
//
//	if errors.Is(err, api.ErrTaskNotFound) {
//	    // Handle missing task
//	}
//
// # Thread Safety
//
// The [Client] type is safe for concurrent use. Multiple goroutines may call
// methods on a single Client simultaneously.
package api
