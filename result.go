package rapidcaptcha

import (
	"context"
	"strings"
	"time"

	"github.com/rapidcaptcha/client-go/internal/api"
)

// TaskStatus is the lifecycle state of a solving task.
type TaskStatus string

// Task statuses reported by the service.
const (
	// StatusPending means the task is queued but not yet picked up.
	StatusPending TaskStatus = "pending"
	// StatusProcessing means a solver is working on the task.
	StatusProcessing TaskStatus = "processing"
	// StatusSuccess means the task finished and a value is available.
	StatusSuccess TaskStatus = "success"
	// StatusError means the solver gave up on the task.
	StatusError TaskStatus = "error"
)

// CaptchaResult is the state of a solving task as last reported by
// the service.
type CaptchaResult struct {
	TaskID string
	Status TaskStatus

	// TurnstileValue is the solved token for Turnstile tasks.
	TurnstileValue string
	// Token is the solved token for reCAPTCHA tasks.
	Token string
	// ElapsedTime is how long the solver worked on the task.
	ElapsedTime time.Duration
	// SitekeyUsed is the sitekey the solver ended up using.
	SitekeyUsed string

	// Reason explains the failure for error results.
	Reason string
	// Errors lists the individual failures for error results.
	Errors []string
	// SitekeysTried lists the sitekeys attempted before giving up.
	SitekeysTried []string

	// CompletedAt is when the task finished. Zero for unfinished tasks.
	CompletedAt time.Time
}

// IsSuccess reports whether the task finished with a solved value.
func (r *CaptchaResult) IsSuccess() bool {
	return r.Status == StatusSuccess
}

// IsError reports whether the solver gave up on the task.
func (r *CaptchaResult) IsError() bool {
	return r.Status == StatusError
}

// IsFinal reports whether the task has left the queue for good.
func (r *CaptchaResult) IsFinal() bool {
	return r.Status == StatusSuccess || r.Status == StatusError
}

// Value returns the solved token regardless of task kind, or the
// empty string for unfinished and failed tasks.
func (r *CaptchaResult) Value() string {
	if r.TurnstileValue != "" {
		return r.TurnstileValue
	}
	return r.Token
}

// GetResult fetches the current state of a task without waiting.
func (c *Client) GetResult(ctx context.Context, taskID string) (*CaptchaResult, error) {
	if strings.TrimSpace(taskID) == "" {
		return nil, &ValidationError{Errors: []string{"task ID is required"}}
	}

	resp, err := c.apiClient.GetTaskResult(ctx, taskID)
	if err != nil {
		return nil, wrapError(err)
	}

	return newCaptchaResult(resp), nil
}

// newCaptchaResult converts the wire representation into the public one.
func newCaptchaResult(resp *api.TaskResult) *CaptchaResult {
	result := &CaptchaResult{
		TaskID: resp.TaskID,
		Status: TaskStatus(resp.Status),
	}

	if resp.CompletedAt != "" {
		if t, err := time.Parse(time.RFC3339, resp.CompletedAt); err == nil {
			result.CompletedAt = t
		}
	}

	if payload := resp.Result; payload != nil {
		result.TurnstileValue = payload.TurnstileValue
		result.Token = payload.Token
		result.ElapsedTime = time.Duration(payload.ElapsedTimeSeconds * float64(time.Second))
		result.SitekeyUsed = payload.SitekeyUsed
		result.Reason = payload.Reason
		result.Errors = payload.Errors
		result.SitekeysTried = payload.SitekeysTried
	}

	return result
}
