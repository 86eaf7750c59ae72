package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// TaskKind selects the solver endpoint.
type TaskKind string

// Supported task kinds.
const (
	TaskTurnstile TaskKind = "turnstile"
	TaskRecaptcha TaskKind = "recaptcha"
)

// CheckHealth pings the service root endpoint.
func (c *Client) CheckHealth(ctx context.Context) (*HealthResponse, error) {
	var result HealthResponse
	if err := c.Do(ctx, http.MethodGet, "/", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SubmitTask queues a solving task and returns its ID.
func (c *Client) SubmitTask(ctx context.Context, kind TaskKind, req *SubmitTaskRequest) (string, error) {
	path := fmt.Sprintf("/api/solve/%s", kind)
	var result SubmitTaskResponse
	if err := c.Do(ctx, http.MethodPost, path, req, &result); err != nil {
		return "", err
	}
	if result.TaskID == "" {
		return "", fmt.Errorf("service accepted the task but returned no task ID")
	}
	return result.TaskID, nil
}

// GetTaskResult fetches the current state of a task.
func (c *Client) GetTaskResult(ctx context.Context, taskID string) (*TaskResult, error) {
	path := fmt.Sprintf("/api/result/%s", url.PathEscape(taskID))
	var result TaskResult
	if err := c.Do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
