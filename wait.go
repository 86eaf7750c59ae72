package rapidcaptcha

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// WaitForResult polls a task until it reaches a final state or the
// wait deadline passes. The first poll happens immediately; subsequent
// polls are spaced by the poll interval. A task that does not finish
// within the deadline yields a *TimeoutError. Cancelling the context
// aborts the in-flight poll and stops waiting.
func (c *Client) WaitForResult(ctx context.Context, taskID string, opts ...WaitOption) (*CaptchaResult, error) {
	cfg := &waitConfig{
		timeout:      c.timeout,
		pollInterval: c.pollInterval,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	waitCtx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	for {
		result, err := c.GetResult(waitCtx, taskID)
		if err != nil {
			if deadlineExceeded(ctx, waitCtx) {
				return nil, &TimeoutError{
					Operation: fmt.Sprintf("task %s", taskID),
					Timeout:   cfg.timeout,
				}
			}
			return nil, err
		}

		if result.IsFinal() {
			return result, nil
		}

		c.logger.Debug("task not finished, polling again",
			zap.String("task_id", taskID),
			zap.String("status", string(result.Status)),
			zap.Duration("interval", cfg.pollInterval))

		timer := time.NewTimer(cfg.pollInterval)
		select {
		case <-waitCtx.Done():
			timer.Stop()
			if deadlineExceeded(ctx, waitCtx) {
				return nil, &TimeoutError{
					Operation: fmt.Sprintf("task %s", taskID),
					Timeout:   cfg.timeout,
				}
			}
			return nil, waitCtx.Err()
		case <-timer.C:
		}
	}
}

// deadlineExceeded reports whether the wait deadline fired, as opposed
// to the caller's own context being cancelled or expiring.
func deadlineExceeded(parent, waitCtx context.Context) bool {
	return errors.Is(waitCtx.Err(), context.DeadlineExceeded) && parent.Err() == nil
}

// SolveTurnstile submits a Turnstile task and waits for its result.
// It is SubmitTurnstile followed by WaitForResult with the client's
// wait defaults. The returned result may still be an error result;
// check IsSuccess.
func (c *Client) SolveTurnstile(ctx context.Context, pageURL string, opts ...SubmitOption) (*CaptchaResult, error) {
	taskID, err := c.SubmitTurnstile(ctx, pageURL, opts...)
	if err != nil {
		return nil, err
	}
	return c.WaitForResult(ctx, taskID)
}

// SolveRecaptcha submits a reCAPTCHA task and waits for its result.
func (c *Client) SolveRecaptcha(ctx context.Context, pageURL string, opts ...SubmitOption) (*CaptchaResult, error) {
	taskID, err := c.SubmitRecaptcha(ctx, pageURL, opts...)
	if err != nil {
		return nil, err
	}
	return c.WaitForResult(ctx, taskID)
}
