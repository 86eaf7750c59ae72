package rapidcaptcha

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/rapidcaptcha/client-go/internal/api"
)

// SubmitTurnstile queues a Cloudflare Turnstile solving task for the
// given page and returns its task ID. Either provide an explicit
// sitekey with WithSitekey or enable server-side detection with
// WithAutoDetect.
func (c *Client) SubmitTurnstile(ctx context.Context, pageURL string, opts ...SubmitOption) (string, error) {
	cfg := &submitConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if err := validateSubmit(pageURL, cfg); err != nil {
		return "", err
	}

	req := &api.SubmitTaskRequest{
		URL:        pageURL,
		Sitekey:    cfg.sitekey,
		Action:     cfg.action,
		CData:      cfg.cdata,
		AutoDetect: cfg.autoDetect,
	}

	taskID, err := c.apiClient.SubmitTask(ctx, api.TaskTurnstile, req)
	if err != nil {
		return "", wrapError(err)
	}

	c.logger.Debug("turnstile task submitted",
		zap.String("task_id", taskID),
		zap.String("url", pageURL))
	return taskID, nil
}

// SubmitRecaptcha queues a reCAPTCHA solving task for the given page
// and returns its task ID. The Turnstile-specific options WithAction
// and WithCData are ignored.
func (c *Client) SubmitRecaptcha(ctx context.Context, pageURL string, opts ...SubmitOption) (string, error) {
	cfg := &submitConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if err := validateSubmit(pageURL, cfg); err != nil {
		return "", err
	}

	req := &api.SubmitTaskRequest{
		URL:        pageURL,
		Sitekey:    cfg.sitekey,
		AutoDetect: cfg.autoDetect,
	}

	taskID, err := c.apiClient.SubmitTask(ctx, api.TaskRecaptcha, req)
	if err != nil {
		return "", wrapError(err)
	}

	c.logger.Debug("recaptcha task submitted",
		zap.String("task_id", taskID),
		zap.String("url", pageURL))
	return taskID, nil
}

// validateSubmit checks submission input before any network call.
func validateSubmit(pageURL string, cfg *submitConfig) error {
	var problems []string

	if err := validatePageURL(pageURL); err != nil {
		problems = append(problems, err.Error())
	}
	if cfg.sitekey == "" && !cfg.autoDetect {
		problems = append(problems, "either provide a sitekey or enable auto-detect")
	}

	if len(problems) > 0 {
		return &ValidationError{Errors: problems}
	}
	return nil
}

// validatePageURL requires an absolute http(s) URL with a host.
func validatePageURL(pageURL string) error {
	if pageURL == "" {
		return fmt.Errorf("page URL is required")
	}
	u, err := url.Parse(pageURL)
	if err != nil {
		return fmt.Errorf("invalid page URL %q: %v", pageURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("page URL must be absolute http(s), got %q", pageURL)
	}
	return nil
}
