// Command rapidcaptcha is a small CLI for the RapidCaptcha service:
// it solves CAPTCHAs, checks task results and detects sitekeys from
// the command line. Configuration comes from the environment (or a
// .env file): RAPIDCAPTCHA_API_KEY, RAPIDCAPTCHA_URL and the retry
// and polling knobs understood by internal/config.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	rapidcaptcha "github.com/rapidcaptcha/client-go"
	"github.com/rapidcaptcha/client-go/internal/config"
	"github.com/rapidcaptcha/client-go/sitekey"
)

const usage = `usage: rapidcaptcha <command> [args]

commands:
  health                          check service availability
  solve-turnstile <url> [sitekey] solve a Turnstile CAPTCHA
  solve-recaptcha <url> [sitekey] solve a reCAPTCHA
  result <task-id>                fetch the state of a task
  detect <url>                    detect sitekeys on a page`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fatal("%v", err)
	}
}

func run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%s", usage)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck // stderr sync failure is unactionable

	// Detection needs no API key, so handle it before client creation.
	if args[0] == "detect" {
		return detect(cfg, args[1:])
	}

	client, err := rapidcaptcha.New(cfg.APIKey,
		rapidcaptcha.WithBaseURL(cfg.BaseURL),
		rapidcaptcha.WithTimeout(cfg.Timeout),
		rapidcaptcha.WithMaxRetries(cfg.MaxRetries),
		rapidcaptcha.WithRetryDelay(cfg.RetryDelay),
		rapidcaptcha.WithPollInterval(cfg.PollInterval),
		rapidcaptcha.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout+time.Minute)
	defer cancel()

	switch args[0] {
	case "health":
		return health(ctx, client)
	case "solve-turnstile":
		return solve(ctx, client.SolveTurnstile, args[1:])
	case "solve-recaptcha":
		return solve(ctx, client.SolveRecaptcha, args[1:])
	case "result":
		return result(ctx, client, args[1:])
	default:
		return fmt.Errorf("unknown command: %s\n%s", args[0], usage)
	}
}

func health(ctx context.Context, client *rapidcaptcha.Client) error {
	status, err := client.HealthCheck(ctx)
	if err != nil {
		return err
	}
	return printJSON(status)
}

type solveFunc func(context.Context, string, ...rapidcaptcha.SubmitOption) (*rapidcaptcha.CaptchaResult, error)

func solve(ctx context.Context, fn solveFunc, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: rapidcaptcha solve-<kind> <url> [sitekey]")
	}

	opts := []rapidcaptcha.SubmitOption{rapidcaptcha.WithAutoDetect()}
	if len(args) > 1 {
		opts = []rapidcaptcha.SubmitOption{rapidcaptcha.WithSitekey(args[1])}
	}

	res, err := fn(ctx, args[0], opts...)
	if err != nil {
		return err
	}
	return printJSON(res)
}

func result(ctx context.Context, client *rapidcaptcha.Client, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: rapidcaptcha result <task-id>")
	}

	res, err := client.GetResult(ctx, args[0])
	if err != nil {
		return err
	}
	return printJSON(res)
}

func detect(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: rapidcaptcha detect <url>")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	detections, err := sitekey.New().Detect(ctx, args[0])
	if err != nil {
		return err
	}
	return printJSON(detections)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
