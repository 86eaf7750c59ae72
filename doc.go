// Package rapidcaptcha provides a Go client SDK for RapidCaptcha,
// a CAPTCHA-solving service for Cloudflare Turnstile and reCAPTCHA.
//
// The SDK wraps the service's REST API behind an authenticated HTTP
// client with bounded retries, per-attempt timeouts and result polling.
//
// Basic usage:
//
//	client, err := rapidcaptcha.New("Rapidcaptcha-your-key")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := client.SolveTurnstile(ctx, "https://example.com",
//	    rapidcaptcha.WithAutoDetect())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if result.IsSuccess() {
//	    fmt.Println("Token:", result.Value())
//	}
//
// Submitting and polling can also be driven separately:
//
//	taskID, err := client.SubmitTurnstile(ctx, pageURL,
//	    rapidcaptcha.WithSitekey("0x4AAAAAAABkMYinukE8nzKd"))
//	...
//	result, err := client.WaitForResult(ctx, taskID,
//	    rapidcaptcha.WithWaitPollInterval(2*time.Second))
//
// All methods take a context.Context and are safe for concurrent use;
// solving several CAPTCHAs at once is a matter of spawning goroutines.
package rapidcaptcha
