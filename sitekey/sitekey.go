// Package sitekey detects CAPTCHA widgets on web pages so callers can
// pass explicit sitekeys to the solver instead of relying on
// server-side auto-detection.
package sitekey

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// Kind identifies the CAPTCHA widget family a sitekey belongs to.
type Kind string

// Widget families.
const (
	KindTurnstile Kind = "turnstile"
	KindRecaptcha Kind = "recaptcha"
	KindUnknown   Kind = "unknown"
)

// Widget container selectors and the attribute carrying the key.
const (
	turnstileSelector = ".cf-turnstile[data-sitekey]"
	recaptchaSelector = ".g-recaptcha[data-sitekey]"
	sitekeyAttribute  = "data-sitekey"
)

// scriptKeyRe matches sitekeys assigned in inline scripts, e.g.
// turnstile.render(..., {sitekey: "0x4AAA..."}) or element markup
// built in JavaScript.
var scriptKeyRe = regexp.MustCompile(`(?i)(?:data-)?sitekey["'\s:=]+["']([0-9A-Za-z_-]{10,})["']`)

const defaultFetchTimeout = 30 * time.Second

// Detection is a CAPTCHA widget found on a page.
type Detection struct {
	Kind    Kind
	Sitekey string
}

// Detector fetches pages and scans them for CAPTCHA widgets.
type Detector struct {
	client *resty.Client
}

// Option configures the Detector.
type Option func(*Detector)

// WithTimeout sets the page fetch timeout. Default: 30 seconds.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Detector) {
		d.client.SetTimeout(timeout)
	}
}

// WithUserAgent sets the User-Agent header sent when fetching pages.
func WithUserAgent(ua string) Option {
	return func(d *Detector) {
		d.client.SetHeader("User-Agent", ua)
	}
}

// WithRestyClient replaces the underlying HTTP client entirely.
func WithRestyClient(client *resty.Client) Option {
	return func(d *Detector) {
		if client != nil {
			d.client = client
		}
	}
}

// New creates a Detector.
func New(opts ...Option) *Detector {
	d := &Detector{
		client: resty.New().SetTimeout(defaultFetchTimeout),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect fetches pageURL and returns the CAPTCHA widgets found on it,
// in document order and deduplicated by sitekey. Widget containers are
// checked first; if none carry a key, inline scripts are scanned as a
// fallback for pages that render their widget from JavaScript.
func (d *Detector) Detect(ctx context.Context, pageURL string) ([]Detection, error) {
	resp, err := d.client.R().SetContext(ctx).Get(pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	if resp.StatusCode() >= 400 {
		return nil, fmt.Errorf("fetch page: status %d", resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	return scan(doc), nil
}

// scan extracts widget detections from a parsed document.
func scan(doc *goquery.Document) []Detection {
	var found []Detection
	seen := make(map[string]struct{})

	add := func(kind Kind, key string) {
		key = strings.TrimSpace(key)
		if key == "" {
			return
		}
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		found = append(found, Detection{Kind: kind, Sitekey: key})
	}

	doc.Find(turnstileSelector).Each(func(_ int, s *goquery.Selection) {
		key, _ := s.Attr(sitekeyAttribute)
		add(KindTurnstile, key)
	})
	doc.Find(recaptchaSelector).Each(func(_ int, s *goquery.Selection) {
		key, _ := s.Attr(sitekeyAttribute)
		add(KindRecaptcha, key)
	})

	if len(found) > 0 {
		return found
	}

	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		for _, match := range scriptKeyRe.FindAllStringSubmatch(s.Text(), -1) {
			add(KindOf(match[1]), match[1])
		}
	})

	return found
}

// KindOf guesses the widget family from a sitekey's shape: Turnstile
// keys start with "0x", reCAPTCHA keys with "6L".
func KindOf(sitekey string) Kind {
	switch {
	case strings.HasPrefix(sitekey, "0x"):
		return KindTurnstile
	case strings.HasPrefix(sitekey, "6L"):
		return KindRecaptcha
	default:
		return KindUnknown
	}
}
