package sitekey

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestPage(t *testing.T, html string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(html))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestDetect_Turnstile(t *testing.T) {
	url := newTestPage(t, `<html><body>
		<form>
			<div class="cf-turnstile" data-sitekey="0x4AAAAAAABkMYinukE8nzKd"></div>
		</form>
	</body></html>`)

	found, err := New().Detect(context.Background(), url)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("found %d detections, want 1", len(found))
	}
	if found[0].Kind != KindTurnstile {
		t.Errorf("Kind = %q, want %q", found[0].Kind, KindTurnstile)
	}
	if found[0].Sitekey != "0x4AAAAAAABkMYinukE8nzKd" {
		t.Errorf("Sitekey = %q", found[0].Sitekey)
	}
}

func TestDetect_Recaptcha(t *testing.T) {
	url := newTestPage(t, `<html><body>
		<div class="g-recaptcha" data-sitekey="6LdG7xEqAAAAAJx6cbeFU2Ahk3"></div>
	</body></html>`)

	found, err := New().Detect(context.Background(), url)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(found) != 1 || found[0].Kind != KindRecaptcha {
		t.Fatalf("found = %+v, want one recaptcha detection", found)
	}
}

func TestDetect_MultipleWidgetsDeduplicated(t *testing.T) {
	url := newTestPage(t, `<html><body>
		<div class="cf-turnstile" data-sitekey="0x4AAAAAAAfirst"></div>
		<div class="cf-turnstile" data-sitekey="0x4AAAAAAAfirst"></div>
		<div class="g-recaptcha" data-sitekey="6LdG7xEqAAAAsecond"></div>
	</body></html>`)

	found, err := New().Detect(context.Background(), url)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("found %d detections, want 2: %+v", len(found), found)
	}
	if found[0].Sitekey != "0x4AAAAAAAfirst" || found[1].Sitekey != "6LdG7xEqAAAAsecond" {
		t.Errorf("found = %+v", found)
	}
}

func TestDetect_ScriptFallback(t *testing.T) {
	url := newTestPage(t, `<html><body>
		<div id="widget"></div>
		<script>
			turnstile.render('#widget', {
				sitekey: "0x4AAAAAAAscripted",
				callback: onSolved,
			});
		</script>
	</body></html>`)

	found, err := New().Detect(context.Background(), url)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("found %d detections, want 1: %+v", len(found), found)
	}
	if found[0].Kind != KindTurnstile || found[0].Sitekey != "0x4AAAAAAAscripted" {
		t.Errorf("found = %+v", found)
	}
}

func TestDetect_WidgetWinsOverScript(t *testing.T) {
	url := newTestPage(t, `<html><body>
		<div class="cf-turnstile" data-sitekey="0x4AAAAAAAmarkup"></div>
		<script>var k = {sitekey: "0x4AAAAAAAscripted"};</script>
	</body></html>`)

	found, err := New().Detect(context.Background(), url)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(found) != 1 || found[0].Sitekey != "0x4AAAAAAAmarkup" {
		t.Errorf("found = %+v, want only the markup key", found)
	}
}

func TestDetect_NoWidgets(t *testing.T) {
	url := newTestPage(t, `<html><body><p>Nothing to solve here.</p></body></html>`)

	found, err := New().Detect(context.Background(), url)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(found) != 0 {
		t.Errorf("found = %+v, want none", found)
	}
}

func TestDetect_FetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	_, err := New().Detect(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("Detect() error = nil, want fetch failure")
	}
}

func TestDetect_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := New().Detect(ctx, srv.URL)
	if err == nil {
		t.Fatal("Detect() error = nil, want context error")
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		sitekey string
		want    Kind
	}{
		{"0x4AAAAAAABkMYinukE8nzKd", KindTurnstile},
		{"6LdG7xEqAAAAAJx6cbeFU2Ahk3", KindRecaptcha},
		{"abc123", KindUnknown},
		{"", KindUnknown},
	}

	for _, tt := range tests {
		if got := KindOf(tt.sitekey); got != tt.want {
			t.Errorf("KindOf(%q) = %q, want %q", tt.sitekey, got, tt.want)
		}
	}
}
