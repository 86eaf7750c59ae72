package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCheckHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/" {
			t.Errorf("request = %s %s, want GET /", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(HealthResponse{Status: "ok", Message: "API is healthy"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	health, err := c.CheckHealth(context.Background())
	if err != nil {
		t.Fatalf("CheckHealth() error = %v", err)
	}
	if health.Status != "ok" {
		t.Errorf("Status = %q, want %q", health.Status, "ok")
	}
	if health.Message != "API is healthy" {
		t.Errorf("Message = %q, want %q", health.Message, "API is healthy")
	}
}

func TestSubmitTask(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/solve/turnstile" {
			t.Errorf("request = %s %s, want POST /api/solve/turnstile", r.Method, r.URL.Path)
		}

		var req SubmitTaskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.URL != "https://example.com" {
			t.Errorf("URL = %q, want %q", req.URL, "https://example.com")
		}
		if req.Sitekey != "0x4AAAAAAABkMYinukE8nzKd" {
			t.Errorf("Sitekey = %q, want explicit key", req.Sitekey)
		}
		if req.AutoDetect {
			t.Error("AutoDetect = true, want false")
		}

		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(SubmitTaskResponse{TaskID: "task-123"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	taskID, err := c.SubmitTask(context.Background(), TaskTurnstile, &SubmitTaskRequest{
		URL:     "https://example.com",
		Sitekey: "0x4AAAAAAABkMYinukE8nzKd",
	})
	if err != nil {
		t.Fatalf("SubmitTask() error = %v", err)
	}
	if taskID != "task-123" {
		t.Errorf("taskID = %q, want %q", taskID, "task-123")
	}
}

func TestSubmitTask_RecaptchaPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/solve/recaptcha" {
			t.Errorf("path = %s, want /api/solve/recaptcha", r.URL.Path)
		}
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(SubmitTaskResponse{TaskID: "task-456"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	taskID, err := c.SubmitTask(context.Background(), TaskRecaptcha, &SubmitTaskRequest{
		URL:        "https://example.com",
		AutoDetect: true,
	})
	if err != nil {
		t.Fatalf("SubmitTask() error = %v", err)
	}
	if taskID != "task-456" {
		t.Errorf("taskID = %q, want %q", taskID, "task-456")
	}
}

func TestSubmitTask_MissingTaskID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	_, err := c.SubmitTask(context.Background(), TaskTurnstile, &SubmitTaskRequest{
		URL:        "https://example.com",
		AutoDetect: true,
	})
	if err == nil {
		t.Fatal("SubmitTask() should fail when the response has no task ID")
	}
}

func TestGetTaskResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/result/task-123" {
			t.Errorf("path = %s, want /api/result/task-123", r.URL.Path)
		}
		json.NewEncoder(w).Encode(TaskResult{
			TaskID: "task-123",
			Status: StatusSuccess,
			Result: &TaskResultPayload{
				TurnstileValue:     "0.abc123...",
				ElapsedTimeSeconds: 16.8,
				SitekeyUsed:        "0x4AAAAAAABkMYinukE8nzKd",
			},
			CompletedAt: "2024-01-15T10:30:00Z",
		})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	result, err := c.GetTaskResult(context.Background(), "task-123")
	if err != nil {
		t.Fatalf("GetTaskResult() error = %v", err)
	}
	if result.Status != StatusSuccess {
		t.Errorf("Status = %q, want %q", result.Status, StatusSuccess)
	}
	if result.Result == nil || result.Result.TurnstileValue != "0.abc123..." {
		t.Errorf("Result = %+v, want turnstile value set", result.Result)
	}
}

func TestGetTaskResult_EscapesTaskID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/api/result/task%2Fwith%2Fslashes" {
			t.Errorf("escaped path = %s, want task ID path-escaped", r.URL.EscapedPath())
		}
		json.NewEncoder(w).Encode(TaskResult{TaskID: "task/with/slashes", Status: StatusPending})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	if _, err := c.GetTaskResult(context.Background(), "task/with/slashes"); err != nil {
		t.Fatalf("GetTaskResult() error = %v", err)
	}
}
