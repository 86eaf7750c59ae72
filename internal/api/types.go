package api

// Task statuses reported by the result endpoint.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusSuccess    = "success"
	StatusError      = "error"
)

// HealthResponse represents the GET / response.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// SubmitTaskRequest represents the POST /api/solve/{kind} request.
type SubmitTaskRequest struct {
	URL        string `json:"url"`
	Sitekey    string `json:"sitekey,omitempty"`
	Action     string `json:"action,omitempty"`
	CData      string `json:"cdata,omitempty"`
	AutoDetect bool   `json:"auto_detect"`
}

// SubmitTaskResponse represents the accepted-task response.
type SubmitTaskResponse struct {
	TaskID string `json:"task_id"`
}

// TaskResult represents the GET /api/result/{task_id} response.
type TaskResult struct {
	TaskID      string             `json:"task_id"`
	Status      string             `json:"status"`
	Result      *TaskResultPayload `json:"result,omitempty"`
	CompletedAt string             `json:"completed_at,omitempty"`
}

// TaskResultPayload carries the solver output for a finished task.
// TurnstileValue is set for Turnstile tasks, Token for reCAPTCHA;
// Reason, Errors and SitekeysTried are set for failed tasks.
type TaskResultPayload struct {
	TurnstileValue     string   `json:"turnstile_value,omitempty"`
	Token              string   `json:"token,omitempty"`
	ElapsedTimeSeconds float64  `json:"elapsed_time_seconds,omitempty"`
	SitekeyUsed        string   `json:"sitekey_used,omitempty"`
	Reason             string   `json:"reason,omitempty"`
	Errors             []string `json:"errors,omitempty"`
	SitekeysTried      []string `json:"sitekeys_tried,omitempty"`
}
